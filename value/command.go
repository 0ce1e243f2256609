package value

import "fmt"

// Command is the value kind wrapping a reference to a command behavior —
// a macro, closure, proc, coroutine, alias, ensemble, namespace or scope
// command captured as a first-class value. Handle is opaque here (an
// engine.Command at runtime): the value package has no business knowing
// the Execute/Resume/Help trait, only that commands can be values.
type Command struct {
	Handle any
	Name   string
}

// NewCommand wraps a command handle, optionally tagging it with the name
// it was registered under (empty for anonymous command-values).
func NewCommand(handle any, name string) *Command {
	return &Command{Handle: handle, Name: name}
}

func (c *Command) Kind() Kind { return KindCommand }

func (c *Command) Display() string {
	if c.Name != "" {
		return fmt.Sprintf("command %q", c.Name)
	}
	return fmt.Sprintf("command[%p]", c)
}
