// helena is a small command-line driver for the engine: a REPL, a file
// runner, and a one-shot expression evaluator, all built on the same
// scope.Scope/process.Process pair an embedding host would use directly.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/helena-lang/helena/cliscript"
	"github.com/helena-lang/helena/cmd/helena/replui"
	"github.com/helena-lang/helena/result"
	"github.com/helena-lang/helena/scope"
	"github.com/helena-lang/helena/value"
)

const version = "0.1.0"

// config mirrors ~/.helenarc.toml, providing defaults the command-line
// flags can still override.
type config struct {
	Debug   bool `toml:"debug"`
	NoColor bool `toml:"no_color"`
}

func loadConfig() config {
	var cfg config
	home, err := os.UserHomeDir()
	if err != nil {
		return cfg
	}
	_, _ = toml.DecodeFile(filepath.Join(home, ".helenarc.toml"), &cfg)
	return cfg
}

func main() {
	cfg := loadConfig()
	var debug, noColor bool

	root := &cobra.Command{
		Use:     "helena",
		Short:   "Run and explore Helena scripts",
		Version: version,
	}
	root.PersistentFlags().BoolVar(&debug, "debug", cfg.Debug, "enable verbose diagnostics")
	root.PersistentFlags().BoolVar(&noColor, "no-color", cfg.NoColor, "disable styled output")

	root.AddCommand(
		replCmd(&debug, &noColor),
		runCmd(&debug),
		evalCmd(&debug),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func replCmd(debug, noColor *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive read-eval-print loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			return replui.Start(replui.Options{Debug: *debug, NoColor: *noColor})
		},
	}
}

func runCmd(debug *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "run <file>",
		Short: "Run a script file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			return runSource(string(src), *debug)
		},
	}
}

func evalCmd(debug *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "eval <sentence>",
		Short: "Evaluate a single sentence and print its result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSource(args[0], *debug)
		},
	}
}

func runSource(src string, debug bool) error {
	s := scope.NewRootScope()
	script := cliscript.ParseScript(src)
	program, err := s.CompileScript(script)
	if err != nil {
		return fmt.Errorf("compile: %w", err)
	}
	proc := s.NewProcess(program)
	res := proc.Run()
	for res.Code == result.YIELD {
		if debug {
			fmt.Fprintf(os.Stderr, "yield: %s (resuming with nil)\n", res.Value.Display())
		}
		res = proc.YieldBack(value.NewNil())
	}
	if res.Code == result.ERROR {
		fmt.Fprintln(os.Stderr, res.Message())
		if trace := result.FormatTrace(res); trace != "" {
			fmt.Fprint(os.Stderr, trace)
		}
		os.Exit(1)
	}
	fmt.Println(res.Value.Display())
	return nil
}
