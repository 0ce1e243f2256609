// Package replui implements the Helena REPL's interactive terminal model,
// adapted from the teacher's bubbletea/bubbles/lipgloss REPL: a styled
// history of input/output pairs, an async evaluation spinner, and an
// error/result color scheme. Unlike the teacher's REPL, each line is read
// through cliscript (Helena's own surface syntax is out of scope for this
// module — see cliscript's package doc) and driven directly against a
// scope.Scope/process.Process pair instead of a tree-walking evaluator.
package replui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/helena-lang/helena/cliscript"
	"github.com/helena-lang/helena/engine"
	"github.com/helena-lang/helena/result"
	"github.com/helena-lang/helena/scope"
	"github.com/helena-lang/helena/value"
)

const (
	Prompt = ">> "
)

// Options configures the REPL's appearance and verbosity.
type Options struct {
	NoColor bool
	Debug   bool
}

// Start runs the REPL until the user exits.
func Start(options Options) error {
	p := tea.NewProgram(initialModel(options))
	_, err := p.Run()
	return err
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true)
	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87")).Bold(true)
	yieldStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAF00"))
	historyDim  = lipgloss.NewStyle().Foreground(lipgloss.Color("#767676"))
)

type evalResultMsg struct {
	output  string
	isError bool
	elapsed time.Duration
}

type historyEntry struct {
	input          string
	output         string
	isError        bool
	evaluationTime time.Duration
}

type model struct {
	textInput  textinput.Model
	history    []historyEntry
	rootScope  engine.Scope
	evaluating bool
	current    string
	spinner    spinner.Model
	options    Options
}

func initialModel(options Options) model {
	ti := textinput.New()
	ti.Placeholder = "Enter a Helena sentence"
	ti.Focus()
	ti.Width = 80
	ti.Prompt = Prompt

	s := spinner.New()
	s.Spinner = spinner.Dot

	return model{
		textInput: ti,
		rootScope: scope.NewRootScope(),
		spinner:   s,
		options:   options,
	}
}

func (m model) style(style lipgloss.Style, text string) string {
	if m.options.NoColor {
		return text
	}
	return style.Render(text)
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// evalCmd runs one line of input against the REPL's root scope, resolving
// any YIELD by reporting it and resuming with nil, so the REPL never
// blocks waiting for a value a line-oriented prompt cannot supply mid-line.
func evalCmd(line string, rootScope engine.Scope) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		script := cliscript.ParseScript(line)
		program, err := rootScope.CompileScript(script)
		if err != nil {
			return evalResultMsg{output: err.Error(), isError: true, elapsed: time.Since(start)}
		}
		proc := rootScope.NewProcess(program)
		res := proc.Run()
		var yields []string
		for res.Code == result.YIELD {
			yields = append(yields, res.Value.Display())
			res = proc.YieldBack(value.NewNil())
		}
		elapsed := time.Since(start)
		if res.Code == result.ERROR {
			return evalResultMsg{output: res.Message(), isError: true, elapsed: elapsed}
		}
		out := res.Value.Display()
		if len(yields) > 0 {
			out = fmt.Sprintf("(yielded %s) %s", strings.Join(yields, ", "), out)
		}
		return evalResultMsg{output: out, elapsed: elapsed}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.evaluating {
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case evalResultMsg:
		m.evaluating = false
		m.history = append(m.history, historyEntry{
			input: m.current, output: msg.output, isError: msg.isError, evaluationTime: msg.elapsed,
		})
		m.current = ""
		return m, nil

	case tea.KeyMsg:
		if m.evaluating && msg.Type != tea.KeyCtrlC {
			return m, m.spinner.Tick
		}
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyCtrlD:
			return m, tea.Quit
		case tea.KeyEnter:
			input := m.textInput.Value()
			if input == "" {
				return m, nil
			}
			m.evaluating = true
			m.current = input
			m.textInput.SetValue("")
			return m, evalCmd(input, m.rootScope)
		}
	}

	if !m.evaluating {
		m.textInput, cmd = m.textInput.Update(msg)
	}
	if m.evaluating {
		return m, m.spinner.Tick
	}
	return m, cmd
}

func (m model) View() string {
	var s strings.Builder
	s.WriteString(m.style(titleStyle, " Helena REPL "))
	s.WriteString("\n\n")

	for _, entry := range m.history {
		s.WriteString(m.style(promptStyle, Prompt))
		s.WriteString(entry.input)
		s.WriteString("\n")
		if entry.isError {
			s.WriteString(m.style(errorStyle, entry.output))
		} else if strings.HasPrefix(entry.output, "(yielded") {
			s.WriteString(m.style(yieldStyle, entry.output))
		} else {
			s.WriteString(m.style(resultStyle, entry.output))
		}
		if entry.evaluationTime > 10*time.Millisecond {
			s.WriteString(m.style(historyDim, fmt.Sprintf(" (%.2fs)", entry.evaluationTime.Seconds())))
		}
		s.WriteString("\n\n")
	}

	if m.evaluating {
		s.WriteString(m.style(promptStyle, Prompt))
		s.WriteString(m.current)
		s.WriteString("\n")
		s.WriteString(m.spinner.View())
		s.WriteString(" evaluating...\n\n")
	} else {
		s.WriteString(m.textInput.View())
		s.WriteString("\n")
	}

	s.WriteString(m.style(historyDim, "Esc/Ctrl+C/Ctrl+D to exit"))
	return s.String()
}
