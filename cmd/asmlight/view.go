package main

import (
	"errors"
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mgomes/asmlight/render"
)

var (
	accentColor = lipgloss.Color("#3B82F6")
	errorColor  = lipgloss.Color("#EF4444")
	mutedColor  = lipgloss.Color("#6B7280")

	headerStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true).
			Padding(0, 1)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	issueStyle = lipgloss.NewStyle().
			Foreground(errorColor)
)

// header title + rule, footer help line
const viewChromeLines = 3

type viewKeyMap struct {
	Next key.Binding
	Prev key.Binding
	Quit key.Binding
}

func (k viewKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Quit}
}

func (k viewKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var viewKeys = viewKeyMap{
	Next: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "next issue"),
	),
	Prev: key.NewBinding(
		key.WithKeys("N"),
		key.WithHelp("N", "previous issue"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

type viewModel struct {
	viewport   viewport.Model
	help       help.Model
	title      string
	content    string
	issueCount int
	// issueLines holds the 0-based lines with unrecognized input, ascending
	issueLines []int
	issueIdx   int
	width      int
	ready      bool
	quitting   bool
}

func newViewModel(file lexedFile, theme render.Theme) (viewModel, error) {
	var b strings.Builder
	if err := render.Terminal(&b, file.tokens, theme); err != nil {
		return viewModel{}, fmt.Errorf("render %s: %w", file.path, err)
	}

	var lines []int
	for _, issue := range file.issues {
		line := issue.Pos.Line - 1
		if len(lines) == 0 || lines[len(lines)-1] != line {
			lines = append(lines, line)
		}
	}

	return viewModel{
		help:       help.New(),
		title:      filepath.Base(file.path),
		content:    b.String(),
		issueCount: len(file.issues),
		issueLines: lines,
		issueIdx:   -1,
	}, nil
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		height := max(msg.Height-viewChromeLines, 1)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.viewport.SetContent(m.content)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, viewKeys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, viewKeys.Next):
			if len(m.issueLines) > 0 {
				m.issueIdx = (m.issueIdx + 1) % len(m.issueLines)
				m.viewport.SetYOffset(m.issueLines[m.issueIdx])
			}
			return m, nil
		case key.Matches(msg, viewKeys.Prev):
			if len(m.issueLines) > 0 {
				if m.issueIdx <= 0 {
					m.issueIdx = len(m.issueLines) - 1
				} else {
					m.issueIdx--
				}
				m.viewport.SetYOffset(m.issueLines[m.issueIdx])
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m viewModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.quitting {
		return ""
	}

	status := mutedStyle.Render("no issues")
	if m.issueCount > 0 {
		status = issueStyle.Render(fmt.Sprintf("%d issue(s)", m.issueCount))
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(m.title) + " " + status + "\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", max(m.width-2, 0))) + "\n")
	b.WriteString(m.viewport.View() + "\n")
	b.WriteString(m.help.View(viewKeys))
	return b.String()
}

func viewCommand(args []string) error {
	fs := flag.NewFlagSet("view", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	themePath := fs.String("theme", "", "YAML theme for the viewer")
	debug := fs.Bool("debug", false, "log lexer decisions to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("asmlight view: path required")
	}

	theme := render.DefaultTheme()
	if *themePath != "" {
		loaded, err := render.LoadTheme(*themePath)
		if err != nil {
			return err
		}
		theme = loaded
	}

	logger, flush, err := newLogger("view", *debug)
	if err != nil {
		return err
	}
	defer flush()

	file, err := lexFile(remaining[0], logger)
	if err != nil {
		return err
	}
	model, err := newViewModel(file, theme)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
