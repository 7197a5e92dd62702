//go:build !gui

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tmarsh/syllabo/internal/session"
	"github.com/tmarsh/syllabo/internal/state"
	"github.com/tmarsh/syllabo/internal/syllabus"
)

// Version info (injected via ldflags)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF"))

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFAA00"))

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C6C6C")).
			Strikethrough(true)

	pendingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Padding(0, 1)

	controlsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Italic(true)

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFAA00"))
)

type model struct {
	sess     *session.Session
	items    []session.Item
	cursor   int
	bar      progress.Model
	status   string
	width    int
	height   int
	quitting bool
}

func newModel(sess *session.Session) model {
	return model{
		sess:   sess,
		items:  sess.Items(),
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(30)),
		width:  80,
		height: 24,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
			return m, nil

		case " ", "enter":
			if m.cursor < len(m.items) {
				m.status = ""
				if err := m.sess.Toggle(m.items[m.cursor].OrderIndex); err != nil {
					m.status = "save failed: " + err.Error()
				}
				m.items = m.sess.Items()
			}
			return m, nil

		case "r", "R":
			m.status = ""
			if err := m.sess.Reset(); err != nil {
				m.status = "reset failed: " + err.Error()
			}
			m.items = m.sess.Items()
			return m, nil

		case "q", "Q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	name := filepath.Base(m.sess.Path)
	done, total := m.sess.Summary()

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(name))
	sb.WriteString(statusStyle.Render(fmt.Sprintf("%d/%d completed", done, total)))
	if m.status != "" {
		sb.WriteString(statusStyle.Render(m.status))
	}
	sb.WriteString("\n")
	sb.WriteString(m.bar.ViewAs(m.sess.Completion()))
	sb.WriteString("\n\n")

	if len(m.items) == 0 {
		sb.WriteString(emptyStyle.Render("No topics recognized in this document."))
		sb.WriteString("\n\n")
		sb.WriteString(controlsStyle.Render("Q: quit"))
		return sb.String()
	}

	for _, i := range m.visibleRange() {
		item := m.items[i]

		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}

		box := "[ ]"
		style := pendingStyle
		if item.Done {
			box = "[x]"
			style = doneStyle
		}

		indent := strings.Repeat("  ", item.Level)
		sb.WriteString(cursor)
		sb.WriteString(indent)
		sb.WriteString(style.Render(box + " " + item.Text))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(controlsStyle.Render("↑/↓: move  SPACE: toggle  R: reset  Q: quit"))
	return sb.String()
}

// visibleRange windows the checklist so the cursor stays on screen.
func (m model) visibleRange() []int {
	avail := m.height - 6
	if avail < 1 {
		avail = 1
	}
	start := 0
	if m.cursor >= start+avail {
		start = m.cursor - avail + 1
	}
	end := start + avail
	if end > len(m.items) {
		end = len(m.items)
	}

	out := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, i)
	}
	return out
}

func main() {
	fresh := flag.Bool("fresh", false, "Ignore saved progress for this syllabus")
	showVersion := flag.Bool("v", false, "Show version information")
	showVersionLong := flag.Bool("version", false, "Show version information")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Syllabo - Syllabus Progress Checklist\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  syllabo [options] <file>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  syllabo syllabus.pdf          Track topics from a PDF syllabus\n")
		fmt.Fprintf(os.Stderr, "  syllabo -fresh syllabus.pdf   Start with all topics unchecked\n")
		fmt.Fprintf(os.Stderr, "\nFormats:\n")
		for _, f := range syllabus.SupportedFormats() {
			fmt.Fprintf(os.Stderr, "  %s\n", f)
		}
		fmt.Fprintf(os.Stderr, "  plain text, Markdown\n")
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  ↑/↓ or j/k  Move between topics\n")
		fmt.Fprintf(os.Stderr, "  SPACE       Toggle the selected topic\n")
		fmt.Fprintf(os.Stderr, "  R           Reset all progress for this syllabus\n")
		fmt.Fprintf(os.Stderr, "  Q           Quit\n")
	}
	flag.Parse()

	if *showVersion || *showVersionLong {
		fmt.Printf("syllabo %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: No syllabus provided.")
		fmt.Fprintln(os.Stderr, "Try: syllabo -h")
		os.Exit(1)
	}

	store, err := state.NewStore()
	if err != nil {
		var corrupt *state.CorruptStateError
		if !errors.As(err, &corrupt) {
			fmt.Fprintf(os.Stderr, "Error: Failed to open progress store: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Warning: %v; starting with empty progress\n", corrupt)
	}

	sess, err := session.Open(store, flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to read '%s': %v\n", flag.Arg(0), err)
		os.Exit(1)
	}
	if *fresh {
		sess.Forget()
	}

	p := tea.NewProgram(newModel(sess), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
