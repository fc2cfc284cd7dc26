package client

import (
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/MKhiriev/legacy-shield/models"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	rotationTitleStyle = lipgloss.NewStyle().Bold(true)
	rotationCountStyle = lipgloss.NewStyle().Faint(true)
	rotationFileStyle  = lipgloss.NewStyle().Faint(true).PaddingLeft(2)
	rotationFailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).PaddingLeft(2)
)

const (
	minBarWidth = 10
	maxBarWidth = 50
)

type rotationStepMsg models.RotationProgress

type rotationDoneMsg struct{}

// rotationModel draws one rotation inline: a title, a bar and the file
// just processed. The drawing is cleared when the rotation ends so the
// summary is printed on a clean line.
type rotationModel struct {
	title  string
	bar    progress.Model
	last   models.RotationProgress
	failed int
	done   bool
}

func newRotationModel(title string) rotationModel {
	return rotationModel{
		title: title,
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(maxBarWidth)),
	}
}

func (m rotationModel) Init() tea.Cmd {
	return nil
}

func (m rotationModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case rotationStepMsg:
		m.last = models.RotationProgress(msg)
		if msg.Err != nil {
			m.failed++
		}
	case rotationDoneMsg:
		m.done = true
		return m, tea.Quit
	case tea.WindowSizeMsg:
		m.bar.Width = min(max(msg.Width-24, minBarWidth), maxBarWidth)
	}
	return m, nil
}

func (m rotationModel) percent() float64 {
	if m.last.Total == 0 {
		return 0
	}
	return min(float64(m.last.Done)/float64(m.last.Total), 1)
}

func (m rotationModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(rotationTitleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.bar.ViewAs(m.percent()))
	b.WriteString(rotationCountStyle.Render(fmt.Sprintf("  %d/%d", m.last.Done, m.last.Total)))
	if m.failed > 0 {
		b.WriteString(rotationCountStyle.Render(fmt.Sprintf(", %d failed", m.failed)))
	}
	b.WriteString("\n")

	switch {
	case m.last.FileID == "":
		b.WriteString(rotationFileStyle.Render("listing files"))
	case m.last.Err != nil:
		b.WriteString(rotationFailStyle.Render(m.last.FileID + " failed"))
	default:
		b.WriteString(rotationFileStyle.Render(m.last.FileID))
	}
	b.WriteString("\n")

	return b.String()
}

// renderRotation drains seq while a bubbletea program draws its progress
// on w. Keyboard input is not read and signals are left to the command
// context, so Ctrl-C stops the rotation between files. seq is always
// drained, even if the program cannot start.
func renderRotation(title string, w io.Writer, seq iter.Seq[models.RotationProgress]) (failed int, err error) {
	program := tea.NewProgram(newRotationModel(title),
		tea.WithOutput(w),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)

	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for step := range seq {
			if step.Err != nil {
				failed++
			}
			program.Send(rotationStepMsg(step))
		}
		program.Send(rotationDoneMsg{})
	}()

	_, err = program.Run()
	<-drained
	return failed, err
}
