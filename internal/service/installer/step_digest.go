package installer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type digestChoice struct {
	label     string
	startHour string
	endHour   string
}

// DigestWindowStep selects when the automatic daily summary may be posted
type DigestWindowStep struct {
	choices []digestChoice
	cursor  int
}

func NewDigestWindowStep() Step {
	return &DigestWindowStep{
		choices: []digestChoice{
			{"Evening, 20:00-22:00 (default)", "20", "22"},
			{"Morning, 08:00-10:00", "8", "10"},
			{"Afternoon, 12:00-14:00", "12", "14"},
			{"Disabled (no automatic digest)", "0", "0"},
		},
		cursor: 0,
	}
}

func (s *DigestWindowStep) Init() tea.Cmd {
	return nil
}

func (s *DigestWindowStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.choices)-1 {
				s.cursor++
			}
		case "enter":
			choice := s.choices[s.cursor]
			state.EnvVars["RECAP_DIGEST_START_HOUR"] = choice.startHour
			state.EnvVars["RECAP_DIGEST_END_HOUR"] = choice.endHour
			return nil, nil
		}
	}
	return s, nil
}

func (s *DigestWindowStep) View(state *InstallState) string {
	var b strings.Builder
	b.WriteString("When should the daily digest be posted?\n\n")
	for i, choice := range s.choices {
		cursor := " "
		if s.cursor == i {
			cursor = "❯"
			b.WriteString(selStyle.Render(fmt.Sprintf("%s %s", cursor, choice.label)) + "\n")
		} else {
			b.WriteString(itemStyle.Render(fmt.Sprintf("%s %s", cursor, choice.label)) + "\n")
		}
	}
	b.WriteString("\n(press ctrl+c to quit)\n")
	return b.String()
}
