package installer

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// OpenAIKeyStep collects the OpenAI API key
type OpenAIKeyStep struct {
	input textinput.Model
}

func NewOpenAIKeyStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 40
	ti.Placeholder = "sk-..."
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'

	return &OpenAIKeyStep{
		input: ti,
	}
}

func (s *OpenAIKeyStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *OpenAIKeyStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			state.EnvVars["RECAP_OPENAI_API_KEY"] = s.input.Value()
			return nil, nil
		}
	}
	return s, cmd
}

func (s *OpenAIKeyStep) View(state *InstallState) string {
	return "Enter your OpenAI API Key:\n\n" +
		s.input.View() + "\n\n" +
		"(press enter to confirm)\n"
}
