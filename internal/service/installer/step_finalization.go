package installer

import (
	tea "github.com/charmbracelet/bubbletea"
)

// FinalizationStep computes derived values and final env var formatting
type FinalizationStep struct{}

func NewFinalizationStep() Step {
	return &FinalizationStep{}
}

func (s *FinalizationStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *FinalizationStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	// Set defaults
	if state.EnvVars["RECAP_DEBUG"] == "" {
		state.EnvVars["RECAP_DEBUG"] = "0"
	}
	if state.EnvVars["RECAP_DIGEST_TIMEZONE"] == "" {
		state.EnvVars["RECAP_DIGEST_TIMEZONE"] = "Europe/London"
	}

	// Signal completion
	return nil, nil
}

func (s *FinalizationStep) View(state *InstallState) string {
	return "Finalizing configuration...\n"
}
