package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts a full-screen program for m on in/out and blocks until it exits.
// A nil in reads keys from the controlling terminal, for when stdin carried the
// data. Mouse reporting includes plain motion, which header hover needs, and
// focus reporting lets a lost window cancel a drag.
func Run(ctx context.Context, m *GridModel, in io.Reader, out io.Writer) error {
	input := tea.WithInputTTY()
	if in != nil {
		input = tea.WithInput(in)
	}
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		input,
		tea.WithOutput(out),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
	)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("running grid: %w", err)
	}
	return nil
}
