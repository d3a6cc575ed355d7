package live

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/goliatone/go-unitconv/pkg/widget"
)

// Run starts an interactive program over panel and blocks until the user
// quits or ctx is cancelled. It returns the final panel state. Nil in and
// out fall back to the terminal.
func Run(ctx context.Context, panel *widget.Panel, in io.Reader, out io.Writer, opts ...Option) (widget.State, error) {
	model := New(panel, opts...)

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if in != nil {
		programOpts = append(programOpts, tea.WithInput(in))
	}
	if out != nil {
		programOpts = append(programOpts, tea.WithOutput(out))
	}

	final, err := tea.NewProgram(model, programOpts...).Run()
	if err != nil {
		return model.Panel().View().State(), fmt.Errorf("live: run: %w", err)
	}
	if m, ok := final.(Model); ok {
		return m.Panel().View().State(), nil
	}
	return model.Panel().View().State(), nil
}
