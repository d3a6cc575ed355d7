package cli

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-unitconv/pkg/render"
	"github.com/goliatone/go-unitconv/pkg/renderers/tui"
	"github.com/goliatone/go-unitconv/pkg/widget"
)

func newPromptCmd(a *app) *cobra.Command {
	var (
		quantity string
		format   string
		rounds   int
		output   string
	)

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Convert values through interactive prompts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := a.catalog(cmd.Context())
			if err != nil {
				return err
			}
			panel, err := widget.Restore(cat, widget.State{Quantity: a.quantity(quantity)})
			if err != nil {
				return err
			}

			driver := a.deps.Prompt
			if driver == nil {
				driver = tui.NewSurveyDriver(cmd.ErrOrStderr())
			}
			r, err := tui.New(
				tui.WithPromptDriver(driver),
				tui.WithCatalog(cat),
				tui.WithOutputFormat(tui.OutputFormat(format)),
				tui.WithMaxRounds(rounds),
				tui.WithTheme(tui.Theme{ErrorPrefix: "! "}),
			)
			if err != nil {
				return err
			}
			out, err := r.Render(cmd.Context(), panel.View(), render.RenderOptions{})
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, out)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&quantity, "quantity", "q", "", "quantity preselected in the first prompt")
	flags.StringVarP(&format, "format", "f", string(tui.OutputFormatPrettyText), "result format: pretty, json or form")
	flags.IntVar(&rounds, "rounds", 0, "stop after this many conversions (0 asks after each one)")
	flags.StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}
