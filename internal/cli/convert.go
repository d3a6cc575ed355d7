package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-unitconv/pkg/widget"
)

func newConvertCmd(a *app) *cobra.Command {
	var (
		quantity string
		from     string
		to       string
		reverse  bool
	)

	cmd := &cobra.Command{
		Use:   "convert VALUE",
		Short: "Convert a single value and print the synchronized pair",
		Example: `  unitconv convert 12 -q Length --from km --to m
  unitconv convert 212 -q Temperature --from celsius --to fahrenheit --reverse
  unitconv convert -q Temperature -- -40`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.catalog(cmd.Context())
			if err != nil {
				return err
			}
			panel, err := widget.Restore(cat, widget.State{
				Quantity:   a.quantity(quantity),
				InputUnit:  from,
				OutputUnit: to,
			})
			if err != nil {
				return fmt.Errorf("convert: %w", err)
			}

			edit := panel.EditInput
			if reverse {
				edit = panel.EditOutput
			}
			if err := edit(strings.TrimSpace(args[0])); err != nil {
				return fmt.Errorf("convert: %q: %w", args[0], err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), panel.View().Summary())
			return err
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		if strings.Contains(err.Error(), "unknown shorthand flag") {
			return fmt.Errorf("%w (pass negative values after --, e.g. unitconv convert -- -5)", err)
		}
		return err
	})
	cmd.Flags().StringVarP(&quantity, "quantity", "q", "", "quantity name (defaults to panel.quantity)")
	cmd.Flags().StringVar(&from, "from", "", "input unit key (defaults to the quantity's primary unit)")
	cmd.Flags().StringVar(&to, "to", "", "output unit key (defaults to the quantity's secondary unit)")
	cmd.Flags().BoolVar(&reverse, "reverse", false, "treat VALUE as the output side")
	return cmd
}
