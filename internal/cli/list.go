package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List quantities and their unit keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := a.catalog(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "QUANTITY\tKIND\tDEFAULT\tUNITS")
			for _, q := range cat.Quantities() {
				fmt.Fprintf(w, "%s\t%s\t%s -> %s\t%s\n",
					q.Name, q.Kind, q.Primary, q.Secondary, strings.Join(q.UnitKeys(), ", "))
			}
			return w.Flush()
		},
	}
}
