package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-unitconv/internal/logging"
	"github.com/goliatone/go-unitconv/pkg/live"
	"github.com/goliatone/go-unitconv/pkg/themes"
	"github.com/goliatone/go-unitconv/pkg/widget"
)

func newLiveCmd(a *app) *cobra.Command {
	var (
		quantity string
		logFile  string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "live",
		Short: "Run the full-screen converter with live updates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// The program owns the terminal, keep log lines off it.
			logger := zap.NewNop()
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("live: log file: %w", err)
				}
				defer f.Close()
				level, err := zapcore.ParseLevel(a.cfg.Log.Level)
				if err != nil {
					level = zapcore.InfoLevel
				}
				logger = logging.NewWriter(f, level)
			}

			cat, err := a.catalog(cmd.Context())
			if err != nil {
				return err
			}
			panel, err := widget.Restore(cat, widget.State{Quantity: a.quantity(quantity)})
			if err != nil {
				return err
			}

			selector := themes.MustSelector()
			logger.Debug("live: start", zap.String("quantity", panel.Quantity().Name))
			state, err := live.Run(cmd.Context(), panel, a.deps.LiveInput, cmd.ErrOrStderr(),
				live.WithAccentFunc(selector.Accent),
			)
			if err != nil {
				return err
			}
			logger.Debug("live: done", zap.Any("state", state))

			out := cmd.OutOrStdout()
			if asJSON {
				return json.NewEncoder(out).Encode(state)
			}
			final, err := widget.Restore(cat, state)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, final.View().Summary())
			return err
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&quantity, "quantity", "q", "", "starting quantity")
	flags.StringVar(&logFile, "log-file", "", "append debug logs to this file")
	flags.BoolVar(&asJSON, "json", false, "print the final panel state as JSON")
	return cmd
}
