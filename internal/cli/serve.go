package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-unitconv/components/converter"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the converter panel over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}
			ln, err := net.Listen("tcp", a.cfg.Server.Addr)
			if err != nil {
				return fmt.Errorf("serve: listen: %w", err)
			}
			return a.serve(cmd.Context(), ln)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}

func (a *app) newMux() (*http.ServeMux, string, error) {
	component := converter.New(
		converter.WithSource(a.source()),
		converter.WithOrchestrator(a.orch),
		converter.WithLogger(a.logger),
		converter.WithDefaultQuantity(a.cfg.Panel.Quantity),
		converter.WithTheme(a.cfg.Theme.Name, a.cfg.Theme.Variant),
	)
	mux := http.NewServeMux()
	pattern, err := component.RegisterRoutes(mux, a.cfg.Server.BasePath)
	if err != nil {
		return nil, "", err
	}
	return mux, pattern, nil
}

// serve runs the HTTP shell on ln until ctx is cancelled, then drains
// in-flight requests.
func (a *app) serve(ctx context.Context, ln net.Listener) error {
	mux, pattern, err := a.newMux()
	if err != nil {
		ln.Close()
		return err
	}

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          zap.NewStdLog(a.logger),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	a.logger.Info("unitconv: listening",
		zap.String("addr", ln.Addr().String()),
		zap.String("mount", pattern),
	)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("unitconv: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("serve: shutdown: %w", err)
	}
	return nil
}
