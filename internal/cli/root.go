// Package cli wires the unitconv commands: the HTTP shell, one-shot
// conversions, renderer output and the two terminal front ends.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-unitconv/internal/config"
	"github.com/goliatone/go-unitconv/internal/logging"
	"github.com/goliatone/go-unitconv/pkg/catalog"
	"github.com/goliatone/go-unitconv/pkg/orchestrator"
	"github.com/goliatone/go-unitconv/pkg/render"
	"github.com/goliatone/go-unitconv/pkg/renderers/jsonview"
	"github.com/goliatone/go-unitconv/pkg/renderers/tui"
	"github.com/goliatone/go-unitconv/pkg/renderers/vanilla"
	"github.com/goliatone/go-unitconv/pkg/units"
)

// Deps holds optional dependencies that can be overridden in tests.
// Nil fields use production defaults.
type Deps struct {
	// Logger replaces the logger built from configuration.
	Logger *zap.Logger
	// Prompt drives the prompt command instead of the survey terminal.
	Prompt tui.PromptDriver
	// LiveInput feeds the live command instead of the terminal.
	LiveInput io.Reader
}

type app struct {
	deps       Deps
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
	orch   *orchestrator.Orchestrator
}

// NewRootCommand builds the unitconv command tree.
func NewRootCommand(deps Deps) *cobra.Command {
	a := &app{deps: deps}

	cmd := &cobra.Command{
		Use:           "unitconv",
		Short:         "Convert values between units of physical quantities",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", os.Getenv("UNITCONV_CONFIG"), "path to a YAML config file")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log at debug level")

	cmd.AddCommand(
		newServeCmd(a),
		newConvertCmd(a),
		newListCmd(a),
		newRenderCmd(a),
		newPromptCmd(a),
		newLiveCmd(a),
	)
	return cmd
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}
	a.cfg = cfg

	a.logger = a.deps.Logger
	if a.logger == nil {
		a.logger, err = logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
		if err != nil {
			return err
		}
	}
	a.logger.Debug("unitconv: config loaded",
		zap.String("config", a.configPath),
		zap.String("catalog", cfg.Catalog.Path),
		zap.String("renderer", cfg.Panel.Renderer),
		zap.String("engine", cfg.Panel.Engine),
	)

	a.orch, err = a.newOrchestrator(a.logger)
	return err
}

func (a *app) newOrchestrator(logger *zap.Logger) (*orchestrator.Orchestrator, error) {
	opts := []orchestrator.Option{
		orchestrator.WithLogger(logger),
		orchestrator.WithDefaultRenderer(a.cfg.Panel.Renderer),
	}
	engine, err := vanilla.ParseEngine(a.cfg.Panel.Engine)
	if err != nil {
		return nil, err
	}
	if engine != vanilla.EnginePongo2 {
		registry, err := newRegistry(engine)
		if err != nil {
			return nil, err
		}
		opts = append(opts, orchestrator.WithRegistry(registry))
	}
	if name := a.cfg.Theme.Name; name != "" {
		opts = append(opts, orchestrator.WithTheme(name))
	}
	if preset := a.cfg.Panel.Preset; preset != "" {
		t, err := orchestrator.NewPresetTransformerFromFS(os.DirFS(filepath.Dir(preset)), filepath.Base(preset))
		if err != nil {
			return nil, err
		}
		opts = append(opts, orchestrator.WithTransformer(t))
	}
	return orchestrator.New(opts...), nil
}

// newRegistry holds the built-in renderers with the HTML one on engine.
func newRegistry(engine vanilla.Engine) (*render.Registry, error) {
	html, err := vanilla.New(vanilla.WithEngine(engine))
	if err != nil {
		return nil, err
	}
	registry := render.NewRegistry()
	registry.MustRegister(html)
	registry.MustRegister(jsonview.New())
	return registry, nil
}

// source is the configured catalog document, nil for the built-in catalog.
func (a *app) source() catalog.Source {
	if path := strings.TrimSpace(a.cfg.Catalog.Path); path != "" {
		return catalog.SourceFromFile(path)
	}
	return nil
}

func (a *app) catalog(ctx context.Context) (*units.Catalog, error) {
	return a.orch.Catalog(ctx, a.source())
}

// quantity returns the flag value, falling back to the configured panel
// quantity.
func (a *app) quantity(flag string) string {
	if q := strings.TrimSpace(flag); q != "" {
		return q
	}
	return a.cfg.Panel.Quantity
}

func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
