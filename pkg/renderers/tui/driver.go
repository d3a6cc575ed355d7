package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// InputConfig configures the value prompt.
type InputConfig struct {
	Message   string
	Default   string
	Help      string
	Validator func(string) error
}

// ConfirmConfig configures the "convert another value" prompt.
type ConfirmConfig struct {
	Message string
	Default bool
	Help    string
}

// SelectConfig configures the quantity, unit and side pickers.
// Descriptions, when set, are shown next to the option with the same index.
type SelectConfig struct {
	Message      string
	Options      []string
	Descriptions []string
	DefaultIndex int
	Help         string
	PageSize     int
}

// PromptDriver abstracts the terminal so sessions can be scripted in tests.
type PromptDriver interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error)
	Select(ctx context.Context, cfg SelectConfig) (int, error)
	Info(ctx context.Context, msg string) error
}

// SurveyOption configures the survey driver.
type SurveyOption func(*surveyDriver)

// WithStdio prompts on the given terminal files instead of the process
// stdin, stdout and stderr.
func WithStdio(in terminal.FileReader, out terminal.FileWriter, errOut io.Writer) SurveyOption {
	return func(d *surveyDriver) {
		d.ask = append(d.ask, survey.WithStdio(in, out, errOut))
	}
}

// WithIcons changes the prompt markers, for example to match a theme.
func WithIcons(fn func(*survey.IconSet)) SurveyOption {
	return func(d *surveyDriver) {
		if fn != nil {
			d.ask = append(d.ask, survey.WithIcons(fn))
		}
	}
}

type surveyDriver struct {
	out io.Writer
	ask []survey.AskOpt
}

// NewSurveyDriver returns the survey backed driver. Summary lines go to out,
// or stdout when out is nil.
func NewSurveyDriver(out io.Writer, opts ...SurveyOption) PromptDriver {
	if out == nil {
		out = os.Stdout
	}
	d := &surveyDriver{out: out}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

func (d *surveyDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	var out string
	prompt := &survey.Input{
		Message: cfg.Message,
		Help:    cfg.Help,
		Default: cfg.Default,
	}
	var opts []survey.AskOpt
	if cfg.Validator != nil {
		validate := cfg.Validator
		opts = append(opts, survey.WithValidator(func(ans interface{}) error {
			text, _ := ans.(string)
			return validate(text)
		}))
	}
	if err := d.askOne(ctx, prompt, &out, opts...); err != nil {
		return "", err
	}
	return out, nil
}

func (d *surveyDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	var out bool
	prompt := &survey.Confirm{
		Message: cfg.Message,
		Help:    cfg.Help,
		Default: cfg.Default,
	}
	if err := d.askOne(ctx, prompt, &out); err != nil {
		return false, err
	}
	return out, nil
}

// Select returns the index of the chosen option. Survey answers with the
// option text, so options are expected to be unique.
func (d *surveyDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	if len(cfg.Options) == 0 {
		return -1, ErrNoOptions
	}
	prompt := &survey.Select{
		Message:  cfg.Message,
		Options:  cfg.Options,
		Help:     cfg.Help,
		PageSize: cfg.PageSize,
	}
	if cfg.DefaultIndex >= 0 && cfg.DefaultIndex < len(cfg.Options) {
		prompt.Default = cfg.Options[cfg.DefaultIndex]
	}
	if descriptions := cfg.Descriptions; len(descriptions) > 0 {
		prompt.Description = func(_ string, index int) string {
			if index < len(descriptions) {
				return descriptions[index]
			}
			return ""
		}
	}

	var index int
	if err := d.askOne(ctx, prompt, &index); err != nil {
		return -1, err
	}
	return index, nil
}

func (d *surveyDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}

func (d *surveyDriver) askOne(ctx context.Context, prompt survey.Prompt, response any, opts ...survey.AskOpt) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	opts = append(append([]survey.AskOpt(nil), d.ask...), opts...)
	if err := survey.AskOne(prompt, response, opts...); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return ErrAborted
		}
		return fmt.Errorf("tui: prompt %q: %w", promptMessage(prompt), err)
	}
	return ctx.Err()
}

func promptMessage(p survey.Prompt) string {
	switch prompt := p.(type) {
	case *survey.Input:
		return prompt.Message
	case *survey.Confirm:
		return prompt.Message
	case *survey.Select:
		return prompt.Message
	default:
		return ""
	}
}
