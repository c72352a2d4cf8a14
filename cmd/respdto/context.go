package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ai8future/chassis-go/v5/logz"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"respdto/pkg/codec"
	"respdto/pkg/envelope"
	"respdto/pkg/settings"
)

type commandContext struct {
	configFlag string
	formatFlag string
	indentFlag string
	colorFlag  string

	settings *settings.Settings
	logger   *slog.Logger
}

// load resolves settings (defaults < file < env < flags) and builds the logger.
// An explicit --config must load; the default file falls back to defaults
// with a warning.
func (c *commandContext) load(cmd *cobra.Command) error {
	var (
		s           *settings.Settings
		fallbackErr error
	)
	if c.configFlag != "" {
		var err error
		if s, err = settings.LoadFile(c.configFlag); err != nil {
			return fmt.Errorf("load --config: %w", err)
		}
	} else {
		s, fallbackErr = settings.LoadWithFallback(settings.GetConfigPath())
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		s.Format = c.formatFlag
	}
	if flags.Changed("indent") {
		s.Indent = c.indentFlag
	}
	if flags.Changed("color") {
		s.Color = c.colorFlag
	}
	if err := s.Validate(); err != nil {
		return err
	}

	c.settings = s
	c.logger = logz.New(s.LogLevel)
	if fallbackErr != nil {
		c.logger.Warn("using default settings", "path", settings.GetConfigPath(), "error", fallbackErr)
	}
	return nil
}

// render serializes b and writes it to the command's stdout.
func (c *commandContext) render(cmd *cobra.Command, b *envelope.Builder) error {
	format, err := codec.ParseFormat(c.settings.Format)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	enc := codec.Encoder{
		Format: format,
		Indent: c.settings.Indent,
		Color:  c.colorize(out),
	}

	return envelope.Callback(b, func(obj map[string]any) error {
		if err := enc.Encode(out, obj); err != nil {
			return fmt.Errorf("render %s: %w", format, err)
		}
		c.logger.Debug("rendered response",
			"format", string(format),
			"keys", len(obj),
			"status", obj[envelope.KeyStatus],
			"success", obj[envelope.KeySuccess],
		)
		return nil
	})
}

func (c *commandContext) colorize(w io.Writer) bool {
	switch c.settings.Color {
	case settings.ColorAlways:
		return true
	case settings.ColorNever:
		return false
	}
	return shouldColorize(w)
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
