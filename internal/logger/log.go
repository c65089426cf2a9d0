// bt - Build and packaging tool for the Kegsmith desktop application
// Copyright (C) 2025 The Kegsmith Authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Logger is a slog.Handler that sends info and below to stdout and
// warnings and errors to stderr, so packaging output redirected to a
// file does not swallow diagnostics.
type Logger struct {
	out *log.Logger
	err *log.Logger
}

func setupOutLogger() *log.Logger {
	styles := log.DefaultStyles()
	logger := log.New(os.Stdout)
	logger.SetStyles(styles)
	return logger
}

func setupErrorLogger() *log.Logger {
	styles := log.DefaultStyles()
	styles.Levels[log.ErrorLevel] = lipgloss.NewStyle().
		SetString("ERROR").
		Padding(0, 1, 0, 1).
		Background(lipgloss.Color("204")).
		Foreground(lipgloss.Color("0"))
	logger := log.New(os.Stderr)
	logger.SetStyles(styles)
	return logger
}

func New() *Logger {
	return &Logger{
		out: setupOutLogger(),
		err: setupErrorLogger(),
	}
}

// SetLevel adjusts both underlying loggers. Driven by the -v and -q
// flags and the BT_LOG_LEVEL environment variable.
func (l *Logger) SetLevel(level slog.Level) {
	l.out.SetLevel(log.Level(level))
	l.err.SetLevel(log.Level(level))
}

func (l *Logger) Enabled(ctx context.Context, level slog.Level) bool {
	if level <= slog.LevelInfo {
		return l.out.Enabled(ctx, level)
	}
	return l.err.Enabled(ctx, level)
}

func (l *Logger) Handle(ctx context.Context, rec slog.Record) error {
	if rec.Level <= slog.LevelInfo {
		return l.out.Handle(ctx, rec)
	}
	return l.err.Handle(ctx, rec)
}

func (l *Logger) WithAttrs(attrs []slog.Attr) slog.Handler {
	sl := *l
	sl.out = l.out.With(attrsToArgs(attrs)...)
	sl.err = l.err.With(attrsToArgs(attrs)...)
	return &sl
}

func (l *Logger) WithGroup(name string) slog.Handler {
	sl := *l
	sl.out = l.out.WithPrefix(name)
	sl.err = l.err.WithPrefix(name)
	return &sl
}

func attrsToArgs(attrs []slog.Attr) []any {
	args := make([]any, 0, len(attrs)*2)
	for _, a := range attrs {
		args = append(args, a.Key, a.Value)
	}
	return args
}

func SetupDefault() {
	slog.SetDefault(slog.New(New()))
}

// SetLevel changes the level of the default handler, assuming it was
// installed by SetupDefault.
func SetLevel(level slog.Level) {
	if l, ok := slog.Default().Handler().(*Logger); ok {
		l.SetLevel(level)
	}
}
