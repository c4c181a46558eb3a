package main

import (
	"io"
	"log/slog"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/officegen/internal/generator"
	"github.com/vancomm/officegen/internal/render"
	"github.com/vancomm/officegen/internal/tileset"
	"github.com/vancomm/officegen/internal/wfc"
)

func setupLogging(log *logrus.Logger, verbose bool, logFile string) error {
	level := logrus.InfoLevel
	if verbose {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})

	if logFile == "" {
		return nil
	}
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   logFile,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Level:      level,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		return err
	}
	log.AddHook(hook)
	return nil
}

// bridgeSlog routes the slog loggers of the library packages into log at
// debug level. The returned closer must be called before exit.
func bridgeSlog(log *logrus.Logger) io.Closer {
	w := log.WriterLevel(logrus.DebugLevel)
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && (a.Key == slog.TimeKey || a.Key == slog.LevelKey) {
				return slog.Attr{}
			}
			return a
		},
	}))
	wfc.Log = logger.With("pkg", "wfc")
	generator.Log = logger.With("pkg", "generator")
	render.Log = logger.With("pkg", "render")
	tileset.Log = logger.With("pkg", "tileset")
	return w
}
