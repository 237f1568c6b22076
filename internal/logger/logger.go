package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configura el logger de la aplicación
type Options struct {
	Level      string
	Format     string // "json" o "text"; vacío elige según Production
	Production bool
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// New crea el logger. Si File no está vacío también escribe a un archivo rotado.
func New(opts Options) *logrus.Logger {
	log := logrus.New()

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	format := opts.Format
	if format == "" {
		format = "text"
		if opts.Production {
			format = "json"
		}
	}
	if format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	var out io.Writer = os.Stdout
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			log.WithError(err).Warn("could not create log directory, logging to stdout only")
		} else {
			out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
				Filename:   opts.File,
				MaxSize:    opts.MaxSizeMB,
				MaxBackups: opts.MaxBackups,
				MaxAge:     opts.MaxAgeDays,
				Compress:   true,
			})
		}
	}
	log.SetOutput(out)

	return log
}

// Component retorna una entrada con el campo component
func Component(log logrus.FieldLogger, name string) *logrus.Entry {
	return log.WithField("component", name)
}

// Discard retorna un logger que no escribe nada, para tests
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
