// Package logger envuelve zerolog con los valores por defecto del servicio.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config opciones del logger.
type Config struct {
	Env   string // development -> consola legible; cualquier otro -> JSON
	Level string // trace, debug, info, warn, error
}

// Logger wrapper sobre zerolog para inyección en el resto del servicio.
type Logger struct {
	z zerolog.Logger
}

// New crea el logger del servicio. En development escribe en consola legible
// con hora corta; en cualquier otro entorno emite JSON por stdout. También
// sustituye el logger global de zerolog para las librerías que loguean por él.
func New(cfg Config) *Logger {
	var w io.Writer = os.Stdout
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	z := zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("servicio", "blossom-stock").
		Logger()
	log.Logger = z

	return &Logger{z: z}
}

// Trace, Debug, Info, Warn, Error, Fatal delegados a zerolog.
func (l *Logger) Trace() *zerolog.Event { return l.z.Trace() }
func (l *Logger) Debug() *zerolog.Event { return l.z.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.z.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.z.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.z.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.z.Fatal() }

// With crea un sublogger con campos fijos.
func (l *Logger) With() zerolog.Context {
	return l.z.With()
}

// Zerolog devuelve el logger interno para APIs que piden el tipo de zerolog.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.z
}
