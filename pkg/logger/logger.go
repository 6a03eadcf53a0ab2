// Package logger configura el logger estructurado (zerolog) de la aplicación.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config opciones del logger.
type Config struct {
	Service string // nombre del servicio, se estampa en cada línea
	Env     string // development -> consola legible; cualquier otro -> JSON
	Level   string // trace, debug, info, warn, error; inválido cae en info
}

// New construye el logger del proceso y lo instala como logger global de
// zerolog para las librerías que usen log.Logger.
func New(cfg Config) zerolog.Logger {
	var w io.Writer = os.Stdout
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	zl := zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("service", cfg.Service).
		Logger()

	log.Logger = zl
	return zl
}
