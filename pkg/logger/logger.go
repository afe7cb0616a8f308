package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config opciones del logger de la aplicación.
type Config struct {
	// Env controla el formato: "development" escribe consola coloreada,
	// cualquier otro valor escribe JSON una línea por evento.
	Env string
	// Level nivel mínimo a emitir (trace, debug, info, warn, error).
	// Un valor no reconocido cae a info.
	Level string
}

// Logger envuelve zerolog para que las capas de la app reciban un tipo
// propio por inyección en vez del global del paquete.
type Logger struct {
	zl zerolog.Logger
}

// New construye el logger según la configuración y lo instala también
// como logger global de zerolog, para las librerías que loguean por ahí.
func New(cfg Config) *Logger {
	zl := zerolog.New(salida(cfg.Env)).
		Level(nivel(cfg.Level)).
		With().
		Timestamp().
		Logger()
	log.Logger = zl
	return &Logger{zl: zl}
}

func salida(env string) io.Writer {
	if strings.EqualFold(env, "development") {
		return zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
	}
	return os.Stdout
}

func nivel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

func (l *Logger) Trace() *zerolog.Event { return l.zl.Trace() }
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// With abre un sublogger con campos fijos, por ejemplo el nombre del
// componente que lo usa.
func (l *Logger) With() zerolog.Context { return l.zl.With() }
