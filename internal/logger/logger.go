package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	ansiReset  = "\033[0m"
	ansiRed    = "\033[31m"
	ansiYellow = "\033[33m"
	ansiBlue   = "\033[34m"
	ansiGray   = "\033[37m"
	ansiCyan   = "\033[36m"
)

// Init configures the global zerolog logger. format "json" writes one JSON
// object per line (what Lambda and log shippers expect); anything else uses
// a console writer, colored when stdout is a terminal.
func Init(env, format string) {
	InitWithWriter(os.Stdout, env, format)
}

// InitWithWriter is Init with an explicit output.
func InitWithWriter(out io.Writer, env, format string) {
	var w io.Writer = out
	if format != "json" {
		w = consoleWriter(out, !isTerminal(out))
	}

	log.Logger = zerolog.New(w).
		With().
		Timestamp().
		Str("env", env).
		Logger()

	switch env {
	case "development", "local":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func consoleWriter(out io.Writer, noColor bool) zerolog.ConsoleWriter {
	paint := func(color, s string) string {
		if noColor {
			return s
		}
		return color + s + ansiReset
	}

	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: "02.01.2006 15:04:05",
		NoColor:    noColor,
		FormatLevel: func(i interface{}) string {
			level := strings.ToUpper(fmt.Sprintf("%s", i))
			switch level {
			case "DEBUG":
				return paint(ansiGray, "●")
			case "INFO":
				return paint(ansiBlue, "●")
			case "WARN":
				return paint(ansiYellow, "●")
			case "ERROR", "FATAL", "PANIC":
				return paint(ansiRed, "●")
			default:
				return level
			}
		},
		FormatMessage: func(i interface{}) string {
			return fmt.Sprintf("%-35s", i)
		},
		FormatFieldName: func(i interface{}) string {
			return paint(ansiCyan, fmt.Sprintf("%s", i)) + "="
		},
	}
}
