package site

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds a leveled zerolog logger writing to w (stderr when nil).
// human switches JSON lines for the console writer.
func NewLogger(level string, human bool, w io.Writer) (zerolog.Logger, error) {
	if w == nil {
		w = os.Stderr
	}

	lvl := zerolog.InfoLevel
	if level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(level))
		if err != nil {
			return zerolog.Nop(), err
		}
		lvl = parsed
	}

	out := w
	if human {
		console := zerolog.NewConsoleWriter()
		console.Out = w
		console.TimeFormat = time.RFC3339
		out = console
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}
