package logx

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

type Config struct {
	Debug        bool   `split_words:"true" default:"false"`
	PrettyFormat bool   `split_words:"true" default:"false"`
	File         string `split_words:"true" default:"sierra-outfitters-agent.log"`
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New builds a logger appending to File. An explicitly empty File logs to
// stderr instead. The returned closer releases the log file.
func New(cfg Config) (zerolog.Logger, io.Closer, error) {
	var (
		out    io.Writer = os.Stderr
		closer io.Closer = nopCloser{}
	)

	if path := strings.TrimSpace(cfg.File); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("open log file %s: %w", path, err)
		}
		out, closer = f, f
	}

	return build(cfg, out), closer, nil
}

func build(cfg Config, out io.Writer) zerolog.Logger {
	if cfg.PrettyFormat {
		out = zerolog.ConsoleWriter{Out: out, NoColor: out != os.Stderr}
	}

	level := zerolog.InfoLevel
	if cfg.Debug {
		level = zerolog.DebugLevel
	}

	return zerolog.New(out).Level(level).With().Timestamp().Caller().Logger()
}
