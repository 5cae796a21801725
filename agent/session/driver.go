package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

const (
	Banner     = "🏔️ Sierra Outfitters Assistant\nType 'exit' to end the conversation"
	Greeting   = "🏔️ Welcome to Sierra Outfitters! How can I help you today? Onward into the unknown!"
	Goodbye    = "Goodbye! Have a safe and adventurous journey! 🏔️"
	TrailFault = "I'm sorry, something went wrong on our hiking trail. Please try again! 🏔️"

	exitCommand = "exit"
	speaker     = "Sierra: "
	prompt      = "You: "
)

// Engine is the conversation engine a Driver talks to.
type Engine interface {
	StartSession(ctx context.Context, sessionID string, greeting string) error
	HandleMessage(ctx context.Context, sessionID string, text string) (string, error)
	EndSession(ctx context.Context, sessionID string) error
}

// Driver runs one line-based session: one utterance per input line, one reply
// per utterance.
type Driver struct {
	engine    Engine
	sessionID string
	in        io.Reader
	out       io.Writer
	logger    zerolog.Logger
}

func NewDriver(engine Engine, sessionID string, in io.Reader, out io.Writer, logger zerolog.Logger) (*Driver, error) {
	if engine == nil {
		return nil, errors.New("engine is required")
	}
	if strings.TrimSpace(sessionID) == "" {
		return nil, errors.New("session id is required")
	}
	return &Driver{
		engine:    engine,
		sessionID: strings.TrimSpace(sessionID),
		in:        in,
		out:       out,
		logger:    logger,
	}, nil
}

// Run blocks until the user types exit, input ends, or ctx is cancelled.
// The session is destroyed on return.
func (d *Driver) Run(ctx context.Context) error {
	if err := d.engine.StartSession(ctx, d.sessionID, Greeting); err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer func() {
		if err := d.engine.EndSession(context.WithoutCancel(ctx), d.sessionID); err != nil {
			d.logger.Warn().Err(err).Str("session_id", d.sessionID).Msg("end session")
		}
	}()

	fmt.Fprintln(d.out, Banner)
	d.say(Greeting)

	readCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines, readErr := readLines(readCtx, d.in)
	for {
		fmt.Fprint(d.out, prompt)

		var (
			raw string
			ok  bool
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case raw, ok = <-lines:
		}
		if !ok {
			return <-readErr
		}

		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if strings.EqualFold(line, exitCommand) {
			d.logger.Info().Str("session_id", d.sessionID).Msg("user requested exit")
			d.say(Goodbye)
			return nil
		}

		reply, err := d.engine.HandleMessage(ctx, d.sessionID, line)
		if err != nil {
			d.logger.Error().Err(err).Str("session_id", d.sessionID).Msg("handle message")
			d.say(TrailFault)
			continue
		}
		d.say(reply)
	}
}

// readLines feeds input lines until EOF, a read error, or cancellation.
// The error channel receives exactly one value after lines is closed.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
		if err := scanner.Err(); err != nil {
			errc <- fmt.Errorf("read input: %w", err)
			return
		}
		errc <- nil
	}()
	return lines, errc
}

func (d *Driver) say(text string) {
	fmt.Fprintf(d.out, "\n%s%s\n\n", speaker, text)
}
