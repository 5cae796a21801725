package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/tanpawarit/sierra-outfitters-agent/agent/catalog"
	contractx "github.com/tanpawarit/sierra-outfitters-agent/agent/contract"
)

const (
	msgToolFault   = "Sorry, I encountered an issue while processing your request. The trail got a bit rocky there! Can you try again? 🏔️"
	msgUnknownTool = "I don't know how to do that yet. But I'm always learning new trails! 🏔️"
)

var _ contractx.ToolExecutor = (*Executor)(nil)

type Option func(*Executor)

// WithClock overrides the wall clock used for the promotion window.
func WithClock(now func() time.Time) Option {
	return func(e *Executor) {
		if now != nil {
			e.now = now
		}
	}
}

// WithIDSource overrides the random identifier behind discount codes.
func WithIDSource(newID func() string) Option {
	return func(e *Executor) {
		if newID != nil {
			e.newID = newID
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(e *Executor) {
		e.logger = logger
	}
}

// Executor dispatches generator tool calls to the business tools.
type Executor struct {
	store  *catalog.Store
	cfg    Config
	loc    *time.Location
	now    func() time.Time
	newID  func() string
	logger zerolog.Logger
}

func NewExecutor(store *catalog.Store, cfg Config, opts ...Option) (*Executor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	if store == nil {
		store = catalog.New(nil, nil)
	}

	e := &Executor{
		store:  store,
		cfg:    cfg,
		loc:    loc,
		now:    time.Now,
		newID:  uuid.NewString,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e, nil
}

// Execute never returns an error: malformed arguments, unknown tools and
// tool faults all become unsuccessful results.
func (e *Executor) Execute(ctx context.Context, call schema.ToolCall) contractx.ToolResult {
	name := strings.TrimSpace(call.Function.Name)
	logger := e.logger.With().Str("tool", name).Str("call_id", call.ID).Logger()

	args, err := parseArgs(call.Function.Arguments)
	if err != nil {
		logger.Warn().Err(err).Msg("tool call arguments rejected")
		return contractx.Fault(err, msgToolFault)
	}

	result, err := e.run(ctx, name, args)
	if err != nil {
		logger.Error().Err(err).Msg("tool call failed")
		return contractx.Fault(err, msgToolFault)
	}

	base := result.Base()
	logger.Info().Bool("success", base.Success).Msg("tool call executed")
	return result
}

func (e *Executor) run(ctx context.Context, name string, args map[string]any) (result contractx.ToolResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%w: tool=%s panicked: %v", contractx.ErrToolFault, name, r)
		}
	}()

	kind, _ := ParseKind(name)
	switch kind {
	case KindCheckOrderStatus:
		return e.checkOrderStatus(ctx, args)
	case KindGenerateDiscountCode:
		return e.generateDiscountCode(ctx)
	case KindCheckProductAvailability:
		return e.checkProductAvailability(ctx, args)
	default:
		return contractx.Fault(fmt.Errorf("%w: %s", contractx.ErrUnknownTool, name), msgUnknownTool), nil
	}
}

func parseArgs(raw string) (map[string]any, error) {
	args := map[string]any{}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return args, nil
	}
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, fmt.Errorf("%w: %v", contractx.ErrMalformedToolArguments, err)
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}

// stringArg returns "" for an absent key and rejects non-string values.
func stringArg(args map[string]any, key string) (string, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return "", nil
	}
	value, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string", contractx.ErrMalformedToolArguments, key)
	}
	return strings.TrimSpace(value), nil
}
