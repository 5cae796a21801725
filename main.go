package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	orchestratorx "github.com/tanpawarit/sierra-outfitters-agent/agent/agents/orchestrator"
	"github.com/tanpawarit/sierra-outfitters-agent/agent/catalog"
	"github.com/tanpawarit/sierra-outfitters-agent/agent/llm"
	promptx "github.com/tanpawarit/sierra-outfitters-agent/agent/prompt"
	sessionx "github.com/tanpawarit/sierra-outfitters-agent/agent/session"
	statex "github.com/tanpawarit/sierra-outfitters-agent/agent/state"
	toolx "github.com/tanpawarit/sierra-outfitters-agent/agent/tool"
	chatmodelx "github.com/tanpawarit/sierra-outfitters-agent/pkg/chatmodel"
	configx "github.com/tanpawarit/sierra-outfitters-agent/pkg/config"
	logx "github.com/tanpawarit/sierra-outfitters-agent/pkg/logger"
)

type flags struct {
	envFile    string
	orders     string
	products   string
	sessionID  string
	checkModel bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:           "sierra",
		Short:         "Sierra Outfitters customer service assistant",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return finish(cmd.OutOrStdout(), cmd.ErrOrStderr(), run(ctx, f))
		},
	}

	cmd.Flags().StringVar(&f.envFile, "env", "", "path to .env file")
	cmd.Flags().StringVar(&f.orders, "orders", "", "customer orders file (.json or .yaml)")
	cmd.Flags().StringVar(&f.products, "products", "", "product catalog file (.json or .yaml)")
	cmd.Flags().StringVar(&f.sessionID, "session", "cli", "session id for this conversation")
	cmd.Flags().BoolVar(&f.checkModel, "check-model", false, "verify the configured model is reachable before starting")

	return cmd
}

// finish maps the result of run to the exit status. A typed exit has already
// said goodbye; an interrupt gets its own farewell.
func finish(out, errOut io.Writer, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(out, "\nExiting Sierra Agent. Happy trails! 🏔️")
		return nil
	default:
		fmt.Fprintln(errOut, err)
		return err
	}
}

func run(ctx context.Context, f *flags) error {
	configx.SetEnvFile(f.envFile)

	logCfg, err := configx.New[logx.Config]("LOG")
	if err != nil {
		return err
	}
	logger, closer, err := logx.New(*logCfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	llmCfg, err := configx.New[llm.Config]("OPENAI")
	if err != nil {
		return err
	}
	if err := llmCfg.Validate(); err != nil {
		return fmt.Errorf("missing OpenAI API key, please set the OPENAI_API_KEY environment variable: %w", err)
	}

	toolCfg, err := configx.New[toolx.Config]("SIERRA")
	if err != nil {
		return err
	}

	catalogCfg, err := configx.New[catalog.Config]("CATALOG")
	if err != nil {
		return err
	}
	if f.orders != "" {
		catalogCfg.OrdersFile = f.orders
	}
	if f.products != "" {
		catalogCfg.ProductsFile = f.products
	}

	engine, err := buildEngine(ctx, *llmCfg, *toolCfg, *catalogCfg, f.checkModel, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to start agent")
		return err
	}

	driver, err := sessionx.NewDriver(engine, f.sessionID, os.Stdin, os.Stdout, logger)
	if err != nil {
		return err
	}
	return driver.Run(ctx)
}

func buildEngine(
	ctx context.Context,
	llmCfg llm.Config,
	toolCfg toolx.Config,
	catalogCfg catalog.Config,
	checkModel bool,
	logger zerolog.Logger,
) (*orchestratorx.Orchestrator, error) {
	store := catalog.LoadOrEmpty(catalogCfg, logger)

	executor, err := toolx.NewExecutor(store, toolCfg, toolx.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("init tools: %w", err)
	}

	modelCfg := llmCfg.ChatModel()
	if checkModel {
		if err := chatmodelx.Preflight(ctx, modelCfg); err != nil {
			return nil, err
		}
		logger.Info().Str("model", modelCfg.Model).Msg("model preflight ok")
	}

	chatModel, err := modelCfg.New(ctx)
	if err != nil {
		return nil, err
	}

	vars := promptx.Variables{
		PromoWindow:     toolCfg.PromoWindow(),
		DiscountPercent: toolCfg.DiscountPercent,
		TimezoneLabel:   toolCfg.TimezoneLabel,
		SupportEmail:    toolCfg.SupportEmail,
	}
	generator, err := llm.NewGenerator(ctx, chatModel, promptx.LoadPromptSet().System, vars.Map(), toolx.Infos())
	if err != nil {
		return nil, err
	}

	return orchestratorx.New(statex.NewMemoryStore(), generator, executor, orchestratorx.Config{Logger: logger})
}
