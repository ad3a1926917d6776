package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fwojciec/emoscope"
	"github.com/fwojciec/emoscope/config"
	"github.com/fwojciec/emoscope/gemini"
	emogin "github.com/fwojciec/emoscope/gin"
	"github.com/fwojciec/emoscope/huggingface"
	emolipgloss "github.com/fwojciec/emoscope/lipgloss"
	"github.com/fwojciec/emoscope/llm"
	"github.com/fwojciec/emoscope/otel"
	emozap "github.com/fwojciec/emoscope/zap"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// App holds the wiring shared by all commands.
type App struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Loader replaces the configured backend when set.
	Loader emoscope.Loader

	flags globalFlags

	Config    *config.Config
	Logger    *zap.Logger
	Telemetry *otel.Telemetry
	Provider  *emoscope.Provider
	Analyzer  *emoscope.Analyzer
	Health    emogin.HealthChecker
	Theme     emoscope.Theme
}

type globalFlags struct {
	configPath string
	backend    string
	model      string
	baseURL    string
	apiKey     string
	timeout    string
	logLevel   string
	logFormat  string
	theme      string
	retry      bool
}

func (a *App) registerFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&a.flags.configPath, "config", "", "config file (default: ./emoscope.yaml or ~/.config/emoscope/config.yaml)")
	pf.StringVar(&a.flags.backend, "backend", "", "classifier backend: "+strings.Join(config.Backends, ", "))
	pf.StringVar(&a.flags.model, "model", "", "model identifier (default depends on backend)")
	pf.StringVar(&a.flags.baseURL, "base-url", "", "override backend API base URL")
	pf.StringVar(&a.flags.apiKey, "api-key", "", "override backend API key")
	pf.StringVar(&a.flags.timeout, "timeout", "", `per-call classification timeout, e.g. "30s" ("off" disables)`)
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&a.flags.logFormat, "log-format", "", "log format: console or json")
	pf.StringVar(&a.flags.theme, "theme", "", "theme: "+strings.Join(emolipgloss.ThemeNames(), ", "))
	pf.BoolVar(&a.flags.retry, "retry", false, "retry a failed classification once")
}

// setup loads configuration and builds the provider. Flags override the
// config file and environment.
func (a *App) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.flags.configPath)
	if err != nil {
		return err
	}

	fl := cmd.Flags()
	overrides := []struct {
		name string
		dst  *string
		val  string
	}{
		{"backend", &cfg.Backend, a.flags.backend},
		{"model", &cfg.Model, a.flags.model},
		{"base-url", &cfg.BaseURL, a.flags.baseURL},
		{"timeout", &cfg.Timeout, a.flags.timeout},
		{"log-level", &cfg.Log.Level, a.flags.logLevel},
		{"log-format", &cfg.Log.Format, a.flags.logFormat},
		{"theme", &cfg.Theme, a.flags.theme},
	}
	for _, o := range overrides {
		if fl.Changed(o.name) {
			*o.dst = o.val
		}
	}
	if fl.Changed("api-key") {
		cfg.SetAPIKey(a.flags.apiKey)
	}
	if fl.Changed("retry") {
		cfg.Retry = a.flags.retry
	}
	if err := cfg.Reparse(); err != nil {
		return err
	}
	a.Config = cfg
	a.Logger = emozap.NewLogger(a.Stderr, cfg.Log.Level, cfg.Log.Format)

	theme, ok := emolipgloss.ThemeByName(cfg.Theme)
	if !ok {
		a.Logger.Warn("unknown theme, using default", zap.String("theme", cfg.Theme))
	}
	a.Theme = theme

	tel, err := otel.Init(cmd.Context(), otel.Config{Endpoint: cfg.OTELEndpoint, Headers: cfg.OTELHeaders})
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	a.Telemetry = tel

	loader := a.Loader
	if loader == nil {
		loader, a.Health, err = buildLoader(cfg)
		if err != nil {
			return err
		}
	}
	loader = otel.NewLoader(loader, tel.Tracer, tel.Metrics)

	a.Provider = emoscope.NewProvider(loader,
		emoscope.WithLogger(a.Logger),
		emoscope.WithLoadTimeout(cfg.LoadTimeoutDuration),
	)
	a.Analyzer = &emoscope.Analyzer{
		Provider: a.Provider,
		Timeout:  cfg.TimeoutDuration,
		Retry:    cfg.Retry,
	}
	a.Logger.Debug("configured",
		zap.String("backend", cfg.Backend),
		zap.String("model", a.Provider.Model()),
		zap.String("config_file", cfg.ConfigFile),
	)
	return nil
}

func (a *App) teardown() {
	if a.Telemetry != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		a.Telemetry.Shutdown(ctx)
	}
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
}

// buildLoader returns the loader for the configured backend, plus a health
// probe when the backend offers one.
func buildLoader(cfg *config.Config) (emoscope.Loader, emogin.HealthChecker, error) {
	switch cfg.Backend {
	case config.BackendHuggingFace:
		client := huggingface.NewClient(cfg.BaseURL, cfg.APIKey, 0)
		loader := huggingface.NewLoader(client, cfg.Model,
			huggingface.WithMaxBatchSize(cfg.MaxBatchSize),
			huggingface.WithConcurrency(cfg.Concurrency),
		)
		return loader, client, nil
	case config.BackendGemini:
		loader := gemini.NewLoader(cfg.APIKey, cfg.Model).WithBaseURL(cfg.BaseURL)
		return loader, nil, nil
	case config.BackendOpenAI:
		return llm.NewOpenAILoader(llmConfig(cfg)), nil, nil
	case config.BackendAnthropic:
		return llm.NewAnthropicLoader(llmConfig(cfg)), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

func llmConfig(cfg *config.Config) llm.Config {
	return llm.Config{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
	}
}

// newlineFolder turns line breaks inside a single text into spaces.
var newlineFolder = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// analyzeTexts analyzes each text as one line. Embedded line breaks become
// spaces so that every text yields at most one record. Other whitespace is
// left to the reducer, which only trims the ends.
func (a *App) analyzeTexts(ctx context.Context, texts []string) ([]emoscope.ResultRecord, error) {
	lines := make([]string, len(texts))
	for i, t := range texts {
		lines[i] = newlineFolder.Replace(t)
	}
	return a.Analyzer.Analyze(ctx, strings.Join(lines, "\n"))
}

// analyzeSource analyzes the texts a MessageSource produces.
func (a *App) analyzeSource(ctx context.Context, src emoscope.MessageSource) ([]emoscope.ResultRecord, error) {
	texts, err := src.Messages(ctx)
	if err != nil {
		return nil, err
	}
	return a.analyzeTexts(ctx, texts)
}

// readStdin returns all of stdin, or ErrNoInput when stdin is a terminal.
func (a *App) readStdin() (string, error) {
	if f, ok := a.Stdin.(*os.File); ok {
		stat, err := f.Stat()
		if err != nil {
			return "", fmt.Errorf("error checking stdin: %w", err)
		}
		if (stat.Mode() & os.ModeCharDevice) != 0 {
			return "", emoscope.ErrNoInput
		}
	}
	if a.Stdin == nil {
		return "", emoscope.ErrNoInput
	}
	data, err := io.ReadAll(a.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}
