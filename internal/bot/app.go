// Package bot wires the tarot reading flow onto the Telegram transport:
// commands, callback buttons, question intake and entry delivery.
package bot

import (
	"fmt"
	"net/http"
	"time"

	"github.com/pamnard/TaroBot/core/cmd"
	coreconfig "github.com/pamnard/TaroBot/core/config"
	"github.com/pamnard/TaroBot/core/logger"
	coretelegram "github.com/pamnard/TaroBot/core/telegram"
	"github.com/pamnard/TaroBot/core/telegram/sender"
	"github.com/pamnard/TaroBot/internal/llm"
	"github.com/pamnard/TaroBot/internal/reading"
	"github.com/pamnard/TaroBot/internal/session"
	"github.com/pamnard/TaroBot/internal/tarot"
)

// Config carries the core configuration for the runner.
type Config struct {
	Core *coreconfig.Config
}

func (c *Config) CoreConfig() *coreconfig.Config { return c.Core }

// LoadConfig reads and normalizes configuration from path.
func LoadConfig(path string) (cmd.ConfigCarrier, error) {
	cfg, err := coreconfig.Load(path)
	if err != nil {
		return nil, err
	}
	return &Config{Core: cfg}, nil
}

// App holds the assembled application: session state, reading service and the
// pieces needed to build the Telegram runtime.
type App struct {
	cfg      *coreconfig.Config
	store    *session.MemoryStore
	sessions *session.Sessions
	readings *reading.Service

	dispatcher *sender.Dispatcher
	startedAt  time.Time
}

// Bootstrap initializes logging and builds the application graph.
func Bootstrap(carrier cmd.ConfigCarrier) (cmd.TelegramApp, error) {
	cfg := carrier.CoreConfig()
	if cfg == nil {
		return nil, fmt.Errorf("bot: missing core configuration")
	}
	if err := logger.InitLogger(cfg); err != nil {
		return nil, fmt.Errorf("bot: logger init: %w", err)
	}

	// Fail fast if the embedded catalog is broken; nothing works without it.
	if _, err := tarot.Deck(); err != nil {
		return nil, err
	}

	store := session.NewMemoryStore()
	sessions := session.NewSessions(store, time.Duration(cfg.Session.TTLSeconds)*time.Second)

	completer := llm.NewClient(llm.Options{
		HTTPClient:  &http.Client{Timeout: 90 * time.Second},
		BaseURL:     cfg.LLM.BaseURL,
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		TopP:        cfg.LLM.TopP,
	})

	readings := reading.NewService(reading.Options{
		Sessions:  sessions,
		Completer: completer,
		Log:       logger.LLM,
	})

	return &App{
		cfg:       cfg,
		store:     store,
		sessions:  sessions,
		readings:  readings,
		startedAt: time.Now(),
	}, nil
}

// TelegramRunOptions assembles registry, routes and middlewares for the runtime.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	reg := coretelegram.NewRegistry()
	if err := a.registerHandlers(reg); err != nil {
		return coretelegram.RunOptions{}, err
	}

	routes := a.buildRoutes(reg)
	mws := coretelegram.DefaultMiddlewares(a.cfg, nil)

	opts := coretelegram.RunOptions{
		Config:      a.cfg,
		Registry:    reg,
		Middlewares: mws,
		Routes:      routes,
		OnStart:     a.onStart,
		OnStop:      a.onStop,
	}
	return opts, nil
}
