package bot

import (
	"fmt"
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	"github.com/winterfair/fairbot/internal/bot/handlers"
	"github.com/winterfair/fairbot/internal/bot/keyboard"
	apperrors "github.com/winterfair/fairbot/internal/errors"
	"github.com/winterfair/fairbot/internal/game/catalog"
	"github.com/winterfair/fairbot/internal/game/engine"
	"github.com/winterfair/fairbot/internal/game/reward"
	"github.com/winterfair/fairbot/internal/idempotency"
	"github.com/winterfair/fairbot/internal/middleware"
	"github.com/winterfair/fairbot/internal/user"
	"github.com/winterfair/fairbot/pkg/config"
)

const (
	CommandStart = "/start"
	CommandMap   = "/map"
	CommandStats = "/stats"
	CommandFacts = "/facts"
)

// Deps bundles everything the bot wires into its router. The engine is
// attached separately because it renders through the bot's own sink.
type Deps struct {
	Users       *user.Service
	Registry    *catalog.Registry
	Rewards     *reward.Dispatcher
	Idempotency idempotency.Manager
	RateLimit   *middleware.RateLimitMiddleware
	ErrHandler  *apperrors.Handler
}

// Bot wraps telebot.Bot with the fair game wiring.
type Bot struct {
	telebot  *telebot.Bot
	log      *slog.Logger
	cfg      config.Config
	router   *Router
	keyboard *keyboard.Builder
	sink     *handlers.TelegramSink
	deps     Deps
}

// New builds a telegram bot instance configured according to the
// application settings. The returned sink must be handed to the engine
// before Start.
func New(cfg config.Config, log *slog.Logger, deps Deps) (*Bot, error) {
	settings := telebot.Settings{
		Token: cfg.Telegram.Token,
		Poller: &telebot.LongPoller{
			Timeout: cfg.Telegram.PollTimeout,
		},
	}

	tb, err := telebot.NewBot(settings)
	if err != nil {
		return nil, fmt.Errorf("initialize telebot: %w", err)
	}

	kb := keyboard.NewBuilder(log)
	router := NewRouter(log)

	b := &Bot{
		telebot:  tb,
		log:      log,
		cfg:      cfg,
		router:   router,
		keyboard: kb,
		sink:     handlers.NewTelegramSink(tb, kb, log),
		deps:     deps,
	}

	b.setupRouter()

	if deps.RateLimit != nil {
		b.telebot.Use(deps.RateLimit.Handle)
	}

	b.telebot.Handle(telebot.OnText, b.router.Route)
	b.telebot.Handle(telebot.OnCallback, b.router.Route)

	return b, nil
}

// Start runs the telegram bot event loop.
func (b *Bot) Start() {
	if b.telebot != nil {
		b.telebot.Start()
	}
}

// Stop gracefully stops the telegram bot.
func (b *Bot) Stop() {
	if b.telebot == nil {
		return
	}

	b.log.Info("stopping telegram bot...")
	b.telebot.Stop()
}

// Telebot exposes the underlying telebot.Bot instance for integrations
// such as health checks.
func (b *Bot) Telebot() *telebot.Bot {
	return b.telebot
}

// Sink exposes the render sink the engine writes through.
func (b *Bot) Sink() *handlers.TelegramSink {
	return b.sink
}

func (b *Bot) setupRouter() {
	b.router.Use(RecoveryMiddleware(b.log, b.deps.ErrHandler))
	b.router.Use(middleware.Idempotency(b.deps.Idempotency, b.log))
	b.router.Use(ErrorHandlingMiddleware(b.deps.ErrHandler))
	b.router.Use(LoggingMiddleware(b.log))
	b.router.Use(AuthMiddleware(b.deps.Users, b.log))
	b.router.Use(middleware.Metrics)

	startHandler := handlers.NewStartHandler(b.deps.Users, b.keyboard, b.log)
	mapHandler := handlers.NewMapHandler(b.deps.Users, b.deps.Registry, b.keyboard, b.log)
	statsHandler := handlers.NewStatsHandler(b.deps.Users, b.deps.Registry, b.keyboard, b.log)
	collectionHandler := handlers.NewCollectionHandler(b.deps.Users, b.deps.Registry, b.keyboard, b.log)

	b.router.RegisterCommand(CommandStart, startHandler)
	b.router.RegisterCommand(CommandMap, handlers.Handler(mapHandler))
	b.router.RegisterCommand(CommandStats, handlers.Handler(statsHandler))
	b.router.RegisterCommand(CommandFacts, handlers.Handler(collectionHandler))
	b.router.SetDefault(startHandler)

	b.router.RegisterCallback(keyboard.CallbackMenu, handlers.NewMenuHandler(b.deps.Users, b.keyboard, b.log))
	b.router.RegisterCallback(keyboard.CallbackMap, mapHandler)
	b.router.RegisterCallback(keyboard.CallbackStats, statsHandler)
	b.router.RegisterCallback(keyboard.CallbackCollection, collectionHandler)
	b.router.RegisterCallback(keyboard.CallbackFactsMenu, collectionHandler)

	b.router.RegisterCallbackPrefix(keyboard.CallbackPavilionView, handlers.NewPavilionViewHandler(b.deps.Users, b.deps.Registry, b.keyboard, b.log))
	b.router.RegisterCallbackPrefix(keyboard.CallbackPavilionBuy, handlers.NewPavilionBuyHandler(b.deps.Users, b.deps.Registry, b.keyboard, b.log))
	b.router.RegisterCallbackPrefix(engine.PrefixPavilionEnter, handlers.NewPavilionEnterHandler(b.deps.Users, b.deps.Registry, b.keyboard, b.log))
	b.router.RegisterCallbackPrefix(keyboard.CallbackFactsPavilion, handlers.NewFactsPavilionHandler(b.deps.Users, b.deps.Registry, b.keyboard, b.log))
	b.router.RegisterCallbackPrefix(engine.PrefixFact, handlers.NewFactHandler(b.deps.Rewards, b.deps.Registry, b.keyboard, b.log))

}

// AttachEngine registers the task event routes once the engine exists.
// The engine is built after the bot because it renders through Sink.
func (b *Bot) AttachEngine(eng *engine.Engine) {
	taskHandler := handlers.NewTaskEventHandler(eng, b.sink, b.log)
	b.router.RegisterCallbackPrefix(engine.PrefixStart, taskHandler)
	b.router.RegisterCallbackPrefix(engine.PrefixHit, taskHandler)
	b.router.RegisterCallbackPrefix(engine.PrefixWait, taskHandler)
	b.router.RegisterCallbackPrefix(engine.PrefixChoice, taskHandler)
	b.router.RegisterCallbackPrefix(engine.PrefixSequence, taskHandler)
	b.router.RegisterCallbackPrefix(engine.PrefixCancel, taskHandler)
}
