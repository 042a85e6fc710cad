package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/pmurley/ulb-trade-eval/internal/cache"
	"github.com/pmurley/ulb-trade-eval/internal/config"
	"github.com/pmurley/ulb-trade-eval/internal/discord"
	"github.com/pmurley/ulb-trade-eval/internal/evaluator"
	"github.com/pmurley/ulb-trade-eval/internal/fantrax"
	"github.com/pmurley/ulb-trade-eval/pkg/logger"
)

type Bot struct {
	session   *discordgo.Session
	config    *config.Config
	logger    *logger.Logger
	evaluator *evaluator.Evaluator
	fantrax   *fantrax.Client
	handlers  *discord.HandlerManager
	tracker   *tradeTracker
	stopChan  chan struct{}
}

func New(cfg *config.Config, log *logger.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	// Set intents - we need these for DMs and message content
	session.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent

	source, err := evaluator.NewSource(cfg)
	if err != nil {
		return nil, err
	}

	b := &Bot{
		session:   session,
		config:    cfg,
		logger:    log,
		evaluator: evaluator.New(source, cache.New(cfg.CacheDuration), cfg.LeagueBudget, log),
		tracker:   newTradeTracker(),
		stopChan:  make(chan struct{}),
	}

	var trades discord.TransactionSource
	if cfg.FantraxLeagueID != "" {
		b.fantrax, err = fantrax.NewFantraxClient(cfg.FantraxLeagueID, false)
		if err != nil {
			return nil, fmt.Errorf("failed to create Fantrax client: %w", err)
		}
		trades = b.fantrax
	}

	b.handlers = discord.NewHandlerManager(b.session, cfg, log, b.evaluator, trades)

	return b, nil
}

func (b *Bot) Start() error {
	b.handlers.RegisterHandlers()

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}

	if err := b.evaluator.Reload(); err != nil {
		b.logger.Error("Failed to load initial data:", err)
	}

	if b.fantrax != nil && b.config.TradeWatchInterval > 0 {
		b.startTradeMonitor()
	}

	return nil
}

func (b *Bot) Stop() error {
	close(b.stopChan)
	return b.session.Close()
}
