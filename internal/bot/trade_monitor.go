package bot

import (
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/pmurley/ulb-trade-eval/internal/fantrax"
)

// tradeTracker remembers which trade groups have been seen since startup
type tradeTracker struct {
	seen        map[string]bool
	initialized bool
}

func newTradeTracker() *tradeTracker {
	return &tradeTracker{seen: make(map[string]bool)}
}

// newTrades returns the trades not seen before. The first call only records history.
func (t *tradeTracker) newTrades(trades []fantrax.CompletedTrade) []fantrax.CompletedTrade {
	var fresh []fantrax.CompletedTrade
	for _, ct := range trades {
		if t.seen[ct.GroupID] {
			continue
		}
		t.seen[ct.GroupID] = true
		if t.initialized {
			fresh = append(fresh, ct)
		}
	}
	t.initialized = true
	return fresh
}

// startTradeMonitor starts the background completed trade watcher
func (b *Bot) startTradeMonitor() {
	go b.tradeMonitorLoop()
}

func (b *Bot) tradeMonitorLoop() {
	b.logger.Info("Starting trade monitor")

	// Initial check on startup seeds the tracker
	b.checkNewTrades()

	ticker := time.NewTicker(b.config.TradeWatchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			b.checkNewTrades()
		case <-b.stopChan:
			b.logger.Info("Stopping trade monitor")
			return
		}
	}
}

// checkNewTrades fetches transactions from Fantrax and posts an evaluation of each new trade
func (b *Bot) checkNewTrades() {
	transactions, err := b.fantrax.GetTransactionsFromFantrax()
	if err != nil {
		b.logger.Error("Failed to fetch transactions from Fantrax:", err)
		return
	}

	fresh := b.tracker.newTrades(fantrax.GroupTrades(transactions))
	if len(fresh) == 0 {
		return
	}

	channelID := b.findChannelByName(b.config.TradeChannelName)
	if channelID == "" {
		b.logger.Error("Could not find channel:", b.config.TradeChannelName)
		return
	}

	for _, ct := range fresh {
		embed, err := b.handlers.CompletedTradeEmbed(ct)
		if err != nil {
			b.logger.Error("Failed to evaluate trade ", ct.GroupID, ": ", err)
			continue
		}
		if _, err := b.session.ChannelMessageSendEmbed(channelID, embed); err != nil {
			b.logger.Error("Failed to send trade message to Discord:", err)
		}
	}
	b.logger.Info("Posted ", len(fresh), " new trades")
}

// findChannelByName finds a channel ID by name
func (b *Bot) findChannelByName(channelName string) string {
	for _, guild := range b.session.State.Guilds {
		channels, err := b.session.GuildChannels(guild.ID)
		if err != nil {
			continue
		}

		for _, channel := range channels {
			if channel.Name == channelName && channel.Type == discordgo.ChannelTypeGuildText {
				return channel.ID
			}
		}
	}
	return ""
}
