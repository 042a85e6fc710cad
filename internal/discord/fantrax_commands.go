package discord

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/pmurley/ulb-trade-eval/internal/fantrax"
	"github.com/pmurley/ulb-trade-eval/internal/models"
	"github.com/pmurley/ulb-trade-eval/internal/trade"
)

const defaultTradeReviewCount = 5

// handleTrades evaluates the most recent completed trades in the Fantrax league
func (hm *HandlerManager) handleTrades(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if hm.trades == nil {
		s.ChannelMessageSend(m.ChannelID, "No Fantrax league is configured (set FANTRAX_LEAGUE_ID)")
		return
	}

	opts, rest, table, err := hm.commandContext(args)
	if err != nil {
		s.ChannelMessageSend(m.ChannelID, err.Error())
		return
	}

	count := defaultTradeReviewCount
	if len(rest) > 0 {
		if count, err = strconv.Atoi(rest[0]); err != nil || count < 1 {
			s.ChannelMessageSend(m.ChannelID, "Usage: `!trades [number of trades]`")
			return
		}
	}

	transactions, err := hm.trades.GetTransactionsFromFantrax()
	if err != nil {
		hm.logger.Error("Failed to fetch Fantrax transactions: ", err)
		s.ChannelMessageSend(m.ChannelID, "Failed to fetch Fantrax transactions: "+err.Error())
		return
	}

	completed := fantrax.GroupTrades(transactions)
	if len(completed) == 0 {
		s.ChannelMessageSend(m.ChannelID, "No completed trades found")
		return
	}
	if len(completed) > count {
		completed = completed[:count]
	}

	var embeds []*discordgo.MessageEmbed
	for _, ct := range completed {
		embeds = append(embeds, buildCompletedTradeEmbed(table, ct, opts))
	}
	sendEmbeds(s, m.ChannelID, embeds)
}

// buildCompletedTradeEmbed evaluates a two-team trade with its first team as the sender
func buildCompletedTradeEmbed(table *models.Table, ct fantrax.CompletedTrade, opts Options) *discordgo.MessageEmbed {
	footer := &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Period %d", ct.Period)}

	if !ct.IsTwoTeam() {
		var lines []string
		for _, team := range ct.Teams {
			var names []string
			for _, tx := range ct.Outgoing[team] {
				names = append(names, tx.PlayerName)
			}
			lines = append(lines, fmt.Sprintf("**%s** traded: %s", team, strings.Join(names, ", ")))
		}
		lines = append(lines, "", fmt.Sprintf("%d-team trades are not evaluated", len(ct.Teams)))
		return &discordgo.MessageEmbed{
			Title:       "Completed Trade",
			Color:       0xffa500,
			Description: strings.Join(lines, "\n"),
			Timestamp:   ct.ProcessedDate.Format(time.RFC3339),
			Footer:      footer,
		}
	}

	sender, partner := ct.Teams[0], ct.Teams[1]
	sendKeys, sendMissing := fantrax.Resolve(table, ct.Outgoing[sender])
	receiveKeys, receiveMissing := fantrax.Resolve(table, ct.Outgoing[partner])

	result := trade.Evaluate(table, sendKeys, receiveKeys, opts.Settings.MultiPlayerDiscount)
	embed := buildTradeEmbed(result, opts)
	embed.Title = fmt.Sprintf("Completed Trade: %s / %s", sender, partner)
	embed.Fields[0].Name = sender + " sends"
	embed.Fields[1].Name = partner + " sends"
	embed.Fields[3].Value = verdictText(result.Verdict(opts.Settings.Margin), sender, partner, opts.Settings.Margin)
	embed.Timestamp = ct.ProcessedDate.Format(time.RFC3339)

	if missing := append(sendMissing, receiveMissing...); len(missing) > 0 {
		footer.Text += " • Not valued: " + strings.Join(missing, ", ")
	}
	if embed.Footer != nil {
		footer.Text += " • " + embed.Footer.Text
	}
	embed.Footer = footer
	return embed
}

// CompletedTradeEmbed evaluates a completed trade under the configured defaults
func (hm *HandlerManager) CompletedTradeEmbed(ct fantrax.CompletedTrade) (*discordgo.MessageEmbed, error) {
	opts := hm.defaultOptions()
	table, err := hm.tables.Table(opts.Params)
	if err != nil {
		return nil, err
	}
	return buildCompletedTradeEmbed(table, ct, opts), nil
}
