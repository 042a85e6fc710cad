package discord

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/pmurley/ulb-trade-eval/internal/models"
	"github.com/pmurley/ulb-trade-eval/internal/recommend"
	"github.com/pmurley/ulb-trade-eval/internal/trade"
)

// handleRecs ranks 1-for-1 counter-offers for the players the caller would send
func (hm *HandlerManager) handleRecs(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	opts, rest, table, err := hm.commandContext(args)
	if err != nil {
		s.ChannelMessageSend(m.ChannelID, err.Error())
		return
	}
	if len(rest) == 0 {
		s.ChannelMessageSend(m.ChannelID, "Usage: `!recs <players you send> [--team=<team>] [--pos=SS,OF] [--rank=true] [--limit=10]`")
		return
	}

	sendKeys, problems := table.Players.Resolve(models.ParsePlayerRefs(strings.Join(rest, " ")))
	if len(problems) > 0 {
		s.ChannelMessageSend(m.ChannelID, buildResolveProblemsMessage(problems, nil))
		return
	}
	if len(sendKeys) == 0 {
		s.ChannelMessageSend(m.ChannelID, "Please name at least one player to send.")
		return
	}

	outgoing := trade.Evaluate(table, sendKeys, nil, opts.Settings.MultiPlayerDiscount)
	req := recommend.Request{
		ExcludeStatus: sendKeys[0].Status,
		TeamFilter:    opts.Team,
		Positions:     opts.Positions,
		Metric:        opts.Metric,
		TargetValue:   recommend.TargetFor(outgoing, opts.Metric),
		Limit:         opts.Limit,
	}

	recs, err := recommend.RankCounterOffers(table, req)
	if errors.Is(err, recommend.ErrInvalidLimit) {
		s.ChannelMessageSend(m.ChannelID, "Limit must be a positive integer")
		return
	}
	if err != nil {
		s.ChannelMessageSend(m.ChannelID, "Failed to rank counter-offers: "+err.Error())
		return
	}
	if len(recs) == 0 {
		s.ChannelMessageSend(m.ChannelID, "No candidates match those filters")
		return
	}

	embeds := []*discordgo.MessageEmbed{buildRecsEmbed(outgoing.Send, req, recs)}

	// Show the evaluation of the closest match
	_, send, receive := recs[0].AsTrade(sendKeys)
	suggested := trade.Evaluate(table, send, receive, opts.Settings.MultiPlayerDiscount)
	embeds = append(embeds, buildTradeEmbed(suggested, opts))

	sendEmbeds(s, m.ChannelID, embeds)
}

func buildRecsEmbed(outgoing trade.SideTotals, req recommend.Request, recs []recommend.Recommendation) *discordgo.MessageEmbed {
	var names []string
	for _, p := range outgoing.Players {
		names = append(names, p.Player)
	}

	var lines []string
	for i, r := range recs {
		p := r.Player
		lines = append(lines, fmt.Sprintf("%d. **%s** (%s, %s) %s | diff %s",
			i+1, p.Player, p.Position, statusLabel(p.Status), formatValue(r.MetricValue), formatSignedValue(r.Difference)))
	}

	target := fmt.Sprintf("%s %s", req.Metric, formatValue(req.TargetValue))
	if outgoing.Discounted {
		target += " after package discount"
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Counter-offers for " + strings.Join(names, ", "),
		Color:       0x3498db,
		Description: strings.Join(lines, "\n"),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Target", Value: target, Inline: true},
			{Name: "Excluding", Value: statusLabel(req.ExcludeStatus), Inline: true},
		},
	}
	if filters := describeRecFilters(req); filters != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: filters}
	}
	return embed
}

func describeRecFilters(req recommend.Request) string {
	var parts []string
	if req.TeamFilter != "" {
		parts = append(parts, "Team: "+req.TeamFilter)
	}
	if len(req.Positions) > 0 {
		parts = append(parts, "Position: "+strings.Join(req.Positions, ","))
	}
	return strings.Join(parts, " | ")
}
