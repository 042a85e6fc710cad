package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/pmurley/ulb-trade-eval/internal/models"
	"github.com/pmurley/ulb-trade-eval/internal/trade"
)

// handleTrade evaluates a trade between two teams
func (hm *HandlerManager) handleTrade(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	opts, rest, table, err := hm.commandContext(args)
	if err != nil {
		s.ChannelMessageSend(m.ChannelID, err.Error())
		return
	}
	if len(rest) == 0 {
		helpMsg := "Usage: `!trade <players you send> for <players you receive>`\n" +
			"Example: `!trade Alpha, Bravo for Delta`\n" +
			"Qualify a shared name with the team: `!trade Alpha (Sharks) for Delta`\n" +
			"Add `-v` or `--verbose` for the full player breakdown"
		s.ChannelMessageSend(m.ChannelID, helpMsg)
		return
	}

	sendPart, receivePart, err := splitTrade(strings.Join(rest, " "))
	if err != nil {
		s.ChannelMessageSend(m.ChannelID, err.Error())
		return
	}

	sendKeys, sendProblems := table.Players.Resolve(models.ParsePlayerRefs(sendPart))
	receiveKeys, receiveProblems := table.Players.Resolve(models.ParsePlayerRefs(receivePart))
	if len(sendProblems) > 0 || len(receiveProblems) > 0 {
		s.ChannelMessageSend(m.ChannelID, buildResolveProblemsMessage(sendProblems, receiveProblems))
		return
	}
	if len(sendKeys) == 0 && len(receiveKeys) == 0 {
		s.ChannelMessageSend(m.ChannelID, "Please specify at least one player in the trade.")
		return
	}

	result := trade.Evaluate(table, sendKeys, receiveKeys, opts.Settings.MultiPlayerDiscount)
	s.ChannelMessageSendEmbed(m.ChannelID, buildTradeEmbed(result, opts))
}

// splitTrade splits "<send> for <receive>" on a case-insensitive "for"
func splitTrade(input string) (string, string, error) {
	padded := " " + input + " "
	lower := strings.ToLower(padded)
	idx := strings.Index(lower, " for ")
	if idx == -1 || strings.Count(lower, " for ") != 1 {
		return "", "", fmt.Errorf("invalid format. Use: `!trade <players> for <players>`")
	}
	return strings.TrimSpace(padded[:idx]), strings.TrimSpace(padded[idx+len(" for "):]), nil
}

func buildResolveProblemsMessage(sendProblems, receiveProblems []string) string {
	msg := "**Could not identify every player:**\n"
	for _, p := range sendProblems {
		msg += "Send: " + p + "\n"
	}
	for _, p := range receiveProblems {
		msg += "Receive: " + p + "\n"
	}
	msg += "\nAdd the team in parentheses to pick one, e.g. `Alpha (Sharks)`."
	return msg
}

// sideTeam names the team(s) that own a side's players
func sideTeam(side trade.SideTotals, fallback string) string {
	var teams []string
	seen := make(map[string]bool)
	for _, p := range side.Players {
		label := statusLabel(p.Status)
		if !seen[label] {
			seen[label] = true
			teams = append(teams, label)
		}
	}
	if len(teams) == 0 {
		return fallback
	}
	return strings.Join(teams, "/")
}

func verdictColor(v trade.Verdict) int {
	switch v {
	case trade.FavorsSender:
		return 0x2ecc71
	case trade.FavorsPartner:
		return 0xe74c3c
	}
	return 0x3498db
}

func verdictText(v trade.Verdict, sender, partner string, margin float64) string {
	switch v {
	case trade.FavorsSender:
		return fmt.Sprintf("Favors **%s**", sender)
	case trade.FavorsPartner:
		return fmt.Sprintf("Favors **%s**", partner)
	}
	lower, upper := trade.FairBounds(margin)
	return fmt.Sprintf("**Fair trade** (position within %s-%s)", formatPercent(lower), formatPercent(upper))
}

func describeSide(side trade.SideTotals) string {
	if len(side.Players) == 0 {
		return "Nothing"
	}
	var lines []string
	for _, p := range side.Players {
		lines = append(lines, fmt.Sprintf("• **%s** (%s, %s %s)\n  NTV %s",
			p.Player, p.Position, p.Contract, formatSalary(p.Salary), formatValue(p.NetTrueValue)))
	}
	total := fmt.Sprintf("**Total NTV:** %s", formatValue(side.NetTrueValue))
	if side.Discounted {
		total += fmt.Sprintf(" (raw %s)", formatValue(side.RawNetTrueValue))
	}
	lines = append(lines, total)
	return strings.Join(lines, "\n")
}

// buildTradeEmbed renders the evaluation from the sending team's point of view
func buildTradeEmbed(result trade.Result, opts Options) *discordgo.MessageEmbed {
	sender := sideTeam(result.Send, "Side 1")
	partner := sideTeam(result.Receive, "Side 2")
	verdict := result.Verdict(opts.Settings.Margin)

	embed := &discordgo.MessageEmbed{
		Title: "Trade Analysis",
		Color: verdictColor(verdict),
		Fields: []*discordgo.MessageEmbedField{
			{Name: sender + " sends", Value: describeSide(result.Send), Inline: true},
			{Name: partner + " sends", Value: describeSide(result.Receive), Inline: true},
			{Name: "Summary", Value: strings.Join([]string{
				fmt.Sprintf("**Net Value (Old):** %s", formatSignedValue(result.NetValueOld)),
				fmt.Sprintf("**Net Salary:** %s", formatSignedValue(result.NetSalary)),
				fmt.Sprintf("**Net True Value:** %s", formatSignedValue(result.NetValueTrue)),
				fmt.Sprintf("**Position:** %s", formatPercent(result.Position)),
			}, "\n")},
			{Name: "Verdict", Value: verdictText(verdict, sender, partner, opts.Settings.Margin)},
		},
	}

	var notes []string
	if result.Send.Discounted {
		notes = append(notes, fmt.Sprintf("Package discount applied to %s side (%s)", sender, formatPercent(opts.Settings.MultiPlayerDiscount)))
	}
	if result.Receive.Discounted {
		notes = append(notes, fmt.Sprintf("Package discount applied to %s side (%s)", partner, formatPercent(opts.Settings.MultiPlayerDiscount)))
	}
	if len(notes) > 0 {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: strings.Join(notes, " • ")}
	}

	if opts.Verbose {
		embed.Description = buildBreakdown(result.Breakdown())
	}
	return embed
}

// truncateName cuts name to at most n characters
func truncateName(name string, n int) string {
	if r := []rune(name); len(r) > n {
		return string(r[:n])
	}
	return name
}

// buildBreakdown lays out every player's valuation fields as a code block
func buildBreakdown(players models.PlayerList) string {
	var b strings.Builder
	b.WriteString("```\n")
	b.WriteString(fmt.Sprintf("%-16s %3s %5s %4s %7s %7s %7s %7s %6s %8s %8s %7s %7s\n",
		"Player", "Age", "Sal", "Ctr", "Score", "NPV", "Fair$", "Dyn$", "Ctrl", "TotOld", "NetOld", "True", "NetTrue"))
	for _, p := range players {
		name := truncateName(p.Player, 16)
		b.WriteString(fmt.Sprintf("%-16s %3d %5g %4s %7.1f %7.1f %7.1f %7.1f %6.1f %8.1f %8.1f %7.1f %7.1f\n",
			name, p.Age, p.Salary, p.Contract, p.Score, p.ScoreNPV, p.FairSalary, p.DynastySalary,
			p.Control, p.TotalValueOld, p.NetValueOld, p.TrueValue, p.NetTrueValue))
	}
	b.WriteString("```")
	return b.String()
}
