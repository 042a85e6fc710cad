package discord

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/pmurley/ulb-trade-eval/internal/models"
)

// handlePlayer looks up a player by name and displays their valuation
func (hm *HandlerManager) handlePlayer(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	opts, rest, table, err := hm.commandContext(args)
	if err != nil {
		s.ChannelMessageSend(m.ChannelID, err.Error())
		return
	}
	if len(rest) == 0 {
		s.ChannelMessageSend(m.ChannelID, "Usage: `!player <player name>`")
		return
	}

	// Join args to handle multi-word names
	playerName := strings.Join(rest, " ")

	// Try exact match first
	exactMatches := table.Players.FindByExactName(playerName)
	if len(exactMatches) > 0 {
		var embeds []*discordgo.MessageEmbed
		for _, p := range exactMatches {
			embeds = append(embeds, buildPlayerEmbed(p, opts.Verbose))
		}
		sendEmbeds(s, m.ChannelID, embeds)
		return
	}

	// No exact match, try partial search
	matches := table.Players.SearchByName(playerName)
	if len(matches) == 0 {
		s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("No player found matching '%s'", playerName))
		return
	}

	if len(matches) > 1 {
		s.ChannelMessageSend(m.ChannelID, buildMultipleMatchesMessage(playerName, matches))
		return
	}

	s.ChannelMessageSendEmbed(m.ChannelID, buildPlayerEmbed(matches[0], opts.Verbose))
}

// handlePlayers looks up a comma-separated list of players
func (hm *HandlerManager) handlePlayers(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	_, rest, table, err := hm.commandContext(args)
	if err != nil {
		s.ChannelMessageSend(m.ChannelID, err.Error())
		return
	}
	names := splitList(strings.Join(rest, " "))
	if len(names) == 0 {
		s.ChannelMessageSend(m.ChannelID, "Usage: `!players <name1>, <name2>, ...`")
		return
	}

	var embeds []*discordgo.MessageEmbed
	var notFound []string
	for _, name := range names {
		matches := table.Players.FindByExactName(name)
		if len(matches) == 0 {
			matches = table.Players.SearchByName(name)
		}
		if len(matches) == 0 {
			notFound = append(notFound, name)
			continue
		}
		for _, p := range matches.Top(3) {
			embeds = append(embeds, buildCompactPlayerEmbed(p))
		}
	}

	if len(notFound) > 0 {
		s.ChannelMessageSend(m.ChannelID, "**Players not found:** "+strings.Join(notFound, ", "))
	}
	sendEmbeds(s, m.ChannelID, embeds)
}

// handleTop lists the best players by Net True Value under the given filters
func (hm *HandlerManager) handleTop(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	opts, _, table, err := hm.commandContext(args)
	if err != nil {
		s.ChannelMessageSend(m.ChannelID, err.Error())
		return
	}
	if opts.Limit < 1 {
		s.ChannelMessageSend(m.ChannelID, "Limit must be a positive integer")
		return
	}

	players := table.Players.Filter(opts.predicates()...)
	if opts.Status == "" {
		players = players.Filter(models.NotPlaceholder())
	}
	players.SortByNetTrueValue()

	if len(players) == 0 {
		s.ChannelMessageSend(m.ChannelID, "No players match those filters")
		return
	}
	s.ChannelMessageSendEmbed(m.ChannelID, buildTopEmbed(players, opts))
}

func sendEmbeds(s *discordgo.Session, channelID string, embeds []*discordgo.MessageEmbed) {
	// Discord allows up to 10 embeds per message
	for i := 0; i < len(embeds); i += 10 {
		end := i + 10
		if end > len(embeds) {
			end = len(embeds)
		}
		s.ChannelMessageSendEmbeds(channelID, embeds[i:end])
	}
}

func buildMultipleMatchesMessage(search string, matches models.PlayerList) string {
	msg := fmt.Sprintf("Multiple players found matching '%s':\n", search)
	for i, p := range matches {
		if i >= 10 {
			msg += fmt.Sprintf("... and %d more\n", len(matches)-10)
			break
		}
		msg += fmt.Sprintf("• %s (%s, %s)\n", p.Player, p.Position, statusLabel(p.Status))
	}
	msg += "\nPlease be more specific."
	return msg
}

// buildPlayerEmbed creates a rich embed for one player's valuation
func buildPlayerEmbed(p models.PlayerRecord, verbose bool) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: p.Player,
		Color: getTeamColor(p.Status),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Team", Value: statusLabel(p.Status), Inline: true},
			{Name: "Position", Value: p.Position, Inline: true},
			{Name: "MLB", Value: orDash(p.Team), Inline: true},
			{Name: "Age", Value: strconv.Itoa(p.Age), Inline: true},
			{Name: "Salary", Value: formatSalary(p.Salary), Inline: true},
			{Name: "Contract", Value: p.Contract, Inline: true},
			{Name: "Score", Value: formatValue(p.Score), Inline: true},
			{Name: "Dynasty Value", Value: dynastyLabel(p), Inline: true},
			{Name: "Control", Value: formatValue(p.Control), Inline: true},
			{Name: "True Value", Value: formatValue(p.TrueValue), Inline: true},
			{Name: "Net True Value", Value: "**" + formatValue(p.NetTrueValue) + "**", Inline: true},
		},
	}

	if verbose {
		embed.Fields = append(embed.Fields,
			&discordgo.MessageEmbedField{Name: "Score NPV", Value: formatValue(p.ScoreNPV), Inline: true},
			&discordgo.MessageEmbedField{Name: "Fair Salary", Value: formatValue(p.FairSalary), Inline: true},
			&discordgo.MessageEmbedField{Name: "Dynasty Salary", Value: formatValue(p.DynastySalary), Inline: true},
			&discordgo.MessageEmbedField{Name: "Total Value (Old)", Value: formatValue(p.TotalValueOld), Inline: true},
			&discordgo.MessageEmbedField{Name: "Net Value (Old)", Value: formatValue(p.NetValueOld), Inline: true},
		)
	}

	embed.Footer = &discordgo.MessageEmbedFooter{Text: p.Key().String()}
	return embed
}

// buildCompactPlayerEmbed creates a short embed for multi-player lookups
func buildCompactPlayerEmbed(p models.PlayerRecord) *discordgo.MessageEmbed {
	desc := []string{
		fmt.Sprintf("**%s** | %s | Age %d", p.Position, statusLabel(p.Status), p.Age),
		fmt.Sprintf("**Contract:** %s at %s", p.Contract, formatSalary(p.Salary)),
		fmt.Sprintf("**Net True Value:** %s (True %s)", formatValue(p.NetTrueValue), formatValue(p.TrueValue)),
	}
	return &discordgo.MessageEmbed{
		Title:       p.Player,
		Color:       getTeamColor(p.Status),
		Description: strings.Join(desc, "\n"),
	}
}

func buildTopEmbed(players models.PlayerList, opts Options) *discordgo.MessageEmbed {
	shown := players.Top(opts.Limit)

	var lines []string
	for i, p := range shown {
		lines = append(lines, fmt.Sprintf("%d. **%s** (%s, %s) %s %s | NTV %s",
			i+1, p.Player, p.Position, statusLabel(p.Status), p.Contract, formatSalary(p.Salary), formatValue(p.NetTrueValue)))
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Top Players by Net True Value",
		Color:       0x3498db,
		Description: strings.Join(lines, "\n"),
	}
	if filters := describeFilters(opts); filters != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: filters}
	}
	if len(players) > len(shown) {
		embed.Title += fmt.Sprintf(" (%d of %d)", len(shown), len(players))
	}
	return embed
}

// describeFilters summarizes the active filters for an embed footer
func describeFilters(opts Options) string {
	var parts []string
	if opts.Status != "" {
		parts = append(parts, "Team: "+opts.Status)
	}
	if len(opts.Positions) > 0 {
		parts = append(parts, "Position: "+strings.Join(opts.Positions, ","))
	}
	if len(opts.Contracts) > 0 {
		parts = append(parts, "Contract: "+strings.Join(opts.Contracts, ","))
	}
	if opts.hasSalaryRange() {
		if opts.SalaryMax == math.MaxFloat64 {
			parts = append(parts, fmt.Sprintf("Salary: %s+", formatSalary(opts.SalaryMin)))
		} else {
			parts = append(parts, fmt.Sprintf("Salary: %s-%s", formatSalary(opts.SalaryMin), formatSalary(opts.SalaryMax)))
		}
	}
	if opts.hasAgeRange() {
		parts = append(parts, fmt.Sprintf("Age: %d-%d", opts.MinAge, opts.MaxAge))
	}
	return strings.Join(parts, " | ")
}

func getTeamColor(status string) int {
	if models.IsPlaceholderStatus(status) {
		return 0x95a5a6
	}
	return 0x3498db
}

func statusLabel(status string) string {
	switch {
	case status == "FA":
		return "Free Agent"
	case strings.HasPrefix(status, "W "):
		return "Waivers"
	case status == "":
		return "Unowned"
	}
	return status
}

func dynastyLabel(p models.PlayerRecord) string {
	if !p.HasDynastyValue {
		return "Unranked"
	}
	return formatValue(p.Value)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// formatNumber adds commas to large numbers
func formatNumber(n int) string {
	str := fmt.Sprintf("%d", n)
	sign := ""
	if strings.HasPrefix(str, "-") {
		sign, str = "-", str[1:]
	}
	if len(str) <= 3 {
		return sign + str
	}

	result := ""
	for i, digit := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result += ","
		}
		result += string(digit)
	}
	return sign + result
}

// formatValue rounds to one decimal and adds commas
func formatValue(v float64) string {
	tenths := int(math.Round(math.Abs(v) * 10))
	s := fmt.Sprintf("%s.%d", formatNumber(tenths/10), tenths%10)
	if v < 0 && tenths != 0 {
		return "-" + s
	}
	return s
}

// formatSignedValue always shows the sign
func formatSignedValue(v float64) string {
	s := formatValue(v)
	if !strings.HasPrefix(s, "-") {
		return "+" + s
	}
	return s
}

func formatSalary(s float64) string {
	return "$" + strconv.FormatFloat(s, 'f', -1, 64)
}

func formatPercent(f float64) string {
	return strconv.FormatFloat(math.Round(f*10000)/100, 'f', -1, 64) + "%"
}
