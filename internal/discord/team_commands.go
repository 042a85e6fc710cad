package discord

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/pmurley/ulb-trade-eval/internal/models"
)

// handleTeam displays the roster for a specific team with optional filters
func (hm *HandlerManager) handleTeam(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	opts, rest, table, err := hm.commandContext(args)
	if err != nil {
		s.ChannelMessageSend(m.ChannelID, err.Error())
		return
	}
	if len(rest) == 0 {
		s.ChannelMessageSendEmbed(m.ChannelID, buildLeagueEmbed(table))
		return
	}

	teamName := strings.Join(rest, " ")
	team, ok := findTeam(teamName, table.Teams())
	if !ok {
		suggestions := findSimilarTeams(teamName, table.Teams())

		msg := fmt.Sprintf("No team found matching '%s'", teamName)
		if len(suggestions) > 0 {
			msg += "\n\nDid you mean:\n"
			for _, t := range suggestions {
				msg += fmt.Sprintf("• %s\n", t)
			}
		}
		s.ChannelMessageSend(m.ChannelID, msg)
		return
	}

	// --status has no meaning inside one roster
	opts.Status = ""
	roster := table.Roster(team).Filter(opts.predicates()...)
	if len(roster) == 0 {
		s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("No players found for %s with the specified filters", team))
		return
	}
	if opts.SortByName {
		roster.SortByName()
	} else {
		roster.SortByNetTrueValue()
	}

	s.ChannelMessageSendEmbed(m.ChannelID, buildTeamRosterEmbed(team, roster, opts))
}

// findTeam matches a team name case-insensitively
func findTeam(search string, teams []string) (string, bool) {
	for _, t := range teams {
		if strings.EqualFold(t, search) {
			return t, true
		}
	}
	if similar := findSimilarTeams(search, teams); len(similar) == 1 {
		return similar[0], true
	}
	return "", false
}

// buildLeagueEmbed summarizes every franchise, highest Net True Value first
func buildLeagueEmbed(table *models.Table) *discordgo.MessageEmbed {
	type teamSummary struct {
		name  string
		stats models.Stats
	}

	var teams []teamSummary
	for status, players := range table.Players.GroupByStatus() {
		if models.IsPlaceholderStatus(status) || status == "" {
			continue
		}
		teams = append(teams, teamSummary{name: status, stats: players.GetStats()})
	}
	sort.Slice(teams, func(i, j int) bool {
		if teams[i].stats.NetTrueValue != teams[j].stats.NetTrueValue {
			return teams[i].stats.NetTrueValue > teams[j].stats.NetTrueValue
		}
		return teams[i].name < teams[j].name
	})

	embed := &discordgo.MessageEmbed{
		Title: "League Overview",
		Color: 0x3498db,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "!team <team name> [--pos=<pos>] [--contract=<2yr>] [--age=<min-max>] [--sort=name]",
		},
	}
	for i, t := range teams {
		if i >= 25 {
			break
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: t.name,
			Value: fmt.Sprintf("%d players | %s payroll | NTV %s",
				t.stats.Count, formatSalary(t.stats.TotalSalary), formatValue(t.stats.NetTrueValue)),
		})
	}
	return embed
}

// buildTeamRosterEmbed creates a rich embed for a team roster in the order given
func buildTeamRosterEmbed(team string, players models.PlayerList, opts Options) *discordgo.MessageEmbed {
	stats := players.GetStats()

	var lines []string
	for i, p := range players {
		if i >= 25 {
			lines = append(lines, fmt.Sprintf("... and %d more", len(players)-25))
			break
		}
		lines = append(lines, fmt.Sprintf("• **%s** %s | %d | %s %s | NTV %s",
			p.Player, p.Position, p.Age, p.Contract, formatSalary(p.Salary), formatValue(p.NetTrueValue)))
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s Roster", team),
		Color:       0x3498db,
		Description: strings.Join(lines, "\n"),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Players", Value: fmt.Sprintf("%d", stats.Count), Inline: true},
			{Name: "Payroll", Value: formatSalary(stats.TotalSalary), Inline: true},
			{Name: "True Value", Value: formatValue(stats.TrueValue), Inline: true},
			{Name: "Net True Value", Value: formatValue(stats.NetTrueValue), Inline: true},
		},
	}
	if filters := describeFilters(opts); filters != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: "Filters: " + filters}
	}
	return embed
}

// findSimilarTeams finds teams with similar names
func findSimilarTeams(search string, allTeams []string) []string {
	searchLower := strings.ToLower(search)
	var matches []string

	for _, team := range allTeams {
		teamLower := strings.ToLower(team)
		if strings.Contains(teamLower, searchLower) || strings.Contains(searchLower, teamLower) {
			matches = append(matches, team)
		}
	}

	// Limit to 5 suggestions
	if len(matches) > 5 {
		matches = matches[:5]
	}

	return matches
}
