package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	fmodels "github.com/pmurley/go-fantrax/models"
	"github.com/pmurley/ulb-trade-eval/internal/config"
	"github.com/pmurley/ulb-trade-eval/internal/models"
	"github.com/pmurley/ulb-trade-eval/internal/valuation"
	"github.com/pmurley/ulb-trade-eval/pkg/logger"
)

// TableProvider serves enriched tables per parameter set
type TableProvider interface {
	Table(p valuation.Params) (*models.Table, error)
	Reload() error
}

// TransactionSource provides league transactions for the completed trade review
type TransactionSource interface {
	GetTransactionsFromFantrax() ([]fmodels.Transaction, error)
}

type HandlerManager struct {
	session  *discordgo.Session
	config   *config.Config
	logger   *logger.Logger
	tables   TableProvider
	trades   TransactionSource // nil when no Fantrax league is configured
	commands map[string]CommandHandler
}

type CommandHandler func(s *discordgo.Session, m *discordgo.MessageCreate, args []string)

func NewHandlerManager(
	session *discordgo.Session,
	config *config.Config,
	logger *logger.Logger,
	tables TableProvider,
	trades TransactionSource,
) *HandlerManager {
	hm := &HandlerManager{
		session:  session,
		config:   config,
		logger:   logger,
		tables:   tables,
		trades:   trades,
		commands: make(map[string]CommandHandler),
	}

	hm.registerCommands()

	return hm
}

func (hm *HandlerManager) RegisterHandlers() {
	hm.session.AddHandler(hm.messageCreate)
}

func (hm *HandlerManager) registerCommands() {
	hm.commands["help"] = hm.handleHelp
	hm.commands["reload"] = hm.handleReload
	hm.commands["player"] = hm.handlePlayer
	hm.commands["players"] = hm.handlePlayers
	hm.commands["top"] = hm.handleTop
	hm.commands["team"] = hm.handleTeam
	hm.commands["trade"] = hm.handleTrade
	hm.commands["recs"] = hm.handleRecs
	hm.commands["trades"] = hm.handleTrades
	hm.commands["settings"] = hm.handleSettings
}

func (hm *HandlerManager) messageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author.ID == s.State.User.ID {
		return
	}

	if !strings.HasPrefix(m.Content, hm.config.CommandPrefix) {
		return
	}

	content := strings.TrimPrefix(m.Content, hm.config.CommandPrefix)
	parts := strings.Fields(content)
	if len(parts) == 0 {
		return
	}

	command := strings.ToLower(parts[0])
	args := parts[1:]

	if handler, exists := hm.commands[command]; exists {
		hm.logger.WithFields(logger.Fields{
			"command": command,
			"user":    m.Author.Username,
		}).Debug("Handling command")
		handler(s, m, args)
	}
}

func (hm *HandlerManager) handleHelp(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	helpMessage := `**Dynasty Trade Evaluator Commands:**
` + "```" + `
!help                     - Show this help message
!reload                   - Force reload data from the sources
!player <name>            - Look up a player's valuation
!players <name1>, <name2> - Look up multiple players
!top [filters]            - Best players by Net True Value
!team                     - League overview by Net True Value
!team <name> [--sort=name] - Team roster by Net True Value
!trade <players> for <players> - Evaluate a trade
  Examples:
    !trade Alpha for Delta
    !trade Alpha, Bravo (Sharks) for Delta -v
!recs <players> [--team=] [--pos=] [--rank=true]
                          - 1-for-1 counter-offers closest in value
!trades [n]               - Review the last n Fantrax trades
!settings                 - Show model and trade settings

Options (any command):
  --r= --gpre= --gpost= --salary= --control=   model parameters
  --margin= --discount=                        trade settings
  --status= --pos=SS,OF --contract=2yr,3yr --salary-range=5-20 --age=22-27 --limit=
` + "```"

	s.ChannelMessageSend(m.ChannelID, helpMessage)
}

func (hm *HandlerManager) handleReload(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if err := hm.tables.Reload(); err != nil {
		hm.logger.Error("Reload failed: ", err)
		s.ChannelMessageSend(m.ChannelID, "Failed to reload data: "+err.Error())
		return
	}
	s.ChannelMessageSend(m.ChannelID, "Data reloaded successfully!")
}

func (hm *HandlerManager) handleSettings(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	opts, _, err := parseOptions(args, hm.defaultOptions())
	if err != nil {
		s.ChannelMessageSend(m.ChannelID, err.Error())
		return
	}
	s.ChannelMessageSendEmbed(m.ChannelID, buildSettingsEmbed(opts, hm.config.LeagueBudget))
}

func (hm *HandlerManager) defaultOptions() Options {
	return Options{
		Params:   hm.config.ModelParams(),
		Settings: hm.config.TradeSettings(),
		Limit:    hm.config.RecommendationLimit,
	}
}

// commandContext parses the options in args and returns the table they select
func (hm *HandlerManager) commandContext(args []string) (Options, []string, *models.Table, error) {
	opts, rest, err := parseOptions(args, hm.defaultOptions())
	if err != nil {
		return opts, nil, nil, err
	}
	table, err := hm.tables.Table(opts.Params)
	if err != nil {
		hm.logger.Error("Failed to build table: ", err)
		return opts, nil, nil, fmt.Errorf("failed to load player data: %w", err)
	}
	return opts, rest, table, nil
}

func buildSettingsEmbed(opts Options, budget float64) *discordgo.MessageEmbed {
	p := opts.Params
	return &discordgo.MessageEmbed{
		Title: "Valuation Settings",
		Color: 0x3498db,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Discount Rate", Value: formatPercent(p.DiscountRate), Inline: true},
			{Name: "Growth Before 30", Value: formatPercent(p.GrowthPre30), Inline: true},
			{Name: "Growth After 30", Value: formatPercent(p.GrowthPost30), Inline: true},
			{Name: "Salary Weight", Value: fmt.Sprintf("%g", p.SalaryWeight), Inline: true},
			{Name: "Control Weight", Value: fmt.Sprintf("%g", p.ControlWeight), Inline: true},
			{Name: "League Budget", Value: "$" + formatNumber(int(budget)), Inline: true},
			{Name: "Fair Trade Margin", Value: formatPercent(opts.Settings.Margin), Inline: true},
			{Name: "Package Discount", Value: formatPercent(opts.Settings.MultiPlayerDiscount), Inline: true},
			{Name: "Recommendations", Value: fmt.Sprintf("%d", opts.Limit), Inline: true},
		},
	}
}
