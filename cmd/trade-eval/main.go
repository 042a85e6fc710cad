package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/pmurley/ulb-trade-eval/internal/cache"
	"github.com/pmurley/ulb-trade-eval/internal/config"
	"github.com/pmurley/ulb-trade-eval/internal/evaluator"
	"github.com/pmurley/ulb-trade-eval/internal/fantrax"
	"github.com/pmurley/ulb-trade-eval/internal/models"
	"github.com/pmurley/ulb-trade-eval/internal/recommend"
	"github.com/pmurley/ulb-trade-eval/internal/trade"
	"github.com/pmurley/ulb-trade-eval/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	params := cfg.ModelParams()
	settings := cfg.TradeSettings()

	rankingsCSV := flag.String("rankings", cfg.RankingsCSV, "dynasty rankings CSV")
	rosterCSV := flag.String("roster", cfg.RosterCSV, "league roster CSV")
	send := flag.String("send", "", "comma-separated players sent, \"Name (Team)\" to disambiguate")
	receive := flag.String("receive", "", "comma-separated players received")
	recs := flag.Bool("recs", false, "rank 1-for-1 counter-offers for the -send players")
	team := flag.String("team", "", "only recommend players from this team")
	positions := flag.String("pos", "", "only recommend players eligible at these positions")
	rank := flag.String("rank", "net", "recommendation metric: net or true")
	limit := flag.Int("limit", cfg.RecommendationLimit, "number of recommendations")
	top := flag.Int("top", 0, "print the top n players by Net True Value")
	trades := flag.Int("trades", 0, "evaluate the last n completed Fantrax trades")
	flag.Float64Var(&params.DiscountRate, "r", params.DiscountRate, "discount rate")
	flag.Float64Var(&params.GrowthPre30, "gpre", params.GrowthPre30, "growth rate before 30")
	flag.Float64Var(&params.GrowthPost30, "gpost", params.GrowthPost30, "growth rate from 30")
	flag.Float64Var(&params.SalaryWeight, "salary", params.SalaryWeight, "salary weight")
	flag.Float64Var(&params.ControlWeight, "control", params.ControlWeight, "control weight")
	flag.Float64Var(&settings.Margin, "margin", settings.Margin, "fair trade margin")
	flag.Float64Var(&settings.MultiPlayerDiscount, "discount", settings.MultiPlayerDiscount, "multi-player package discount")
	flag.Parse()

	cfg.RankingsCSV, cfg.RosterCSV = *rankingsCSV, *rosterCSV

	appLog := logger.New(cfg.LogLevel)

	if err := settings.Validate(); err != nil {
		appLog.Fatal("Invalid trade settings:", err)
	}

	source, err := evaluator.NewSource(cfg)
	if err != nil {
		appLog.Fatal("Failed to create data source:", err)
	}
	eval := evaluator.New(source, cache.New(time.Hour), cfg.LeagueBudget, appLog)

	table, err := eval.Table(params)
	if err != nil {
		appLog.Fatal("Failed to build table:", err)
	}

	switch {
	case *top > 0:
		players := table.Players.Filter(models.NotPlaceholder())
		players.SortByNetTrueValue()
		printPlayers(players.Top(*top))

	case *trades > 0:
		reviewTrades(cfg, table, settings, *trades, appLog)

	case *recs:
		sendKeys := resolve(table, *send)
		if len(sendKeys) == 0 {
			appLog.Fatal("-recs needs the players you send in -send")
		}
		metric, err := recommend.ParseMetric(*rank)
		if err != nil {
			appLog.Fatal(err)
		}
		outgoing := trade.Evaluate(table, sendKeys, nil, settings.MultiPlayerDiscount)
		results, err := recommend.RankCounterOffers(table, recommend.Request{
			ExcludeStatus: sendKeys[0].Status,
			TeamFilter:    *team,
			Positions:     models.ParsePositions(*positions),
			Metric:        metric,
			TargetValue:   recommend.TargetFor(outgoing, metric),
			Limit:         *limit,
		})
		if err != nil {
			appLog.Fatal(err)
		}
		printRecommendations(results)

	default:
		sendKeys, receiveKeys := resolve(table, *send), resolve(table, *receive)
		printTrade(trade.Evaluate(table, sendKeys, receiveKeys, settings.MultiPlayerDiscount), settings)
	}
}

func resolve(table *models.Table, names string) []models.PlayerKey {
	if strings.TrimSpace(names) == "" {
		return nil
	}
	keys, problems := table.Players.Resolve(models.ParsePlayerRefs(names))
	if len(problems) > 0 {
		fmt.Fprintln(os.Stderr, strings.Join(problems, "\n"))
		os.Exit(1)
	}
	return keys
}

func reviewTrades(cfg *config.Config, table *models.Table, settings trade.Settings, n int, appLog *logger.Logger) {
	if cfg.FantraxLeagueID == "" {
		appLog.Fatal("FANTRAX_LEAGUE_ID is required for -trades")
	}
	client, err := fantrax.NewFantraxClient(cfg.FantraxLeagueID, true)
	if err != nil {
		appLog.Fatal(err)
	}
	completed, err := client.GetCompletedTrades()
	if err != nil {
		appLog.Fatal(err)
	}
	if len(completed) > n {
		completed = completed[:n]
	}

	for _, ct := range completed {
		fmt.Printf("== %s  Period %d  %s\n", ct.ProcessedDate.Format("2006-01-02"), ct.Period, strings.Join(ct.Teams, " / "))
		if !ct.IsTwoTeam() {
			fmt.Println("   not a two-team trade")
			continue
		}
		sendKeys, missing := fantrax.Resolve(table, ct.Outgoing[ct.Teams[0]])
		receiveKeys, more := fantrax.Resolve(table, ct.Outgoing[ct.Teams[1]])
		if missing = append(missing, more...); len(missing) > 0 {
			fmt.Printf("   not valued: %s\n", strings.Join(missing, ", "))
		}
		printTrade(trade.Evaluate(table, sendKeys, receiveKeys, settings.MultiPlayerDiscount), settings)
		fmt.Println()
	}
}

func printPlayers(players models.PlayerList) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "Player\tStatus\tAge\tSalary\tContract\tScore\tScore_NPV\tFair_Salary\tDynasty_Salary\tControl\tTotal_Value_Old\tNet_Value_Old\tTrue_Value\tNet_True_Value\t")
	for _, p := range players {
		fmt.Fprintf(w, "%s\t%s\t%d\t%g\t%s\t%.1f\t%.1f\t%.1f\t%.1f\t%.1f\t%.1f\t%.1f\t%.1f\t%.1f\t\n",
			p.Player, p.Status, p.Age, p.Salary, p.Contract, p.Score, p.ScoreNPV, p.FairSalary,
			p.DynastySalary, p.Control, p.TotalValueOld, p.NetValueOld, p.TrueValue, p.NetTrueValue)
	}
	w.Flush()
}

func printTrade(result trade.Result, settings trade.Settings) {
	printPlayers(result.Breakdown())
	fmt.Println()
	printSide("Send", result.Send, settings)
	printSide("Receive", result.Receive, settings)
	fmt.Printf("Net_Value_Old  %+.2f\n", result.NetValueOld)
	fmt.Printf("Net_Salary     %+.2f\n", result.NetSalary)
	fmt.Printf("Net_Value_True %+.2f\n", result.NetValueTrue)
	fmt.Printf("Position       %.4f (%s)\n", result.Position, result.Verdict(settings.Margin))
}

func printSide(label string, side trade.SideTotals, settings trade.Settings) {
	fmt.Printf("%-8s %d players  Net_True_Value %.2f", label, side.Count, side.NetTrueValue)
	if side.Discounted {
		fmt.Printf("  (raw %.2f, package discount %.0f%%)", side.RawNetTrueValue, settings.MultiPlayerDiscount*100)
	}
	fmt.Println()
}

func printRecommendations(results []recommend.Recommendation) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tPlayer\tStatus\tPosition\tValue\tDifference")
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.2f\t%+.2f\n",
			i+1, r.Player.Player, r.Player.Status, r.Player.Position, r.MetricValue, r.Difference)
	}
	w.Flush()
}
