package discord

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pmurley/ulb-trade-eval/internal/models"
	"github.com/pmurley/ulb-trade-eval/internal/recommend"
	"github.com/pmurley/ulb-trade-eval/internal/trade"
	"github.com/pmurley/ulb-trade-eval/internal/valuation"
)

// Options are the per-command overrides and filters. They start from the configured
// defaults and never change them.
type Options struct {
	Params   valuation.Params
	Settings trade.Settings
	Limit    int
	Metric   recommend.Metric
	Verbose  bool

	// SortByName lists rosters alphabetically instead of by Net True Value
	SortByName bool

	// Filters
	Team      string
	Status    string
	Positions []string
	Contracts []string
	SalaryMin float64
	SalaryMax float64
	MinAge    int
	MaxAge    int
}

func (o Options) hasSalaryRange() bool {
	return o.SalaryMin != 0 || o.SalaryMax != 0
}

func (o Options) hasAgeRange() bool {
	return o.MinAge != 0 || o.MaxAge != 0
}

// predicates turns the filter options into player predicates
func (o Options) predicates() []models.Predicate {
	var preds []models.Predicate
	if o.Status != "" && !strings.EqualFold(o.Status, "all") {
		preds = append(preds, models.StatusIs(o.Status))
	}
	if len(o.Positions) > 0 {
		preds = append(preds, models.HasAnyPosition(o.Positions...))
	}
	if len(o.Contracts) > 0 {
		preds = append(preds, models.ContractIn(o.Contracts...))
	}
	if o.hasSalaryRange() {
		preds = append(preds, models.SalaryBetween(o.SalaryMin, o.SalaryMax))
	}
	if o.hasAgeRange() {
		preds = append(preds, models.AgeBetween(o.MinAge, o.MaxAge))
	}
	return preds
}

func parseSort(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "name":
		return true, nil
	case "ntv", "value":
		return false, nil
	}
	return false, fmt.Errorf("unknown sort %q, expected name or ntv", value)
}

// parseOptions pulls --key=value flags out of args, returning the options and the remaining words
func parseOptions(args []string, base Options) (Options, []string, error) {
	opts := base
	var rest []string

	for _, arg := range args {
		if arg == "-v" || arg == "--verbose" {
			opts.Verbose = true
			continue
		}
		if !strings.HasPrefix(arg, "--") {
			rest = append(rest, arg)
			continue
		}

		parts := strings.SplitN(arg, "=", 2)
		if len(parts) != 2 || parts[1] == "" {
			return opts, nil, fmt.Errorf("option %s needs a value, like %s=...", parts[0], parts[0])
		}
		key, value := strings.ToLower(parts[0]), parts[1]

		var err error
		switch key {
		case "--r", "--discount-rate":
			opts.Params.DiscountRate, err = parseFloat(key, value)
		case "--gpre", "--growth-pre30":
			opts.Params.GrowthPre30, err = parseFloat(key, value)
		case "--gpost", "--growth-post30":
			opts.Params.GrowthPost30, err = parseFloat(key, value)
		case "--salary", "--salary-weight":
			opts.Params.SalaryWeight, err = parseFloat(key, value)
		case "--control", "--control-weight":
			opts.Params.ControlWeight, err = parseFloat(key, value)
		case "--margin":
			opts.Settings.Margin, err = parseFloat(key, value)
		case "--discount":
			opts.Settings.MultiPlayerDiscount, err = parseFloat(key, value)
		case "--limit":
			opts.Limit, err = strconv.Atoi(value)
			if err != nil {
				err = fmt.Errorf("invalid %s %q", key, value)
			}
		case "--rank", "--metric":
			opts.Metric, err = recommend.ParseMetric(value)
		case "--sort":
			opts.SortByName, err = parseSort(value)
		case "--team":
			opts.Team = value
		case "--status":
			opts.Status = value
		case "--pos", "--position":
			opts.Positions = splitList(value)
		case "--contract":
			opts.Contracts = splitList(value)
		case "--salary-range":
			opts.SalaryMin, opts.SalaryMax, err = parseFloatRange(value)
		case "--age":
			opts.MinAge, opts.MaxAge, err = parseAgeRange(value)
		default:
			err = fmt.Errorf("unknown option %s", key)
		}
		if err != nil {
			return opts, nil, err
		}
	}

	if err := opts.Params.Validate(); err != nil {
		return opts, nil, err
	}
	if err := opts.Settings.Validate(); err != nil {
		return opts, nil, err
	}
	return opts, rest, nil
}

func parseFloat(key, value string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSuffix(value, "%"), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", key, value)
	}
	if strings.HasSuffix(value, "%") {
		f /= 100
	}
	return f, nil
}

func splitList(value string) []string {
	var out []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// parseFloatRange accepts "5-20", "5+" or a single value
func parseFloatRange(value string) (float64, float64, error) {
	value = strings.TrimSpace(strings.ReplaceAll(value, "$", ""))
	switch {
	case strings.HasSuffix(value, "+"):
		lo, err := strconv.ParseFloat(strings.TrimSuffix(value, "+"), 64)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid range %q", value)
		}
		return lo, math.MaxFloat64, nil
	case strings.Contains(value, "-"):
		parts := strings.SplitN(value, "-", 2)
		lo, err1 := strconv.ParseFloat(parts[0], 64)
		hi, err2 := strconv.ParseFloat(parts[1], 64)
		if err1 != nil || err2 != nil || lo > hi {
			return 0, 0, fmt.Errorf("invalid range %q", value)
		}
		return lo, hi, nil
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid range %q", value)
	}
	return v, v, nil
}

func parseAgeRange(value string) (int, int, error) {
	lo, hi, err := parseFloatRange(value)
	if err != nil {
		return 0, 0, err
	}
	if hi > 99 {
		hi = 99
	}
	return int(lo), int(hi), nil
}
