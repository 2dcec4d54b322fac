package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/richard-senior/h2h/internal/logger"
	"github.com/richard-senior/h2h/pkg/h2h"
)

const usage = `h2h - head-to-head match history queries

usage:
  h2h update                    ingest the configured results page into the store
  h2h winrate <home> <away>     historical win rate for the directional matchup
  h2h expected <home> <away>    expected score pair for the matchup
  h2h target <home> <away> <k>  probability of exactly k under the binomial model
  h2h h2h <home> <away> [n]     the n most recent meetings (default 5)
  h2h top [n]                   the n matchups with the best mean outcome (default 5)
  h2h teams                     list every competitor in the stored history
  h2h report <url>              fetch a matchup report page as markdown

configuration is layered: defaults, then the YAML file named by H2H_CONFIG,
then H2H_* environment variables (e.g. H2H_RESULTS_URL)`

func main() {
	logger.SetShowDateTime(false)

	cfg, err := h2h.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration:", err)
	}
	if err := h2h.UpdateConfig(cfg); err != nil {
		logger.Fatal("Invalid configuration:", err)
	}

	// Logs go to the configured file so stdout stays clean for query output
	if err := logger.SetLogOutput('f', cfg.LogPath); err != nil {
		logger.Warn("Failed to open log file, logging to console:", err)
	}

	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(2)
	}

	if err := run(os.Args[1], os.Args[2:]); err != nil {
		logger.Error("Command failed:", err)
		os.Exit(1)
	}
}

func run(command string, args []string) error {
	switch command {
	case "update":
		return h2h.Update(h2h.NewHTMLDatasource())
	case "winrate":
		return runWinRate(args)
	case "expected":
		return runExpected(args)
	case "target":
		return runTarget(args)
	case "h2h":
		return runHeadToHead(args)
	case "top":
		return runTop(args)
	case "teams":
		return runTeams(args)
	case "report":
		return runReport(args)
	case "help", "-h", "--help":
		fmt.Println(usage)
		return nil
	default:
		fmt.Println(usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func runWinRate(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("winrate needs <home> <away>")
	}
	table, err := h2h.Snapshot()
	if err != nil {
		return err
	}
	rate, err := h2h.WinRate(args[0], args[1], table)
	if err != nil {
		return err
	}
	fmt.Printf("%s vs %s win rate: %.4f\n", args[0], args[1], rate)
	return nil
}

func runExpected(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("expected needs <home> <away>")
	}
	table, err := h2h.Snapshot()
	if err != nil {
		return err
	}
	exp, err := h2h.ExpectedScoreFor(args[0], args[1], table)
	if err != nil {
		return err
	}
	fmt.Printf("%s expected: %.2f, %s expected: %.2f\n", args[0], exp.Home, args[1], exp.Away)
	return nil
}

func runTarget(args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("target needs <home> <away> <k>")
	}
	k, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("target score must be an integer: %w", err)
	}
	table, err := h2h.Snapshot()
	if err != nil {
		return err
	}
	prob, err := h2h.TargetScoreProbability(args[0], args[1], k, table)
	if err != nil {
		return err
	}
	fmt.Printf("P(score = %d) for %s vs %s: %.4f\n", k, args[0], args[1], prob)
	return nil
}

func runHeadToHead(args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("h2h needs <home> <away> [n]")
	}
	count := h2h.Config.HeadToHeadCount
	if len(args) == 3 {
		n, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("count must be an integer: %w", err)
		}
		count = n
	}
	table, err := h2h.Snapshot()
	if err != nil {
		return err
	}
	meetings := h2h.RecentHeadToHead(args[0], args[1], table, count)
	if len(meetings) == 0 {
		fmt.Printf("no recorded meetings between %s and %s\n", args[0], args[1])
		return nil
	}
	for _, m := range meetings {
		when := ""
		if !m.KickoffUTC.IsZero() {
			when = m.KickoffUTC.Format("2006-01-02") + "  "
		}
		fmt.Printf("%s%s %s %s\n", when, m.Home, m.ScoreString(), m.Away)
	}
	return nil
}

func runTop(args []string) error {
	count := h2h.Config.TopMatchupCount
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("count must be an integer: %w", err)
		}
		count = n
	} else if len(args) > 1 {
		return fmt.Errorf("top takes at most [n]")
	}
	table, err := h2h.Snapshot()
	if err != nil {
		return err
	}
	for _, m := range h2h.TopMatchups(table, count) {
		fmt.Printf("%-20s vs %-20s mean outcome %.3f over %d matches\n",
			m.Home, m.Away, m.MeanOutcome, m.Played)
	}
	return nil
}

func runTeams(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("teams takes no arguments")
	}
	table, err := h2h.Snapshot()
	if err != nil {
		return err
	}
	for _, name := range table.Competitors() {
		fmt.Println(name)
	}
	return nil
}

func runReport(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("report needs <url>")
	}
	markdown, err := h2h.FetchMatchupReport(args[0])
	if err != nil {
		return err
	}
	fmt.Println(markdown)
	return nil
}
