package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"forest-wars/internal/bot"
	"forest-wars/internal/config"
	"forest-wars/internal/game"
	"forest-wars/internal/logging"
	"forest-wars/internal/protocol"
	"forest-wars/internal/session"

	"github.com/rs/zerolog"
	"golang.design/x/clipboard"
)

// options holds the command-line settings.
type options struct {
	runs       int
	turns      int
	seedBase   int64
	seedStep   int64
	allyName   string
	enemyName  string
	rulesPath  string
	profile    string
	logLevel   string
	jsonLog    bool
	eventsPath string
	scriptPath string
	copyReport bool
}

func main() {
	var opts options

	flag.IntVar(&opts.runs, "runs", 5, "number of bot matches")
	flag.IntVar(&opts.turns, "turns", 40, "turn pairs per match")
	flag.Int64Var(&opts.seedBase, "seed-base", 42, "field seed for match 1")
	flag.Int64Var(&opts.seedStep, "seed-step", 1, "seed increment between matches")
	flag.StringVar(&opts.allyName, "ally", "aggressive", "ally bot personality (aggressive, defensive)")
	flag.StringVar(&opts.enemyName, "enemy", "defensive", "enemy bot personality (aggressive, defensive)")
	flag.StringVar(&opts.rulesPath, "rules", "", "rules file (default: user config dir)")
	flag.StringVar(&opts.profile, "profile", "", "config profile name")
	flag.StringVar(&opts.logLevel, "log-level", "", "log level (overrides the config file)")
	flag.BoolVar(&opts.jsonLog, "json-log", false, "log as JSON")
	flag.StringVar(&opts.eventsPath, "events", "", "write notifications as JSON lines to this file (- for stdout)")
	flag.StringVar(&opts.scriptPath, "script", "", "replay JSON-lines operations from this file instead of bot matches")
	flag.BoolVar(&opts.copyReport, "copy", false, "copy the report to the clipboard")
	flag.Parse()

	if env := os.Getenv("FORESTWARS_RULES"); env != "" && opts.rulesPath == "" {
		opts.rulesPath = env
	}
	if env := os.Getenv("FORESTWARS_LOG_LEVEL"); env != "" && opts.logLevel == "" {
		opts.logLevel = env
	}

	if err := run(opts, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run executes the simulation. Every open file is flushed and closed
// before it returns, including on error.
func run(opts options, stdout, stderr io.Writer) (err error) {
	if opts.profile != "" {
		config.SetProfile(opts.profile)
	}

	var cfg *config.Config
	if opts.rulesPath != "" {
		cfg, err = config.LoadFile(opts.rulesPath)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return err
	}
	if opts.logLevel == "" {
		opts.logLevel = cfg.Log.Level
	}

	logger, err := logging.New(logging.Options{Level: opts.logLevel, JSON: opts.jsonLog || cfg.Log.JSON, Output: stderr})
	if err != nil {
		return err
	}
	logger = logging.Component(logger, "sim")

	rules, err := cfg.GameRules()
	if err != nil {
		return fmt.Errorf("invalid rules: %w", err)
	}
	// Nothing is animated in a headless run.
	rules.SettleDelay = 0

	if opts.runs <= 0 || opts.turns <= 0 {
		return fmt.Errorf("-runs and -turns must be > 0, got %d and %d", opts.runs, opts.turns)
	}

	var events io.Writer
	switch opts.eventsPath {
	case "":
	case "-":
		events = stdout
	default:
		f, createErr := os.Create(opts.eventsPath)
		if createErr != nil {
			return fmt.Errorf("failed to create events file: %w", createErr)
		}
		w := bufio.NewWriter(f)
		defer func() {
			flushErr := w.Flush()
			if closeErr := f.Close(); flushErr == nil {
				flushErr = closeErr
			}
			if err == nil && flushErr != nil {
				err = fmt.Errorf("failed to write events file: %w", flushErr)
			}
		}()
		events = w
	}

	var report strings.Builder
	if opts.scriptPath != "" {
		stats, err := replayScript(opts.scriptPath, rules, cfg.Seed, events, logger)
		if err != nil {
			return fmt.Errorf("script replay %s: %w", opts.scriptPath, err)
		}
		writeScriptReport(&report, opts.scriptPath, stats)
	} else {
		ally := bot.ParsePersonality(opts.allyName)
		enemy := bot.ParsePersonality(opts.enemyName)

		fmt.Fprintf(&report, "=== Forest Wars Simulation Report ===\n")
		fmt.Fprintf(&report, "runs=%d turns=%d seed_base=%d seed_step=%d ally=%s enemy=%s field=%dx%d\n\n",
			opts.runs, opts.turns, opts.seedBase, opts.seedStep, ally, enemy, rules.Width, rules.Height)

		all := make([]runStats, 0, opts.runs)
		for i := 0; i < opts.runs; i++ {
			seed := opts.seedBase + int64(i)*opts.seedStep
			stats, err := runMatch(i+1, seed, opts.turns, rules, ally, enemy, events, logger)
			if err != nil {
				return fmt.Errorf("match %d (seed %d): %w", i+1, seed, err)
			}
			all = append(all, stats)
			writeRun(&report, stats)
		}
		writeAggregate(&report, all)
	}

	fmt.Fprint(stdout, report.String())

	if opts.copyReport {
		if err := clipboard.Init(); err != nil {
			logger.Warn().Err(err).Msg("clipboard unavailable")
			return nil
		}
		clipboard.Write(clipboard.FmtText, []byte(report.String()))
		logger.Info().Msg("report copied to clipboard")
	}
	return nil
}

// eventSink writes every notification as one JSON line. A nil writer
// discards notifications.
func eventSink(w io.Writer, logger zerolog.Logger) session.Sink {
	if w == nil {
		return nil
	}
	enc := json.NewEncoder(w)
	return func(e game.Effect) {
		msg, err := protocol.FromEffect(e)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to encode notification")
			return
		}
		if err := enc.Encode(msg); err != nil {
			logger.Warn().Err(err).Msg("failed to write notification")
		}
	}
}

// runMatch plays one bot-vs-bot match on a fresh seeded field.
func runMatch(index int, seed int64, turns int, rules game.Rules, allyP, enemyP bot.Personality, events io.Writer, logger zerolog.Logger) (runStats, error) {
	s, err := session.New(session.Options{
		Rules:       rules,
		Seed:        seed,
		Logger:      logger,
		Sink:        eventSink(events, logger),
		ManualTicks: true,
	})
	if err != nil {
		return runStats{}, err
	}
	defer s.Close()

	s.InitializeGameField()

	ally := bot.New(game.Ally, allyP, seed, logger)
	enemy := bot.New(game.Enemy, enemyP, seed+1, logger)

	stats := runStats{runIndex: index, seed: seed}
	for turn := 0; turn < turns; turn++ {
		a := ally.PlayTurn(s)
		e := enemy.PlayTurn(s)
		stats.turns++
		stats.ally.moves += a.Moves
		stats.ally.upgrades += a.Upgrades
		stats.enemy.moves += e.Moves
		stats.enemy.upgrades += e.Upgrades

		snap := s.Snapshot()
		if cellsOf(snap, game.Ally) == 0 || cellsOf(snap, game.Enemy) == 0 {
			break
		}
	}

	snap := s.Snapshot()
	stats.ally.fill(snap, game.Ally)
	stats.enemy.fill(snap, game.Enemy)
	stats.field = renderField(snap)

	logger.Info().Int("run", index).Int64("seed", seed).Str("winner", stats.winner().String()).Msg("match finished")
	return stats, nil
}

// replayScript feeds a JSON-lines file of operation messages to a session.
func replayScript(path string, rules game.Rules, seed int64, events io.Writer, logger zerolog.Logger) (scriptStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return scriptStats{}, err
	}
	defer f.Close()

	s, err := session.New(session.Options{
		Rules:       rules,
		Seed:        seed,
		Logger:      logger,
		Sink:        eventSink(events, logger),
		ManualTicks: true,
	})
	if err != nil {
		return scriptStats{}, err
	}
	defer s.Close()

	var stats scriptStats
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		var msg protocol.Message
		if err := json.Unmarshal([]byte(text), &msg); err != nil {
			return stats, fmt.Errorf("line %d: %w", line, err)
		}
		effects, err := s.Dispatch(&msg)
		if err != nil {
			return stats, fmt.Errorf("line %d: %w", line, err)
		}
		stats.operations++
		if len(effects) == 0 {
			stats.inert++
		}
		stats.notifications += len(effects)
	}
	if err := scanner.Err(); err != nil {
		return stats, err
	}

	snap := s.Snapshot()
	stats.ally.fill(snap, game.Ally)
	stats.enemy.fill(snap, game.Enemy)
	stats.playerTurn = snap.IsPlayerTurn
	stats.field = renderField(snap)
	return stats, nil
}
