package main

import (
	"fmt"
	"railway/actionlog"
	"railway/agent"
	"railway/engine"
	"railway/meta"
	"railway/metrics"
	"railway/state"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	seed       uint64
	maxActions int
	greedy     bool
	outPath    string
	metricsDir string
	logPath    string
	watch      bool

	simulateCmd = &cobra.Command{
		Use:   "simulate",
		Short: "Play a game with random agents and write its action log",
		Args:  cobra.NoArgs,
		RunE:  runSimulate,
	}
	replayCmd = &cobra.Command{
		Use:   "replay",
		Short: "Rebuild a game from its action log and print the final state",
		Args:  cobra.NoArgs,
		RunE:  runReplay,
	}
)

func init() {
	simulateCmd.Flags().Uint64Var(&seed, "seed", meta.DEFAULT_SEED, "seed of the first random agent")
	simulateCmd.Flags().IntVar(&maxActions, "actions", meta.MAX_ACTIONS, "maximum number of actions")
	simulateCmd.Flags().BoolVar(&greedy, "greedy", false, "seat greedy agents instead of random ones")
	simulateCmd.Flags().StringVar(&outPath, "out", "game.jsonl.zst", "action log to write")
	simulateCmd.Flags().StringVar(&metricsDir, "metrics", "", "directory for CSV metrics (disabled when empty)")
	simulateCmd.Flags().BoolVar(&watch, "watch", false, "log every ranking change")

	replayCmd.Flags().StringVar(&logPath, "log", "game.jsonl.zst", "action log to replay")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	gameID := uuid.NewString()
	w, err := actionlog.NewWriter(outPath, gameID)
	if err != nil {
		return fmt.Errorf("open action log: %w", err)
	}
	defer w.Close()

	collector := metrics.NewDummyCollector()
	if metricsDir != "" {
		collector = metrics.NewCollector()
	}
	e, err := engine.New(cfg, engine.WithRecorder(w), engine.WithCollector(collector), engine.WithLogger(log.Logger))
	if err != nil {
		return err
	}
	if watch {
		e.Game().Ranking.AddObserver(state.ObserverFunc(func(text string) {
			log.Info().Str("ranking", text).Msg("standings changed")
		}))
	}

	agents := make([]agent.Agent, len(cfg.Players))
	for i := range agents {
		if greedy {
			agents[i] = agent.NewGreedyAgent()
		} else {
			agents[i] = agent.NewRandomAgent(seed+uint64(i), meta.UNDO_PROBABILITY)
		}
	}

	log.Info().Str("game", gameID).Msgf("simulating %s", cfg.Title)
	count, err := e.Run(agents, maxActions)
	if err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close action log: %w", err)
	}

	if metricsDir != "" {
		mw, err := metrics.NewWriter(metricsDir, true)
		if err != nil {
			return err
		}
		if err := mw.WriteActionRecords(e.Records()); err != nil {
			return err
		}
		if err := mw.WriteSummary(collector.Complete()); err != nil {
			return err
		}
		log.Info().Msgf("metrics written to %s", mw.Dir())
	}

	log.Info().Int("actions", count).Int("accepted", len(e.History())).Msgf("action log written to %s", outPath)
	fmt.Fprintln(cmd.OutOrStdout(), e.Game().Summary())
	return nil
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	entries, err := actionlog.Read(logPath)
	if err != nil {
		return err
	}
	if len(entries) > 0 {
		log.Info().Str("game", entries[0].GameID).Msgf("replaying %d actions", len(entries))
	}

	e, failed, err := engine.Replay(cfg, actionlog.Actions(entries), engine.WithLogger(log.Logger))
	if err != nil {
		if failed >= 0 {
			return fmt.Errorf("entry %d: %w", entries[failed].Seq, err)
		}
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, e.Report().Text())
	fmt.Fprintln(out)
	fmt.Fprintln(out, e.Game().Summary())
	return nil
}
