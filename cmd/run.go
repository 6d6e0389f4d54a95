package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/smartprep/internal/app"
	"github.com/abhisek/smartprep/internal/config"
	"github.com/abhisek/smartprep/internal/content"
	"github.com/abhisek/smartprep/internal/llm"
	"github.com/abhisek/smartprep/internal/logging"
	"github.com/abhisek/smartprep/internal/roadmap"
	"github.com/abhisek/smartprep/internal/streak"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	st, cfg, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	logger, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	streakState, err := streak.New(st.PreferenceRepo()).Init(ctx)
	if err != nil {
		logger.Warn("streak unavailable", zap.Error(err))
	}

	eventRepo := st.EventRepo()
	provider, err := llm.NewProvider(ctx, cfg.LLM.ToLLM(), eventRepo, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Built-in practice content will be used.")
		logger.Warn("llm provider unavailable", zap.Error(err))
		provider = llm.NewMockProvider()
	}

	svc := content.New(provider, content.Config{
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
	})

	logger.Info("starting",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", provider.ModelID()),
		zap.Int("streak", streakState.Count),
	)

	return app.Run(app.Options{
		Generator: svc,
		Runner:    svc,
		Planner: &roadmap.Planner{
			Generator:         svc,
			Days:              cfg.Roadmap.Days,
			ComprehensiveDays: cfg.Roadmap.ComprehensiveDays,
		},
		Events:         eventRepo,
		Logger:         logger,
		Streak:         streakState,
		QuizTime:       cfg.Timer.Quiz,
		CodingTime:     cfg.Timer.Coding,
		Questions:      cfg.Assessment.Questions,
		MixedQuestions: cfg.Assessment.MixedQuestions,
		FullChallenge:  cfg.Assessment.FullChallenge,
	})
}

func newLogger(c config.LogConfig) (*zap.Logger, error) {
	logger, err := logging.New(logging.Options{
		Level:      c.Level,
		File:       c.File,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, nil
}
