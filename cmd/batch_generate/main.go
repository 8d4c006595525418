package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"topic-quiz/internal/adapter"
	"topic-quiz/internal/app"
	"topic-quiz/internal/cache"
	"topic-quiz/internal/config"
	"topic-quiz/internal/database"
	"topic-quiz/internal/domain"
	"topic-quiz/internal/logger"
	"topic-quiz/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:          "batch_generate",
	Short:        "Generate quizzes for a list of topics",
	Long:         "Reads one topic per line (blank lines and lines starting with # are skipped) and runs the full generate pipeline for each.",
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringP("file", "f", "", "Topics file (reads stdin when empty or \"-\")")
	rootCmd.Flags().IntP("concurrency", "c", 0, "Parallel generations (overrides batch.concurrency)")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	topics, err := readTopics(cmd)
	if err != nil {
		return err
	}
	if len(topics) == 0 {
		logger.Get().Info("No topics to generate")
		return nil
	}

	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		return err
	}
	defer db.Close()

	var cacheAdapter domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			logger.Get().Warn("Redis unavailable, running without cache", zap.Error(err))
		} else {
			defer redisClient.Close()
			cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	quizService, err := app.NewQuizService(ctx, cfg, db, cacheAdapter)
	if err != nil {
		return err
	}

	concurrency, _ := cmd.Flags().GetInt("concurrency")
	if concurrency <= 0 {
		concurrency = cfg.Batch.Concurrency
	}
	results := service.NewBatchService(quizService, concurrency, logger.Get()).GenerateQuizzes(ctx, topics)

	failed := 0
	out := cmd.OutOrStdout()
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(out, "FAIL\t%s\t%s\t%s\n", r.Topic, r.Code(), messageOf(r.Err))
			continue
		}
		fmt.Fprintf(out, "OK\t%s\t%s\n", r.Topic, r.QuizID)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d topics failed", failed, len(results))
	}
	return nil
}

func readTopics(cmd *cobra.Command) ([]string, error) {
	path, _ := cmd.Flags().GetString("file")
	if path == "" || path == "-" {
		return service.ReadTopics(cmd.InOrStdin())
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open topics file: %w", err)
	}
	defer f.Close()
	return service.ReadTopics(f)
}

func messageOf(err error) string {
	var de *domain.DomainError
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
