package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/xaenox/inbox-triage/internal/auth"
	"github.com/xaenox/inbox-triage/internal/classifier"
	"github.com/xaenox/inbox-triage/internal/exporter"
	"github.com/xaenox/inbox-triage/internal/fetcher"
	"github.com/xaenox/inbox-triage/internal/models"
	"github.com/xaenox/inbox-triage/internal/report"
	"github.com/xaenox/inbox-triage/pkg/config"
	"go.uber.org/zap"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	logger = logger.With(zap.String("run_id", uuid.New().String()))

	// Load configuration
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err), zap.String("path", "config.yaml"))
	}

	ctx := context.Background()

	// Initialize token store
	var store auth.TokenStore
	if cfg.Auth.Store == "keyring" {
		logger.Info("Using keyring token store")
		store = auth.NewKeyringStore(cfg.Auth.KeyringService)
	} else {
		logger.Info("Using file token store")
		store = auth.NewFileStore(cfg.Gmail.TokenFile)
	}

	fmt.Println("Authenticating with Gmail...")
	provider := auth.NewSessionProvider(cfg.Gmail.CredentialsFile, store, logger)
	service, err := provider.GetSession(ctx)
	if err != nil {
		logger.Fatal("Failed to authorize Gmail session", zap.Error(err))
	}

	fmt.Println("\nFetching all unread emails (excluding spam and archived)...")
	f := fetcher.New(
		fetcher.NewGmailAPI(service, cfg.Gmail.UserID),
		cfg.Gmail.Query,
		cfg.Gmail.PageSize,
		cfg.Gmail.BatchSize,
		time.Duration(cfg.Gmail.BatchPauseSeconds)*time.Second,
		logger,
	)
	records := f.FetchUnread(ctx)
	if len(records) == 0 {
		fmt.Println("No unread emails to analyze.")
		return
	}

	fmt.Printf("\nFound %d unread emails (excluding spam and archived).\n", len(records))

	// Initialize classifier
	var clf classifier.Classifier
	if cfg.Classifier.Engine == "gpt" {
		logger.Info("Using GPT classifier")
		clf = classifier.NewGPTClassifier(
			cfg.OpenAI.APIKey,
			cfg.OpenAI.Model,
			cfg.OpenAI.MaxTokens,
			cfg.OpenAI.Temperature,
			logger,
		)
	} else {
		logger.Info("Using k-means classifier")
		clf = classifier.NewKMeansClassifier(
			cfg.Classifier.Clusters,
			cfg.Classifier.MaxFeatures,
			cfg.Classifier.MaxDocFreq,
			cfg.Classifier.Seed,
			logger,
		)
	}

	fmt.Println("\nCategorizing emails...")
	records = clf.Categorize(records)

	grouping := models.GroupByCategory(records)
	report.PrintSummary(os.Stdout, grouping)

	if cfg.Telegram.Token != "" && cfg.Telegram.ChatID != 0 {
		notifier, err := report.NewTelegramNotifier(cfg.Telegram.Token, cfg.Telegram.ChatID, logger)
		if err != nil {
			logger.Error("Failed to create telegram notifier", zap.Error(err))
		} else {
			notifier.SendSummary(grouping)
		}
	}

	if exporter.New(logger).Export(grouping, cfg.Export.File) {
		fmt.Printf("\nAll categorized emails have been saved to %s\n", cfg.Export.File)
	}
}
