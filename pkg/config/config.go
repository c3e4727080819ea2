package config

import (
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Gmail      GmailConfig      `mapstructure:"gmail"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Classifier ClassifierConfig `mapstructure:"classifier"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	Telegram   TelegramConfig   `mapstructure:"telegram"`
	Export     ExportConfig     `mapstructure:"export"`
}

type GmailConfig struct {
	CredentialsFile   string `mapstructure:"credentials_file"`
	TokenFile         string `mapstructure:"token_file"`
	UserID            string `mapstructure:"user_id"`
	Query             string `mapstructure:"query"`
	PageSize          int64  `mapstructure:"page_size"`
	BatchSize         int    `mapstructure:"batch_size"`
	BatchPauseSeconds int    `mapstructure:"batch_pause_seconds"`
}

type AuthConfig struct {
	Store          string `mapstructure:"store"`
	KeyringService string `mapstructure:"keyring_service"`
}

type ClassifierConfig struct {
	Engine      string  `mapstructure:"engine"`
	Clusters    int     `mapstructure:"clusters"`
	MaxFeatures int     `mapstructure:"max_features"`
	MaxDocFreq  float64 `mapstructure:"max_doc_freq"`
	Seed        int64   `mapstructure:"seed"`
}

type OpenAIConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
}

type TelegramConfig struct {
	Token  string `mapstructure:"token"`
	ChatID int64  `mapstructure:"chat_id"`
}

type ExportConfig struct {
	File string `mapstructure:"file"`
}

func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("gmail.credentials_file", "credentials.json")
	v.SetDefault("gmail.token_file", "token.json")
	v.SetDefault("gmail.user_id", "me")
	v.SetDefault("gmail.query", "is:unread in:inbox -in:spam")
	v.SetDefault("gmail.page_size", 100)
	v.SetDefault("gmail.batch_size", 25)
	v.SetDefault("gmail.batch_pause_seconds", 1)
	v.SetDefault("auth.store", "file")
	v.SetDefault("auth.keyring_service", "inbox-triage")
	v.SetDefault("classifier.engine", "kmeans")
	v.SetDefault("classifier.clusters", 5)
	v.SetDefault("classifier.max_features", 100)
	v.SetDefault("classifier.max_doc_freq", 0.9)
	v.SetDefault("classifier.seed", 42)
	v.SetDefault("openai.model", "gpt-3.5-turbo")
	v.SetDefault("openai.max_tokens", 150)
	v.SetDefault("openai.temperature", 0.7)
	v.SetDefault("export.file", "email_categories.csv")

	// Enable environment variable support
	v.AutomaticEnv()

	// The config file is optional; defaults plus environment variables are
	// enough to run.
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Get other environment variables
	if apiKey := v.GetString("OPENAI_API_KEY"); apiKey != "" {
		config.OpenAI.APIKey = apiKey
	}

	if token := v.GetString("TELEGRAM_TOKEN"); token != "" {
		config.Telegram.Token = token
	}

	if chatID := v.GetInt64("TELEGRAM_CHAT_ID"); chatID != 0 {
		config.Telegram.ChatID = chatID
	}

	return &config, nil
}
