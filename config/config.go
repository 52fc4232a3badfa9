package config

import (
	logger "github.com/Bparsons0904/goLogger"
	"github.com/spf13/viper"
)

type Config struct {
	GeneralVersion       string `mapstructure:"GENERAL_VERSION"`
	Environment          string `mapstructure:"ENVIRONMENT"`
	ServerPort           int    `mapstructure:"SERVER_PORT"`
	DatabaseHost         string `mapstructure:"DB_HOST"`
	DatabasePort         int    `mapstructure:"DB_PORT"`
	DatabaseName         string `mapstructure:"DB_NAME"`
	DatabaseUser         string `mapstructure:"DB_USER"`
	DatabasePassword     string `mapstructure:"DB_PASSWORD"`
	DatabaseCacheAddress string `mapstructure:"DB_CACHE_ADDRESS"`
	DatabaseCachePort    int    `mapstructure:"DB_CACHE_PORT"`
	CorsAllowOrigins     string `mapstructure:"CORS_ALLOW_ORIGINS"`
	AdminJWTSecret       string `mapstructure:"ADMIN_JWT_SECRET"`
	SchedulerEnabled     bool   `mapstructure:"SCHEDULER_ENABLED"`

	// Vote ingestion limits
	MaxVotesPerDay   int `mapstructure:"MAX_VOTES_PER_DAY"`
	SpamWindowSecs   int `mapstructure:"SPAM_WINDOW_SECONDS"`
	SpamMaxIdentical int `mapstructure:"SPAM_MAX_IDENTICAL"`

	// Matching thresholds
	AutoMergeThreshold float64 `mapstructure:"AUTO_MERGE_THRESHOLD"`
	ConfidenceGap      float64 `mapstructure:"CONFIDENCE_GAP"`

	// Semantic matcher (Anthropic)
	SemanticMatchEnabled    bool   `mapstructure:"SEMANTIC_MATCH_ENABLED"`
	SemanticAutoLinkMedium  bool   `mapstructure:"SEMANTIC_AUTO_LINK_MEDIUM"`
	AnthropicAPIKey         string `mapstructure:"ANTHROPIC_API_KEY"`

	// Catalog search enrichment (Spotify)
	CatalogSearchEnabled bool   `mapstructure:"CATALOG_SEARCH_ENABLED"`
	SpotifyClientID      string `mapstructure:"SPOTIFY_CLIENT_ID"`
	SpotifyClientSecret  string `mapstructure:"SPOTIFY_CLIENT_SECRET"`
}

var ConfigInstance Config

func InitConfig() (Config, error) {
	log := logger.New("config").Function("InitConfig")
	log.Info("Initializing config")

	viper.AutomaticEnv()

	envVars := []string{
		"GENERAL_VERSION", "ENVIRONMENT", "SERVER_PORT",
		"DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD",
		"DB_CACHE_ADDRESS", "DB_CACHE_PORT",
		"CORS_ALLOW_ORIGINS", "ADMIN_JWT_SECRET", "SCHEDULER_ENABLED",
		"MAX_VOTES_PER_DAY", "SPAM_WINDOW_SECONDS", "SPAM_MAX_IDENTICAL",
		"AUTO_MERGE_THRESHOLD", "CONFIDENCE_GAP",
		"SEMANTIC_MATCH_ENABLED", "SEMANTIC_AUTO_LINK_MEDIUM", "ANTHROPIC_API_KEY",
		"CATALOG_SEARCH_ENABLED", "SPOTIFY_CLIENT_ID", "SPOTIFY_CLIENT_SECRET",
	}

	for _, env := range envVars {
		if err := viper.BindEnv(env); err != nil {
			log.Warn("Failed to bind environment variable", "env", env, "error", err)
		}
	}

	setDefaults()

	envVarsSet := viper.IsSet("SERVER_PORT") && viper.IsSet("DB_HOST")
	if envVarsSet {
		log.Info("Environment variables detected, skipping file loading")
	} else {
		log.Info("Environment variables not found, attempting to load from files")

		viper.SetConfigFile(".env")
		viper.SetConfigType("env")
		if err := viper.ReadInConfig(); err != nil {
			log.Warn("Could not find .env file", "error", err)
		} else {
			log.Info("Loaded .env file")
		}

		viper.SetConfigFile(".env.local")
		if err := viper.MergeInConfig(); err != nil {
			log.Debug("No .env.local file found", "error", err)
		} else {
			log.Info("Loaded .env.local overrides")
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return Config{}, log.Err("Fatal error: could not unmarshal config", err)
	}

	if err := validateConfig(config, log); err != nil {
		return Config{}, err
	}
	return ConfigInstance, nil
}

func setDefaults() {
	viper.SetDefault("MAX_VOTES_PER_DAY", 5)
	viper.SetDefault("SPAM_WINDOW_SECONDS", 60)
	viper.SetDefault("SPAM_MAX_IDENTICAL", 3)
	viper.SetDefault("AUTO_MERGE_THRESHOLD", 0.92)
	viper.SetDefault("CONFIDENCE_GAP", 0.10)
	viper.SetDefault("SEMANTIC_AUTO_LINK_MEDIUM", false)
}

func GetConfig() Config {
	return ConfigInstance
}

func validateConfig(config Config, log logger.Logger) error {
	if config.ServerPort <= 0 {
		return log.Error(
			"Fatal error: invalid server port",
			"port", config.ServerPort,
		)
	}

	if config.MaxVotesPerDay <= 0 {
		return log.Error(
			"Fatal error: invalid daily vote ceiling",
			"maxVotesPerDay", config.MaxVotesPerDay,
		)
	}

	if config.AutoMergeThreshold <= 0 || config.AutoMergeThreshold > 1 {
		return log.Error(
			"Fatal error: auto-merge threshold must be in (0, 1]",
			"threshold", config.AutoMergeThreshold,
		)
	}

	if config.SemanticMatchEnabled && config.AnthropicAPIKey == "" {
		return log.ErrMsg(
			"Fatal error: ANTHROPIC_API_KEY required when SEMANTIC_MATCH_ENABLED is set",
		)
	}

	if config.CatalogSearchEnabled {
		if config.SpotifyClientID == "" || config.SpotifyClientSecret == "" {
			return log.ErrMsg(
				"Fatal error: SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET required when CATALOG_SEARCH_ENABLED is set",
			)
		}
	}

	ConfigInstance = config
	return nil
}
