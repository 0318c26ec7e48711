package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"mailmix/internal/classify"
)

// Config holds all application configuration
type Config struct {
	App        App        `mapstructure:"app"`
	Feed       Feed       `mapstructure:"feed"`
	History    History    `mapstructure:"history"`
	Select     Select     `mapstructure:"select"`
	Email      Email      `mapstructure:"email"`
	Categories []Category `mapstructure:"categories"`
}

// App holds general application configuration
type App struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
}

// Feed holds feed ingestion configuration
type Feed struct {
	URL       string `mapstructure:"url"`
	UserAgent string `mapstructure:"user_agent"`
	Timeout   string `mapstructure:"timeout"`
}

// History holds persisted selection history configuration
type History struct {
	Path string `mapstructure:"path"`
}

// Select holds selection engine configuration
type Select struct {
	MaxArticles  int `mapstructure:"max_articles"`
	MonthsToShow int `mapstructure:"months_to_show"`
}

// Email holds email composition templates
type Email struct {
	SubjectTemplate string `mapstructure:"subject_template"`
	BodyTemplate    string `mapstructure:"body_template"`
}

// Category defines one marketing-intent category and its keyword list.
// The slice order in Config.Categories is the priority order, and the
// keyword order within a category is the match order.
type Category struct {
	ID       string   `mapstructure:"id"`
	Keywords []string `mapstructure:"keywords"`
}

var globalConfig *Config

// Load loads the configuration from config file, environment and defaults
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Printf("Warning: Error loading .env file: %v\n", err)
		}
	}

	// Configure viper
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".mailmix")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	bindEnvironmentVariables()

	viper.SetEnvPrefix("mailmix")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("Failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

// Reset clears the cached global configuration. Used by tests.
func Reset() {
	globalConfig = nil
	viper.Reset()
}

// ClassifyCategories converts the configured category list into the
// classifier's type, preserving priority order.
func (c *Config) ClassifyCategories() []classify.Category {
	cats := make([]classify.Category, len(c.Categories))
	for i, cat := range c.Categories {
		cats[i] = classify.Category{ID: cat.ID, Keywords: cat.Keywords}
	}
	return cats
}

// FeedTimeout returns the parsed feed fetch timeout, falling back to 10s.
func (c *Config) FeedTimeout() time.Duration {
	d, err := time.ParseDuration(c.Feed.Timeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// HistoryPath returns the history file path with ~ expanded.
func (c *Config) HistoryPath() string {
	path := c.History.Path
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return path
}

// setDefaults sets default configuration values
func setDefaults() {
	// App defaults
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.log_level", "info")

	// Feed defaults
	viper.SetDefault("feed.url", "https://rss.app/feeds/2IEcDYoo7hF8d27H.xml")
	viper.SetDefault("feed.user_agent", "mailmix/1.0")
	viper.SetDefault("feed.timeout", "10s")

	// History defaults
	viper.SetDefault("history.path", "sent_posts.json")

	// Selection defaults: one slot per category plus the trailing window
	// shown in the period picker (current month + 2 previous)
	viper.SetDefault("select.max_articles", 4)
	viper.SetDefault("select.months_to_show", 3)

	// Email defaults live in the email package templates; empty means
	// "use built-in template"
	viper.SetDefault("email.subject_template", "")
	viper.SetDefault("email.body_template", "")

	// Category defaults come from the classifier package; priority order
	// matters, first match wins
	defaults := make([]map[string]any, 0, len(classify.DefaultCategories()))
	for _, cat := range classify.DefaultCategories() {
		defaults = append(defaults, map[string]any{"id": cat.ID, "keywords": cat.Keywords})
	}
	viper.SetDefault("categories", defaults)
}

// bindEnvironmentVariables sets up flexible environment variable binding
func bindEnvironmentVariables() {
	bindEnvKeys("feed.url", []string{
		"MAILMIX_FEED_URL",
		"FEED_URL",
	})
	bindEnvKeys("history.path", []string{
		"MAILMIX_HISTORY_PATH",
	})
}

// bindEnvKeys binds multiple environment variable names to a config key
func bindEnvKeys(configKey string, envKeys []string) {
	for _, envKey := range envKeys {
		if value := os.Getenv(envKey); value != "" {
			viper.Set(configKey, value)
			break
		}
	}
}

// validateConfig checks for configuration mistakes that would only surface
// deep inside a selection run
func validateConfig(config *Config) error {
	if config.Feed.URL == "" {
		return fmt.Errorf("feed.url must not be empty")
	}
	if config.Select.MaxArticles < 1 {
		return fmt.Errorf("select.max_articles must be at least 1, got %d", config.Select.MaxArticles)
	}
	if config.Select.MonthsToShow < 1 {
		return fmt.Errorf("select.months_to_show must be at least 1, got %d", config.Select.MonthsToShow)
	}
	seen := make(map[string]bool)
	for _, cat := range config.Categories {
		if cat.ID == "" {
			return fmt.Errorf("category with empty id")
		}
		if seen[cat.ID] {
			return fmt.Errorf("duplicate category id %q", cat.ID)
		}
		seen[cat.ID] = true
		if len(cat.Keywords) == 0 {
			return fmt.Errorf("category %q has no keywords", cat.ID)
		}
	}
	return nil
}
