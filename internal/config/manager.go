package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// MaxKeywordsPerTopic is the provider's comparison limit
const MaxKeywordsPerTopic = 5

// envBindings maps config keys to the unprefixed variables CI sets
var envBindings = map[string]string{
	"credentials.json":        "GOOGLE_SHEETS_CREDS",
	"credentials.file":        "GOOGLE_SHEETS_CREDS_FILE",
	"spreadsheet.id":          "SPREADSHEET_ID",
	"trends.api_url":          "TRENDS_API_URL",
	"metrics.pushgateway_url": "PUSHGATEWAY_URL",
}

type manager struct {
	mu     sync.RWMutex
	config *Config
	viper  *viper.Viper
	now    func() time.Time
}

func NewManager() Manager {
	return &manager{
		viper: viper.New(),
		now:   time.Now,
	}
}

// Load reads defaults, the optional config file and the environment
func (m *manager) Load(configPath string) (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.setupViper(configPath); err != nil {
		return nil, fmt.Errorf("failed to setup viper: %w", err)
	}

	if configPath != "" {
		if err := m.viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := m.viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := m.validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	m.config = &config
	return &config, nil
}

func (m *manager) GetConfig() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

func (m *manager) setupViper(configPath string) error {
	setDefaults(m.viper)

	if configPath != "" {
		m.viper.SetConfigFile(configPath)
	}

	m.viper.SetEnvPrefix("TRENDS")
	m.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	m.viper.AutomaticEnv()

	for key, env := range envBindings {
		if err := m.viper.BindEnv(key, env); err != nil {
			return fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("spreadsheet.id", "1aSC_o7FqYVTB9B96RJQGphhwzDGJfIbPAgTR5kXwKbo")

	v.SetDefault("credentials.json", "")
	v.SetDefault("credentials.file", "")

	v.SetDefault("trends.api_url", "")
	v.SetDefault("trends.api_key", "")
	v.SetDefault("trends.geo", "AU")
	v.SetDefault("trends.category", 0)
	v.SetDefault("trends.language", "en-AU")
	v.SetDefault("trends.tz_offset", 600)
	v.SetDefault("trends.request_pause", "1s")
	v.SetDefault("trends.timeout", "60s")

	v.SetDefault("run.reference_start", "2025-12-14T00:00:00+11:00")
	v.SetDefault("run.timezone", "Australia/Sydney")
	v.SetDefault("run.topic_pause", "2s")
	v.SetDefault("run.deadline", "30m")

	v.SetDefault("topics", []map[string]interface{}{
		{
			"name":        "Bondi Beach",
			"keywords":    []string{"Bondi shooting"},
			"description": "Incident monitoring",
		},
		{
			"name":        "Crisis Support",
			"keywords":    []string{"Lifeline", "Crisis support"},
			"description": "Distress signals monitoring",
		},
	})

	v.SetDefault("metrics.pushgateway_url", "")
	v.SetDefault("metrics.job", "trends_dashboard")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("logger.time_format", "")
}

func (m *manager) validateConfig(config *Config) error {
	if strings.TrimSpace(config.Spreadsheet.ID) == "" {
		return fmt.Errorf("spreadsheet.id cannot be empty")
	}

	if strings.TrimSpace(config.Trends.APIURL) == "" {
		return fmt.Errorf("trends.api_url cannot be empty (set TRENDS_API_URL)")
	}

	if config.Trends.Category < 0 {
		return fmt.Errorf("trends.category must not be negative: %d", config.Trends.Category)
	}

	if config.Trends.TZOffset < -840 || config.Trends.TZOffset > 840 {
		return fmt.Errorf("trends.tz_offset out of range: %d", config.Trends.TZOffset)
	}

	if _, err := language.Parse(config.Trends.Language); err != nil {
		return fmt.Errorf("invalid trends.language %q: %w", config.Trends.Language, err)
	}

	if config.Trends.RequestPause < 0 || config.Run.TopicPause < 0 {
		return fmt.Errorf("pauses must not be negative")
	}

	if config.Run.Deadline <= 0 {
		return fmt.Errorf("run.deadline must be positive")
	}

	loc, err := time.LoadLocation(config.Run.Timezone)
	if err != nil {
		return fmt.Errorf("invalid run.timezone %q: %w", config.Run.Timezone, err)
	}
	config.location = loc

	start, err := time.Parse(time.RFC3339, config.Run.ReferenceStart)
	if err != nil {
		return fmt.Errorf("invalid run.reference_start %q: %w", config.Run.ReferenceStart, err)
	}
	if start.After(m.now()) {
		return fmt.Errorf("run.reference_start is in the future: %s", config.Run.ReferenceStart)
	}
	config.referenceStart = start

	return validateTopics(config.Topics)
}

// validateTopics checks names and keywords, normalizing keywords to NFC in place
func validateTopics(topics []TopicConfig) error {
	if len(topics) == 0 {
		return fmt.Errorf("at least one topic is required")
	}

	names := make(map[string]bool, len(topics))
	for i := range topics {
		topic := &topics[i]
		topic.Name = strings.TrimSpace(topic.Name)
		if topic.Name == "" {
			return fmt.Errorf("topic #%d has no name", i+1)
		}
		if names[topic.Name] {
			return fmt.Errorf("duplicate topic name: %s", topic.Name)
		}
		names[topic.Name] = true

		if len(topic.Keywords) == 0 {
			return fmt.Errorf("topic %s has no keywords", topic.Name)
		}
		if len(topic.Keywords) > MaxKeywordsPerTopic {
			return fmt.Errorf("topic %s has %d keywords, at most %d allowed", topic.Name, len(topic.Keywords), MaxKeywordsPerTopic)
		}

		seen := make(map[string]bool, len(topic.Keywords))
		for j, keyword := range topic.Keywords {
			keyword = norm.NFC.String(strings.TrimSpace(keyword))
			if keyword == "" {
				return fmt.Errorf("topic %s has an empty keyword", topic.Name)
			}
			if seen[keyword] {
				return fmt.Errorf("topic %s repeats keyword %q", topic.Name, keyword)
			}
			seen[keyword] = true
			topic.Keywords[j] = keyword
		}
	}

	return nil
}
