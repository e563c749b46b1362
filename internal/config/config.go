package config

import "time"

type Config struct {
	Spreadsheet SpreadsheetConfig `mapstructure:"spreadsheet"`
	Credentials CredentialsConfig `mapstructure:"credentials"`
	Trends      TrendsConfig      `mapstructure:"trends"`
	Run         RunConfig         `mapstructure:"run"`
	Topics      []TopicConfig     `mapstructure:"topics"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
	Logger      LoggerConfig      `mapstructure:"logger"`

	location       *time.Location
	referenceStart time.Time
}

type SpreadsheetConfig struct {
	ID string `mapstructure:"id"`
}

// CredentialsConfig holds the service account document inline or as a path.
// JSON wins when both are set.
type CredentialsConfig struct {
	JSON string `mapstructure:"json"`
	File string `mapstructure:"file"`
}

type TrendsConfig struct {
	APIURL       string        `mapstructure:"api_url"` // comma-separated for rotation
	APIKey       string        `mapstructure:"api_key"`
	Geo          string        `mapstructure:"geo"`
	Category     int           `mapstructure:"category"`
	Language     string        `mapstructure:"language"`
	TZOffset     int           `mapstructure:"tz_offset"` // minutes
	RequestPause time.Duration `mapstructure:"request_pause"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

type RunConfig struct {
	ReferenceStart string        `mapstructure:"reference_start"` // RFC 3339 with offset
	Timezone       string        `mapstructure:"timezone"`
	TopicPause     time.Duration `mapstructure:"topic_pause"`
	Deadline       time.Duration `mapstructure:"deadline"`
}

type TopicConfig struct {
	Name        string   `mapstructure:"name"`
	Keywords    []string `mapstructure:"keywords"`
	Description string   `mapstructure:"description"`
}

type MetricsConfig struct {
	PushgatewayURL string `mapstructure:"pushgateway_url"`
	Job            string `mapstructure:"job"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	TimeFormat string `mapstructure:"time_format"`
}

// Location is the display timezone, resolved during validation
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

// ReferenceStart is the parsed lower bound of every fetch window
func (c *Config) ReferenceStart() time.Time {
	return c.referenceStart
}

type Manager interface {
	Load(configPath string) (*Config, error)
	GetConfig() *Config
}
