package trends

import (
	"time"

	"github.com/valyala/fasthttp"
)

// ConnectionConfig holds HTTP settings for provider requests
type ConnectionConfig struct {
	MaxConnsPerHost     int           `json:"max_conns_per_host"`
	MaxIdleConnDuration time.Duration `json:"max_idle_conn_duration"`
	ReadTimeout         time.Duration `json:"read_timeout"`
	WriteTimeout        time.Duration `json:"write_timeout"`
	RequestTimeout      time.Duration `json:"request_timeout"`
}

// DefaultConnectionConfig suits a handful of sequential requests per run
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		MaxConnsPerHost:     4,
		MaxIdleConnDuration: 30 * time.Second,
		ReadTimeout:         30 * time.Second,
		WriteTimeout:        10 * time.Second,
		RequestTimeout:      30 * time.Second,
	}
}

// newFastHTTPClient builds the client used for provider requests
func newFastHTTPClient(config ConnectionConfig) *fasthttp.Client {
	return &fasthttp.Client{
		Name:                "trends-dashboard/1.0",
		MaxConnsPerHost:     config.MaxConnsPerHost,
		MaxIdleConnDuration: config.MaxIdleConnDuration,
		ReadTimeout:         config.ReadTimeout,
		WriteTimeout:        config.WriteTimeout,
	}
}
