package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"trends-dashboard/internal/config"
	"trends-dashboard/pkg/logger"
	"trends-dashboard/pkg/metrics"
	"trends-dashboard/pkg/monitor"
	"trends-dashboard/pkg/sheets"
	"trends-dashboard/pkg/trends"
)

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("CRITICAL ERROR: Application panic recovered: %v\n", r)
			os.Exit(1)
		}
	}()

	var (
		configPath = flag.String("config", getEnvOrDefault("TRENDS_CONFIG", ""), "Path to a YAML config file (env: TRENDS_CONFIG)")
		debug      = flag.Bool("debug", os.Getenv("DEBUG") == "true", "Enable debug logging (env: DEBUG)")
		help       = flag.Bool("help", false, "Show help message")
	)
	flag.Parse()

	if *help {
		printUsage()
		return
	}

	// Local development keeps credentials in .env; CI sets real variables
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Printf("WARNING: failed to load .env: %v\n", err)
	}

	cfg, err := config.NewManager().Load(*configPath)
	if err != nil {
		fmt.Printf("ERROR: %v\n", err)
		fmt.Println("")
		printUsage()
		os.Exit(1)
	}

	logConfig := logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		TimeFormat: cfg.Logger.TimeFormat,
	}
	if *debug {
		logConfig.Level = "debug"
	}
	runID := uuid.NewString()
	logger.SetLogger(logger.New(logConfig).WithField("run_id", runID))

	log := logger.GetLogger().WithField("component", "main")
	secureLog := logger.GetSecurityLogger()

	if *debug {
		log.Info("Debug logging enabled")
	}

	startTime := time.Now()
	fmt.Printf("=== Trends Dashboard Update ===\n")
	fmt.Printf("Time: %s\n", startTime.In(cfg.Location()).Format("2006-01-02 15:04:05"))

	credentialSource := "GOOGLE_SHEETS_CREDS"
	if cfg.Credentials.JSON == "" {
		credentialSource = secureLog.MaskPath(cfg.Credentials.File)
	}
	secureLog.SafeInfo("Configuration loaded", map[string]interface{}{
		"spreadsheet":     secureLog.MaskSpreadsheetID(cfg.Spreadsheet.ID),
		"credentials":     credentialSource,
		"trends_api":      secureLog.MaskAPIEndpoint(cfg.Trends.APIURL),
		"topics":          len(cfg.Topics),
		"reference_start": cfg.ReferenceStart().Format(time.RFC3339),
		"timezone":        cfg.Location().String(),
		"metrics_push":    cfg.Metrics.PushgatewayURL != "",
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Run.Deadline)
	defer cancel()

	srv, err := sheets.NewService(ctx, sheets.Credentials{
		JSON: cfg.Credentials.JSON,
		File: cfg.Credentials.File,
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to load Google credentials")
	}

	backend, err := sheets.OpenGoogle(ctx, srv, cfg.Spreadsheet.ID)
	if err != nil {
		secureLog.SafeError("Failed to open spreadsheet", err, map[string]interface{}{
			"spreadsheet": secureLog.MaskSpreadsheetID(cfg.Spreadsheet.ID),
		})
		os.Exit(1)
	}
	log.WithField("title", backend.Title()).Info("Connected to spreadsheet")
	fmt.Printf("Connected to: %s\n", backend.Title())

	connection := trends.DefaultConnectionConfig()
	if cfg.Trends.Timeout > 0 {
		connection.RequestTimeout = cfg.Trends.Timeout
	}
	trendsClient, err := trends.NewClient(trends.ClientConfig{
		BaseURL:      cfg.Trends.APIURL,
		APIKey:       cfg.Trends.APIKey,
		Geo:          cfg.Trends.Geo,
		Category:     cfg.Trends.Category,
		Language:     cfg.Trends.Language,
		TZOffset:     cfg.Trends.TZOffset,
		RequestPause: cfg.Trends.RequestPause,
		Connection:   connection,
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to create trends client")
	}

	topics := make([]monitor.Topic, len(cfg.Topics))
	for i, t := range cfg.Topics {
		topics[i] = monitor.Topic{Name: t.Name, Keywords: t.Keywords, Description: t.Description}
	}

	runMetrics := metrics.New()
	trendsMonitor, err := monitor.NewMonitorBuilder().
		WithTopics(topics).
		WithFetcher(trendsClient).
		WithWriter(sheets.NewWriter(backend)).
		WithMetrics(runMetrics).
		WithLocation(cfg.Location()).
		WithReferenceStart(cfg.ReferenceStart()).
		WithTopicPause(cfg.Run.TopicPause).
		Build()
	if err != nil {
		log.WithError(err).Fatal("Failed to create trends monitor")
	}

	var outcome *monitor.Outcome
	func() {
		defer func() {
			if r := recover(); r != nil {
				log.WithField("panic", r).Error("Panic during trends update")
			}
		}()
		outcome = trendsMonitor.Run(ctx)
	}()
	if outcome == nil {
		os.Exit(1)
	}

	duration := time.Since(startTime)
	runMetrics.Finish(time.Now(), duration, outcome.Failed())
	if cfg.Metrics.PushgatewayURL != "" {
		if err := runMetrics.Push(ctx, cfg.Metrics.PushgatewayURL, cfg.Metrics.Job); err != nil {
			log.WithError(err).Warn("Failed to push run metrics")
		}
	}

	log.WithFields(map[string]interface{}{
		"total_topics":  len(outcome.Results()),
		"success_count": outcome.Succeeded(),
		"failure_count": outcome.Failed(),
		"log_tab_ok":    outcome.LogErr == nil,
		"duration":      duration.String(),
	}).Info("Update completed")

	fmt.Printf("\n=== Trends Update Results ===\n")
	fmt.Printf("Topics: %d\n", len(outcome.Results()))
	fmt.Printf("Successful: %d\n", outcome.Succeeded())
	fmt.Printf("Failed: %d\n", outcome.Failed())
	fmt.Printf("Duration: %s\n", duration.Round(time.Millisecond))

	fmt.Printf("\n=== Individual Results ===\n")
	for _, result := range outcome.Results() {
		status := "OK    "
		if !result.Success() {
			status = "FAILED"
		}
		fmt.Printf("%s %s -> %s, %s\n", status, result.Topic.Name, result.Topic.TrafficTab(), result.Topic.RelatedTab())
		if result.Err != nil {
			fmt.Printf("   Error: %s\n", result.Err)
		}
	}
	if outcome.LogErr != nil {
		fmt.Printf("\nUpdate Log tab was not written: %s\n", outcome.LogErr)
	}
}

func printUsage() {
	fmt.Println("Trends Dashboard: Google Trends to Google Sheets updater")
	fmt.Println("")
	fmt.Println("USAGE:")
	fmt.Println("    ./trends-dashboard [-config config.yaml] [-debug]")
	fmt.Println("")
	fmt.Println("OPTIONS:")
	fmt.Println("    -config string   YAML config file (env: TRENDS_CONFIG)")
	fmt.Println("    -debug           Enable debug logging (env: DEBUG)")
	fmt.Println("    -help            Show this help message")
	fmt.Println("")
	fmt.Println("ENVIRONMENT VARIABLES:")
	fmt.Println("    GOOGLE_SHEETS_CREDS        Service account JSON (takes precedence)")
	fmt.Println("    GOOGLE_SHEETS_CREDS_FILE   Path to the service account JSON file")
	fmt.Println("    SPREADSHEET_ID             Target spreadsheet")
	fmt.Println("    TRENDS_API_URL             Trends endpoint, comma-separated for rotation (required)")
	fmt.Println("    TRENDS_TRENDS_API_KEY      Bearer token for the trends endpoint")
	fmt.Println("    TRENDS_RUN_REFERENCE_START Window start, RFC 3339 with offset")
	fmt.Println("    TRENDS_RUN_TIMEZONE        Display timezone (Australia/Sydney)")
	fmt.Println("    PUSHGATEWAY_URL            Push run metrics to a Prometheus Pushgateway")
	fmt.Println("    LOG_LEVEL, LOG_FORMAT      Logging before config is loaded")
	fmt.Println("")
	fmt.Println("Any config key can be set as TRENDS_<SECTION>_<KEY>, e.g. TRENDS_TRENDS_GEO=AU.")
	fmt.Println("A .env file in the working directory is loaded when present.")
}
