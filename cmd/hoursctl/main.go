// Command hoursctl edits, exports and serves company business hours.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/AIProjectsAxis/AI-Receiptionist-User-sub002/internal/config"
	"github.com/AIProjectsAxis/AI-Receiptionist-User-sub002/internal/dashapi"
	"github.com/AIProjectsAxis/AI-Receiptionist-User-sub002/internal/onboarding"
)

var (
	configPath string
	verbose    bool
	companyID  string
)

var rootCmd = &cobra.Command{
	Use:   "hoursctl",
	Short: "Manage receptionist business hours",
	Long: `hoursctl loads a company's business hours from the dashboard API,
edits them with the same rules as the onboarding form, and saves them back.

Examples:
  hoursctl show --company acme
  hoursctl edit --company acme --uniform end_time=18:00 --weekend=true --save
  hoursctl time to-utc 2024-03-05T10:00 Asia/Kolkata`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: $HOURS_CONFIG_PATH or "+config.DefaultPath+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(optionsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(timeCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	// .env is optional
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app is everything a command talking to the dashboard needs.
type app struct {
	cfg     *config.Config
	logger  zerolog.Logger
	client  *dashapi.Client
	redis   *redis.Client
	service *onboarding.Service
}

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = os.Getenv("HOURS_CONFIG_PATH")
	}
	return config.Load(path)
}

func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger := cfg.NewLogger(os.Stderr)
	if verbose {
		logger = logger.Level(zerolog.DebugLevel)
	}

	rate, burst := cfg.APIRate()
	client := dashapi.NewClient(cfg.API.BaseURL, cfg.API.Token,
		dashapi.WithTimeout(cfg.APITimeout()),
		dashapi.WithRateLimit(rate, burst),
		dashapi.WithLogger(&logger),
	)

	a := &app{cfg: cfg, logger: logger, client: client}
	if cfg.Redis.Address != "" && cfg.CacheTTL() > 0 {
		a.redis = redis.NewClient(&redis.Options{Addr: cfg.Redis.Address, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		client.UseRedisCache(a.redis, cfg.CacheTTL())
	}

	sessions := onboarding.NewSessionStore(cfg.SessionIdleTimeout())
	a.service = onboarding.NewService(client, sessions, &a.logger)
	return a, nil
}

func (a *app) Close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
}

func requireCompany(cmd *cobra.Command) {
	cmd.Flags().StringVar(&companyID, "company", "", "Company ID (required)")
	_ = cmd.MarkFlagRequired("company")
}

// commandTimeout bounds one-shot commands; the API client has its own per-request timeout.
const commandTimeout = 3 * time.Minute
