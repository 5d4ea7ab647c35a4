package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/frahmantamala/expense-api/internal"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	clearData bool
	configDir string
)

var rootCmd = &cobra.Command{
	Use:   "expense-api",
	Short: "Expense API",
	Long:  `Personal expense tracking: categories, expenses and monthly reports.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// envBindings maps config keys to the environment variables that set them.
var envBindings = map[string][]string{
	"app.name":                             {"APP_NAME"},
	"app.version":                          {"APP_VERSION"},
	"app.env":                              {"APP_ENV"},
	"http_server.port":                     {"PORT"},
	"database.source":                      {"DATABASE_URL"},
	"security.jwt_secret":                  {"JWT_SECRET"},
	"security.jwt_algorithm":               {"JWT_ALGORITHM"},
	"security.access_token_expire_minutes": {"ACCESS_TOKEN_EXPIRE_MINUTES"},
	"security.bcrypt_cost":                 {"BCRYPT_COST"},
	"observability.metrics.enabled":        {"METRICS_ENABLED"},
	"observability.tracing.enabled":        {"TRACING_ENABLED"},
	"observability.tracing.endpoint":       {"OTEL_EXPORTER_OTLP_ENDPOINT"},
	"observability.tracing.service_name":   {"OTEL_SERVICE_NAME", "APP_NAME"},
	"observability.logging.level":          {"LOG_LEVEL"},
	"observability.logging.format":         {"LOG_FORMAT"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "Expense API")
	v.SetDefault("app.version", "0.1.0")
	v.SetDefault("app.env", "development")

	v.SetDefault("http_server.port", 8000)
	v.SetDefault("http_server.read_header_timeout", "5s")
	v.SetDefault("http_server.read_timeout", "15s")
	v.SetDefault("http_server.write_timeout", "15s")
	v.SetDefault("http_server.idle_timeout", "60s")
	v.SetDefault("http_server.shutdown_timeout", "30s")
	v.SetDefault("http_server.max_body_bytes", 1<<20)

	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.conn_max_idle_time", "5m")

	v.SetDefault("security.jwt_algorithm", "HS256")
	v.SetDefault("security.access_token_expire_minutes", 60)
	v.SetDefault("security.bcrypt_cost", 10)

	v.SetDefault("observability.metrics.enabled", true)
	v.SetDefault("observability.metrics.path", "/metrics")
	v.SetDefault("observability.tracing.enabled", false)
	v.SetDefault("observability.tracing.service_name", "expense-api")
	v.SetDefault("observability.tracing.sampling_rate", 1.0)
}

// loadConfig layers defaults, an optional config.yml in path, a .env file
// and finally the process environment.
func loadConfig(path string) (*internal.Config, error) {
	if err := godotenv.Load(filepath.Join(path, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env: %w", err)
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	for key, envs := range envBindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("error binding %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg internal.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	cfg.Security.JWTAlgorithm = strings.ToUpper(cfg.Security.JWTAlgorithm)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("error validating config: %w", err)
	}

	return &cfg, nil
}

func init() {
	// amounts are numbers on the wire
	decimal.MarshalJSONWithoutQuotes = true

	rootCmd.PersistentFlags().StringVarP(&configDir, "config-dir", "c", ".", "directory holding config.yml and .env")
	seedCmd.Flags().BoolVar(&clearData, "clear", false, "Clear the demo user's data before seeding")

	rootCmd.AddCommand(httpServerCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}
