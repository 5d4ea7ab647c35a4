package internal

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func validConfig() Config {
	return Config{
		Server: ServerConfig{Port: 8000, ReadHeaderTimeout: 5 * time.Second, ReadTimeout: 15 * time.Second},
		Database: DatabaseConfig{
			Source:       "postgres://localhost/expenses",
			MaxOpenConns: 10,
			MaxIdleConns: 5,
		},
		Security: SecurityConfig{
			JWTSecret:                "secret",
			JWTAlgorithm:             "HS256",
			AccessTokenExpireMinutes: 60,
			BCryptCost:               10,
		},
		Observability: ObservabilityConfig{
			Metrics: MetricsConfig{Enabled: true, Path: "/metrics"},
		},
	}
}

var _ = Describe("Config", func() {
	It("accepts a complete configuration", func() {
		cfg := validConfig()
		Expect(cfg.Validate()).To(Succeed())
		Expect(cfg.Security.AccessTokenTTL()).To(Equal(time.Hour))
	})

	DescribeTable("rejects",
		func(mutate func(*Config), message string) {
			cfg := validConfig()
			mutate(&cfg)
			err := cfg.Validate()
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring(message))
		},
		Entry("missing database url", func(c *Config) { c.Database.Source = "" }, "DATABASE_URL"),
		Entry("missing jwt secret", func(c *Config) { c.Security.JWTSecret = "" }, "JWT_SECRET"),
		Entry("asymmetric algorithm", func(c *Config) { c.Security.JWTAlgorithm = "RS256" }, "unsupported jwt_algorithm"),
		Entry("zero expiry", func(c *Config) { c.Security.AccessTokenExpireMinutes = 0 }, "access_token_expire_minutes"),
		Entry("bcrypt cost", func(c *Config) { c.Security.BCryptCost = 2 }, "bcrypt_cost"),
		Entry("port", func(c *Config) { c.Server.Port = 70000 }, "invalid port"),
		Entry("body cap", func(c *Config) { c.Server.MaxBodyBytes = -1 }, "max_body_bytes"),
		Entry("idle above open", func(c *Config) { c.Database.MaxIdleConns = 20 }, "max_idle_conns"),
		Entry("metrics path", func(c *Config) { c.Observability.Metrics.Path = "metrics" }, "metrics path"),
		Entry("log level", func(c *Config) { c.Observability.Logging.Level = "loud" }, "unknown log level"),
	)
})
