package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the application configuration. It is loaded once at startup
// and treated as immutable afterwards.
type Config struct {
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	JWTSecret   string `mapstructure:"JWT_SECRET"`
	Port        string `mapstructure:"PORT"`

	// Redirect allow-policy. SiteOrigin always passes; AllowedRedirectOrigins
	// and TrustedRedirectSuffixes are comma-separated lists.
	SiteOrigin              string `mapstructure:"SITE_ORIGIN"`
	Environment             string `mapstructure:"ENVIRONMENT"` // dev, preview or prod
	AllowedRedirectOrigins  string `mapstructure:"ALLOWED_REDIRECT_ORIGINS"`
	TrustedRedirectSuffixes string `mapstructure:"TRUSTED_REDIRECT_SUFFIXES"`

	// Outbound email. When either is empty the mailer logs magic links
	// instead of sending them.
	EmailFrom    string `mapstructure:"EMAIL_FROM"`
	ResendAPIKey string `mapstructure:"RESEND_API_KEY"`
}

var AppConfig *Config

// LoadConfig loads the configuration from a .env file and environment variables.
func LoadConfig() {
	viper.AddConfigPath(".")
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "dev")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("Warning: .env file not found, loading from environment variables")
	}

	err := viper.Unmarshal(&AppConfig)
	if err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}
}

// AllowedOrigins returns the configured redirect origin allow-set,
// including the site origin itself.
func (c *Config) AllowedOrigins() map[string]bool {
	origins := make(map[string]bool)
	if c.SiteOrigin != "" {
		origins[c.SiteOrigin] = true
	}
	for _, o := range splitList(c.AllowedRedirectOrigins) {
		origins[o] = true
	}
	return origins
}

// TrustedSuffixes returns the hostname suffixes accepted by the redirect
// validator (e.g. a hosting provider's shared preview domain).
func (c *Config) TrustedSuffixes() []string {
	return splitList(c.TrustedRedirectSuffixes)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
