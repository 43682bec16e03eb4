package config

import (
	"strings"

	"github.com/spf13/viper"
)

const (
	GatewayEnvSandbox    = "sandbox"
	GatewayEnvProduction = "production"
)

// GatewayConfig holds the Cashfree payment-gateway settings. The payment
// path is disabled (detected configuration error, not a crash) when the
// credentials are absent.
type GatewayConfig struct {
	AppID       string `mapstructure:"appId"`
	SecretKey   string `mapstructure:"secretKey"`
	Environment string `mapstructure:"environment"`
	ReturnURL   string `mapstructure:"returnUrl"`
	NotifyURL   string `mapstructure:"notifyUrl"`
}

func (g GatewayConfig) Configured() bool {
	return g.AppID != "" && g.SecretKey != ""
}

func (g GatewayConfig) IsProduction() bool {
	return strings.EqualFold(g.Environment, GatewayEnvProduction)
}

// loadGatewayConfig reads gateway settings from an optional givehope.yml
// config file, with environment variables taking precedence.
func loadGatewayConfig() GatewayConfig {
	v := viper.New()

	v.SetConfigName("givehope")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/givehope")
	v.AddConfigPath(".")

	v.SetEnvPrefix("CASHFREE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("gateway.environment", GatewayEnvSandbox)
	v.SetDefault("gateway.returnUrl", "http://localhost:8080/thank-you?order_id={order_id}")
	v.SetDefault("gateway.notifyUrl", "http://localhost:8080/api/cashfree/webhook")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// unreadable file falls back to env-only configuration
			_ = err
		}
	}

	cfg := GatewayConfig{}
	_ = v.UnmarshalKey("gateway", &cfg)

	if appID := strings.TrimSpace(v.GetString("APP_ID")); appID != "" {
		cfg.AppID = appID
	}
	if secret := strings.TrimSpace(v.GetString("SECRET_KEY")); secret != "" {
		cfg.SecretKey = secret
	}
	if env := strings.TrimSpace(v.GetString("ENVIRONMENT")); env != "" {
		cfg.Environment = strings.ToLower(env)
	}
	if returnURL := strings.TrimSpace(v.GetString("RETURN_URL")); returnURL != "" {
		cfg.ReturnURL = returnURL
	}
	if notifyURL := strings.TrimSpace(v.GetString("NOTIFY_URL")); notifyURL != "" {
		cfg.NotifyURL = notifyURL
	}

	return cfg
}
