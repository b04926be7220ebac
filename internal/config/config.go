package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Shopify     ShopifyConfig
	Defaults    DefaultsConfig
	LogLevel    string
}

type ShopifyConfig struct {
	ShopDomain    string
	AccessToken   string
	APISecret     string
	APIVersion    string
	WebhookSecret string
}

// DefaultsConfig holds the fallback values used when a storefront request
// carries no usable customer data. Kept as explicit configuration so tests
// and deployments can override them instead of relying on embedded literals.
type DefaultsConfig struct {
	Email     string
	FirstName string
	LastName  string
	Address1  string
	City      string
	Province  string
	Country   string
	Zip       string

	OrderNote            string
	RemainingValueTitle  string
	RemainingValueAmount string
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("SHOPIFY_API_VERSION", "2024-01")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Shopify: ShopifyConfig{
			ShopDomain:    getEnvOrViper("SHOPIFY_SHOP_DOMAIN", ""),
			AccessToken:   getEnvOrViper("SHOPIFY_ACCESS_TOKEN", ""),
			APISecret:     getEnvOrViper("SHOPIFY_API_SECRET", ""),
			APIVersion:    getEnvOrViper("SHOPIFY_API_VERSION", "2024-01"),
			WebhookSecret: getEnvOrViper("SHOPIFY_WEBHOOK_SECRET", ""),
		},
		Defaults: LoadDefaults(),
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	// Validate required fields
	if cfg.Shopify.ShopDomain == "" {
		return nil, fmt.Errorf("SHOPIFY_SHOP_DOMAIN is required")
	}
	if cfg.Shopify.AccessToken == "" {
		return nil, fmt.Errorf("SHOPIFY_ACCESS_TOKEN is required")
	}

	return cfg, nil
}

// LoadDefaults returns the placeholder customer/order defaults, each
// individually overridable through the environment.
func LoadDefaults() DefaultsConfig {
	return DefaultsConfig{
		Email:     getEnvOrViper("DEFAULT_CUSTOMER_EMAIL", "customer@example.com"),
		FirstName: getEnvOrViper("DEFAULT_FIRST_NAME", "Test"),
		LastName:  getEnvOrViper("DEFAULT_LAST_NAME", "Customer"),
		Address1:  getEnvOrViper("DEFAULT_ADDRESS1", "123 Shopify St"),
		City:      getEnvOrViper("DEFAULT_CITY", "Toronto"),
		Province:  getEnvOrViper("DEFAULT_PROVINCE", "Ontario"),
		Country:   getEnvOrViper("DEFAULT_COUNTRY", "Canada"),
		Zip:       getEnvOrViper("DEFAULT_ZIP", "A1A 1A1"),

		OrderNote:            getEnvOrViper("DEFAULT_ORDER_NOTE", "Created from cart via theme app extension"),
		RemainingValueTitle:  getEnvOrViper("REMAINING_VALUE_TITLE", "Remaining Value"),
		RemainingValueAmount: getEnvOrViper("REMAINING_VALUE_AMOUNT", "5.00"),
	}
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
