// Package config loads pricing and runtime settings from the environment,
// an optional .env file and an optional YAML pricing policy file.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"buildtrack/services"
)

type Config struct {
	Pricing PricingConfig `yaml:"pricing"`
	App     AppConfig     `yaml:"-"`
}

// PricingConfig is the pricing policy. Nil rates are disabled.
type PricingConfig struct {
	TaxRate        *float64 `yaml:"tax_rate"`
	MarkupRate     *float64 `yaml:"markup_rate"`
	MarkupFixed    *float64 `yaml:"markup_fixed"`
	CurrencySymbol string   `yaml:"currency_symbol"`
	// CurrencyCode replaces the symbol in PDFs, whose standard fonts lack it.
	CurrencyCode string `yaml:"currency_code"`
	Workers      int    `yaml:"workers"`
}

type AppConfig struct {
	PricingFile string
	SeedData    bool
}

func defaults() *Config {
	return &Config{
		Pricing: PricingConfig{
			CurrencySymbol: services.DefaultCurrencySymbol,
			CurrencyCode:   "PHP",
			Workers:        4,
		},
		App: AppConfig{
			PricingFile: "pricing.yaml",
			SeedData:    true,
		},
	}
}

// Load reads .env (if present), the pricing file named by PRICING_FILE and
// then environment overrides, and validates the result.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using environment variables")
	}

	cfg := defaults()
	cfg.App.PricingFile = getEnv("PRICING_FILE", cfg.App.PricingFile)
	cfg.App.SeedData = getEnvAsBool("SEED_DATA", cfg.App.SeedData)

	if err := cfg.loadPricingFile(cfg.App.PricingFile); err != nil {
		return nil, err
	}

	p := &cfg.Pricing
	p.TaxRate = getEnvAsFloat("TAX_RATE", p.TaxRate)
	p.MarkupRate = getEnvAsFloat("MARKUP_RATE", p.MarkupRate)
	p.MarkupFixed = getEnvAsFloat("MARKUP_FIXED", p.MarkupFixed)
	p.CurrencySymbol = getEnv("CURRENCY_SYMBOL", p.CurrencySymbol)
	p.CurrencyCode = getEnv("CURRENCY_CODE", p.CurrencyCode)
	p.Workers = getEnvAsInt("PRICING_WORKERS", p.Workers)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadPricingFile merges the YAML policy file into c. A missing file is not an error.
func (c *Config) loadPricingFile(path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read pricing file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse pricing file %s: %w", path, err)
	}
	return nil
}

func (c *Config) Validate() error {
	p := c.Pricing
	if p.TaxRate != nil && *p.TaxRate < 0 {
		return fmt.Errorf("TAX_RATE must not be negative, got %v", *p.TaxRate)
	}
	if p.MarkupRate != nil && *p.MarkupRate < 0 {
		return fmt.Errorf("MARKUP_RATE must not be negative, got %v", *p.MarkupRate)
	}
	if p.MarkupFixed != nil && *p.MarkupFixed < 0 {
		return fmt.Errorf("MARKUP_FIXED must not be negative, got %v", *p.MarkupFixed)
	}
	if p.Workers < 1 {
		return fmt.Errorf("PRICING_WORKERS must be at least 1, got %d", p.Workers)
	}
	if p.CurrencySymbol == "" {
		return fmt.Errorf("CURRENCY_SYMBOL is required")
	}
	return nil
}

// ViewPolicy prices BOMs for display: tax only, cached markups pass through.
func (c *Config) ViewPolicy() services.PricingPolicy {
	return services.PricingPolicy{TaxRate: number(c.Pricing.TaxRate)}
}

// MarkupPolicy prices a BOM with the configured default markup.
func (c *Config) MarkupPolicy() services.PricingPolicy {
	return services.PricingPolicy{
		TaxRate:     number(c.Pricing.TaxRate),
		MarkupRate:  number(c.Pricing.MarkupRate),
		MarkupFixed: number(c.Pricing.MarkupFixed),
	}
}

// PDFCurrency is the currency prefix used in PDF output.
func (c *Config) PDFCurrency() string {
	if c.Pricing.CurrencyCode == "" {
		return ""
	}
	return c.Pricing.CurrencyCode + " "
}

func number(v *float64) services.Number {
	if v == nil {
		return services.Number{}
	}
	return services.Some(*v)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("config: invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue *float64) *float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("config: invalid number for %s, keeping previous value", key)
		return defaultValue
	}

	return &value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("config: invalid boolean for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}
