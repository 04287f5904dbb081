package config

import (
	"fmt"
	"os"
	"strconv"

	"PortfolioLens/internal/annotator"
	"PortfolioLens/internal/calculator"
	"PortfolioLens/internal/model"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Chart struct {
		Tooltip struct {
			Width  float64 `yaml:"width"`
			Height float64 `yaml:"height"`
			Offset float64 `yaml:"offset"`
		} `yaml:"tooltip"`
		MaxLines      int                         `yaml:"max_lines"`
		Currency      string                      `yaml:"currency"`
		ShowTrades    *bool                       `yaml:"show_trades"`
		ShowDividends *bool                       `yaml:"show_dividends"`
		Lookback      string                      `yaml:"lookback"`
		Width         float64                     `yaml:"width"`
		Height        float64                     `yaml:"height"`
		Palette       map[model.ColorClass]string `yaml:"palette"`
	} `yaml:"chart"`
	Source struct {
		Path   string `yaml:"path"`
		URL    string `yaml:"url"`
		APIKey string `yaml:"api_key"`
	} `yaml:"source"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// DefaultPalette maps the marker color classes to the dashboard colors.
var DefaultPalette = map[model.ColorClass]string{
	model.BuyGreen:    "#16a34a",
	model.SellRed:     "#dc2626",
	model.MixedPurple: "#9333ea",
	model.NeutralBlue: "#2563eb",
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("CHARTMARKS_SOURCE_URL"); v != "" {
		cfg.Source.URL = v
	}
	if v := os.Getenv("CHARTMARKS_API_KEY"); v != "" {
		cfg.Source.APIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CHARTMARKS_SOURCE"); v != "" {
		cfg.Source.Path = v
	}
	if v := os.Getenv("CHARTMARKS_CURRENCY"); v != "" {
		cfg.Chart.Currency = v
	}
	if v := os.Getenv("CHARTMARKS_LOOKBACK"); v != "" {
		cfg.Chart.Lookback = v
	}
	if v := os.Getenv("CHARTMARKS_SHOW_TRADES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Chart.ShowTrades = &b
		}
	}
	if v := os.Getenv("CHARTMARKS_SHOW_DIVIDENDS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Chart.ShowDividends = &b
		}
	}
	if v := os.Getenv("CRON_REFRESH"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.Chart.Tooltip.Width == 0 {
		cfg.Chart.Tooltip.Width = calculator.DefaultTooltipLayout.Width
	}
	if cfg.Chart.Tooltip.Height == 0 {
		cfg.Chart.Tooltip.Height = calculator.DefaultTooltipLayout.Height
	}
	if cfg.Chart.Tooltip.Offset == 0 {
		cfg.Chart.Tooltip.Offset = calculator.DefaultTooltipLayout.Offset
	}
	if cfg.Chart.MaxLines == 0 {
		cfg.Chart.MaxLines = 4
	}
	if cfg.Chart.Currency == "" {
		cfg.Chart.Currency = "USD"
	}
	if cfg.Chart.ShowTrades == nil {
		t := true
		cfg.Chart.ShowTrades = &t
	}
	if cfg.Chart.ShowDividends == nil {
		t := true
		cfg.Chart.ShowDividends = &t
	}
	if cfg.Chart.Lookback == "" {
		cfg.Chart.Lookback = "all"
	}
	if cfg.Chart.Width == 0 {
		cfg.Chart.Width = 960
	}
	if cfg.Chart.Height == 0 {
		cfg.Chart.Height = 420
	}
	if cfg.Chart.Palette == nil {
		cfg.Chart.Palette = map[model.ColorClass]string{}
	}
	for class, color := range DefaultPalette {
		if _, ok := cfg.Chart.Palette[class]; !ok {
			cfg.Chart.Palette[class] = color
		}
	}
	if cfg.Source.Path == "" && cfg.Source.URL == "" {
		cfg.Source.Path = "data/portfolio.json"
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "0 */5 * * * *"
	}

	return cfg, nil
}

// Validate checks that all fields are usable.
func (c *Config) Validate() error {
	if c.Chart.Tooltip.Width <= 0 || c.Chart.Tooltip.Height <= 0 {
		return fmt.Errorf("chart.tooltip width and height must be positive")
	}
	if c.Chart.Tooltip.Offset < 0 {
		return fmt.Errorf("chart.tooltip.offset must not be negative")
	}
	if c.Chart.MaxLines <= 0 {
		return fmt.Errorf("chart.max_lines must be positive")
	}
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		return fmt.Errorf("chart width and height must be positive")
	}
	if _, err := model.ParseLookback(c.Chart.Lookback); err != nil {
		return fmt.Errorf("chart.lookback: %w", err)
	}
	if c.Source.Path == "" && c.Source.URL == "" {
		return fmt.Errorf("source.path or source.url is required")
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	return nil
}

// Lookback returns the parsed default lookback. Call Validate first.
func (c *Config) Lookback() model.Lookback {
	l, _ := model.ParseLookback(c.Chart.Lookback)
	return l
}

// Settings returns the annotator presentation settings.
func (c *Config) Settings() annotator.Settings {
	return annotator.Settings{
		Tooltip: calculator.TooltipLayout{
			Width:  c.Chart.Tooltip.Width,
			Height: c.Chart.Tooltip.Height,
			Offset: c.Chart.Tooltip.Offset,
		},
		MaxLines: c.Chart.MaxLines,
		Currency: c.Chart.Currency,
	}
}

// ContainerSize is the chart size used by the built-in engine.
func (c *Config) ContainerSize() model.Size {
	return model.Size{Width: c.Chart.Width, Height: c.Chart.Height}
}

// TelegramEnabled reports whether chat notifications are configured.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}
