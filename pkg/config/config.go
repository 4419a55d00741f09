package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"log"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	MarketData struct {
		BaseURL   string        `yaml:"base_url"`
		UserAgent string        `yaml:"user_agent"`
		Timeout   time.Duration `yaml:"timeout"`
	} `yaml:"marketdata"`
	News struct {
		BaseURL     string        `yaml:"base_url"`
		APIKey      string        `yaml:"api_key"`
		Language    string        `yaml:"language"`
		MaxArticles int           `yaml:"max_articles"`
		Timeout     time.Duration `yaml:"timeout"`
	} `yaml:"news"`
	Cache struct {
		MemoryMaxSize int `yaml:"memory_max_size"`
		TTL           struct {
			Quote   time.Duration `yaml:"quote"`
			History time.Duration `yaml:"history"`
			News    time.Duration `yaml:"news"`
		} `yaml:"ttl"`
		Redis struct {
			Enabled  bool   `yaml:"enabled"`
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Indicators struct {
		SMAShort      int     `yaml:"sma_short"`
		SMALong       int     `yaml:"sma_long"`
		RSIPeriod     int     `yaml:"rsi_period"`
		RSIOverbought float64 `yaml:"rsi_overbought"`
		RSIOversold   float64 `yaml:"rsi_oversold"`
		MACDFast      int     `yaml:"macd_fast"`
		MACDSlow      int     `yaml:"macd_slow"`
		MACDSignal    int     `yaml:"macd_signal"`
		BBPeriod      int     `yaml:"bb_period"`
		BBStdDev      float64 `yaml:"bb_std_dev"`
	} `yaml:"indicators"`
	Prediction struct {
		Days         int     `yaml:"days"`
		TestFraction float64 `yaml:"test_fraction"`
		ForestTrees  int     `yaml:"forest_trees"`
		ForestDepth  int     `yaml:"forest_depth"`
		Seed         int64   `yaml:"seed"`
	} `yaml:"prediction"`
	Portfolio struct {
		File          string `yaml:"file"`
		WatchlistFile string `yaml:"watchlist_file"`
	} `yaml:"portfolio"`
	Stream struct {
		QuoteInterval time.Duration `yaml:"quote_interval"`
	} `yaml:"stream"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("NEWS_API_KEY"); v != "" {
		c.News.APIKey = v
	}
	if v := os.Getenv("MARKETDATA_BASE_URL"); v != "" {
		c.MarketData.BaseURL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Enabled = true
		if host, port, err := net.SplitHostPort(v); err == nil {
			c.Cache.Redis.Host = host
			if p, err := strconv.Atoi(port); err == nil {
				c.Cache.Redis.Port = p
			}
		} else {
			c.Cache.Redis.Host = v
		}
	}
	if v := os.Getenv("PORTFOLIO_FILE"); v != "" {
		c.Portfolio.File = v
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if c.MarketData.Timeout == 0 {
		c.MarketData.Timeout = 10 * time.Second
	}
	if c.MarketData.UserAgent == "" {
		c.MarketData.UserAgent = "Mozilla/5.0"
	}
	if c.News.Timeout == 0 {
		c.News.Timeout = 10 * time.Second
	}
	if c.News.Language == "" {
		c.News.Language = "en"
	}
	if c.News.MaxArticles == 0 {
		c.News.MaxArticles = 10
	}
	if c.Cache.MemoryMaxSize == 0 {
		c.Cache.MemoryMaxSize = 1000
	}
	if c.Cache.TTL.Quote == 0 {
		c.Cache.TTL.Quote = time.Minute
	}
	if c.Cache.TTL.History == 0 {
		c.Cache.TTL.History = 5 * time.Minute
	}
	if c.Cache.TTL.News == 0 {
		c.Cache.TTL.News = 30 * time.Minute
	}
	if c.Indicators.SMAShort == 0 {
		c.Indicators.SMAShort = 50
	}
	if c.Indicators.SMALong == 0 {
		c.Indicators.SMALong = 200
	}
	if c.Indicators.RSIPeriod == 0 {
		c.Indicators.RSIPeriod = 14
	}
	if c.Indicators.RSIOverbought == 0 {
		c.Indicators.RSIOverbought = 70
	}
	if c.Indicators.RSIOversold == 0 {
		c.Indicators.RSIOversold = 30
	}
	if c.Indicators.MACDFast == 0 {
		c.Indicators.MACDFast = 12
	}
	if c.Indicators.MACDSlow == 0 {
		c.Indicators.MACDSlow = 26
	}
	if c.Indicators.MACDSignal == 0 {
		c.Indicators.MACDSignal = 9
	}
	if c.Indicators.BBPeriod == 0 {
		c.Indicators.BBPeriod = 20
	}
	if c.Indicators.BBStdDev == 0 {
		c.Indicators.BBStdDev = 2
	}
	if c.Prediction.Days == 0 {
		c.Prediction.Days = 30
	}
	if c.Prediction.TestFraction == 0 {
		c.Prediction.TestFraction = 0.2
	}
	if c.Prediction.ForestTrees == 0 {
		c.Prediction.ForestTrees = 100
	}
	if c.Prediction.ForestDepth == 0 {
		c.Prediction.ForestDepth = 10
	}
	if c.Prediction.Seed == 0 {
		c.Prediction.Seed = 42
	}
	if c.Portfolio.File == "" {
		c.Portfolio.File = "data/portfolio.csv"
	}
	if c.Portfolio.WatchlistFile == "" {
		c.Portfolio.WatchlistFile = "data/watchlist.txt"
	}
	if c.Stream.QuoteInterval == 0 {
		c.Stream.QuoteInterval = 15 * time.Second
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.MarketData.BaseURL == "" {
		return fmt.Errorf("marketdata.base_url is required")
	}
	if c.Prediction.TestFraction <= 0 || c.Prediction.TestFraction >= 1 {
		return fmt.Errorf("prediction.test_fraction must be in (0,1), got %v", c.Prediction.TestFraction)
	}
	if c.Indicators.SMAShort >= c.Indicators.SMALong {
		return fmt.Errorf("indicators.sma_short must be less than sma_long")
	}
	if c.Indicators.MACDFast >= c.Indicators.MACDSlow {
		return fmt.Errorf("indicators.macd_fast must be less than macd_slow")
	}
	return nil
}
