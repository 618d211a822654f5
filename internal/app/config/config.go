package config

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	MySQL    MySQLConfig    `mapstructure:"mysql"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Lmstfy   LmstfyConfig   `mapstructure:"lmstfy"`
	Stripe   StripeConfig   `mapstructure:"stripe"`
	Omise    OmiseConfig    `mapstructure:"omise"`
	Shipping ShippingConfig `mapstructure:"shipping"`
	Notify   NotifyConfig   `mapstructure:"notify"`
	Upload   UploadConfig   `mapstructure:"upload"`
}

type AppConfig struct {
	Name     string `mapstructure:"name"`
	Env      string `mapstructure:"env"`
	LogLevel string `mapstructure:"log_level"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type MySQLConfig struct {
	DSN string `mapstructure:"dsn"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type LmstfyConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	Namespace   string `mapstructure:"namespace"`
	Token       string `mapstructure:"token"`
	NotifyQueue string `mapstructure:"notify_queue"`
}

// StripeConfig 托管收银台网关配置（跳转支付流程）
type StripeConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	SecretKey  string        `mapstructure:"secret_key"`
	Timeout    time.Duration `mapstructure:"timeout"`
	SuccessURL string        `mapstructure:"success_url"`
	CancelURL  string        `mapstructure:"cancel_url"`
}

// OmiseConfig 直连扣款网关配置（页内支付流程）
type OmiseConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	SecretKey string        `mapstructure:"secret_key"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// ShippingConfig 运费策略配置
type ShippingConfig struct {
	FreeShippingMinAmount float64 `mapstructure:"free_shipping_min_amount"`
	StandardShippingCost  float64 `mapstructure:"standard_shipping_cost"`
}

// FreeShippingMin 免运费门槛
func (s ShippingConfig) FreeShippingMin() decimal.Decimal {
	return decimal.NewFromFloat(s.FreeShippingMinAmount)
}

// StandardCost 标准运费
func (s ShippingConfig) StandardCost() decimal.Decimal {
	return decimal.NewFromFloat(s.StandardShippingCost)
}

type NotifyConfig struct {
	Email   EmailConfig   `mapstructure:"email"`
	Webhook WebhookConfig `mapstructure:"webhook"`
}

type EmailConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	From    string `mapstructure:"from"`
}

type WebhookConfig struct {
	URL string `mapstructure:"url"`
}

type UploadConfig struct {
	SlipDir string `mapstructure:"slip_dir"`
}

// Load 从配置文件加载配置
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config failed: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config failed: %w", err)
	}

	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}

	return &cfg, nil
}

// LoadDefault 加载默认配置文件路径
func LoadDefault() (*Config, error) {
	return Load("config/config.yaml")
}

// Validate 验证配置完整性
func (c *Config) Validate() error {
	if c.MySQL.DSN == "" {
		return fmt.Errorf("mysql dsn is required")
	}
	if c.Redis.Addr == "" {
		return fmt.Errorf("redis addr is required")
	}
	if c.Lmstfy.Host == "" {
		return fmt.Errorf("lmstfy host is required")
	}
	if c.Lmstfy.NotifyQueue == "" {
		return fmt.Errorf("lmstfy notify_queue is required")
	}
	if c.Stripe.SecretKey == "" {
		return fmt.Errorf("stripe secret_key is required")
	}
	if c.Omise.SecretKey == "" {
		return fmt.Errorf("omise secret_key is required")
	}
	if c.Shipping.StandardShippingCost < 0 || c.Shipping.FreeShippingMinAmount < 0 {
		return fmt.Errorf("shipping config must not be negative")
	}
	return nil
}
