package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	configPathEnv     = "PREDICTOR_CONFIG"
	portEnv           = "PORT"
	inferenceURLEnv   = "INFERENCE_URL"
	gatewayURLEnv     = "GATEWAY_URL"
	logLevelEnv       = "LOG_LEVEL"
	logFormatEnv      = "LOG_FORMAT"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv = "TELEGRAM_CHAT_ID"
	telegramAPIURLEnv = "TELEGRAM_API_URL"
	corsOriginsEnv    = "CORS_ORIGINS"
)

// Config holds settings shared by the gateway and the assessment CLI.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Inference InferenceConfig `yaml:"inference"`
	Gateway   GatewayConfig   `yaml:"gateway"`
	Telegram  TelegramConfig  `yaml:"telegram"`
	Report    ReportConfig    `yaml:"report"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Port            string        `yaml:"port"`
	CORSOrigins     []string      `yaml:"corsOrigins"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// InferenceConfig points the gateway at the model service.
type InferenceConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

// GatewayConfig is what the assessment client talks to.
type GatewayConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
	Retries int           `yaml:"retries"`
}

// TelegramConfig enables report sharing. APIURL overrides the public Bot API
// host, e.g. for a local Bot API server.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   int64  `yaml:"chatId"`
	APIURL   string `yaml:"apiUrl"`
}

type ReportConfig struct {
	FontPaths []string `yaml:"fontPaths"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// LoadDotEnv reads .env style files into the process environment without
// overriding variables that are already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: load %s: %w", p, err)
		}
	}
	return nil
}

// Load starts from defaults, applies the YAML file at path (or
// $PREDICTOR_CONFIG when path is empty) and then environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv(portEnv); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv(corsOriginsEnv); v != "" {
		c.Server.CORSOrigins = splitList(v)
	}
	if v := os.Getenv(inferenceURLEnv); v != "" {
		c.Inference.URL = v
	}
	if v := os.Getenv(gatewayURLEnv); v != "" {
		c.Gateway.URL = v
	}
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(logFormatEnv); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv(telegramAPIURLEnv); v != "" {
		c.Telegram.APIURL = v
	}
	if v := os.Getenv(telegramChatIDEnv); v != "" {
		id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("config: %s: %w", telegramChatIDEnv, err)
		}
		c.Telegram.ChatID = id
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            "8080",
			CORSOrigins:     []string{"http://localhost:5173", "http://localhost:4173"},
			ShutdownTimeout: 30 * time.Second,
		},
		Inference: InferenceConfig{
			URL:     "http://localhost:8001",
			Timeout: 5 * time.Second,
		},
		Gateway: GatewayConfig{
			URL:     "http://localhost:8080/api/prediction",
			Timeout: 5 * time.Second,
			Retries: 1,
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}
