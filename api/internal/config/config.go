package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort        = "8000"
	defaultRoutePrefix = "/calculate"
	defaultGeminiModel = "gemini-2.0-flash"
)

type Config struct {
	Port        string
	RoutePrefix string
	LogLevel    string

	GeminiAPIKey string
	GeminiModel  string
	// InferenceTimeout bounds one whole analysis; zero disables it.
	InferenceTimeout time.Duration

	TelegramBotToken string
	WebhookURL       string
}

// MissingEnvError is returned when a required variable is unset.
type MissingEnvError struct {
	Key string
}

func (e *MissingEnvError) Error() string {
	return "missing required env " + e.Key
}

func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func requireEnv(k string) (string, error) {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return "", &MissingEnvError{Key: k}
	}
	return v, nil
}

func getDuration(k string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("bad %s: %w", k, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("bad %s: negative duration", k)
	}
	return d, nil
}

// LoadDotEnv подтягивает .env, если он есть. Отсутствие файла не ошибка.
func LoadDotEnv(files ...string) bool {
	return godotenv.Load(files...) == nil
}

// Load reads the process environment. GEMINI_API_KEY is the only required key.
func Load() (*Config, error) {
	key, err := requireEnv("GEMINI_API_KEY")
	if err != nil {
		return nil, err
	}
	timeout, err := getDuration("INFERENCE_TIMEOUT", 0)
	if err != nil {
		return nil, err
	}

	prefix := getEnv("ROUTE_PREFIX", defaultRoutePrefix)
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}

	return &Config{
		Port:        getEnv("PORT", defaultPort),
		RoutePrefix: prefix,
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		GeminiAPIKey:     key,
		GeminiModel:      getEnv("GEMINI_MODEL", defaultGeminiModel),
		InferenceTimeout: timeout,

		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		WebhookURL:       getEnv("WEBHOOK_URL", ""),
	}, nil
}
