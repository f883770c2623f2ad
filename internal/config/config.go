package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

// readSecret reads a Docker secret from a file path specified by an env var
// with _FILE suffix. If FOO is already set directly, the file is skipped.
// If FOO_FILE is set, reads the file content and sets FOO.
func readSecret(envKey string) {
	if os.Getenv(envKey) != "" {
		return
	}
	fileKey := envKey + "_FILE"
	filePath := os.Getenv(fileKey)
	if filePath == "" {
		return
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return
	}
	val := strings.TrimSpace(string(data))
	os.Setenv(envKey, val)
}

type Config struct {
	Server    ServerConfig
	Redis     RedisConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
	LLM       LLMConfig
	Senso     SensoConfig
	Video     VideoConfig
}

type ServerConfig struct {
	Port     string
	Env      string
	LogLevel string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration int // hours
}

type RateLimitConfig struct {
	GeneratePerMin int
	JobsPerHour    int
}

// LLMConfig configures the chat-completion service used by the planner.
type LLMConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
}

// SensoConfig configures the knowledge-retrieval service.
type SensoConfig struct {
	APIKey  string
	BaseURL string
	Timeout int // seconds
}

// VideoConfig holds the timing constants of the composition pipeline.
type VideoConfig struct {
	FPS            int
	DurationBudget int // frames
	TargetScenes   int
	EffectLead     int // frames an effect cue starts before its transition
}

func Load() (*Config, error) {
	// Read Docker Swarm secrets from _FILE env vars before Viper binds
	readSecret("REDIS_PASSWORD")
	readSecret("LLM_API_KEY")
	readSecret("SENSO_API_KEY")
	readSecret("JWT_SECRET")

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Environment variables
	viper.AutomaticEnv()

	// Bind environment variables with underscores to nested config keys
	_ = viper.BindEnv("server.port", "SERVER_PORT")
	_ = viper.BindEnv("server.env", "SERVER_ENV")
	_ = viper.BindEnv("server.log_level", "LOG_LEVEL")
	_ = viper.BindEnv("redis.addr", "REDIS_ADDR")
	_ = viper.BindEnv("redis.password", "REDIS_PASSWORD")
	_ = viper.BindEnv("redis.db", "REDIS_DB")
	_ = viper.BindEnv("jwt.secret", "JWT_SECRET")
	_ = viper.BindEnv("jwt.expiration", "JWT_EXPIRATION")
	_ = viper.BindEnv("llm.api_key", "LLM_API_KEY")
	_ = viper.BindEnv("llm.base_url", "LLM_BASE_URL")
	_ = viper.BindEnv("llm.model", "LLM_MODEL")
	_ = viper.BindEnv("llm.temperature", "LLM_TEMPERATURE")
	_ = viper.BindEnv("llm.max_tokens", "LLM_MAX_TOKENS")
	_ = viper.BindEnv("senso.api_key", "SENSO_API_KEY")
	_ = viper.BindEnv("senso.base_url", "SENSO_BASE_URL")
	_ = viper.BindEnv("senso.timeout", "SENSO_TIMEOUT")
	_ = viper.BindEnv("video.fps", "VIDEO_FPS")
	_ = viper.BindEnv("video.duration_budget", "VIDEO_DURATION_BUDGET")
	_ = viper.BindEnv("video.target_scenes", "VIDEO_TARGET_SCENES")
	_ = viper.BindEnv("video.effect_lead", "VIDEO_EFFECT_LEAD")

	// Defaults
	viper.SetDefault("server.port", "8000")
	viper.SetDefault("server.env", "development")
	viper.SetDefault("server.log_level", "info")
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("jwt.secret", "change-me-in-production")
	viper.SetDefault("jwt.expiration", 24)
	viper.SetDefault("ratelimit.generate_per_min", 10)
	viper.SetDefault("ratelimit.jobs_per_hour", 30)

	// LLM defaults (OpenAI-compatible chat completions)
	viper.SetDefault("llm.base_url", "https://api.groq.com/openai/v1")
	viper.SetDefault("llm.model", "llama-3.3-70b-versatile")
	viper.SetDefault("llm.temperature", 0.3)
	viper.SetDefault("llm.max_tokens", 2000)

	// Senso defaults
	viper.SetDefault("senso.base_url", "https://sdk.senso.ai/api/v1")
	viper.SetDefault("senso.timeout", 10)

	// Video timing defaults: 30s at 30fps
	viper.SetDefault("video.fps", 30)
	viper.SetDefault("video.duration_budget", 900)
	viper.SetDefault("video.target_scenes", 5)
	viper.SetDefault("video.effect_lead", 30)

	// Try to read config file (optional)
	_ = viper.ReadInConfig()

	cfg := &Config{
		Server: ServerConfig{
			Port:     viper.GetString("server.port"),
			Env:      viper.GetString("server.env"),
			LogLevel: viper.GetString("server.log_level"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("redis.addr"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		JWT: JWTConfig{
			Secret:     viper.GetString("jwt.secret"),
			Expiration: viper.GetInt("jwt.expiration"),
		},
		RateLimit: RateLimitConfig{
			GeneratePerMin: viper.GetInt("ratelimit.generate_per_min"),
			JobsPerHour:    viper.GetInt("ratelimit.jobs_per_hour"),
		},
		LLM: LLMConfig{
			APIKey:      viper.GetString("llm.api_key"),
			BaseURL:     viper.GetString("llm.base_url"),
			Model:       viper.GetString("llm.model"),
			Temperature: viper.GetFloat64("llm.temperature"),
			MaxTokens:   viper.GetInt("llm.max_tokens"),
		},
		Senso: SensoConfig{
			APIKey:  viper.GetString("senso.api_key"),
			BaseURL: viper.GetString("senso.base_url"),
			Timeout: viper.GetInt("senso.timeout"),
		},
		Video: VideoConfig{
			FPS:            viper.GetInt("video.fps"),
			DurationBudget: viper.GetInt("video.duration_budget"),
			TargetScenes:   viper.GetInt("video.target_scenes"),
			EffectLead:     viper.GetInt("video.effect_lead"),
		},
	}

	return cfg, nil
}
