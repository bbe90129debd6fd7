package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every setting the CLI, TUI and mock service read from the
// environment
type Config struct {
	APIURL         string
	Timeout        time.Duration
	HealthInterval time.Duration

	LogFile   string
	LogLevel  string
	LogFormat string

	KafkaBrokers []string
	KafkaTopic   string

	S3Bucket       string
	S3Region       string
	S3Profile      string
	S3Prefix       string
	S3Endpoint     string
	S3UsePathStyle bool

	RedisAddr string
	RedisPass string
	RedisDB   int

	YouTubeAPIKey         string
	YouTubeServiceAccount string

	MockPort    int
	MockLatency time.Duration
}

// Load reads .env files (missing files are ignored) and then the process
// environment. Variables already set in the environment win over .env.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := &Config{
		APIURL:    getEnvOrDefault("VIDQA_API_URL", DefaultAPIURL),
		LogFile:   os.Getenv("VIDQA_LOG_FILE"),
		LogLevel:  getEnvOrDefault("VIDQA_LOG_LEVEL", DefaultLogLevel),
		LogFormat: getEnvOrDefault("VIDQA_LOG_FORMAT", DefaultLogFormat),

		KafkaBrokers: splitList(os.Getenv("KAFKA_BOOTSTRAP_SERVERS")),
		KafkaTopic:   getEnvOrDefault("KAFKA_TOPIC", DefaultKafkaTopic),

		S3Bucket:   os.Getenv("S3_BUCKET"),
		S3Region:   os.Getenv("S3_REGION"),
		S3Profile:  os.Getenv("S3_PROFILE"),
		S3Prefix:   getEnvOrDefault("S3_PREFIX", DefaultS3Prefix),
		S3Endpoint: os.Getenv("S3_ENDPOINT"),

		RedisAddr: os.Getenv("REDIS_ADDR"),
		RedisPass: os.Getenv("REDIS_PASS"),

		YouTubeAPIKey:         os.Getenv("YOUTUBE_API_KEY"),
		YouTubeServiceAccount: os.Getenv("YOUTUBE_SERVICE_ACCOUNT_FILE"),
	}

	var err error
	if cfg.Timeout, err = getEnvDuration("VIDQA_TIMEOUT", DefaultTimeout); err != nil {
		return nil, err
	}
	if cfg.HealthInterval, err = getEnvDuration("VIDQA_HEALTH_INTERVAL", DefaultHealthInterval); err != nil {
		return nil, err
	}
	if cfg.MockLatency, err = getEnvDuration("MOCK_LATENCY", 0); err != nil {
		return nil, err
	}
	if cfg.S3UsePathStyle, err = getEnvBool("S3_USE_PATH_STYLE", false); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = getEnvInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.MockPort, err = getEnvInt("MOCK_PORT", DefaultMockPort); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later and obscurely
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIURL) == "" {
		return fmt.Errorf("VIDQA_API_URL must not be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("VIDQA_TIMEOUT must be positive, got %s", c.Timeout)
	}
	if c.HealthInterval <= 0 {
		return fmt.Errorf("VIDQA_HEALTH_INTERVAL must be positive, got %s", c.HealthInterval)
	}
	if c.MockPort <= 0 || c.MockPort > 65535 {
		return fmt.Errorf("MOCK_PORT out of range: %d", c.MockPort)
	}
	return nil
}

// KafkaEnabled reports whether workflow events should be published
func (c *Config) KafkaEnabled() bool { return len(c.KafkaBrokers) > 0 }

// S3Enabled reports whether summaries can be exported
func (c *Config) S3Enabled() bool { return c.S3Bucket != "" }

// RedisEnabled reports whether the mock service should persist to Redis
func (c *Config) RedisEnabled() bool { return c.RedisAddr != "" }

func getEnvOrDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// getEnvDuration accepts Go durations ("30s") or plain seconds ("30")
func getEnvDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q", key, v)
	}
	return d, nil
}

func getEnvInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", key, v)
	}
	return n, nil
}

func getEnvBool(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: invalid boolean %q", key, v)
	}
	return b, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
