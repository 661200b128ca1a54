package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging     LoggingConfig    `yaml:"logging"`
	Server      ServerConfig     `yaml:"server"`
	Mongo       MongoConfig      `yaml:"mongo"`
	GeminiModel string           `yaml:"gemini_model"`
	Chat        ChatConfig       `yaml:"chat"`
	TitleQueue  TitleQueueConfig `yaml:"title_queue"`

	// Secrets are sourced from the environment (.env in development),
	// never from config.yaml.
	GeminiApiKey string `yaml:"-"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type ServerConfig struct {
	Addr               string   `yaml:"addr"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
}

type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

type ChatConfig struct {
	// GenerationTimeoutSeconds bounds a single model call. A call that
	// exceeds it is treated as a generation failure, never left hanging.
	GenerationTimeoutSeconds int `yaml:"generation_timeout_seconds"`
}

// TitleQueueConfig sizes the background title-generation worker pool.
type TitleQueueConfig struct {
	// Workers is the number of concurrent title tasks.
	Workers int `yaml:"workers"`

	// QueueSize is the pending-task buffer. When full, new title tasks are
	// dropped (title generation is best-effort).
	QueueSize int `yaml:"queue_size"`

	// TurnThreshold is the per-session turn count past which a title task
	// is scheduled after a chat exchange.
	TurnThreshold int `yaml:"turn_threshold"`

	// TailLimit is how many recent turns the summarizer reads.
	TailLimit int `yaml:"tail_limit"`
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	// load configuration file
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}

	var c AppConfig
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		panic(err)
	}

	c.GeminiApiKey = os.Getenv("GEMINI_API_KEY")
	if uri := os.Getenv("MONGO_URI"); uri != "" {
		c.Mongo.URI = uri
	}

	applyDefaults(&c)
	config = &c
}

func applyDefaults(c *AppConfig) {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Mongo.Database == "" {
		c.Mongo.Database = "innovachat"
	}
	if c.GeminiModel == "" {
		c.GeminiModel = "gemini-2.0-flash"
	}
	if c.Chat.GenerationTimeoutSeconds <= 0 {
		c.Chat.GenerationTimeoutSeconds = 60
	}
	if c.TitleQueue.Workers <= 0 {
		c.TitleQueue.Workers = 1
	}
	if c.TitleQueue.QueueSize <= 0 {
		c.TitleQueue.QueueSize = 64
	}
	if c.TitleQueue.TurnThreshold <= 0 {
		c.TitleQueue.TurnThreshold = 3
	}
	if c.TitleQueue.TailLimit <= 0 {
		c.TitleQueue.TailLimit = 5
	}
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
