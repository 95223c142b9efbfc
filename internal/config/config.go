package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	Bot struct {
		Code string `yaml:"code"` // CODE бота в imbot.register
		Path string `yaml:"path"` // путь вебхука, напр. /bot/
		Name string `yaml:"name"` // видимое имя бота
	} `yaml:"bot"`

	API struct {
		SecretToken string `yaml:"secret_token"`
	} `yaml:"api"`

	Instance struct {
		Name string `yaml:"name"`
		Dir  string `yaml:"dir"` // auth.json и флаги ENABLED/DISABLED живут здесь
	} `yaml:"instance"`
}

var AppConfig *Config

func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	// Режим переменных окружения (тесты и контейнерный деплой)
	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.API.SecretToken = os.Getenv("API_SECRET_TOKEN")
	cfg.Bot.Code = os.Getenv("BOT_CODE")
	cfg.Instance.Name = os.Getenv("INSTANCE")
	cfg.Instance.Dir = os.Getenv("INSTANCE_DIR")

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Instance.Dir == "" {
		cfg.Instance.Dir = "."
	}
	if cfg.Instance.Name == "" {
		cfg.Instance.Name = filepath.Base(mustAbs(cfg.Instance.Dir))
	}
	if cfg.Bot.Code == "" {
		cfg.Bot.Code = "interceptor_bot_" + cfg.Instance.Name
	}
	if cfg.Bot.Path == "" {
		cfg.Bot.Path = "/bot/"
	}
	if cfg.Bot.Name == "" {
		cfg.Bot.Name = "Interceptor Bot"
	}
}

func mustAbs(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}
	return abs
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
