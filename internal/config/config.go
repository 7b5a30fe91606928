package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	SQLite struct {
		Path string `yaml:"path"`
	} `yaml:"sqlite"`
	Quiz struct {
		QuestionTime  string `yaml:"questionTime"`
		FeedbackDelay string `yaml:"feedbackDelay"`
		CatalogTTL    string `yaml:"catalogTTL"`
	} `yaml:"quiz"`
	Tutor struct {
		APIKey  string `yaml:"apiKey"`
		BaseURL string `yaml:"baseUrl"`
		Model   string `yaml:"model"`
		Timeout string `yaml:"timeout"`
	} `yaml:"tutor"`
	Videos struct {
		APIKey  string `yaml:"apiKey"`
		BaseURL string `yaml:"baseUrl"`
	} `yaml:"videos"`
	Auth struct {
		JWTSecret string    `yaml:"jwtSecret"`
		TokenTTL  string    `yaml:"tokenTTL"`
		Parents   []Account `yaml:"parents"`
		Learners  []Account `yaml:"learners"`
	} `yaml:"auth"`
}

// Account pairs a name with a bcrypt hash of its password or secret key.
type Account struct {
	Name string `yaml:"name"`
	Hash string `yaml:"hash"`
}

// Load reads YAML config from path.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Duration parses a duration string or returns the fallback if empty or invalid.
func Duration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
