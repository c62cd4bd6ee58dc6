package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the application's configuration.
type Config struct {
	Database struct {
		Host     string `yaml:"host"`
		Port     string `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		SSLMode  string `yaml:"sslmode"`
		// MaxOpenConns bounds the shared pool; acquisition queues past this.
		MaxOpenConns int `yaml:"max_open_conns"`
	} `yaml:"database"`
	Server struct {
		Host           string   `yaml:"host"`
		Port           string   `yaml:"port"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`
}

// LoadConfig reads configuration from the YAML file at configPath (if it
// exists) and then applies environment variable overrides. A missing config
// file is not an error: everything has a default and can be supplied via env.
func LoadConfig(configPath string) (*Config, error) {
	// Optional .env for local development.
	_ = godotenv.Load()

	config := &Config{}

	if file, err := os.Open(configPath); err == nil {
		decoder := yaml.NewDecoder(file)
		if err := decoder.Decode(config); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to decode config file: %w", err)
		}
		file.Close()
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}

	applyEnv(&config.Database.Host, "DB_HOST", "localhost")
	applyEnv(&config.Database.Port, "DB_PORT", "5432")
	applyEnv(&config.Database.User, "DB_USER", "postgres")
	applyEnv(&config.Database.Password, "DB_PASS", "")
	applyEnv(&config.Database.Name, "DB_NAME", "vigil_network")
	applyEnv(&config.Database.SSLMode, "DB_SSLMODE", "disable")
	if config.Database.MaxOpenConns <= 0 {
		config.Database.MaxOpenConns = 5
	}

	applyEnv(&config.Server.Host, "HOST", "0.0.0.0")
	applyEnv(&config.Server.Port, "PORT", "4000")
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		config.Server.AllowedOrigins = strings.Split(origins, ",")
	}
	if len(config.Server.AllowedOrigins) == 0 {
		config.Server.AllowedOrigins = []string{"http://localhost:8080", "http://localhost:5173"}
	}

	return config, nil
}

// DatabaseURL builds the Postgres DSN used for both the pool and migrations.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User, c.Database.Password,
		c.Database.Host, c.Database.Port,
		c.Database.Name, c.Database.SSLMode)
}

// ListenAddr returns the host:port pair the HTTP server binds to.
func (c *Config) ListenAddr() string {
	return c.Server.Host + ":" + c.Server.Port
}

func applyEnv(target *string, key, fallback string) {
	if v := os.Getenv(key); v != "" {
		*target = v
		return
	}
	if *target == "" {
		*target = fallback
	}
}
