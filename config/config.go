package config

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	Database struct {
		Host     string `yaml:"host"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		DBName   string `yaml:"dbname"`
		Port     string `yaml:"port"`
		SSLMode  string `yaml:"sslmode"`
	} `yaml:"database"`
	Chat struct {
		APIKey      string `yaml:"api_key"`
		BaseURL     string `yaml:"base_url"`
		Model       string `yaml:"model"`
		MaxTokens   uint32 `yaml:"max_tokens"`
		MessageCost int64  `yaml:"message_cost"` // credits debited per outbound message
	} `yaml:"chat"`
	WorldID struct {
		AppID     string `yaml:"app_id"`
		Action    string `yaml:"action"`
		VerifyURL string `yaml:"verify_url"`
	} `yaml:"worldid"`
	Auth struct {
		Secret  string `yaml:"secret"`
		ExpHour int    `yaml:"exp_hour"` // 0 means sessions never expire
	} `yaml:"auth"`
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"log"`
}

// GlobalConfig is the global configuration instance
var GlobalConfig Config

// DSN generates the PostgreSQL DSN from database config
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Database.Host,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.Port,
		c.Database.SSLMode,
	)
}

// LoadConfig reads and parses the YAML configuration file into GlobalConfig
func LoadConfig(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, &GlobalConfig); err != nil {
		return err
	}

	// Validate required fields
	if GlobalConfig.Database.Host == "" {
		log.Fatal().Msg("database.host is required in config.yaml")
	}
	if GlobalConfig.Database.User == "" {
		log.Fatal().Msg("database.user is required in config.yaml")
	}
	if GlobalConfig.Database.Password == "" {
		log.Fatal().Msg("database.password is required in config.yaml")
	}
	if GlobalConfig.Database.DBName == "" {
		log.Fatal().Msg("database.dbname is required in config.yaml")
	}
	if GlobalConfig.Database.Port == "" {
		log.Fatal().Msg("database.port is required in config.yaml")
	}
	if GlobalConfig.Database.SSLMode == "" {
		log.Fatal().Msg("database.sslmode is required in config.yaml")
	}
	if GlobalConfig.Chat.APIKey == "" {
		log.Fatal().Msg("chat.api_key is required in config.yaml")
	}
	if GlobalConfig.Chat.BaseURL == "" {
		GlobalConfig.Chat.BaseURL = "https://api.openai.com/v1"
	}
	if GlobalConfig.Chat.Model == "" {
		log.Fatal().Msg("chat.model is required in config.yaml")
	}
	if GlobalConfig.Chat.MaxTokens == 0 {
		GlobalConfig.Chat.MaxTokens = 150
	}
	if GlobalConfig.Chat.MessageCost == 0 {
		GlobalConfig.Chat.MessageCost = 1
	}
	if GlobalConfig.WorldID.AppID == "" {
		log.Fatal().Msg("worldid.app_id is required in config.yaml")
	}
	if GlobalConfig.WorldID.Action == "" {
		log.Fatal().Msg("worldid.action is required in config.yaml")
	}
	if GlobalConfig.WorldID.VerifyURL == "" {
		GlobalConfig.WorldID.VerifyURL = "https://developer.worldcoin.org/api/v2/verify"
	}
	if GlobalConfig.Auth.Secret == "" {
		log.Fatal().Msg("auth.secret is required in config.yaml")
	}
	if GlobalConfig.Server.Port == 0 {
		log.Fatal().Msg("server.port is required in config.yaml")
	}
	if GlobalConfig.Server.Port < 1 || GlobalConfig.Server.Port > 65535 {
		log.Fatal().Msg("server.port must be between 1 and 65535")
	}

	return nil
}
