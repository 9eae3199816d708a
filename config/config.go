package config

import (
	"log"

	"github.com/spf13/viper"
)

var Config Configuration

type ToolProviderConfig struct {
	Name     string `mapstructure:"name"`
	Endpoint string `mapstructure:"endpoint"`
}

type Configuration struct {
	Mode   string `mapstructure:"mode"`
	OpenAI struct {
		APIKey      string  `mapstructure:"api_key"`
		BaseURL     string  `mapstructure:"base_url"`
		Model       string  `mapstructure:"model"`
		Temperature float64 `mapstructure:"temperature"`
	} `mapstructure:"openai"`
	Chat struct {
		Directive          string `mapstructure:"directive"`
		MaxToolRounds      int    `mapstructure:"max_tool_rounds"`
		TurnTimeoutSeconds int    `mapstructure:"turn_timeout_seconds"`
	} `mapstructure:"chat"`
	Tools struct {
		Providers []ToolProviderConfig `mapstructure:"providers"`
	} `mapstructure:"tools"`
	TTS struct {
		APIKey  string `mapstructure:"api_key"`
		BaseURL string `mapstructure:"base_url"`
		Model   string `mapstructure:"model"`
		Voice   string `mapstructure:"voice"`
	} `mapstructure:"tts"`
	Kafka struct {
		Enabled bool   `mapstructure:"enabled"`
		Address string `mapstructure:"address"`
	} `mapstructure:"kafka"`
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
}

func LoadConfig(mode string) error {
	viper.SetConfigName(mode)     // name of config file (without extension)
	viper.SetConfigType("yaml")   // required if config file doesn't have an extension
	viper.AddConfigPath("config") // look for config in the working directory

	viper.AutomaticEnv() // override config file with environment variables

	if err := viper.ReadInConfig(); err != nil {
		return err
	}

	if err := viper.Unmarshal(&Config); err != nil {
		return err
	}

	log.Println("Configuration loaded successfully")
	return nil
}
