package config

import (
	"errors"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultField is one entry of attendee.default_fields. Either Type or
// Properties is set; Properties wins when both are present.
type DefaultField struct {
	Name       string         `mapstructure:"name"`
	Type       string         `mapstructure:"type"`
	Properties map[string]any `mapstructure:"properties"`
}

type AttendeeConfig struct {
	DefaultFields []DefaultField `mapstructure:"default_fields"`
}

type Config struct {
	Port                          string `mapstructure:"PORT"`
	DatabasePath                  string `mapstructure:"DATABASE_PATH"`
	BaseURL                       string `mapstructure:"BASE_URL"`
	AppEnv                        string `mapstructure:"APP_ENV"`
	LogLevel                      string `mapstructure:"LOG_LEVEL"`
	Locale                        string `mapstructure:"LOCALE"`
	DiscordClientID               string `mapstructure:"DISCORD_CLIENT_ID"`
	DiscordClientSecret           string `mapstructure:"DISCORD_CLIENT_SECRET"`
	DiscordRedirectURL            string `mapstructure:"DISCORD_REDIRECT_URL"`
	DiscordGuildID                string `mapstructure:"DISCORD_GUILD_ID"`
	DiscordBotToken               string `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordNotificationsChannelID string `mapstructure:"DISCORD_NOTIFICATIONS_CHANNEL_ID"`
	JWTSecret                     string `mapstructure:"JWT_SECRET"`
	FrontendURL                   string `mapstructure:"FRONTEND_URL"`
	EnableCORS                    bool   `mapstructure:"ENABLE_CORS"`

	Attendee AttendeeConfig `mapstructure:"attendee"`
}

var defaultAttendeeFields = []map[string]any{
	{"name": "FirstName", "type": "UserTextField"},
	{"name": "Surname", "type": "UserTextField"},
	{"name": "Email", "type": "UserEmailField"},
}

func LoadConfig() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_PATH", "tickets.db")
	v.SetDefault("BASE_URL", "http://127.0.0.1:8080")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOCALE", "en")
	v.SetDefault("DISCORD_REDIRECT_URL", "http://127.0.0.1:8080/auth/discord/callback")
	v.SetDefault("FRONTEND_URL", "http://127.0.0.1:4000/admin")
	v.SetDefault("attendee.default_fields", defaultAttendeeFields)

	for _, key := range []string{
		"DISCORD_CLIENT_ID",
		"DISCORD_CLIENT_SECRET",
		"DISCORD_GUILD_ID",
		"DISCORD_BOT_TOKEN",
		"DISCORD_NOTIFICATIONS_CHANNEL_ID",
		"JWT_SECRET",
		"ENABLE_CORS",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	v.AutomaticEnv()

	v.SetConfigName("tickets")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/event-tickets")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	return &config, nil
}
