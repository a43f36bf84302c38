package config

import "time"

// VideoService definition video_service YAML structure
type VideoService struct {
	Port string `mapstructure:"port"`
	IP   string `mapstructure:"ip"`

	Mongo DatabaseConfig `mapstructure:"mongo"`
	MinIO MinIOConfig    `mapstructure:"minio"`
	Auth  AuthConfig     `mapstructure:"auth"`
	Media MediaConfig    `mapstructure:"media"`
	Admin AdminConfig    `mapstructure:"admin"`
}

// DatabaseConfig definition db setting
type DatabaseConfig struct {
	URI           string `mapstructure:"uri"`
	Database      string `mapstructure:"database"`
	RetryInterval int    `mapstructure:"retry_interval"`
	RetryCount    int    `mapstructure:"retry_count"`
}

// MinIOConfig definition minio setting
type MinIOConfig struct {
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	User       string `mapstructure:"user"`
	Password   string `mapstructure:"password"`
	BucketName string `mapstructure:"bucket_name"`
	UseSSL     bool   `mapstructure:"use_ssl"`

	RetryInterval time.Duration `mapstructure:"retry_interval"`
	RetryCount    int           `mapstructure:"retry_count"`
}

// AuthConfig definition token signing setting
type AuthConfig struct {
	// Secret signs session tokens, sourced from environment, never from code
	Secret string `mapstructure:"secret"`
}

// MediaConfig definition media pipeline setting
type MediaConfig struct {
	// PlaceholderThumbnail substitutes a null thumbnail in listings
	PlaceholderThumbnail string `mapstructure:"placeholder_thumbnail"`
	TempDir              string `mapstructure:"temp_dir"`
}

// AdminConfig definition seed admin account, values come from env placeholders
type AdminConfig struct {
	Name     string `mapstructure:"name"`
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}
