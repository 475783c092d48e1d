package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	View     ViewConfig     `mapstructure:"view"     validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and session settings.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret"                     validate:"required,min=32"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes"         validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gtfield=TokenLifetimeMinutes"`
	// SessionCookie names the cookie that carries the access token for browser clients.
	SessionCookie string `mapstructure:"session_cookie" validate:"required"`
	BCryptCost    int    `mapstructure:"bcrypt_cost"    validate:"required,gte=4,lte=31"`
}

// ViewConfig configures the page renderer.
type ViewConfig struct {
	AppName      string `mapstructure:"app_name"      validate:"required"`
	AppURL       string `mapstructure:"app_url"       validate:"required,url"`
	AssetVersion string `mapstructure:"asset_version"`
}
