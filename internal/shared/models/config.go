package models

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
}

type HTTPConfig struct {
	Port string
}

type AuthConfig struct {
	JWTSecret string
}

type PaginationConfig struct {
	DefaultPageSize int
	MaxPageSize     int
}

type Config struct {
	Database   DatabaseConfig
	HTTP       HTTPConfig
	Auth       AuthConfig
	Pagination PaginationConfig
}
