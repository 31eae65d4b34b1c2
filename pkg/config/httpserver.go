package config

// HttpServer is the configuration for the HTTP server
type HttpServer struct {
	LogLevel           LogLevel `mapstructure:"log_level"`
	HealthCheckLogging bool     `mapstructure:"health_check"`
	ListenAddress      string   `mapstructure:"listen_address"`
	Port               int      `mapstructure:"port" validate:"gte=0,lte=65535"`
}
