package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr string
	}
	DB struct {
		Driver   string
		Host     string
		Port     string
		User     string
		Password string
		Name     string
		Path     string
	}
	Auth struct {
		JWTSecret       string
		TokenTTLMinutes int
	}
	CORS struct {
		Origin string
	}
	Storage struct {
		Backend   string
		LocalDir  string
		Bucket    string
		KeyPrefix string
		Region    string
		Endpoint  string
	}
	AWS struct {
		Profile string
	}
	Kafka struct {
		Brokers string
		Topic   string
	}
}

// Load reads configuration from environment variables and optional config files.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("SHOP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", ":5001")
	v.SetDefault("db.driver", "mysql")
	v.SetDefault("db.host", "127.0.0.1")
	v.SetDefault("db.port", "3306")
	v.SetDefault("db.user", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "shop")
	v.SetDefault("db.path", "data/shop.db")
	v.SetDefault("auth.jwtsecret", "")
	v.SetDefault("auth.tokenttlminutes", 60)
	v.SetDefault("cors.origin", "http://localhost:3000")
	v.SetDefault("storage.backend", "local")
	v.SetDefault("storage.localdir", "public/images")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.keyprefix", "product-images")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("aws.profile", "")
	v.SetDefault("kafka.brokers", "")
	v.SetDefault("kafka.topic", "shop_events")

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// DSN builds the database/sql connection string for the configured driver.
// clientFoundRows makes MySQL report matched rows on UPDATE, which the
// product repository relies on to detect missing ids.
func (c Config) DSN() string {
	if c.DB.Driver == "sqlite" {
		return c.DB.Path
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&clientFoundRows=true",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// KafkaBrokers splits the comma separated broker list, empty when events are
// disabled.
func (c Config) KafkaBrokers() []string {
	if strings.TrimSpace(c.Kafka.Brokers) == "" {
		return nil
	}
	parts := strings.Split(c.Kafka.Brokers, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}
