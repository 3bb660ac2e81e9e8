package config

import (
	"time"

	"github.com/preston-bernstein/game-catalog-service/internal/store"
)

// StoreConfig selects the document store backend and how the server connects to it.
type StoreConfig struct {
	Backend         string        `env:"STORE_BACKEND" envDefault:"memory"`
	MongoURI        string        `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase   string        `env:"MONGO_DATABASE" envDefault:"games"`
	MongoCollection string        `env:"MONGO_COLLECTION" envDefault:"games"`
	RedisAddr       string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword   string        `env:"REDIS_PASSWORD"`
	RedisDB         int           `env:"REDIS_DB" envDefault:"0"`
	SQLitePath      string        `env:"SQLITE_PATH" envDefault:"data/games.db"`
	ConnectAttempts int           `env:"STORE_CONNECT_ATTEMPTS" envDefault:"3"`
	ConnectBackoff  time.Duration `env:"STORE_CONNECT_BACKOFF" envDefault:"500ms"`
	CheckInterval   time.Duration `env:"STORE_CHECK_INTERVAL" envDefault:"30s"`
}

// Open returns the store package's view of this configuration.
func (c StoreConfig) Open() store.Config {
	return store.Config{
		Backend: c.Backend,
		Mongo: store.MongoConfig{
			URI:        c.MongoURI,
			Database:   c.MongoDatabase,
			Collection: c.MongoCollection,
		},
		Redis: store.RedisConfig{
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
		},
		SQLitePath: c.SQLitePath,
	}
}

// normalize replaces non-positive values with defaults.
func (c *StoreConfig) normalize() {
	if c.Backend == "" {
		c.Backend = defaultStoreBackend
	}
	if c.ConnectAttempts <= 0 {
		c.ConnectAttempts = defaultConnectAttempts
	}
	if c.ConnectBackoff <= 0 {
		c.ConnectBackoff = defaultConnectBackoff
	}
	if c.CheckInterval <= 0 {
		c.CheckInterval = defaultCheckInterval
	}
}
