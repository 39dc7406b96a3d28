package store

import "time"

// DefaultCounterTTL is the rolling expiry re-armed on every counter write.
// Keys untouched for this long are allowed to vanish
const DefaultCounterTTL = 4380 * time.Hour // ~6 months

// Config aggregates per backend configuration
type Config struct {
	AppName string

	RDS RedisConfig
}

// RedisConfig configures redis connectivity and counter expiry
type RedisConfig struct {
	Enabled  bool
	Addr     string
	DB       int
	Password string

	// CounterTTL overrides DefaultCounterTTL when > 0
	CounterTTL time.Duration

	// Guard/boot knobs:
	ConnectRetries int           // default 6
	PingTimeout    time.Duration // default 3s
}
