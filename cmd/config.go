package cmd

import "time"

// Config carries environment-driven settings. DBHost empty means orders are
// kept in process memory; RedisHost empty means the idempotency ledger is
// kept in process memory as well.
type Config struct {
	HTTPPort       string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSslMode      string
	RedisHost      string
	IdempotencyTTL time.Duration
	SeedSampleData bool
}
