package store

import (
	"time"

	"incidentsaver/internal/platform/config"
)

// Backend names the KV implementation
type Backend string

// Supported KV backends
const (
	BackendMemory   Backend = "memory"
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
)

// Config aggregates per backend configuration
type Config struct {
	AppName string
	Backend Backend

	SQLite SQLiteConfig
	PG     PGConfig
	CH     CHConfig
}

// SQLiteConfig configures the single-file backend
type SQLiteConfig struct {
	Path        string
	BusyTimeout time.Duration
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	ConnectRetries int           // default 20
	PingTimeout    time.Duration // default 3s
}

// CHConfig configures the ClickHouse capture ledger
type CHConfig struct {
	Enabled  bool
	Addr     []string
	Database string
	User     string
	Password string
	Role     string
}

// FromConfig reads STORE_* keys under cfg (usually the INCIDENTSAVER_ view)
func FromConfig(cfg config.Conf, appName string) Config {
	st := cfg.Prefix("STORE_")
	pg := st.Prefix("PG_")
	ch := st.Prefix("CH_")

	c := Config{
		AppName: appName,
		Backend: Backend(st.MayEnum("BACKEND", string(BackendSQLite),
			string(BackendMemory), string(BackendSQLite), string(BackendPostgres))),
		SQLite: SQLiteConfig{
			Path:        st.MayString("SQLITE_PATH", "data/incidents.db"),
			BusyTimeout: st.MayDuration("SQLITE_BUSY_TIMEOUT", 5*time.Second),
		},
		PG: PGConfig{
			URL:            pg.MayString("DBURL", ""),
			MaxConns:       int32(pg.MayInt("MAX_CONNS", 4)),
			LogSQL:         pg.MayBool("LOG_SQL", false),
			SlowQueryMs:    pg.MayInt("SLOW_MS", 200),
			ConnectRetries: pg.MayInt("CONNECT_RETRIES", 20),
			PingTimeout:    pg.MayDuration("PING_TIMEOUT", 3*time.Second),
		},
		CH: CHConfig{
			Enabled:  ch.MayBool("ENABLED", false),
			Addr:     ch.MayCSV("ADDR", []string{"localhost:9000"}),
			Database: ch.MayString("DATABASE", "default"),
			User:     ch.MayString("USER", "default"),
			Password: ch.MayString("PASSWORD", ""),
			Role:     appName,
		},
	}
	if c.Backend == BackendPostgres {
		pg.Require("DBURL")
	}
	return c
}
