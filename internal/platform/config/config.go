// Package config reads service configuration from prefixed environment variables
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"incidentsaver/internal/platform/logger"
)

// Conf is a namespaced view over environment variables (e.g. "INCIDENTSAVER_", "STORE_")
// Use New() for the root and Prefix to scope a component
type Conf struct{ prefix string }

// New creates a root Conf (no prefix)
func New() Conf { return Conf{} }

// Prefix creates a child Conf, e.g. cfg.Prefix("STORE_")
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// key composes the fully-qualified env var name
func (c Conf) key(k string) string { return c.prefix + k }

func (c Conf) get(k string) string { return strings.TrimSpace(os.Getenv(c.key(k))) }

// mustGet panics through the logger when the key is blank
func (c Conf) mustGet(k string) string {
	v := c.get(k)
	if v == "" {
		logger.Get().Panic().Str("key", c.key(k)).Msg("missing required env")
	}
	return v
}

// MustString panics if the key is missing or blank
func (c Conf) MustString(key string) string { return c.mustGet(key) }

// MustInt panics if the key is missing or not an int
func (c Conf) MustInt(key string) int {
	s := c.mustGet(key)
	v, err := strconv.Atoi(s)
	if err != nil {
		logger.Get().Panic().Str("key", c.key(key)).Str("value", s).Msg("invalid int value")
	}
	return v
}

// Require panics on the first blank key
func (c Conf) Require(keys ...string) {
	for _, k := range keys {
		_ = c.mustGet(k)
	}
}

// MayString returns the value or def if blank
func (c Conf) MayString(key, def string) string {
	if v := c.get(key); v != "" {
		return v
	}
	return def
}

// MayInt returns the value or def; junk logs a warning and returns def
func (c Conf) MayInt(key string, def int) int {
	s := c.get(key)
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Int("default", def).Msg("invalid int; using default")
	return def
}

// MayBool returns the value or def; junk logs a warning and returns def
func (c Conf) MayBool(key string, def bool) bool {
	s := c.get(key)
	if s == "" {
		return def
	}
	if v, err := strconv.ParseBool(s); err == nil {
		return v
	}
	logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Bool("default", def).Msg("invalid bool; using default")
	return def
}

// MayDuration returns the value or def; junk logs a warning and returns def
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	s := c.get(key)
	if s == "" {
		return def
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Dur("default", def).Msg("invalid duration; using default")
	return def
}

// MayCSV splits a comma-separated value, dropping blanks; def if nothing remains
func (c Conf) MayCSV(key string, def []string) []string {
	s := c.get(key)
	if s == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns the value lower-cased if it is one of allowed, def when blank.
// Anything else panics, a misspelt backend name should stop the process
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.MayString(key, def)
	if v == "" {
		return v
	}
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return strings.ToLower(a)
		}
	}
	logger.Get().Panic().Str("key", c.key(key)).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return ""
}

// MayPort returns a listen addr like ":4000". Accepts "4000", ":4000" or "host:4000"
// and panics when the port part is outside 1..65535
func (c Conf) MayPort(key, def string) string {
	s := c.MayString(key, def)
	host, port := "", s
	if i := strings.LastIndex(s, ":"); i >= 0 {
		host, port = s[:i], s[i+1:]
	}
	p, err := strconv.Atoi(port)
	if err != nil || p < 1 || p > 65535 {
		logger.Get().Panic().Str("key", c.key(key)).Str("value", s).Msg("invalid TCP port; expected 1..65535")
	}
	return host + ":" + port
}

// MayLocation loads an IANA zone name (e.g. "Europe/Berlin"); blank means time.Local.
// An unknown zone logs a warning and falls back to time.Local
func (c Conf) MayLocation(key string) *time.Location {
	s := c.get(key)
	if s == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(s)
	if err != nil {
		logger.Get().Warn().Err(err).Str("key", c.key(key)).Str("value", s).Msg("invalid time zone; using local")
		return time.Local
	}
	return loc
}
