// Package config reads prefixed environment variables
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"truthlens/internal/platform/logger"
)

// Conf is a namespaced view over the environment, e.g. Prefix("CORE_API_")
type Conf struct{ prefix string }

// New returns the unprefixed root view
func New() Conf { return Conf{} }

// Prefix returns a child view; prefixes stack
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// Key is the fully qualified variable name
func (c Conf) Key(k string) string { return c.prefix + k }

func (c Conf) lookup(k string) string { return strings.TrimSpace(os.Getenv(c.Key(k))) }

// may parses key with parse, falling back to def when unset or unparsable
func may[T any](c Conf, key string, def T, parse func(string) (T, error)) T {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.Key(key)).Str("value", s).Interface("default", def).Msg("invalid config value, using default")
		return def
	}
	return v
}

// MayString returns the trimmed value or def
func (c Conf) MayString(key, def string) string {
	if s := c.lookup(key); s != "" {
		return s
	}
	return def
}

// MayInt returns the value as an int or def
func (c Conf) MayInt(key string, def int) int { return may(c, key, def, strconv.Atoi) }

// MayFloat64 returns the value as a float64 or def
func (c Conf) MayFloat64(key string, def float64) float64 {
	return may(c, key, def, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
}

// MayBool returns the value as a bool or def
func (c Conf) MayBool(key string, def bool) bool { return may(c, key, def, strconv.ParseBool) }

// MayDuration returns the value as a duration (250ms, 2s) or def
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, time.ParseDuration)
}

// MayCSV splits a comma list, dropping blanks; def when nothing is left
func (c Conf) MayCSV(key string, def []string) []string {
	var out []string
	for _, p := range strings.Split(c.lookup(key), ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns the value when it is one of allowed, case insensitive
// an unknown value panics
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.MayString(key, def)
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return strings.ToLower(a)
		}
	}
	if v == "" {
		return v
	}
	logger.Get().Panic().Str("key", c.Key(key)).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return ""
}
