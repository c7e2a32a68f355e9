// config.go - Konfigurationsfunktionen fuer Runewire
//
// Dieses Modul enthaelt:
// - Host: Gibt Scheme und Host zurueck (RUNEWIRE_HOST)
// - AllowedOrigins: Gibt erlaubte Origins zurueck (RUNEWIRE_ORIGINS)
// - LogLevel: Gibt Log-Level zurueck (RUNEWIRE_DEBUG)
// - ChunkBytes: Lesegroesse der Pipeline (RUNEWIRE_CHUNK_BYTES)
// - MaxEncodeBytes: Limit des Encode-Puffers (RUNEWIRE_MAX_ENCODE_BYTES)
// - Var/AsMap/Values: Zugriff und Export der Variablen
package envconfig

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// Host gibt Scheme und Host zurueck
// Konfigurierbar via RUNEWIRE_HOST
// Default: http://127.0.0.1:11474
func Host() *url.URL {
	defaultPort := "11474"

	s := strings.TrimSpace(Var("RUNEWIRE_HOST"))
	scheme, hostport, ok := strings.Cut(s, "://")
	switch {
	case !ok:
		scheme, hostport = "http", s
	case scheme == "http":
		defaultPort = "80"
	case scheme == "https":
		defaultPort = "443"
	}

	hostport, path, _ := strings.Cut(hostport, "/")
	host, port, err := net.SplitHostPort(hostport)
	if err != nil {
		host, port = "127.0.0.1", defaultPort
		if ip := net.ParseIP(strings.Trim(hostport, "[]")); ip != nil {
			host = ip.String()
		} else if hostport != "" {
			host = hostport
		}
	}

	if n, err := strconv.ParseInt(port, 10, 32); err != nil || n > 65535 || n < 0 {
		slog.Warn("invalid port, using default", "port", port, "default", defaultPort)
		port = defaultPort
	}

	return &url.URL{
		Scheme: scheme,
		Host:   net.JoinHostPort(host, port),
		Path:   path,
	}
}

// AllowedOrigins gibt erlaubte Origins zurueck
// Konfigurierbar via RUNEWIRE_ORIGINS (komma-separiert)
// Enthaelt Standard-Origins fuer localhost
func AllowedOrigins() (origins []string) {
	if s := Var("RUNEWIRE_ORIGINS"); s != "" {
		origins = strings.Split(s, ",")
	}

	for _, origin := range []string{"localhost", "127.0.0.1", "0.0.0.0"} {
		origins = append(origins,
			"http://"+origin,
			"https://"+origin,
			"http://"+net.JoinHostPort(origin, "*"),
			"https://"+net.JoinHostPort(origin, "*"),
		)
	}

	return origins
}

// LogLevel gibt das Log-Level zurueck
// Konfigurierbar via RUNEWIRE_DEBUG (0/false=Info, 1/true=Debug, 2=Trace)
func LogLevel() slog.Level {
	level := slog.LevelInfo
	if s := Var("RUNEWIRE_DEBUG"); s != "" {
		if b, err := strconv.ParseBool(s); err == nil && b {
			level = slog.LevelDebug
		} else if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			switch {
			case i <= 0:
				level = slog.LevelInfo
			case i == 1:
				level = slog.LevelDebug
			default:
				level = slog.LevelDebug - 4
			}
		}
	}

	return level
}

// ChunkBytes gibt die Lesegroesse der Pipeline zurueck
// Konfigurierbar via RUNEWIRE_CHUNK_BYTES (Default: 4096)
var ChunkBytes = Uint("RUNEWIRE_CHUNK_BYTES", 4096)

// MaxEncodeBytes gibt das Limit des Encode-Puffers zurueck
// Konfigurierbar via RUNEWIRE_MAX_ENCODE_BYTES (Default: 0 = unbegrenzt)
var MaxEncodeBytes = Uint("RUNEWIRE_MAX_ENCODE_BYTES", 0)

// Uint gibt eine Funktion zurueck, die einen uint mit Default-Wert liest
func Uint(key string, defaultValue uint) func() uint {
	return func() uint {
		if s := Var(key); s != "" {
			if n, err := strconv.ParseUint(s, 10, 64); err != nil {
				slog.Warn("invalid environment variable, using default", "key", key, "value", s, "default", defaultValue)
			} else {
				return uint(n)
			}
		}
		return defaultValue
	}
}

// EnvVar repraesentiert eine Environment-Variable mit Metadaten
type EnvVar struct {
	Name        string
	Value       any
	Description string
}

// AsMap gibt alle Konfigurationen als Map zurueck
func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"RUNEWIRE_DEBUG":            {"RUNEWIRE_DEBUG", LogLevel(), "Show additional debug information (e.g. RUNEWIRE_DEBUG=1)"},
		"RUNEWIRE_HOST":             {"RUNEWIRE_HOST", Host(), "IP Address for the runewire server (default 127.0.0.1:11474)"},
		"RUNEWIRE_ORIGINS":          {"RUNEWIRE_ORIGINS", AllowedOrigins(), "A comma separated list of allowed origins"},
		"RUNEWIRE_CHUNK_BYTES":      {"RUNEWIRE_CHUNK_BYTES", ChunkBytes(), "Read size of the decode pipeline in bytes (default 4096)"},
		"RUNEWIRE_MAX_ENCODE_BYTES": {"RUNEWIRE_MAX_ENCODE_BYTES", MaxEncodeBytes(), "Upper bound of one encoded chunk in bytes (default 0, unlimited)"},
	}
}

// Values gibt alle Konfigurationswerte als String-Map zurueck
func Values() map[string]string {
	vals := make(map[string]string)
	for k, v := range AsMap() {
		vals[k] = fmt.Sprintf("%v", v.Value)
	}
	return vals
}

// Var liest eine Environment-Variable, getrimmt und ohne Quotes
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}
