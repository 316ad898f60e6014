package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Duration wraps time.Duration for clearer type usage in Config.
type Duration = time.Duration

func envOrDefault(key, defaultValue string) string {
	val := os.Getenv(key)
	if val != "" {
		return val
	}
	return defaultValue
}

func durationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed < 0 {
		return defaultValue
	}
	return parsed
}

func intEnvOrDefault(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val <= 0 {
		return defaultValue
	}
	return val
}

func boolEnvOrDefault(key string, defaultValue bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}
	if raw == "1" || strings.EqualFold(raw, "true") || strings.EqualFold(raw, "yes") {
		return true
	}
	if raw == "0" || strings.EqualFold(raw, "false") || strings.EqualFold(raw, "no") {
		return false
	}
	return defaultValue
}

func listEnvOrDefault(key string, defaultValue []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

// teamsEnvOrDefault parses "A:39861,B:39862" into team mappings.
// Malformed entries are dropped rather than failing startup.
func teamsEnvOrDefault(key string, defaultValue []Team) []Team {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}
	out := make([]Team, 0)
	for _, entry := range strings.Split(raw, ",") {
		letter, id, ok := strings.Cut(strings.TrimSpace(entry), ":")
		letter = strings.TrimSpace(letter)
		id = strings.TrimSpace(id)
		if !ok || letter == "" || id == "" {
			continue
		}
		out = append(out, Team{Letter: letter, UpstreamID: id})
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

// divisionsEnvOrDefault parses "Division 2:2481,Division 4:2483" into division mappings.
func divisionsEnvOrDefault(key string, defaultValue []Division) []Division {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}
	out := make([]Division, 0)
	for _, entry := range strings.Split(raw, ",") {
		name, id, ok := strings.Cut(strings.TrimSpace(entry), ":")
		name = strings.TrimSpace(name)
		id = strings.TrimSpace(id)
		if !ok || name == "" || id == "" {
			continue
		}
		out = append(out, Division{Name: name, UpstreamID: id})
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
