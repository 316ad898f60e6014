package config

// Config holds runtime configuration for the server.
type Config struct {
	Port           string
	ClubName       string
	Provider       string
	CacheTTL       Duration
	WarmInterval   Duration
	AllowedOrigins []string
	LMS            LMSConfig
	Metrics        MetricsConfig
}

// LMSConfig controls how the upstream league-management site is reached.
type LMSConfig struct {
	BaseURL       string
	FetchTimeout  Duration
	RetryAttempts int
	Teams         []Team
	Divisions     []Division
}

// Team maps a club-relative team letter to its upstream LMS page identifier.
type Team struct {
	Letter     string
	UpstreamID string
}

// Division maps a league-table label to its upstream LMS page identifier.
type Division struct {
	Name       string
	UpstreamID string
}

// MetricsConfig controls telemetry export.
type MetricsConfig struct {
	Enabled      bool
	Port         string
	ServiceName  string
	OtlpEndpoint string
	OtlpInsecure bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:           envOrDefault(envPort, defaultPort),
		ClubName:       envOrDefault(envClubName, defaultClubName),
		Provider:       envOrDefault(envProvider, defaultProvider),
		CacheTTL:       durationEnvOrDefault(envCacheTTL, defaultCacheTTL),
		WarmInterval:   durationEnvOrDefault(envWarmInterval, defaultWarmInterval),
		AllowedOrigins: listEnvOrDefault(envAllowedOrigins, defaultAllowedOrigins),
		LMS:            loadLMS(),
		Metrics:        loadMetrics(),
	}
}

func loadLMS() LMSConfig {
	return LMSConfig{
		BaseURL:       envOrDefault(envLMSBaseURL, defaultLMSBaseURL),
		FetchTimeout:  durationEnvOrDefault(envLMSTimeout, defaultLMSTimeout),
		RetryAttempts: intEnvOrDefault(envLMSRetries, defaultLMSRetries),
		Teams:         teamsEnvOrDefault(envLMSTeams, defaultTeams()),
		Divisions:     divisionsEnvOrDefault(envLMSDivisions, defaultDivisions()),
	}
}

func loadMetrics() MetricsConfig {
	return MetricsConfig{
		Enabled:      boolEnvOrDefault(envMetricsOn, false),
		Port:         envOrDefault(envMetricsPort, defaultMetricsPort),
		ServiceName:  envOrDefault(envOtelService, defaultServiceName),
		OtlpEndpoint: envOrDefault(envOtelEndpoint, ""),
		OtlpInsecure: boolEnvOrDefault(envOtelInsecure, false),
	}
}
