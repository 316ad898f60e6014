package config

import "time"

const (
	envPort           = "PORT"
	envClubName       = "CLUB_NAME"
	envProvider       = "PROVIDER"
	envCacheTTL       = "CACHE_TTL"
	envWarmInterval   = "WARM_INTERVAL"
	envAllowedOrigins = "ALLOWED_ORIGINS"
	envLMSBaseURL     = "LMS_BASE_URL"
	envLMSTimeout     = "LMS_TIMEOUT"
	envLMSRetries     = "LMS_RETRY_ATTEMPTS"
	envLMSTeams       = "LMS_TEAMS"
	envLMSDivisions   = "LMS_DIVISIONS"
	envMetricsPort    = "METRICS_PORT"
	envMetricsOn      = "METRICS_ENABLED"
	envOtelEndpoint   = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService    = "OTEL_SERVICE_NAME"
	envOtelInsecure   = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort     = "4000"
	defaultClubName = "Andover"
	defaultProvider = "lms"
	// One hour between scrapes keeps us well under any reasonable load on the
	// volunteer-run league site; results only change on match nights anyway.
	defaultCacheTTL = Duration(time.Hour)
	// Background cache warming is off by default; reads refresh the cache on demand.
	defaultWarmInterval = Duration(0)
	defaultLMSBaseURL   = "https://ecflms.org.uk/lms"
	defaultLMSTimeout   = 10 * Duration(time.Second)
	defaultLMSRetries   = 1
	defaultMetricsPort  = "9090"
	defaultServiceName  = "fixtures-service"
)

var defaultAllowedOrigins = []string{"https://www.andoverchessclub.co.uk"}

func defaultTeams() []Team {
	return []Team{
		{Letter: "A", UpstreamID: "39861"},
		{Letter: "B", UpstreamID: "39862"},
		{Letter: "C", UpstreamID: "39863"},
	}
}

func defaultDivisions() []Division {
	return []Division{
		{Name: "Division 2", UpstreamID: "2481"},
		{Name: "Division 4", UpstreamID: "2483"},
	}
}
