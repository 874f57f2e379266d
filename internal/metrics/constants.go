package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameUnitsDrawn      = "units_drawn_total"
	MetricNameWeaponsDrawn    = "weapons_drawn_total"
	MetricNameItemsSold       = "items_sold_total"
	MetricNameDailiesClaimed  = "dailies_claimed_total"
	MetricNameBattlesStarted  = "battles_started_total"
	MetricNameBattlesFinished = "battles_finished_total"
	MetricNameActiveSessions  = "battle_sessions_active"
	MetricNameCoinsEarned     = "coins_earned_total"
	MetricNameCoinsSpent      = "coins_spent_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextUnitsDrawn      = "Total number of units drawn"
	HelpTextWeaponsDrawn    = "Total number of weapons drawn"
	HelpTextItemsSold       = "Total number of items sold"
	HelpTextDailiesClaimed  = "Total number of daily rewards claimed"
	HelpTextBattlesStarted  = "Total number of battles started"
	HelpTextBattlesFinished = "Total number of battles finished"
	HelpTextActiveSessions  = "Current number of live battle sessions"
	HelpTextCoinsEarned     = "Total coins earned from rewards and sales"
	HelpTextCoinsSpent      = "Total coins spent on draws"
)

// ============================================================================
// Metric Label Names
// ============================================================================

const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelType   = "type"
	LabelRarity = "rarity"
	LabelKind   = "kind"
	LabelFinish = "finish_method"
)

// HTTPLatencyBuckets covers the expected API latency range.
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}
