package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Business Metrics
var (
	UnitsDrawn = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameUnitsDrawn,
			Help: HelpTextUnitsDrawn,
		},
		[]string{LabelRarity},
	)

	WeaponsDrawn = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameWeaponsDrawn,
			Help: HelpTextWeaponsDrawn,
		},
		[]string{LabelRarity},
	)

	ItemsSold = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsSold,
			Help: HelpTextItemsSold,
		},
		[]string{LabelKind, LabelRarity},
	)

	DailiesClaimed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDailiesClaimed,
			Help: HelpTextDailiesClaimed,
		},
	)

	BattlesStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameBattlesStarted,
			Help: HelpTextBattlesStarted,
		},
	)

	BattlesFinished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBattlesFinished,
			Help: HelpTextBattlesFinished,
		},
		[]string{LabelFinish},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameActiveSessions,
			Help: HelpTextActiveSessions,
		},
	)

	CoinsEarned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCoinsEarned,
			Help: HelpTextCoinsEarned,
		},
	)

	CoinsSpent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCoinsSpent,
			Help: HelpTextCoinsSpent,
		},
	)
)
