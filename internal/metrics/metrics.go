package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tictactoe"

// Result labels for finished matches.
const (
	ResultWin       = "win"
	ResultDraw      = "draw"
	ResultAbandoned = "abandoned"
	ResultAborted   = "aborted"
)

// MoveAccepted labels moves_total for applied moves. Rejections use the reason code.
const MoveAccepted = "accepted"

// Metrics is safe to use as a nil pointer, every method is then a no-op.
type Metrics struct {
	matchesCreated  prometheus.Counter
	matchesFinished *prometheus.CounterVec
	moves           *prometheus.CounterVec
	queueLength     prometheus.Gauge
	activeSessions  prometheus.Gauge
	connections     prometheus.Gauge
	intentDuration  *prometheus.HistogramVec
}

func New(registry prometheus.Registerer) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		matchesCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_created_total",
			Help:      "Total number of sessions created by matchmaking",
		}),

		matchesFinished: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_finished_total",
			Help:      "Total number of sessions that reached a terminal state",
		}, []string{"result"}),

		moves: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moves_total",
			Help:      "Total number of move intents by status",
		}, []string{"status"}),

		queueLength: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "queue_length",
			Help:      "Number of participants waiting for an opponent",
		}),

		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Number of sessions in the registry",
		}),

		connections: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connections",
			Help:      "Number of open websocket connections",
		}),

		intentDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "intent_duration_seconds",
			Help:      "Time spent handling a client intent",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}, []string{"action"}),
	}
}

func (that *Metrics) MatchCreated() {
	if that == nil {
		return
	}

	that.matchesCreated.Inc()
}

func (that *Metrics) MatchFinished(result string) {
	if that == nil {
		return
	}

	that.matchesFinished.WithLabelValues(result).Inc()
}

func (that *Metrics) Move(status string) {
	if that == nil {
		return
	}

	that.moves.WithLabelValues(status).Inc()
}

func (that *Metrics) SetQueueLength(n int) {
	if that == nil {
		return
	}

	that.queueLength.Set(float64(n))
}

func (that *Metrics) SetActiveSessions(n int) {
	if that == nil {
		return
	}

	that.activeSessions.Set(float64(n))
}

func (that *Metrics) ConnectionOpened() {
	if that == nil {
		return
	}

	that.connections.Inc()
}

func (that *Metrics) ConnectionClosed() {
	if that == nil {
		return
	}

	that.connections.Dec()
}

// ObserveIntent records how long handling an action took since start.
func (that *Metrics) ObserveIntent(action string, start time.Time) {
	if that == nil {
		return
	}

	that.intentDuration.WithLabelValues(action).Observe(time.Since(start).Seconds())
}
