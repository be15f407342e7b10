// Package metrics exports use-case and LLM call telemetry to Prometheus.
package metrics

import (
	"context"
	"strconv"

	"github.com/alexanderramin/showrunner/internal/llm"
	"github.com/alexanderramin/showrunner/internal/service"
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder implements service.UseCaseObserver and llm.Observer.
type Recorder struct {
	useCases        *prometheus.CounterVec
	useCaseDuration *prometheus.HistogramVec
	llmCalls        *prometheus.CounterVec
	llmLatency      *prometheus.HistogramVec
}

var (
	_ service.UseCaseObserver = (*Recorder)(nil)
	_ llm.Observer            = (*Recorder)(nil)
)

// NewRecorder registers the collectors on reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		useCases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "showrunner",
			Name:      "use_case_total",
			Help:      "Service use cases executed, by outcome.",
		}, []string{"use_case", "success"}),
		useCaseDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "showrunner",
			Name:      "use_case_duration_seconds",
			Help:      "Service use case latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"use_case"}),
		llmCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "showrunner",
			Name:      "llm_calls_total",
			Help:      "LLM calls, by provider and error code.",
		}, []string{"task", "provider", "error_code"}),
		llmLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "showrunner",
			Name:      "llm_call_duration_seconds",
			Help:      "LLM call latency.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60},
		}, []string{"task", "provider"}),
	}
	for _, c := range []prometheus.Collector{r.useCases, r.useCaseDuration, r.llmCalls, r.llmLatency} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Recorder) ObserveUseCase(_ context.Context, event service.UseCaseEvent) {
	r.useCases.WithLabelValues(event.Name, strconv.FormatBool(event.Success)).Inc()
	r.useCaseDuration.WithLabelValues(event.Name).Observe(event.Duration.Seconds())
}

func (r *Recorder) OnCallComplete(event llm.LLMCallEvent) {
	code := event.ErrorCode
	if event.Success {
		code = "OK"
	}
	r.llmCalls.WithLabelValues(string(event.Task), event.Provider, code).Inc()
	r.llmLatency.WithLabelValues(string(event.Task), event.Provider).Observe(float64(event.LatencyMs) / 1000)
}
