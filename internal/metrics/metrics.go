package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AnalysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "promptforge_analyses_total",
		Help: "Requests classified, by detected task type and tool.",
	}, []string{"task_type", "tool"})

	RecommendationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "promptforge_recommendations_total",
		Help: "Templates recommended, by template id.",
	}, []string{"template"})

	EvaluationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "promptforge_evaluations_total",
		Help: "Prompts graded, by grade.",
	}, []string{"grade"})

	GenerationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "promptforge_generations_total",
		Help: "Prompts generated, by format and whether the canned fallback was used.",
	}, []string{"format", "fallback"})

	GeneratedQuality = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "promptforge_generated_quality_score",
		Help:    "Overall quality score of generated prompts.",
		Buckets: []float64{3, 4, 5, 5.5, 6, 6.5, 7, 7.5, 8, 8.5, 9, 10},
	})

	HistoryEntriesTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "promptforge_history_entries",
		Help: "Number of generated prompts stored in history.",
	})
)

// RecordGeneration updates the generation counters.
func RecordGeneration(format string, fallback bool, score float64) {
	GenerationsTotal.WithLabelValues(format, strconv.FormatBool(fallback)).Inc()
	GeneratedQuality.Observe(score)
}
