// Package advisor combines classification, template recommendation and
// general tips into one call.
package advisor

import (
	"github.com/promptforge/promptforge/internal/catalog"
	"github.com/promptforge/promptforge/internal/classify"
	"github.com/promptforge/promptforge/internal/metrics"
	"github.com/promptforge/promptforge/internal/quality"
	"github.com/promptforge/promptforge/internal/recommend"
)

// Advice is the full answer for one request.
type Advice struct {
	Classification  classify.Classification    `json:"analysis"`
	Recommendations []recommend.Recommendation `json:"recommendations"`
	Tips            []string                   `json:"tips"`
}

// Advisor holds the read-only classifier and catalog shared by all callers.
type Advisor struct {
	classifier *classify.Classifier
	catalog    *catalog.Catalog
}

func New(classifier *classify.Classifier, cat *catalog.Catalog) *Advisor {
	return &Advisor{classifier: classifier, catalog: cat}
}

// Catalog returns the template catalog the advisor recommends from.
func (a *Advisor) Catalog() *catalog.Catalog { return a.catalog }

// Advise classifies text and recommends templates for it.
func (a *Advisor) Advise(text string) Advice {
	c := a.classifier.Analyze(text)
	recs := recommend.Recommend(c, a.catalog)
	if recs == nil {
		recs = []recommend.Recommendation{}
	}

	metrics.AnalysesTotal.WithLabelValues(string(c.TaskType), string(c.Tool)).Inc()
	for _, r := range recs {
		metrics.RecommendationsTotal.WithLabelValues(r.TemplateID).Inc()
	}
	return Advice{
		Classification:  c,
		Recommendations: recs,
		Tips:            recommend.Tips(c),
	}
}

// Evaluate grades a finished prompt.
func (a *Advisor) Evaluate(prompt, requirement string) quality.Report {
	r := quality.Evaluate(prompt, requirement)
	metrics.EvaluationsTotal.WithLabelValues(r.Grade).Inc()
	return r
}
