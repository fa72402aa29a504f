package advisor

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptforge/promptforge/internal/catalog"
	"github.com/promptforge/promptforge/internal/classify"
	"github.com/promptforge/promptforge/internal/metrics"
)

func TestAdvise(t *testing.T) {
	a := New(classify.Default(), catalog.Default())
	before := testutil.ToFloat64(metrics.AnalysesTotal.WithLabelValues("bug_fixing", "cursor"))

	got := a.Advise("在Cursor里修复这个JavaScript bug，点击按钮报错")
	assert.Equal(t, catalog.TaskBugFixing, got.Classification.TaskType)
	assert.Equal(t, catalog.ToolCursor, got.Classification.Tool)
	assert.Equal(t, "JavaScript", got.Classification.Language)
	require.NotEmpty(t, got.Recommendations)
	assert.Equal(t, "bug_fixing", got.Recommendations[0].TemplateID)
	assert.NotEmpty(t, got.Tips)

	after := testutil.ToFloat64(metrics.AnalysesTotal.WithLabelValues("bug_fixing", "cursor"))
	assert.Equal(t, before+1, after)
}

func TestAdviseEmptyCatalog(t *testing.T) {
	cat, err := catalog.New()
	require.NoError(t, err)
	got := New(classify.Default(), cat).Advise("anything")
	assert.NotNil(t, got.Recommendations)
	assert.Empty(t, got.Recommendations)
}

func TestEvaluateCountsGrade(t *testing.T) {
	a := New(classify.Default(), catalog.Default())
	before := testutil.ToFloat64(metrics.EvaluationsTotal.WithLabelValues("D"))
	r := a.Evaluate("", "")
	assert.Equal(t, "D", r.Grade)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.EvaluationsTotal.WithLabelValues("D")))
}
