// Package quality grades finished prompts along five independent dimensions.
//
// Every dimension is an ordered list of rules. Each rule inspects the prompt
// and returns a score delta, an optional note for the explanation and an
// optional suggestion. Deltas are summed onto a 5.0 baseline and the result
// is clamped to [0, 10]. Evaluation is deterministic and has no side effects.
package quality

import (
	"fmt"
	"math"
	"strings"
)

// Dimension names one axis of prompt quality.
type Dimension string

const (
	Clarity       Dimension = "clarity"
	Specificity   Dimension = "specificity"
	Completeness  Dimension = "completeness"
	Structure     Dimension = "structure"
	Actionability Dimension = "actionability"
)

const (
	baseline = 5.0

	strengthThreshold    = 8.0
	improvementThreshold = 7.0
	maxImprovements      = 5
)

// Score is the result for one dimension.
type Score struct {
	Dimension   Dimension `json:"dimension"`
	Score       float64   `json:"score"`
	Explanation string    `json:"explanation"`
	Suggestions []string  `json:"suggestions"`
}

// Report is the graded evaluation of one prompt.
type Report struct {
	Overall      float64  `json:"overall_score"`
	Grade        string   `json:"grade"`
	Scores       []Score  `json:"scores"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

// Score returns the score for d, or false when the report lacks it.
func (r Report) Score(d Dimension) (Score, bool) {
	for _, s := range r.Scores {
		if s.Dimension == d {
			return s, true
		}
	}
	return Score{}, false
}

// Evaluate grades prompt. A requirement longer than ten runes is also
// checked for overlap with the prompt; pass "" to skip that check.
func Evaluate(prompt, requirement string) Report {
	in := newInput(prompt, requirement)

	r := Report{
		Scores:       make([]Score, 0, len(dimensions)),
		Strengths:    []string{},
		Improvements: []string{},
	}
	total := 0.0
	for _, d := range dimensions {
		s := d.evaluate(in)
		r.Scores = append(r.Scores, s)
		total += s.Score
	}
	r.Overall = round1(total / float64(len(dimensions)))
	r.Grade = Grade(r.Overall)

	for _, s := range r.Scores {
		if s.Score >= strengthThreshold {
			r.Strengths = append(r.Strengths, fmt.Sprintf("%s: %s", s.Dimension, s.Explanation))
		}
		if s.Score < improvementThreshold {
			r.Improvements = append(r.Improvements, s.Suggestions...)
		}
	}
	if len(r.Improvements) > maxImprovements {
		r.Improvements = r.Improvements[:maxImprovements]
	}
	return r
}

func (d dimension) evaluate(in *input) Score {
	score := baseline
	var notes []string
	suggestions := []string{}
	for _, r := range d.rules {
		o := r.apply(in)
		score += o.delta
		if o.note != "" {
			notes = append(notes, o.note)
		}
		if o.suggestion != "" {
			suggestions = append(suggestions, o.suggestion)
		}
	}
	explanation := d.fallback
	if len(notes) > 0 {
		explanation = strings.Join(notes, "; ")
	}
	return Score{
		Dimension:   d.name,
		Score:       min(10, max(0, score)),
		Explanation: explanation,
		Suggestions: suggestions,
	}
}

var grades = []struct {
	min   float64
	grade string
}{
	{9.0, "A+"},
	{8.5, "A"},
	{8.0, "A-"},
	{7.5, "B+"},
	{7.0, "B"},
	{6.5, "B-"},
	{6.0, "C+"},
	{5.5, "C"},
	{5.0, "C-"},
}

// Grade maps an overall score to its letter grade.
func Grade(score float64) string {
	for _, g := range grades {
		if score >= g.min {
			return g.grade
		}
	}
	return "D"
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
