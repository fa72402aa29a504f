package quality

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// input is the prompt under evaluation, prepared once for every rule.
type input struct {
	prompt      string
	lower       string
	requirement string
	lines       []string
}

func newInput(prompt, requirement string) *input {
	return &input{
		prompt:      prompt,
		lower:       strings.ToLower(prompt),
		requirement: requirement,
		lines:       strings.Split(prompt, "\n"),
	}
}

// outcome is what a single rule contributes to its dimension.
type outcome struct {
	delta      float64
	note       string
	suggestion string
}

type rule struct {
	name  string
	apply func(in *input) outcome
}

type dimension struct {
	name     Dimension
	fallback string
	rules    []rule
}

var (
	instructionMarkers  = []string{"请", "需要", "要求", "should", "must", "please"}
	explainMarkers      = []string{"解释", "说明", "explain", "clarify"}
	exampleMarkers      = []string{"例如", "比如", "example"}
	formatMarkers       = []string{"格式", "结构", "模板", "format", "structure"}
	constraintMarkers   = []string{"不要", "避免", "限制", "约束", "don't", "avoid", "constraint"}
	sequenceMarkers     = []string{"首先", "然后", "最后", "接下来", "first", "then", "finally", "next"}
	actionVerbs         = []string{"创建", "生成", "分析", "设计", "实现", "优化", "create", "generate", "analyze", "design", "implement"}
	verificationMarkers = []string{"检查", "验证", "确认", "测试", "check", "verify", "test"}

	// components are the parts a complete prompt states, in report order.
	components = []struct {
		label   string
		markers []string
	}{
		{"task description", []string{"任务", "目标", "task", "goal"}},
		{"output requirement", []string{"输出", "结果", "生成", "output", "result"}},
		{"quality standard", []string{"质量", "标准", "要求", "quality", "standard"}},
		{"context", []string{"背景", "上下文", "环境", "context", "background"}},
	}

	jargonRe = regexp.MustCompile(`[A-Z]{2,}|[a-z]+[A-Z][a-z]*`)
	numberRe = regexp.MustCompile(`\p{Nd}+`)
	listRe   = regexp.MustCompile(`^([-*+]|\d+[.)])\s`)
	stepRes  = []*regexp.Regexp{
		regexp.MustCompile(`步骤\s*\d+`),
		regexp.MustCompile(`\d+\.\s`),
		regexp.MustCompile(`第[一二三四五六七八九十\d]+步`),
		regexp.MustCompile(`(?i)\bstep\s*\d+`),
	}
)

var dimensions = []dimension{
	{
		name:     Clarity,
		fallback: "clarity needs work",
		rules: []rule{
			{"length", func(in *input) outcome {
				words := len(strings.Fields(in.prompt))
				switch {
				case words >= 50 && words <= 500:
					return outcome{delta: 1.0, note: "length is easy to follow"}
				case words < 50:
					return outcome{delta: -1.0, note: "too short, likely missing information", suggestion: "add more detail and context"}
				default:
					return outcome{delta: -0.5, note: "long but acceptable", suggestion: "consider tightening the wording"}
				}
			}},
			{"instructions", func(in *input) outcome {
				if containsAny(in.lower, instructionMarkers) {
					return outcome{delta: 1.0, note: "uses explicit instruction words"}
				}
				return outcome{delta: -1.0, suggestion: "use explicit instruction words such as must or should"}
			}},
			{"jargon", func(in *input) outcome {
				if !jargonRe.MatchString(in.prompt) {
					return outcome{}
				}
				if containsAny(in.lower, explainMarkers) {
					return outcome{delta: 0.5, note: "explains technical terms"}
				}
				return outcome{suggestion: "explain the technical terms you use"}
			}},
		},
	},
	{
		name:     Specificity,
		fallback: "needs more specific requirements",
		rules: []rule{
			{"numbers", func(in *input) outcome {
				n := len(numberRe.FindAllString(in.prompt, -1))
				switch {
				case n >= 3:
					return outcome{delta: 1.5, note: "includes concrete numbers and measures"}
				case n >= 1:
					return outcome{delta: 0.5, note: "includes some concrete data"}
				default:
					return outcome{delta: -1.0, suggestion: "add concrete numbers, limits or measures"}
				}
			}},
			{"examples", func(in *input) outcome {
				if containsAny(in.lower, exampleMarkers) {
					return outcome{delta: 1.0, note: "gives concrete examples"}
				}
				return outcome{suggestion: "add an example that illustrates the requirement"}
			}},
			{"format", func(in *input) outcome {
				if containsAny(in.lower, formatMarkers) {
					return outcome{delta: 1.0, note: "states the expected output format"}
				}
				return outcome{suggestion: "specify the expected output format"}
			}},
			{"constraints", func(in *input) outcome {
				if containsAny(in.lower, constraintMarkers) {
					return outcome{delta: 0.5, note: "states constraints"}
				}
				return outcome{}
			}},
		},
	},
	{
		name:     Completeness,
		fallback: "completeness needs work",
		rules: []rule{
			{"components", func(in *input) outcome {
				var missing []string
				for _, c := range components {
					if !containsAny(in.lower, c.markers) {
						missing = append(missing, c.label)
					}
				}
				ratio := float64(len(components)-len(missing)) / float64(len(components))
				o := outcome{delta: ratio * 3.0}
				switch {
				case ratio >= 0.75:
					o.note = "covers most of the essential components"
				case ratio >= 0.5:
					o.note = "covers the basic components"
				default:
					o.note = "missing essential components"
					o.suggestion = "add the missing components: " + strings.Join(missing, ", ")
				}
				return o
			}},
			{"requirement overlap", func(in *input) outcome {
				if utf8.RuneCountInString(in.requirement) <= 10 {
					return outcome{}
				}
				ratio := overlap(in.requirement, in.prompt)
				switch {
				case ratio >= 0.3:
					return outcome{delta: 1.0, note: "addresses the original requirement well"}
				case ratio >= 0.1:
					return outcome{delta: 0.5, note: "partly addresses the original requirement"}
				default:
					return outcome{suggestion: "echo the key terms of the original requirement"}
				}
			}},
		},
	},
	{
		name:     Structure,
		fallback: "structure needs work",
		rules: []rule{
			{"headers", func(in *input) outcome {
				n := in.count(func(l string) bool { return strings.HasPrefix(l, "#") })
				switch {
				case n >= 3:
					return outcome{delta: 2.0, note: "well organized with headers"}
				case n >= 1:
					return outcome{delta: 1.0, note: "has headers"}
				default:
					return outcome{suggestion: "organize the content under headers"}
				}
			}},
			{"lists", func(in *input) outcome {
				n := in.count(listRe.MatchString)
				switch {
				case n >= 3:
					return outcome{delta: 1.5, note: "uses lists to organize information"}
				case n >= 1:
					return outcome{delta: 0.5, note: "has some lists"}
				default:
					return outcome{suggestion: "use lists to organize information"}
				}
			}},
			{"paragraphs", func(in *input) outcome {
				n := in.count(func(l string) bool { return l != "" && !strings.HasPrefix(l, "#") })
				if n >= 3 {
					return outcome{delta: 1.0, note: "content is split into sections"}
				}
				return outcome{}
			}},
			{"sequence", func(in *input) outcome {
				if containsAny(in.lower, sequenceMarkers) {
					return outcome{delta: 0.5, note: "has a clear logical flow"}
				}
				return outcome{suggestion: "use sequencing words such as first, then and finally"}
			}},
		},
	},
	{
		name:     Actionability,
		fallback: "actionability needs work",
		rules: []rule{
			{"action verbs", func(in *input) outcome {
				n := 0
				for _, v := range actionVerbs {
					if strings.Contains(in.lower, v) {
						n++
					}
				}
				switch {
				case n >= 3:
					return outcome{delta: 2.0, note: "gives clear actions"}
				case n >= 1:
					return outcome{delta: 1.0, note: "has some action verbs"}
				default:
					return outcome{suggestion: "use explicit action verbs"}
				}
			}},
			{"steps", func(in *input) outcome {
				n := 0
				for _, re := range stepRes {
					n += len(re.FindAllStringIndex(in.prompt, -1))
				}
				switch {
				case n >= 3:
					return outcome{delta: 1.5, note: "provides step-by-step guidance"}
				case n >= 1:
					return outcome{delta: 0.5, note: "has some steps"}
				default:
					return outcome{suggestion: "break the work into concrete steps"}
				}
			}},
			{"verification", func(in *input) outcome {
				if containsAny(in.lower, verificationMarkers) {
					return outcome{delta: 1.0, note: "includes acceptance or check criteria"}
				}
				return outcome{suggestion: "add acceptance or quality-check criteria"}
			}},
		},
	},
}

// count returns the number of trimmed lines that satisfy match.
func (in *input) count(match func(string) bool) int {
	n := 0
	for _, l := range in.lines {
		if match(strings.TrimSpace(l)) {
			n++
		}
	}
	return n
}

// overlap is the share of distinct requirement words that also occur in the
// prompt.
func overlap(requirement, prompt string) float64 {
	want := wordSet(requirement)
	if len(want) == 0 {
		return 0
	}
	have := wordSet(prompt)
	n := 0
	for w := range want {
		if have[w] {
			n++
		}
	}
	return float64(n) / float64(len(want))
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = true
	}
	return set
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
