package assistant

import "strings"

// rule matches a normalized query. The first matching rule decides the intent.
type rule struct {
	match func(q string) (Intent, bool)
}

func keywords(kind Kind, words ...string) rule {
	return rule{match: func(q string) (Intent, bool) {
		if containsAny(q, words) {
			return Intent{Kind: kind}, true
		}
		return Intent{}, false
	}}
}

// topics is evaluated in order; the first keyword found wins.
var topics = []Topic{
	TopicDBMS,
	TopicNormalization,
	TopicSQL,
	TopicPython,
	TopicJavaScript,
	TopicAlgorithm,
	TopicDataStructure,
}

var rules = []rule{
	keywords(KindGreeting, "hi", "hello", "hey", "good morning", "good afternoon"),
	{match: func(q string) (Intent, bool) {
		if !containsAny(q, []string{"study", "what should i study", "what to study"}) {
			return Intent{}, false
		}
		if strings.Contains(q, "today") {
			return Intent{Kind: KindStudyPlanToday}, true
		}
		return Intent{Kind: KindStudyPlanGeneral}, true
	}},
	keywords(KindExamPrep, "exam", "examination", "prepare", "preparation"),
	{match: func(q string) (Intent, bool) {
		for _, t := range topics {
			if strings.Contains(q, string(t)) {
				return Explanation(t), true
			}
		}
		return Intent{}, false
	}},
	keywords(KindHackathonIdeas, "hackathon", "project idea", "idea", "build"),
	keywords(KindAssignmentHelp, "assignment", "homework", "task"),
	keywords(KindPlacementGuidance, "placement", "job", "career", "internship"),
	keywords(KindAttendanceInfo, "attendance", "present", "absent"),
}

// Classify maps text to exactly one intent. Matching is case-insensitive
// substring search; text that matches no rule is KindDefault.
func Classify(text string) Intent {
	q := strings.ToLower(strings.TrimSpace(text))
	for _, r := range rules {
		if intent, ok := r.match(q); ok {
			return intent
		}
	}
	return Intent{Kind: KindDefault}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
