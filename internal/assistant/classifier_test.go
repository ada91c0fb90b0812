package assistant

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		input string
		want  Intent
	}{
		{"Hello there", Intent{Kind: KindGreeting}},
		{"  GOOD MORNING  ", Intent{Kind: KindGreeting}},
		{"hi, what should I study today", Intent{Kind: KindGreeting}},
		{"what is this", Intent{Kind: KindGreeting}},
		{"what should I study today", Intent{Kind: KindStudyPlanToday}},
		{"what to study", Intent{Kind: KindStudyPlanGeneral}},
		{"study tips for the exam", Intent{Kind: KindStudyPlanGeneral}},
		{"I need exam tips", Intent{Kind: KindExamPrep}},
		{"exam on python", Intent{Kind: KindExamPrep}},
		{"explain normalization", Explanation(TopicNormalization)},
		{"dbms and sql", Explanation(TopicDBMS)},
		{"normalization in sql", Explanation(TopicNormalization)},
		{"tell me about sql joins", Explanation(TopicSQL)},
		{"python programming", Explanation(TopicPython)},
		{"javascript closures", Explanation(TopicJavaScript)},
		{"sorting algorithm", Explanation(TopicAlgorithm)},
		{"data structure basics", Explanation(TopicDataStructure)},
		{"hackathon", Intent{Kind: KindHackathonIdeas}},
		{"any project idea?", Intent{Kind: KindHackathonIdeas}},
		{"help me with my homework", Intent{Kind: KindAssignmentHelp}},
		{"any job openings", Intent{Kind: KindPlacementGuidance}},
		{"internship openings", Intent{Kind: KindGreeting}},
		{"am I absent too much", Intent{Kind: KindAttendanceInfo}},
		{"xyz123", Intent{Kind: KindDefault}},
		{"", Intent{Kind: KindDefault}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Classify(tt.input); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestClassifyGreetingWinsOverEveryLaterRule(t *testing.T) {
	laterKeywords := []string{
		"study today", "exam", "dbms", "hackathon", "assignment", "placement", "attendance",
	}
	for _, greeting := range []string{"hi", "Hello", "HEY", "good afternoon"} {
		for _, kw := range laterKeywords {
			input := kw + " " + greeting
			if got := Classify(input); got.Kind != KindGreeting {
				t.Errorf("Classify(%q) = %v, want greeting", input, got)
			}
		}
	}
}

func TestIntentString(t *testing.T) {
	if got := Explanation(TopicDataStructure).String(); got != "explanation:data structure" {
		t.Errorf("unexpected label %q", got)
	}
	if got := (Intent{Kind: KindAttendanceInfo}).String(); got != "attendance_info" {
		t.Errorf("unexpected label %q", got)
	}
	if got := Kind(99).String(); got != "unknown" {
		t.Errorf("unexpected label %q", got)
	}
}
