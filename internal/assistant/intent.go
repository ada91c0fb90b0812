// Package assistant implements the rule-based campus assistant: keyword
// classification of free-text queries and canned response generation.
package assistant

// Kind is the category of an intent.
type Kind int

const (
	KindDefault Kind = iota
	KindGreeting
	KindStudyPlanToday
	KindStudyPlanGeneral
	KindExamPrep
	KindExplanation
	KindHackathonIdeas
	KindAssignmentHelp
	KindPlacementGuidance
	KindAttendanceInfo
)

var kindNames = map[Kind]string{
	KindDefault:           "default",
	KindGreeting:          "greeting",
	KindStudyPlanToday:    "study_plan_today",
	KindStudyPlanGeneral:  "study_plan_general",
	KindExamPrep:          "exam_prep",
	KindExplanation:       "explanation",
	KindHackathonIdeas:    "hackathon_ideas",
	KindAssignmentHelp:    "assignment_help",
	KindPlacementGuidance: "placement_guidance",
	KindAttendanceInfo:    "attendance_info",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Topic identifies a subject the assistant can explain.
type Topic string

const (
	TopicDBMS          Topic = "dbms"
	TopicNormalization Topic = "normalization"
	TopicSQL           Topic = "sql"
	TopicPython        Topic = "python"
	TopicJavaScript    Topic = "javascript"
	TopicAlgorithm     Topic = "algorithm"
	TopicDataStructure Topic = "data structure"
)

// Intent is the classifier's decision. Topic is set only for KindExplanation.
type Intent struct {
	Kind  Kind
	Topic Topic
}

// Explanation returns the explanation intent for topic.
func Explanation(topic Topic) Intent {
	return Intent{Kind: KindExplanation, Topic: topic}
}

// String renders the intent label stored alongside query records.
func (i Intent) String() string {
	if i.Kind == KindExplanation {
		return i.Kind.String() + ":" + string(i.Topic)
	}
	return i.Kind.String()
}
