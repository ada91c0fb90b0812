package assistant

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Rand is the source of randomness used to pick response variants.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// globalRand uses the process-wide generator, which is safe for concurrent use.
type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Generator produces response text for classified intents.
type Generator struct {
	rng Rand
}

// NewGenerator returns a Generator drawing from rng. A nil rng uses the
// process-wide generator. A *rand.Rand must not be shared across goroutines.
func NewGenerator(rng Rand) *Generator {
	if rng == nil {
		rng = globalRand{}
	}
	return &Generator{rng: rng}
}

// Generate returns the response for intent. original is the caller's text as
// received and is echoed by the fallback response.
func (g *Generator) Generate(intent Intent, original string) string {
	switch intent.Kind {
	case KindGreeting:
		return g.pick(greetings)
	case KindStudyPlanToday:
		return g.studyToday()
	case KindStudyPlanGeneral:
		return studyPlanResponse
	case KindExamPrep:
		return examPrepResponse
	case KindExplanation:
		if text, ok := explanations[intent.Topic]; ok {
			return text
		}
	case KindHackathonIdeas:
		return g.pick(hackathonIdeas)
	case KindAssignmentHelp:
		return assignmentResponse
	case KindPlacementGuidance:
		return placementResponse
	case KindAttendanceInfo:
		return attendanceResponse
	}
	return fmt.Sprintf(g.pick(fallbackTemplates), strings.TrimSpace(original))
}

// Respond classifies text and generates the matching response.
func (g *Generator) Respond(text string) (Intent, string) {
	intent := Classify(text)
	return intent, g.Generate(intent, text)
}

func (g *Generator) pick(variants []string) string {
	return variants[g.rng.IntN(len(variants))]
}

// studyToday samples two distinct subjects and an hour budget of 2 to 4;
// the second subject gets one hour less.
func (g *Generator) studyToday() string {
	first := g.rng.IntN(len(studySubjects))
	second := g.rng.IntN(len(studySubjects) - 1)
	if second >= first {
		second++
	}
	hours := 2 + g.rng.IntN(3)
	return fmt.Sprintf(studyTodayTemplate, studySubjects[first], hours, studySubjects[second], hours-1)
}
