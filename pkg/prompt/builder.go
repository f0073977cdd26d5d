package prompt

import "strings"

// Topic types selectable per session. Matching is by exact string; anything
// unrecognized falls back to the general-education clause.
const (
	TopicGeneral = "General"
	TopicCoding  = "Coding"
	TopicMath    = "Math"
	TopicScience = "Science"
)

// RefusalMessage is returned verbatim when the user asks for the answer
// itself. The model is never called in that case.
const RefusalMessage = "I can't give you the exact answer, but I'm happy to guide you. " +
	"Try rephrasing your question and I'll offer hints and approaches to work it out yourself."

// vetoedPhrases trigger the local refusal. Matching is literal substring
// containment, case-insensitive. No stemming or normalization.
var vetoedPhrases = []string{"exact answer", "exact solution"}

const basePolicy = "You are an AI study assistant. Provide hints and approaches to solve problems, " +
	"but don't give exact answers. Ensure each hint is unique, arises curiosity in the student " +
	"and encourages critical thinking. Never reveal the final answer. "

var topicClauses = map[string]string{
	TopicCoding:  "Focus on coding-related topics and provide specific coding hints.",
	TopicMath:    "Focus on math-related topics and provide specific mathematical hints.",
	TopicScience: "Focus on science-related topics and provide specific scientific hints.",
}

const generalClause = "Focus on general education-related topics."

// HintBuilder assembles the system instruction for one hint request.
type HintBuilder struct {
	topicType string
}

// NewHintBuilder creates a builder for the given topic type.
func NewHintBuilder(topicType string) *HintBuilder {
	return &HintBuilder{topicType: topicType}
}

// Build returns the full system instruction: the hints-not-answers policy
// followed by the topic-specific clause.
func (b *HintBuilder) Build() string {
	var sb strings.Builder
	sb.WriteString(basePolicy)
	if clause, ok := topicClauses[b.topicType]; ok {
		sb.WriteString(clause)
	} else {
		sb.WriteString(generalClause)
	}
	return sb.String()
}

// Vetoed reports whether the user text demands the answer outright, in
// which case the pipeline short-circuits with RefusalMessage.
func Vetoed(userText string) bool {
	lowered := strings.ToLower(userText)
	for _, phrase := range vetoedPhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}
