package assistant

import (
	"fmt"
	"strings"
)

const (
	defaultTopic     = "your day"
	defaultStyle     = "brainstorm"
	defaultIdeaCount = 5
)

var ideaBanks = map[string][]string{
	"brainstorm": {
		"3 angles to explore about %s",
		"What surprised you about %s?",
		"A memory tied to %s",
		"If %s was a color…",
		"Tiny wins related to %s",
	},
	"essay": {
		"Thesis about %s",
		"Counterpoint to common belief on %s",
		"Personal anecdote involving %s",
		"Implications of %s in daily life",
		"Next steps to learn about %s",
	},
	"journal": {
		"Describe a moment from %s",
		"What surprised you about %s?",
		"How did %s make you feel?",
		"One thing you would change about %s",
		"A small gratitude linked to %s",
	},
	"todo": {
		"Break %s into 3 actionable tasks",
		"Define 'done' for %s",
		"What part of %s can be done in 10 minutes?",
		"Who could help with %s?",
		"Schedule the first step of %s",
	},
}

// Ideas returns up to count prompts about topic in the given style. A count
// below one yields a single idea and zero means the default of five.
func Ideas(topic, style string, count int) []string {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		topic = defaultTopic
	}
	bank, ok := ideaBanks[strings.ToLower(strings.TrimSpace(style))]
	if !ok {
		bank = ideaBanks[defaultStyle]
	}
	if count == 0 {
		count = defaultIdeaCount
	}
	count = max(1, min(count, len(bank)))

	out := make([]string, 0, count)
	for _, tmpl := range bank[:count] {
		out = append(out, fmt.Sprintf(tmpl, topic))
	}
	return out
}
