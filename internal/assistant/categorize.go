package assistant

import "strings"

var categoryRules = []struct {
	category string
	keywords []string
}{
	{"Study", []string{"study", "class", "exam", "lecture"}},
	{"Work", []string{"work", "meeting", "project"}},
	{"Tasks", []string{"todo", "task", "priority"}},
	{"Mood", []string{"feel", "mood", "happy", "sad"}},
}

// Categorize assigns a note category from keywords in its title and content.
func Categorize(title, content string) string {
	text := strings.ToLower(title + " " + content)
	for _, r := range categoryRules {
		for _, k := range r.keywords {
			if strings.Contains(text, k) {
				return r.category
			}
		}
	}
	return "Personal"
}
