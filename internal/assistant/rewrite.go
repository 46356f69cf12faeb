// Package assistant holds the deterministic writing helpers behind the /ai
// endpoints: tone rewriting, idea banks, keyword search and categorisation.
package assistant

import (
	"strings"
)

var tonePrefixes = map[string]string{
	"study":        "Study Tip: ",
	"cute":         "(｡•◡•｡) ♡ ",
	"formal":       "In summary, ",
	"casual":       "So basically, ",
	"motivational": "You got this! ",
	"soft":         "Gently put, ",
}

var softener = strings.NewReplacer(
	"very", "quite",
	"can't", "cannot",
	"won't", "will not",
)

// Tones lists every tone Rewrite understands.
func Tones() []string {
	return []string{"study", "cute", "formal", "casual", "motivational", "soft", "summary", "bullets", "key-points"}
}

// Rewrite restyles text for tone. Unknown tones only apply the word
// substitutions; empty text is returned as is.
func Rewrite(text, tone string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return text
	}
	switch tone = strings.ToLower(strings.TrimSpace(tone)); tone {
	case "summary":
		s := sentences(text)
		out := strings.Join(s[:min(2, len(s))], ". ")
		if len(s) > 2 {
			out += "…"
		}
		return out
	case "bullets":
		return "• " + strings.Join(sentences(text), "\n• ")
	case "key-points":
		return "Key points:\n- " + strings.Join(sentences(text), "\n- ")
	}
	return tonePrefixes[tone] + softener.Replace(text)
}

func sentences(text string) []string {
	out := []string{}
	for _, s := range strings.Split(text, ".") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		out = append(out, text)
	}
	return out
}
