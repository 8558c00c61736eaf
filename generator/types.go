package generator

import "strings"

// StyleCorpus is an ordered list of exemplar quotes the model should imitate.
type StyleCorpus []string

// Lines returns the non-blank entries, trimmed, in their original order.
func (c StyleCorpus) Lines() []string {
	var out []string
	for _, q := range c {
		q = strings.TrimSpace(q)
		if q != "" {
			out = append(out, q)
		}
	}
	return out
}

// Persona is who the bot speaks as.
type Persona struct {
	Name        string
	Description string
	Corpus      StyleCorpus
}
