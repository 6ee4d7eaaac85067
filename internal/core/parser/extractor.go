// Package parser extracts executable shell commands from model responses.
package parser

import (
	"regexp"
	"strings"
)

// Candidate is one command pulled out of a response, together with the
// pattern that matched it.
type Candidate struct {
	Text    string
	Pattern string
}

// Extractor scans model responses for commands using an ordered list of
// patterns. Fenced code blocks are matched first, then inline markers,
// then unlabeled fences. A multi-line block stays a single candidate so
// it runs as one shell invocation.
type Extractor struct {
	patterns []extractPattern
}

type extractPattern struct {
	re     *regexp.Regexp
	source string
}

var patternSources = []string{
	"```bash\n(.*?)\n```",
	"```shell\n(.*?)\n```",
	"```sh\n(.*?)\n```",
	"Command:\\s*`([^`]+)`",
	"Execute:\\s*`([^`]+)`",
	"Run:\\s*`([^`]+)`",
	"```\n(.*?)\n```",
}

// NewExtractor builds an Extractor with the default pattern list.
func NewExtractor() *Extractor {
	e := &Extractor{}
	for _, src := range patternSources {
		e.patterns = append(e.patterns, extractPattern{
			re:     regexp.MustCompile("(?is)" + src),
			source: src,
		})
	}
	return e
}

// Extract returns all command candidates found in the response, in
// pattern order. Candidates are trimmed; empty results and comment-only
// lines starting with # are dropped. A command matched by more than one
// pattern appears once per match.
func (e *Extractor) Extract(response string) []Candidate {
	var candidates []Candidate

	for _, p := range e.patterns {
		for _, match := range p.re.FindAllStringSubmatch(response, -1) {
			text := strings.TrimSpace(match[1])
			if text == "" || strings.HasPrefix(text, "#") {
				continue
			}
			candidates = append(candidates, Candidate{Text: text, Pattern: p.source})
		}
	}

	return candidates
}

var inputIndicators = []string{
	"need to know",
	"please provide",
	"what is your",
	"can you tell me",
	"which",
	"do you have",
	"?",
}

// NeedsUserInput reports whether the response is asking the user a
// question instead of proposing commands.
func (e *Extractor) NeedsUserInput(response string) bool {
	lowered := strings.ToLower(response)
	for _, indicator := range inputIndicators {
		if strings.Contains(lowered, indicator) {
			return true
		}
	}
	return false
}
