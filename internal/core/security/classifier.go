package security

import (
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
)

// Level is the danger level assigned to a command.
type Level string

const (
	// LevelForbidden marks commands that must never run.
	LevelForbidden Level = "forbidden"
	// LevelPrivileged marks commands that need explicit user consent.
	LevelPrivileged Level = "privileged"
	// LevelOrdinary marks commands with no special handling.
	LevelOrdinary Level = "ordinary"
)

// Classification is the result of classifying a single command.
type Classification struct {
	Level  Level
	Reason string
	Rule   string
}

// Forbidden reports whether the command must be refused outright.
func (c Classification) Forbidden() bool { return c.Level == LevelForbidden }

// Privileged reports whether the command needs user consent before running.
func (c Classification) Privileged() bool { return c.Level == LevelPrivileged }

type forbiddenMatcher struct {
	re      *regexp.Regexp
	pattern string
	reason  string
}

// Classifier assigns danger levels to shell commands. Classification is
// a pure lookup against the rule tables compiled at construction time;
// a Classifier never inspects the filesystem or runs anything.
type Classifier struct {
	forbidden  []forbiddenMatcher
	privileged []string
}

// NewClassifier compiles the rule tables into a Classifier. Forbidden
// patterns that fail to compile are skipped with a warning so a single
// bad rule in a user-edited file cannot disable the rest.
func NewClassifier(rules *RuleSet) *Classifier {
	c := &Classifier{}

	for _, rule := range rules.Forbidden {
		re, err := regexp.Compile("(?i)" + rule.Pattern)
		if err != nil {
			logrus.Warnf("Skipping invalid forbidden pattern %q: %v", rule.Pattern, err)
			continue
		}
		c.forbidden = append(c.forbidden, forbiddenMatcher{
			re:      re,
			pattern: rule.Pattern,
			reason:  rule.Reason,
		})
	}

	for _, token := range rules.Privileged {
		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" {
			continue
		}
		c.privileged = append(c.privileged, token)
	}

	return c
}

// Classify assigns a danger level to a command. Forbidden rules are
// checked first and the first match wins, so a command that is both
// destructive and privileged is always reported as forbidden.
func (c *Classifier) Classify(command string) Classification {
	for _, m := range c.forbidden {
		if m.re.MatchString(command) {
			return Classification{
				Level:  LevelForbidden,
				Reason: m.reason,
				Rule:   m.pattern,
			}
		}
	}

	lowered := strings.ToLower(strings.TrimSpace(command))
	for _, token := range c.privileged {
		if strings.Contains(lowered, token) {
			return Classification{
				Level:  LevelPrivileged,
				Reason: "requires elevated privileges or modifies system state",
				Rule:   token,
			}
		}
	}

	return Classification{Level: LevelOrdinary}
}
