package service

import (
	"fmt"
	"regexp"
	"strings"

	"video_syncer/internal/config"
)

// KeywordFilter matches titles against whole-word, case-insensitive
// keywords. Multi-word keywords match as a phrase. Word boundaries are
// Unicode aware, so Gurmukhi or accented letters next to a keyword count
// as part of the same word.
type KeywordFilter struct {
	patterns []keywordPattern
}

type keywordPattern struct {
	keyword string
	re      *regexp.Regexp
}

func NewKeywordFilter(keywords []string) *KeywordFilter {
	f := &KeywordFilter{}
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		f.patterns = append(f.patterns, keywordPattern{
			keyword: kw,
			re:      regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{M}\p{N}_])` + regexp.QuoteMeta(kw) + `(?:$|[^\p{L}\p{M}\p{N}_])`),
		})
	}
	return f
}

func (f *KeywordFilter) Enabled() bool {
	return len(f.patterns) > 0
}

// Match returns the first keyword found in title.
func (f *KeywordFilter) Match(title string) (string, bool) {
	for _, p := range f.patterns {
		if p.re.MatchString(title) {
			return p.keyword, true
		}
	}
	return "", false
}

// DurationPolicy accepts or rejects a candidate by its length in seconds.
type DurationPolicy struct {
	Mode    string
	Seconds int
}

func NewDurationPolicy(rule config.DurationRule) DurationPolicy {
	return DurationPolicy{Mode: rule.Mode, Seconds: rule.Seconds}
}

// Allows reports whether a video of the given length passes. An unknown
// length never passes; under the max rule a zero length is unknown too.
func (p DurationPolicy) Allows(seconds int, known bool) bool {
	if !known {
		return false
	}

	switch p.Mode {
	case config.DurationMin:
		return seconds >= p.Seconds
	case config.DurationMax:
		return seconds > 0 && seconds < p.Seconds
	default:
		return false
	}
}

func (p DurationPolicy) String() string {
	switch p.Mode {
	case config.DurationMin:
		return fmt.Sprintf(">= %ds", p.Seconds)
	case config.DurationMax:
		return fmt.Sprintf("< %ds", p.Seconds)
	default:
		return p.Mode
	}
}
