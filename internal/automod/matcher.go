package automod

import (
	"regexp"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// matcher evaluates rule patterns against message text. Compiled
// regexes are cached per pattern; patterns that fail to compile are
// remembered so the warning is logged once, not per message.
type matcher struct {
	mu       sync.RWMutex
	compiled map[string]*regexp.Regexp
	invalid  map[string]struct{}
	logger   *zap.Logger
}

func newMatcher(logger *zap.Logger) *matcher {
	return &matcher{
		compiled: make(map[string]*regexp.Regexp),
		invalid:  make(map[string]struct{}),
		logger:   logger,
	}
}

// matchWord reports whether pattern equals any whitespace-split token of
// the message text, case-insensitively. Substrings do not match.
func matchWord(pattern, text string) bool {
	want := strings.ToLower(pattern)
	for _, token := range strings.Fields(strings.ToLower(text)) {
		if token == want {
			return true
		}
	}

	return false
}

// matchRegex applies the pattern with search semantics over the raw
// message text. A malformed pattern is treated as a non-match.
func (m *matcher) matchRegex(pattern, text string) bool {
	re, ok := m.compile(pattern)
	if !ok {
		return false
	}

	return re.MatchString(text)
}

func (m *matcher) compile(pattern string) (*regexp.Regexp, bool) {
	m.mu.RLock()
	re, ok := m.compiled[pattern]
	if ok {
		m.mu.RUnlock()
		return re, true
	}

	_, bad := m.invalid[pattern]
	m.mu.RUnlock()

	if bad {
		return nil, false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Re-check under the write lock; another goroutine may have won.
	if re, ok := m.compiled[pattern]; ok {
		return re, true
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		m.invalid[pattern] = struct{}{}
		m.logger.Warn("Skipping rule with malformed regex pattern",
			zap.String("pattern", pattern),
			zap.Error(err))

		return nil, false
	}

	m.compiled[pattern] = re

	return re, true
}
