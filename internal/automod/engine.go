package automod

import (
	"github.com/sentinelmod/sentinel/internal/database/types"
	"github.com/sentinelmod/sentinel/internal/database/types/enum"
	"go.uber.org/zap"
)

// Engine folds all firing rules for one message into at most one winning
// consequence. Severity is the Consequence declaration order
// (Ban > Kick > Timeout > Delete); ties keep the earliest winner, which
// is the only way rule insertion order can matter.
type Engine struct {
	matcher *matcher
	logger  *zap.Logger
}

// NewEngine creates an escalation engine.
func NewEngine(logger *zap.Logger) *Engine {
	return &Engine{
		matcher: newMatcher(logger),
		logger:  logger.Named("escalation"),
	}
}

// Evaluate runs every rule against the message text and returns the
// single highest-severity match, or nil when no rule fires. A malformed
// rule never aborts evaluation of the remaining rules.
func (e *Engine) Evaluate(rules []*types.Rule, text string) *RuleMatch {
	var winner *RuleMatch

	for _, rule := range rules {
		if !e.ruleMatches(rule, text) {
			continue
		}

		candidate := &RuleMatch{
			RuleID:      rule.ID,
			Consequence: rule.Consequence,
		}
		if rule.Consequence == enum.ConsequenceTimeout {
			candidate.TimeoutMinutes = rule.TimeoutMinutes
		}

		// Strict comparison keeps the earliest winner on ties.
		if winner == nil || candidate.Consequence > winner.Consequence {
			winner = candidate
		}
	}

	return winner
}

func (e *Engine) ruleMatches(rule *types.Rule, text string) bool {
	switch rule.Kind {
	case enum.RuleKindWord:
		return matchWord(rule.Pattern, text)
	case enum.RuleKindRegex:
		return e.matcher.matchRegex(rule.Pattern, text)
	default:
		e.logger.Warn("Skipping rule with unknown kind",
			zap.Int64("ruleID", rule.ID),
			zap.Int("kind", int(rule.Kind)))

		return false
	}
}
