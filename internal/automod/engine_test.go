package automod_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sentinelmod/sentinel/internal/automod"
	"github.com/sentinelmod/sentinel/internal/database/types"
	"github.com/sentinelmod/sentinel/internal/database/types/enum"
)

func wordRule(id int64, pattern string, consequence enum.Consequence) *types.Rule {
	return &types.Rule{
		ID:          id,
		Kind:        enum.RuleKindWord,
		Pattern:     pattern,
		Consequence: consequence,
	}
}

func regexRule(id int64, pattern string, consequence enum.Consequence) *types.Rule {
	return &types.Rule{
		ID:          id,
		Kind:        enum.RuleKindRegex,
		Pattern:     pattern,
		Consequence: consequence,
	}
}

func TestEvaluateNoRules(t *testing.T) {
	t.Parallel()

	engine := automod.NewEngine(zap.NewNop())
	assert.Nil(t, engine.Evaluate(nil, "anything at all"))
}

func TestEvaluateWordMatching(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
		text    string
		matches bool
	}{
		{name: "exact token", pattern: "spoiler", text: "huge spoiler ahead", matches: true},
		{name: "case insensitive", pattern: "Spoiler", text: "SPOILER alert", matches: true},
		{name: "substring does not match", pattern: "spoil", text: "spoiler alert", matches: false},
		{name: "token inside longer word", pattern: "cat", text: "concatenate these", matches: false},
		{name: "empty text", pattern: "spoiler", text: "", matches: false},
		{name: "multiple spaces", pattern: "spoiler", text: "a   spoiler   here", matches: true},
	}

	engine := automod.NewEngine(zap.NewNop())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rules := []*types.Rule{wordRule(1, tt.pattern, enum.ConsequenceDelete)}
			match := engine.Evaluate(rules, tt.text)
			if tt.matches {
				require.NotNil(t, match)
				assert.Equal(t, int64(1), match.RuleID)
			} else {
				assert.Nil(t, match)
			}
		})
	}
}

func TestEvaluateRegexMatching(t *testing.T) {
	t.Parallel()

	engine := automod.NewEngine(zap.NewNop())

	t.Run("search semantics", func(t *testing.T) {
		t.Parallel()

		rules := []*types.Rule{regexRule(1, `https?://`, enum.ConsequenceDelete)}
		assert.NotNil(t, engine.Evaluate(rules, "check https://example.com out"))
		assert.Nil(t, engine.Evaluate(rules, "no links here"))
	})

	t.Run("malformed pattern never matches", func(t *testing.T) {
		t.Parallel()

		rules := []*types.Rule{regexRule(1, `([unclosed`, enum.ConsequenceBan)}
		assert.Nil(t, engine.Evaluate(rules, "([unclosed"))
	})

	t.Run("malformed pattern does not abort later rules", func(t *testing.T) {
		t.Parallel()

		rules := []*types.Rule{
			regexRule(1, `([unclosed`, enum.ConsequenceBan),
			wordRule(2, "spam", enum.ConsequenceDelete),
		}
		match := engine.Evaluate(rules, "this is spam")
		require.NotNil(t, match)
		assert.Equal(t, int64(2), match.RuleID)
	})
}

func TestEvaluateEscalation(t *testing.T) {
	t.Parallel()

	engine := automod.NewEngine(zap.NewNop())

	t.Run("highest severity wins regardless of order", func(t *testing.T) {
		t.Parallel()

		rules := []*types.Rule{
			wordRule(1, "bad", enum.ConsequenceDelete),
			wordRule(2, "bad", enum.ConsequenceBan),
			wordRule(3, "bad", enum.ConsequenceKick),
		}
		match := engine.Evaluate(rules, "bad message")
		require.NotNil(t, match)
		assert.Equal(t, int64(2), match.RuleID)
		assert.Equal(t, enum.ConsequenceBan, match.Consequence)
	})

	t.Run("severity order is ban kick timeout delete", func(t *testing.T) {
		t.Parallel()

		assert.Less(t, enum.ConsequenceDelete, enum.ConsequenceTimeout)
		assert.Less(t, enum.ConsequenceTimeout, enum.ConsequenceKick)
		assert.Less(t, enum.ConsequenceKick, enum.ConsequenceBan)
	})

	t.Run("tie keeps earliest rule", func(t *testing.T) {
		t.Parallel()

		rules := []*types.Rule{
			wordRule(7, "bad", enum.ConsequenceKick),
			wordRule(8, "bad", enum.ConsequenceKick),
		}
		match := engine.Evaluate(rules, "bad message")
		require.NotNil(t, match)
		assert.Equal(t, int64(7), match.RuleID)
	})

	t.Run("escalates across matcher kinds", func(t *testing.T) {
		t.Parallel()

		rules := []*types.Rule{
			wordRule(1, "hate", enum.ConsequenceDelete),
			regexRule(2, `https?://\S+`, enum.ConsequenceBan),
		}
		match := engine.Evaluate(rules, "I hate http://evil.test now")
		require.NotNil(t, match)
		assert.Equal(t, int64(2), match.RuleID)
		assert.Equal(t, enum.ConsequenceBan, match.Consequence)
	})

	t.Run("non-matching rules do not participate", func(t *testing.T) {
		t.Parallel()

		rules := []*types.Rule{
			wordRule(1, "absent", enum.ConsequenceBan),
			wordRule(2, "bad", enum.ConsequenceDelete),
		}
		match := engine.Evaluate(rules, "bad message")
		require.NotNil(t, match)
		assert.Equal(t, enum.ConsequenceDelete, match.Consequence)
	})
}

func TestEvaluateTimeoutMinutes(t *testing.T) {
	t.Parallel()

	engine := automod.NewEngine(zap.NewNop())

	t.Run("timeout carries configured minutes", func(t *testing.T) {
		t.Parallel()

		rule := wordRule(1, "bad", enum.ConsequenceTimeout)
		rule.TimeoutMinutes = 30

		match := engine.Evaluate([]*types.Rule{rule}, "bad message")
		require.NotNil(t, match)
		assert.Equal(t, 30, match.TimeoutMinutes)
	})

	t.Run("other consequences carry no minutes", func(t *testing.T) {
		t.Parallel()

		rule := wordRule(1, "bad", enum.ConsequenceBan)
		rule.TimeoutMinutes = 30

		match := engine.Evaluate([]*types.Rule{rule}, "bad message")
		require.NotNil(t, match)
		assert.Zero(t, match.TimeoutMinutes)
	})
}

func TestEvaluateUnknownKindSkipped(t *testing.T) {
	t.Parallel()

	engine := automod.NewEngine(zap.NewNop())

	rules := []*types.Rule{
		{ID: 1, Kind: enum.RuleKind(99), Pattern: "bad", Consequence: enum.ConsequenceBan},
		wordRule(2, "bad", enum.ConsequenceDelete),
	}
	match := engine.Evaluate(rules, "bad message")
	require.NotNil(t, match)
	assert.Equal(t, int64(2), match.RuleID)
}
