package service

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"sensory_sheets_backend/internal/model"
	"sensory_sheets_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGate 固定放行/拒绝的配额闸口
type stubGate struct {
	status  *model.QuotaStatus
	allowed bool
	err     error
	calls   int
}

func (g *stubGate) CheckAndRecord(userID uint, tier model.SubscriptionTier) (*model.QuotaStatus, bool, error) {
	g.calls++
	return g.status, g.allowed, g.err
}

func newTestWorksheet(t *testing.T, gate UsageGate) *WorksheetService {
	t.Helper()
	bank := NewWordBankService(nil, nil, rand.New(rand.NewSource(11)))
	tmpl := NewTemplateService(nil)
	filler := NewFillerService(bank, rand.New(rand.NewSource(11)))
	return NewWorksheetService(bank, tmpl, filler, gate)
}

func isCalmWord(word string) bool {
	for _, w := range CalmWords {
		if w == word {
			return true
		}
	}
	return false
}

func TestComposeMoodWorksheetOverwhelmed(t *testing.T) {
	svc := newTestWorksheet(t, nil)

	data, err := svc.ComposeMoodWorksheet(model.MoodOverwhelmed, ActivityTrace)
	require.NoError(t, err)

	// 过载状态硬覆盖：恰好 3 个条目，全部来自最简词汇子集
	require.Len(t, data.Items, 3)
	for _, it := range data.Items {
		assert.True(t, isCalmWord(it.Word), "word %q is not a calm word", it.Word)
		assert.NotEmpty(t, it.Chunks)
	}

	assert.Equal(t, model.FontXLarge, data.Constraints.Font)
	assert.True(t, data.Constraints.BreathingGuide)
	assert.False(t, data.Constraints.MovementBreak)
	assert.True(t, data.Constraints.AllowNoWriting)
	assert.Equal(t, model.ContentPlainWords, data.Content.Kind)
}

func TestComposeMoodWorksheetHighEnergy(t *testing.T) {
	svc := newTestWorksheet(t, nil)

	data, err := svc.ComposeMoodWorksheet(model.MoodHighEnergy, ActivityPointRead)
	require.NoError(t, err)

	assert.Len(t, data.Items, 6)
	assert.True(t, data.Constraints.MovementBreak)
	assert.False(t, data.Constraints.BreathingGuide)
	assert.NotEmpty(t, data.Distractors)
}

func TestComposeMoodWorksheetUnknownMood(t *testing.T) {
	svc := newTestWorksheet(t, nil)

	_, err := svc.ComposeMoodWorksheet(model.Mood("sleepy"), ActivityTrace)
	assert.ErrorIs(t, err, util.ErrUnknownMood)
}

func TestComposeWorksheetUnknownActivity(t *testing.T) {
	svc := newTestWorksheet(t, nil)

	_, err := svc.ComposeMoodWorksheet(model.MoodOverwhelmed, "colorBySound")
	assert.ErrorIs(t, err, util.ErrUnknownActivity)

	_, err = svc.ComposePatternWorksheet(model.PatternDigraph, model.TierRegular, "colorBySound")
	assert.ErrorIs(t, err, util.ErrUnknownActivity)
}

func TestComposePatternWorksheet(t *testing.T) {
	svc := newTestWorksheet(t, nil)

	data, err := svc.ComposePatternWorksheet(model.PatternDigraph, model.TierRegular, ActivityIconBoxes)
	require.NoError(t, err)

	require.NotEmpty(t, data.Items)
	assert.LessOrEqual(t, len(data.Items), data.Constraints.MaxItems)
	for _, it := range data.Items {
		entry, ok := svc.Bank.Lookup(it.Word)
		require.True(t, ok)
		assert.True(t, entry.HasPattern(model.PatternDigraph), "word %q", it.Word)
	}

	_, err = svc.ComposePatternWorksheet(model.PatternMagicE, model.TierEasy, ActivityTrace)
	assert.ErrorIs(t, err, util.ErrNoMatchingWords)
}

func TestBuildLetterRow(t *testing.T) {
	svc := newTestWorksheet(t, nil)

	for i := 0; i < 20; i++ {
		row := svc.buildLetterRow("sun")
		assert.Equal(t, "S", row.Target)
		require.Len(t, row.Cells, 7)

		targets := 0
		distractors := make(map[string]bool)
		for _, c := range row.Cells {
			if c == "S" {
				targets++
			} else {
				assert.False(t, distractors[c], "duplicate distractor %q", c)
				distractors[c] = true
			}
		}
		assert.GreaterOrEqual(t, targets, 2)
		assert.LessOrEqual(t, targets, 3)
	}
}

// 干扰项与主条目不重词，数量不超过主条目的两倍
func TestBuildDistractors(t *testing.T) {
	svc := newTestWorksheet(t, nil)

	primaries := []string{"cat", "sun", "hat"}
	out := svc.buildDistractors(primaries)

	require.NotEmpty(t, out)
	assert.LessOrEqual(t, len(out), 2*len(primaries))
	for _, d := range out {
		for _, p := range primaries {
			assert.NotEqual(t, strings.ToLower(p), strings.ToLower(d))
		}
	}
}

func TestMatchPairsRightColumnIsPermutation(t *testing.T) {
	svc := newTestWorksheet(t, nil)

	data, err := svc.ComposeMoodWorksheet(model.MoodLowEnergy, ActivityMatchPairs)
	require.NoError(t, err)
	require.Equal(t, model.ContentWordPairs, data.Content.Kind)
	require.Len(t, data.Content.Pairs, len(data.Items))

	left := make(map[string]int)
	right := make(map[string]int)
	for _, p := range data.Content.Pairs {
		left[p.Left]++
		right[p.Right]++
	}
	assert.Equal(t, left, right)
}

func TestSoundSortGroupsByInitial(t *testing.T) {
	svc := newTestWorksheet(t, nil)

	data, err := svc.ComposeMoodWorksheet(model.MoodHighEnergy, ActivitySoundSort)
	require.NoError(t, err)
	require.Equal(t, model.ContentSoundSections, data.Content.Kind)
	require.NotEmpty(t, data.Content.Sections)

	total := 0
	for _, sec := range data.Content.Sections {
		require.NotEmpty(t, sec.Items)
		initial := strings.ToUpper(sec.Items[0].Word[:1])
		assert.Equal(t, "Words that start with "+initial, sec.Heading)
		for _, it := range sec.Items {
			assert.Equal(t, initial, strings.ToUpper(it.Word[:1]))
		}
		total += len(sec.Items)
	}
	assert.Equal(t, len(data.Items), total)
}

func TestGuardedCompose(t *testing.T) {
	t.Run("allowed", func(t *testing.T) {
		gate := &stubGate{status: &model.QuotaStatus{Used: 1, Remaining: 9, Limit: 10}, allowed: true}
		svc := newTestWorksheet(t, gate)

		data, status, err := svc.GuardedCompose(1, model.TierFree, func() (*model.WorksheetData, error) {
			return svc.ComposeMoodWorksheet(model.MoodOverwhelmed, ActivityTrace)
		})
		require.NoError(t, err)
		require.NotNil(t, data)
		assert.Equal(t, 1, status.Used)
		assert.Equal(t, 1, gate.calls)
	})

	t.Run("quota exhausted is a decision, not an error", func(t *testing.T) {
		gate := &stubGate{status: &model.QuotaStatus{Used: 10, Remaining: 0, Limit: 10}, allowed: false}
		svc := newTestWorksheet(t, gate)

		composed := false
		data, status, err := svc.GuardedCompose(1, model.TierFree, func() (*model.WorksheetData, error) {
			composed = true
			return nil, nil
		})
		require.NoError(t, err)
		assert.Nil(t, data)
		assert.True(t, status.Exhausted())
		assert.False(t, composed, "compose must not run when quota is exhausted")
	})

	t.Run("gate failure blocks generation", func(t *testing.T) {
		gate := &stubGate{err: errors.New("db down")}
		svc := newTestWorksheet(t, gate)

		_, _, err := svc.GuardedCompose(1, model.TierFree, func() (*model.WorksheetData, error) {
			t.Fatal("compose must not run when the gate fails")
			return nil, nil
		})
		assert.Error(t, err)
	})
}

func TestComposeStoryWorksheet(t *testing.T) {
	svc := newTestWorksheet(t, nil)

	story, err := svc.ComposeStoryWorksheet([]model.Theme{model.ThemeOcean}, model.MoodLowEnergy)
	require.NoError(t, err)

	assert.Equal(t, "tide_pool_quest", story.TemplateID)
	assert.Equal(t, model.ThemeOcean, story.Interest)
	require.Len(t, story.Versions, 3)

	// 实体锁定只算一次，三个版本共用同一个角色名
	char := story.LockedChoices["CHARACTER"]
	require.NotEmpty(t, char)
	for _, level := range model.Complexities {
		doc, ok := story.Versions[level]
		require.True(t, ok, "missing level %s", level)

		var all strings.Builder
		for _, sec := range doc.Sections {
			assert.NotContains(t, sec.Text, "[")
			all.WriteString(sec.Text)
		}
		assert.Contains(t, all.String(), char, "level %s", level)
	}
}

func TestComposeStoryWorksheetFallsBackToFirstTemplate(t *testing.T) {
	svc := newTestWorksheet(t, nil)

	// 没有模板覆盖 food 主题，走注册的兜底模板
	story, err := svc.ComposeStoryWorksheet([]model.Theme{model.ThemeFood}, model.MoodOverwhelmed)
	require.NoError(t, err)
	assert.Equal(t, "meadow_friends", story.TemplateID)
}
