package service

import (
	"math/rand"
	"strings"
	"testing"

	"sensory_sheets_backend/internal/model"
	"sensory_sheets_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFiller(t *testing.T) *FillerService {
	t.Helper()
	bank := NewWordBankService(nil, nil, rand.New(rand.NewSource(7)))
	return NewFillerService(bank, rand.New(rand.NewSource(7)))
}

func TestIsCriticalSlot(t *testing.T) {
	cases := []struct {
		name string
		slot model.WordSlot
		want bool
	}{
		{"explicit document scope wins", model.WordSlot{Name: "STEP_WORD", Scope: model.ScopeDocument, AllowRepeat: true}, true},
		{"explicit section scope wins", model.WordSlot{Name: "CHARACTER", Scope: model.ScopeSection}, false},
		{"allow repeat opts out", model.WordSlot{Name: "CHARACTER", AllowRepeat: true}, false},
		{"character by name", model.WordSlot{Name: "CHARACTER"}, true},
		{"suffixed entity name", model.WordSlot{Name: "CHARACTER_2"}, true},
		{"location by name", model.WordSlot{Name: "LOCATION"}, true},
		{"descriptive slot", model.WordSlot{Name: "STEP_WORD"}, false},
		{"plain adjective slot", model.WordSlot{Name: "COLOR"}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, IsCriticalSlot(&c.slot))
		})
	}
}

func TestComputeLocksCoversAllCriticalSlots(t *testing.T) {
	filler := newTestFiller(t)
	tmpl := &builtinTemplates[0] // meadow_friends

	locks := filler.ComputeLocks(tmpl)

	for _, name := range []string{"CHARACTER", "CHARACTER_2", "ANIMAL", "OBJECT", "LOCATION"} {
		assert.Contains(t, locks, name)
	}
	assert.NotContains(t, locks, "STEP_WORD")

	// 两个不同实体不会落到同一个词
	seen := make(map[string]string)
	for name, word := range locks {
		if prev, ok := seen[word]; ok {
			t.Fatalf("slots %s and %s locked to the same word %q", prev, name, word)
		}
		seen[word] = name
	}

	assert.Contains(t, []string{"Pip", "Momo", "Tilly"}, locks["CHARACTER"])
	assert.Contains(t, []string{"Momo", "Tilly", "Benny"}, locks["CHARACTER_2"])
}

// 候选全部被占用时回退到完整候选表，生成不失败
func TestComputeLocksExhaustedHintsFallBack(t *testing.T) {
	filler := newTestFiller(t)

	sec := model.Section{
		Type: model.SectionIntro,
		Text: "[CHARACTER] meets [COMPANION].",
		Slots: []model.WordSlot{
			{Name: "CHARACTER", Hints: []string{"Pip"}},
			{Name: "COMPANION", Hints: []string{"Pip"}},
		},
	}
	tmpl := &model.StoryTemplate{
		ID: "clash",
		Levels: map[model.Complexity][]model.Section{
			model.ComplexitySimple:    {sec},
			model.ComplexityFull:      {sec},
			model.ComplexityChallenge: {sec},
		},
	}

	locks := filler.ComputeLocks(tmpl)
	assert.Equal(t, "Pip", locks["CHARACTER"])
	assert.Equal(t, "Pip", locks["COMPANION"])
}

func TestResolveLocksAreConsistentAcrossLevels(t *testing.T) {
	filler := newTestFiller(t)
	tmpl := &builtinTemplates[0]

	locks := filler.ComputeLocks(tmpl)
	char := locks["CHARACTER"]
	obj := locks["OBJECT"]

	for _, level := range model.Complexities {
		doc, err := filler.Resolve(tmpl, level, locks)
		require.NoError(t, err)
		require.NotEmpty(t, doc.Sections)
		assert.Equal(t, tmpl.ID, doc.TemplateID)
		assert.Equal(t, level, doc.Level)

		var all strings.Builder
		for _, sec := range doc.Sections {
			assert.NotContains(t, sec.Text, "[", "level %s left an unresolved token", level)
			all.WriteString(sec.Text)
			all.WriteString(" ")
		}
		assert.Contains(t, all.String(), char, "level %s", level)
		assert.Contains(t, all.String(), obj, "level %s", level)
	}
}

func TestResolveAllowRepeatSlotBypassesLocks(t *testing.T) {
	filler := newTestFiller(t)
	tmpl := &builtinTemplates[0]

	locks := filler.ComputeLocks(tmpl)
	doc, err := filler.Resolve(tmpl, model.ComplexityFull, locks)
	require.NoError(t, err)

	// STEP_WORD 出现在 solution 分节，必须取自自己的候选表
	var solution string
	for _, sec := range doc.Sections {
		if sec.Type == model.SectionSolution {
			solution = sec.Text
		}
	}
	require.NotEmpty(t, solution)
	found := false
	for _, w := range []string{"hop", "skip", "step"} {
		if strings.Contains(solution, w) {
			found = true
			break
		}
	}
	assert.True(t, found, "solution text %q has no step word", solution)
}

func TestResolveUnknownLevel(t *testing.T) {
	filler := newTestFiller(t)
	tmpl := &builtinTemplates[0]

	_, err := filler.Resolve(tmpl, model.Complexity("extreme"), nil)
	assert.ErrorIs(t, err, util.ErrTemplateNotFound)
}

func TestResolveUndefinedSlotFails(t *testing.T) {
	filler := newTestFiller(t)

	tmpl := &model.StoryTemplate{
		ID: "broken",
		Levels: map[model.Complexity][]model.Section{
			model.ComplexitySimple: {
				{Type: model.SectionIntro, Text: "[MISSING] runs home."},
			},
		},
	}

	_, err := filler.Resolve(tmpl, model.ComplexitySimple, nil)
	assert.ErrorIs(t, err, util.ErrUnresolvedSlot)
}

func TestFocalWordsFollowSectionEmphasis(t *testing.T) {
	filler := newTestFiller(t)

	tmpl := &model.StoryTemplate{
		ID: "emphasis",
		Levels: map[model.Complexity][]model.Section{
			model.ComplexitySimple: {
				{
					Type:     model.SectionIntro,
					Text:     "The [OBJECT] is on the [SURFACE].",
					Emphasis: []model.PhonicsPattern{model.PatternDigraph},
					Slots: []model.WordSlot{
						{Name: "OBJECT", AllowRepeat: true, Hints: []string{"ship"}},
						{Name: "SURFACE", AllowRepeat: true, Hints: []string{"mat"}},
					},
				},
			},
		},
	}

	doc, err := filler.Resolve(tmpl, model.ComplexitySimple, nil)
	require.NoError(t, err)
	require.Len(t, doc.Sections, 1)

	// ship 是二合字母词，mat 不是
	assert.Equal(t, []string{"ship"}, doc.Sections[0].FocalWords)
}

func TestValidateTemplate(t *testing.T) {
	for i := range builtinTemplates {
		assert.NoError(t, ValidateTemplate(&builtinTemplates[i]), builtinTemplates[i].ID)
	}

	missing := &model.StoryTemplate{
		ID: "partial",
		Levels: map[model.Complexity][]model.Section{
			model.ComplexitySimple: {{Type: model.SectionIntro, Text: "hello"}},
		},
	}
	assert.Error(t, ValidateTemplate(missing))

	undefined := &model.StoryTemplate{
		ID: "undefined",
		Levels: map[model.Complexity][]model.Section{
			model.ComplexitySimple:    {{Type: model.SectionIntro, Text: "[WHO] waves."}},
			model.ComplexityFull:      {{Type: model.SectionIntro, Text: "hello"}},
			model.ComplexityChallenge: {{Type: model.SectionIntro, Text: "hello"}},
		},
	}
	assert.Error(t, ValidateTemplate(undefined))
}

func TestSlotTokens(t *testing.T) {
	assert.Equal(t, []string{"CHARACTER", "OBJECT"}, SlotTokens("[CHARACTER] finds a [OBJECT]."))
	assert.Empty(t, SlotTokens("no tokens here"))
	// 小写括号内容不是槽名
	assert.Empty(t, SlotTokens("an aside [like this] stays put"))
}

func TestSynthesizedTemplateIsValid(t *testing.T) {
	svc := NewTemplateService(nil)
	tmpl := svc.Synthesize(model.ThemeSpace)

	require.NoError(t, ValidateTemplate(tmpl))
	assert.Equal(t, "synthetic_space", tmpl.ID)
	assert.True(t, tmpl.HasTheme(model.ThemeSpace))

	filler := newTestFiller(t)
	locks := filler.ComputeLocks(tmpl)
	assert.Contains(t, []string{"Alex", "Sam", "Riley"}, locks["CHARACTER"])

	for _, level := range model.Complexities {
		doc, err := filler.Resolve(tmpl, level, locks)
		require.NoError(t, err)
		for _, sec := range doc.Sections {
			assert.Contains(t, sec.Text, locks["CHARACTER"])
		}
	}
}
