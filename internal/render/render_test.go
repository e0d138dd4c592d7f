package render

import (
	"strings"
	"testing"

	"sensory_sheets_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func overwhelmedTraceData() *model.WorksheetData {
	items := []model.WorksheetItem{
		{Word: "cat", Icon: "cat", Chunks: []string{"c", "at"}},
		{Word: "sun", Icon: "sun", Chunks: []string{"s", "un"}},
		{Word: "hat", Icon: "hat", Chunks: []string{"h", "at"}},
	}
	return &model.WorksheetData{
		Mood:       model.MoodOverwhelmed,
		ActivityID: "trace3",
		Constraints: model.WorksheetConstraints{
			MaxItems:           3,
			Font:               model.FontXLarge,
			BreathingGuide:     true,
			AllowNoWriting:     true,
			CompletionTemplate: "Just %d words. You did it. Breathe and smile.",
		},
		Items:   items,
		Content: model.ActivityContent{Kind: model.ContentPlainWords, Words: items},
	}
}

func blockKinds(plan *Plan) []BlockKind {
	kinds := make([]BlockKind, len(plan.Blocks))
	for i, b := range plan.Blocks {
		kinds[i] = b.Kind
	}
	return kinds
}

func TestPaletteFor(t *testing.T) {
	assert.Equal(t, "#4A6FA5", PaletteFor(model.MoodOverwhelmed).Primary)
	assert.Equal(t, "#C75B39", PaletteFor(model.MoodHighEnergy).Primary)
	assert.Equal(t, "#5B7B5E", PaletteFor(model.MoodLowEnergy).Primary)
	// 无情绪上下文回落到中性配色
	assert.Equal(t, neutralPalette, PaletteFor(model.Mood("")))
	assert.Equal(t, neutralPalette, PaletteFor(model.Mood("sleepy")))
}

func TestBuildPlanOverwhelmed(t *testing.T) {
	plan := BuildPlan(overwhelmedTraceData())

	assert.Equal(t, "Just 3 Words", plan.Title)
	assert.Equal(t, PaletteFor(model.MoodOverwhelmed), plan.Palette)
	assert.Equal(t, 32.0, plan.Fonts.Title)

	kinds := blockKinds(plan)
	assert.Equal(t, []BlockKind{
		BlockTitle, BlockBreathing, BlockHeading,
		BlockWordTrace, BlockWordTrace, BlockWordTrace,
		BlockCompletion,
	}, kinds)

	assert.Equal(t, "Trace 3 Words", plan.Blocks[2].Text)
	assert.Equal(t, "Just 3 words. You did it. Breathe and smile.", plan.Blocks[len(plan.Blocks)-1].Text)
}

func TestBuildPlanHighEnergyHasMovementBreak(t *testing.T) {
	data := &model.WorksheetData{
		Mood:       model.MoodHighEnergy,
		ActivityID: "pointRead",
		Constraints: model.WorksheetConstraints{
			MaxItems:           6,
			Font:               model.FontLarge,
			MovementBreak:      true,
			CompletionTemplate: "Wow! All %d words conquered. Shake it out!",
		},
		Items: []model.WorksheetItem{{Word: "frog"}, {Word: "star"}},
	}
	data.Content = model.ActivityContent{Kind: model.ContentPlainWords, Words: data.Items}

	plan := BuildPlan(data)
	assert.Equal(t, "Power Through 2 Words", plan.Title)

	kinds := blockKinds(plan)
	assert.NotContains(t, kinds, BlockBreathing)
	assert.Contains(t, kinds, BlockMovement)
	// 运动休息在完成语之前
	assert.Equal(t, BlockMovement, kinds[len(kinds)-2])
	assert.Equal(t, BlockCompletion, kinds[len(kinds)-1])
}

func TestBuildPlanPatternTitle(t *testing.T) {
	data := &model.WorksheetData{
		Pattern:    model.PatternDigraph,
		ActivityID: "iconBoxes",
		Constraints: model.WorksheetConstraints{
			MaxItems:           6,
			Font:               model.FontLarge,
			CompletionTemplate: "All %d words done. Great focus!",
		},
		Items: []model.WorksheetItem{{Word: "ship", Icon: "ship"}},
	}
	data.Content = model.ActivityContent{Kind: model.ContentPlainWords, Words: data.Items}

	plan := BuildPlan(data)
	assert.Equal(t, "Pattern Practice: digraph", plan.Title)
	assert.Equal(t, neutralPalette, plan.Palette)

	kinds := blockKinds(plan)
	assert.Contains(t, kinds, BlockIconRow)
}

func TestBuildPlanLetterGrid(t *testing.T) {
	data := overwhelmedTraceData()
	data.ActivityID = "breatheCircle"
	data.Content = model.ActivityContent{
		Kind: model.ContentLetterGrid,
		Rows: []model.LetterRow{
			{Target: "C", Cells: []string{"C", "B", "C", "M", "T", "L", "C"}},
			{Target: "S", Cells: []string{"S", "S", "R", "D", "N", "P", "K"}},
		},
	}

	plan := BuildPlan(data)
	assert.Equal(t, "Breathe and Circle", plan.Blocks[2].Text)

	var rows int
	for _, b := range plan.Blocks {
		if b.Kind == BlockLetterRow {
			rows++
			assert.Len(t, b.Cells, 7)
		}
	}
	assert.Equal(t, 2, rows)
}

func TestBuildPlanUnknownFontFallsBack(t *testing.T) {
	data := overwhelmedTraceData()
	data.Constraints.Font = model.FontClass("tiny")

	plan := BuildPlan(data)
	assert.Equal(t, 26.0, plan.Fonts.Title)
}

// 预览与打印消费同一份布局计划，内容必须逐块对应
func TestRenderParity(t *testing.T) {
	data := overwhelmedTraceData()
	plan := BuildPlan(data)

	svgOut := string(RenderSVGPreview(plan))
	assert.Contains(t, svgOut, "Just 3 Words")
	assert.Contains(t, svgOut, "Breathe in... and out. Ready when you are.")
	for _, it := range data.Items {
		// 描红块按字母分写
		assert.Contains(t, svgOut, it.Word)
	}
	assert.Contains(t, svgOut, "Breathe and smile.")
	assert.Contains(t, svgOut, plan.Footer)
	assert.Contains(t, svgOut, PaletteFor(model.MoodOverwhelmed).Primary)

	pdfOut, pages, err := RenderPDF(plan)
	require.NoError(t, err)
	assert.NotEmpty(t, pdfOut)
	assert.Equal(t, 1, pages)
	assert.True(t, strings.HasPrefix(string(pdfOut), "%PDF"))
}

func TestIconRowEmptyWordRendersOnBothBackends(t *testing.T) {
	// 客户端可以直接提交渲染数据，空词不能让任一后端崩溃
	data := &model.WorksheetData{
		Pattern:    model.PatternDigraph,
		ActivityID: "iconBoxes",
		Constraints: model.WorksheetConstraints{
			MaxItems:           3,
			Font:               model.FontLarge,
			CompletionTemplate: "All %d words done. Great focus!",
		},
		Items: []model.WorksheetItem{{Word: ""}, {Word: "ship", Icon: "ship"}},
	}
	data.Content = model.ActivityContent{Kind: model.ContentPlainWords, Words: data.Items}

	plan := BuildPlan(data)
	svgOut := string(RenderSVGPreview(plan))
	// 空词的首字母圈和打印端一样退化为问号
	assert.Contains(t, svgOut, ">?<")

	pdfOut, pages, err := RenderPDF(plan)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, pages, 1)
	assert.True(t, strings.HasPrefix(string(pdfOut), "%PDF"))
}

func TestRenderPDFPaginatesLongPlans(t *testing.T) {
	plan := &Plan{
		Title:   "Long Sheet",
		Palette: neutralPalette,
		Fonts:   fontSets[model.FontLarge],
		Footer:  "sensory sheets",
	}
	plan.push(Block{Kind: BlockTitle, Text: plan.Title, Height: 20})
	for i := 0; i < 40; i++ {
		plan.push(Block{Kind: BlockWordLine, Text: "cat", Height: 14})
	}

	_, pages, err := RenderPDF(plan)
	require.NoError(t, err)
	assert.Greater(t, pages, 1)
}

func storyFixture() *model.MultiVersionStory {
	section := func(st model.SectionType, text string, focal ...string) model.FilledSection {
		return model.FilledSection{Type: st, Text: text, FocalWords: focal}
	}
	return &model.MultiVersionStory{
		TemplateID: "meadow_friends",
		Title:      "The Lost Treasure",
		Interest:   model.ThemeAnimals,
		BrainState: model.MoodLowEnergy,
		LockedChoices: map[string]string{
			"CHARACTER": "Pip",
			"OBJECT":    "map",
		},
		Versions: map[model.Complexity]model.FilledDocument{
			model.ComplexitySimple: {
				TemplateID: "meadow_friends", Level: model.ComplexitySimple,
				Sections: []model.FilledSection{
					section(model.SectionIntro, "Pip is a cat. Pip likes the sun."),
					section(model.SectionProblem, "Pip lost a map. Pip is sad.", "map"),
					section(model.SectionSolution, "They find the map by the web. Hooray!"),
				},
			},
			model.ComplexityFull: {
				TemplateID: "meadow_friends", Level: model.ComplexityFull,
				Sections: []model.FilledSection{
					section(model.SectionIntro, "Pip the cat lives near a quiet garden."),
					section(model.SectionReflection, "Pip smiles. Friends make heavy things light."),
				},
			},
			model.ComplexityChallenge: {
				TemplateID: "meadow_friends", Level: model.ComplexityChallenge,
				Sections: []model.FilledSection{
					section(model.SectionSetup, "A thunderstorm scattered everything across the meadow and far beyond the old garden wall."),
				},
			},
		},
	}
}

func TestBuildStoryPlan(t *testing.T) {
	plan := BuildStoryPlan(storyFixture())

	assert.Equal(t, "The Lost Treasure", plan.Title)
	assert.Equal(t, PaletteFor(model.MoodLowEnergy), plan.Palette)

	var breaks, titles int
	var titleTexts []string
	for _, b := range plan.Blocks {
		switch b.Kind {
		case BlockPageBreak:
			breaks++
		case BlockTitle:
			titles++
			titleTexts = append(titleTexts, b.Text)
		}
	}
	// 三个版本，版本之间两处换页
	assert.Equal(t, 2, breaks)
	assert.Equal(t, 3, titles)
	assert.Equal(t, []string{
		"The Lost Treasure: Simple Version",
		"The Lost Treasure: Full Story",
		"The Lost Treasure: Challenge Version",
	}, titleTexts)
}

func TestStoryPlanSectionHeadings(t *testing.T) {
	plan := BuildStoryPlan(storyFixture())

	var headings []string
	for _, b := range plan.Blocks {
		if b.Kind == BlockSection {
			headings = append(headings, b.Text)
		}
	}
	assert.Equal(t, []string{
		"The Beginning", "The Problem", "The Fix",
		"The Beginning", "Looking Back",
		"Setting the Scene",
	}, headings)

	// 带重点词的分节在正文后追加一行
	var focal int
	for _, b := range plan.Blocks {
		if b.Kind == BlockWordLine && strings.HasPrefix(b.Text, "Focus words: ") {
			focal++
			assert.Equal(t, "Focus words: map", b.Text)
		}
	}
	assert.Equal(t, 1, focal)
}

func TestStoryPlanRendersOnBothBackends(t *testing.T) {
	plan := BuildStoryPlan(storyFixture())

	svgOut := string(RenderSVGPreview(plan))
	assert.Contains(t, svgOut, "Pip is a cat. Pip likes the sun.")
	assert.Contains(t, svgOut, "Focus words: map")

	_, pages, err := RenderPDF(plan)
	require.NoError(t, err)
	// 版本之间强制换页
	assert.GreaterOrEqual(t, pages, 3)
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four five", 9)
	assert.Equal(t, []string{"one two", "three", "four five"}, lines)

	assert.Equal(t, []string{""}, wrapText("", 10))
	assert.Equal(t, []string{"short"}, wrapText("short", 55))
}

func TestSpaced(t *testing.T) {
	assert.Equal(t, "c a t", spaced("cat"))
}

func TestHexRGB(t *testing.T) {
	r, g, b := hexRGB("#4A6FA5")
	assert.Equal(t, 0x4A, r)
	assert.Equal(t, 0x6F, g)
	assert.Equal(t, 0xA5, b)

	// 非法输入退回中性灰
	r, g, b = hexRGB("oops")
	assert.Equal(t, 128, r)
	assert.Equal(t, 128, g)
	assert.Equal(t, 128, b)
}

func TestLetterIconPNG(t *testing.T) {
	png, err := LetterIconPNG("cat", 64, PaletteFor(model.MoodOverwhelmed))
	require.NoError(t, err)
	require.NotEmpty(t, png)
	// PNG 魔数
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}
