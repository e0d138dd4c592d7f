package render

import (
	"fmt"
	"sensory_sheets_backend/internal/model"
)

// 页面几何统一用毫米，A4 竖版。两个渲染端消费同一份布局计划，
// 保证预览与打印的内容、顺序、配色完全一致。
const (
	PageWidth  = 210.0
	PageHeight = 297.0
	Margin     = 15.0
	ContentW   = PageWidth - 2*Margin
)

// Palette 每种情绪固定三个语义色：主色、强调色、底衬色
type Palette struct {
	Primary string
	Accent  string
	Soft    string
}

var moodPalettes = map[model.Mood]Palette{
	model.MoodOverwhelmed: {Primary: "#4A6FA5", Accent: "#87A8D0", Soft: "#EAF1F8"},
	model.MoodHighEnergy:  {Primary: "#C75B39", Accent: "#E8985E", Soft: "#FBEFE6"},
	model.MoodLowEnergy:   {Primary: "#5B7B5E", Accent: "#93B297", Soft: "#EDF3EE"},
}

// neutralPalette 无情绪上下文（拼读规则卷、故事卷）的默认配色
var neutralPalette = Palette{Primary: "#54508C", Accent: "#8F8BC0", Soft: "#F0EFF8"}

// PaletteFor 渲染端取色的唯一入口
func PaletteFor(mood model.Mood) Palette {
	if p, ok := moodPalettes[mood]; ok {
		return p
	}
	return neutralPalette
}

// BlockKind 布局块的种类，渲染端按它分支
type BlockKind string

const (
	BlockTitle      BlockKind = "title"
	BlockHeading    BlockKind = "heading"
	BlockBreathing  BlockKind = "breathing"
	BlockWordTrace  BlockKind = "wordTrace"
	BlockWordLine   BlockKind = "wordLine"
	BlockLetterRow  BlockKind = "letterRow"
	BlockIconRow    BlockKind = "iconRow"
	BlockPairColumn BlockKind = "pairColumns"
	BlockSection    BlockKind = "sectionHeading"
	BlockStoryText  BlockKind = "storyText"
	BlockMovement   BlockKind = "movementBreak"
	BlockCompletion BlockKind = "completion"
	BlockPageBreak  BlockKind = "pageBreak"
)

// Block 一个垂直布局单元。Text 是主文案，Cells 承载字母格或多列词，
// Chunks 承载词的拆块，Height 是该块占用的纵向毫米数。
type Block struct {
	Kind   BlockKind
	Text   string
	Icon   string
	Cells  []string
	Chunks []string
	Height float64
}

// FontSet 按约束字号档位展开的具体磅值
type FontSet struct {
	Title   float64
	Heading float64
	Word    float64
	Body    float64
}

var fontSets = map[model.FontClass]FontSet{
	model.FontLarge:  {Title: 26, Heading: 18, Word: 24, Body: 13},
	model.FontXLarge: {Title: 32, Heading: 22, Word: 30, Body: 15},
}

// Plan 渲染计划：标题、配色、字号与有序的布局块
type Plan struct {
	Title   string
	Palette Palette
	Fonts   FontSet
	Blocks  []Block
	Footer  string
}

// activityHeadings 各活动的固定小节标题，%d 位置填主条目数
var activityHeadings = map[string]string{
	"trace3":        "Trace %d Words",
	"breatheCircle": "Breathe and Circle",
	"pointRead":     "Point and Read",
	"iconBoxes":     "Look, Say, Match",
	"matchPairs":    "Match the Words",
	"soundSections": "Sort by Sound",
}

// titleFor 情绪决定标题语气，overwhelmed 永远强调"只有这几个"
func titleFor(data *model.WorksheetData) string {
	n := len(data.Items)
	switch data.Mood {
	case model.MoodOverwhelmed:
		return fmt.Sprintf("Just %d Words", n)
	case model.MoodHighEnergy:
		return fmt.Sprintf("Power Through %d Words", n)
	case model.MoodLowEnergy:
		return fmt.Sprintf("Gentle %d Words", n)
	}
	if data.Pattern != "" {
		return fmt.Sprintf("Pattern Practice: %s", data.Pattern)
	}
	return "Word Practice"
}

func headingFor(data *model.WorksheetData) string {
	h, ok := activityHeadings[data.ActivityID]
	if !ok {
		return "Practice Words"
	}
	return fmt.Sprintf(h, len(data.Items))
}

// BuildPlan 把组装器产出翻译成有序布局块。
// 块顺序固定：标题 → 呼吸引导 → 小节标题 → 活动内容 → 运动休息 → 完成语。
func BuildPlan(data *model.WorksheetData) *Plan {
	fonts, ok := fontSets[data.Constraints.Font]
	if !ok {
		fonts = fontSets[model.FontLarge]
	}

	plan := &Plan{
		Title:   titleFor(data),
		Palette: PaletteFor(data.Mood),
		Fonts:   fonts,
		Footer:  "sensory sheets",
	}

	plan.push(Block{Kind: BlockTitle, Text: plan.Title, Height: 20})

	if data.Constraints.BreathingGuide {
		plan.push(Block{Kind: BlockBreathing, Text: "Breathe in... and out. Ready when you are.", Height: 26})
	}

	plan.push(Block{Kind: BlockHeading, Text: headingFor(data), Height: 13})
	plan.appendActivity(data)

	if data.Constraints.MovementBreak {
		plan.push(Block{Kind: BlockMovement, Text: "Movement break! Jump 5 times, then come back.", Height: 16})
	}

	completion := fmt.Sprintf(data.Constraints.CompletionTemplate, len(data.Items))
	plan.push(Block{Kind: BlockCompletion, Text: completion, Height: 15})

	return plan
}

func (p *Plan) push(b Block) {
	p.Blocks = append(p.Blocks, b)
}

// appendActivity 按内容种类展开活动块
func (p *Plan) appendActivity(data *model.WorksheetData) {
	switch data.Content.Kind {
	case model.ContentLetterGrid:
		for _, row := range data.Content.Rows {
			p.push(Block{Kind: BlockLetterRow, Text: row.Target, Cells: row.Cells, Height: 18})
		}

	case model.ContentWordPairs:
		cells := make([]string, 0, 2*len(data.Content.Pairs))
		for _, pair := range data.Content.Pairs {
			cells = append(cells, pair.Left, pair.Right)
		}
		p.push(Block{
			Kind:   BlockPairColumn,
			Cells:  cells,
			Height: float64(len(data.Content.Pairs))*12 + 8,
		})

	case model.ContentSoundSections:
		for _, section := range data.Content.Sections {
			p.push(Block{Kind: BlockSection, Text: section.Heading, Height: 11})
			for _, it := range section.Items {
				p.push(Block{Kind: BlockWordLine, Text: it.Word, Icon: it.Icon, Chunks: it.Chunks, Height: 14})
			}
		}

	default:
		for _, it := range data.Items {
			kind := BlockWordLine
			height := 14.0
			switch data.ActivityID {
			case "trace3":
				kind = BlockWordTrace
				height = 22
			case "iconBoxes":
				kind = BlockIconRow
				height = 30
			}
			p.push(Block{Kind: kind, Text: it.Word, Icon: it.Icon, Chunks: it.Chunks, Height: height})
		}
	}
}

// BuildStoryPlan 三个版本依次排版，版本之间强制换页
func BuildStoryPlan(story *model.MultiVersionStory) *Plan {
	plan := &Plan{
		Title:   story.Title,
		Palette: PaletteFor(story.BrainState),
		Fonts:   fontSets[model.FontLarge],
		Footer:  "sensory sheets",
	}

	levelNames := map[model.Complexity]string{
		model.ComplexitySimple:    "Simple Version",
		model.ComplexityFull:      "Full Story",
		model.ComplexityChallenge: "Challenge Version",
	}

	for i, level := range model.Complexities {
		doc, ok := story.Versions[level]
		if !ok {
			continue
		}
		if i > 0 {
			plan.push(Block{Kind: BlockPageBreak})
		}
		plan.push(Block{Kind: BlockTitle, Text: fmt.Sprintf("%s: %s", story.Title, levelNames[level]), Height: 20})
		for _, section := range doc.Sections {
			plan.push(Block{Kind: BlockSection, Text: sectionHeading(section.Type), Height: 11})
			plan.push(Block{Kind: BlockStoryText, Text: section.Text, Height: textHeight(section.Text)})
			if len(section.FocalWords) > 0 {
				plan.push(Block{
					Kind:   BlockWordLine,
					Text:   "Focus words: " + joinWords(section.FocalWords),
					Height: 12,
				})
			}
		}
	}
	return plan
}

func sectionHeading(t model.SectionType) string {
	switch t {
	case model.SectionIntro:
		return "The Beginning"
	case model.SectionSetup:
		return "Setting the Scene"
	case model.SectionProblem:
		return "The Problem"
	case model.SectionSolution:
		return "The Fix"
	case model.SectionReflection:
		return "Looking Back"
	}
	return "The Story"
}

// textHeight 估算段落占高：约每 55 个字符折一行，每行 8 毫米
func textHeight(text string) float64 {
	lines := len(text)/55 + 1
	return float64(lines)*8 + 4
}

func joinWords(words []string) string {
	out := ""
	for i, w := range words {
		if i > 0 {
			out += ", "
		}
		out += w
	}
	return out
}
