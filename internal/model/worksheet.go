package model

// Mood 学习者状态分类，驱动工作表的约束与节奏
type Mood string

const (
	MoodOverwhelmed Mood = "overwhelmed"
	MoodHighEnergy  Mood = "highEnergy"
	MoodLowEnergy   Mood = "lowEnergy"
)

func ValidMood(m Mood) bool {
	return m == MoodOverwhelmed || m == MoodHighEnergy || m == MoodLowEnergy
}

// FontClass 渲染用字号档位
type FontClass string

const (
	FontLarge  FontClass = "lg"
	FontXLarge FontClass = "xl"
)

// WorksheetConstraints 由情绪状态决定的固定约束表行
type WorksheetConstraints struct {
	MaxItems           int       `json:"maxItems"`
	Font               FontClass `json:"font"`
	BreathingGuide     bool      `json:"breathingGuide"`
	MovementBreak      bool      `json:"movementBreak"`
	AllowNoWriting     bool      `json:"allowNoWriting"`
	CompletionTemplate string    `json:"completionTemplate"` // fmt 模板，带一个 %d 条目数
}

// WorksheetItem 主条目：一个词加可选图标引用
type WorksheetItem struct {
	Word   string   `json:"word"`
	Icon   string   `json:"icon,omitempty"`
	Chunks []string `json:"chunks,omitempty"`
}

// LetterRow 圈字母活动的一行：Target 是目标字母，
// Cells 为打乱后的行内容（含 2~3 个目标字母与干扰字母，共 7 格）。
type LetterRow struct {
	Target string   `json:"target"`
	Cells  []string `json:"cells"`
}

// WordPair 连线/配对活动的一列词对
type WordPair struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// SoundSection 图音配对活动的一个分节
type SoundSection struct {
	Heading string          `json:"heading"`
	Items   []WorksheetItem `json:"items"`
}

// ActivityContent 各活动的结构化内容，按种类打标签（tagged variant），
// 渲染端按 Kind 分支而不是探测可选字段。
type ActivityContentKind string

const (
	ContentLetterGrid    ActivityContentKind = "letterGrid"
	ContentWordPairs     ActivityContentKind = "wordPairs"
	ContentSoundSections ActivityContentKind = "soundSections"
	ContentPlainWords    ActivityContentKind = "plainWords"
)

type ActivityContent struct {
	Kind     ActivityContentKind `json:"kind"`
	Rows     []LetterRow         `json:"rows,omitempty"`     // ContentLetterGrid
	Pairs    []WordPair          `json:"pairs,omitempty"`    // ContentWordPairs
	Sections []SoundSection      `json:"sections,omitempty"` // ContentSoundSections
	Words    []WorksheetItem     `json:"words,omitempty"`    // ContentPlainWords
}

// WorksheetData 组装器产出的唯一规范对象，两个渲染端共同消费，只读。
// 不变量：主条目数不超过约束的 MaxItems；干扰项永不与主条目重词。
type WorksheetData struct {
	Mood        Mood                 `json:"mood,omitempty"`
	Pattern     PhonicsPattern       `json:"pattern,omitempty"`
	ActivityID  string               `json:"activityId"`
	Constraints WorksheetConstraints `json:"constraints"`
	Items       []WorksheetItem      `json:"items"`
	Distractors []string             `json:"distractors,omitempty"`
	Content     ActivityContent      `json:"content"`
}

// PrimaryWords 主条目的词面集合
func (w *WorksheetData) PrimaryWords() []string {
	words := make([]string, len(w.Items))
	for i, it := range w.Items {
		words[i] = it.Word
	}
	return words
}
