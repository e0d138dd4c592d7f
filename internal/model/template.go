package model

// Complexity 故事模板的三个复杂度级别
type Complexity string

const (
	ComplexitySimple    Complexity = "simple"
	ComplexityFull      Complexity = "full"
	ComplexityChallenge Complexity = "challenge"
)

// Complexities 文档要求的全部级别，按从易到难排列
var Complexities = []Complexity{ComplexitySimple, ComplexityFull, ComplexityChallenge}

// SectionType 模板分节类型
type SectionType string

const (
	SectionIntro      SectionType = "intro"
	SectionSetup      SectionType = "setup"
	SectionProblem    SectionType = "problem"
	SectionSolution   SectionType = "solution"
	SectionReflection SectionType = "reflection"
)

// SlotScope 槽位一致性范围。显式声明优先于槽名启发式判断。
type SlotScope string

const (
	ScopeUnset    SlotScope = ""
	ScopeDocument SlotScope = "document" // 整份文档锁定同一个词
	ScopeSection  SlotScope = "section"  // 每次出现独立选词
)

// WordSlot 模板文本中的一个命名占位符
type WordSlot struct {
	Name        string    `json:"name"`
	Themes      []Theme   `json:"themes,omitempty"`
	Tier        Tier      `json:"tier,omitempty"`
	Hints       []string  `json:"hints"`
	AllowRepeat bool      `json:"allowRepeat,omitempty"`
	Scope       SlotScope `json:"scope,omitempty"`
}

// Section 模板的一个段落/活动单元。模板数据不可变，
// 填充时产生新的 FilledSection 值。
type Section struct {
	Type            SectionType      `json:"type"`
	Text            string           `json:"text"`
	Slots           []WordSlot       `json:"slots"`
	TargetWordCount int              `json:"targetWordCount,omitempty"`
	Emphasis        []PhonicsPattern `json:"emphasis,omitempty"`
}

// StoryTemplate 命名、带版本的故事骨架，三个复杂度级别各有一组有序分节
type StoryTemplate struct {
	ID      string                   `json:"id"`
	Title   string                   `json:"title"`
	Version int                      `json:"version"`
	Themes  []Theme                  `json:"themes"`
	Levels  map[Complexity][]Section `json:"levels"`
}

// HasTheme 模板是否覆盖指定主题
func (t *StoryTemplate) HasTheme(theme Theme) bool {
	for _, th := range t.Themes {
		if th == theme {
			return true
		}
	}
	return false
}

// FilledSection 填充后的分节：最终文本加上实际用到的拼读重点词
type FilledSection struct {
	Type       SectionType `json:"type"`
	Text       string      `json:"text"`
	FocalWords []string    `json:"focalWords"`
}

// FilledDocument 某一复杂度级别的完整填充结果
type FilledDocument struct {
	TemplateID string          `json:"templateId"`
	Title      string          `json:"title"`
	Level      Complexity      `json:"level"`
	Sections   []FilledSection `json:"sections"`
}

// MultiVersionStory 同一个故事的三个复杂度版本。
// LockedChoices 记录关键实体槽名到最终用词的映射，三个版本全部复用。
type MultiVersionStory struct {
	TemplateID    string                        `json:"templateId"`
	Title         string                        `json:"title"`
	Interest      Theme                         `json:"interest"`
	BrainState    Mood                          `json:"brainState"`
	LockedChoices map[string]string             `json:"lockedChoices"`
	Versions      map[Complexity]FilledDocument `json:"versions"`
}

// TemplateDataset 模板 JSON 数据集
type TemplateDataset struct {
	Metadata  DatasetMetadata `json:"metadata"`
	Templates []StoryTemplate `json:"templates"`
}
