package model

// Tier 难度层级（词汇与自适应会话共用）
type Tier string

const (
	TierEasy      Tier = "easy"
	TierRegular   Tier = "regular"
	TierChallenge Tier = "challenge"
)

// ValidTier reports whether t is one of the three known tiers.
func ValidTier(t Tier) bool {
	return t == TierEasy || t == TierRegular || t == TierChallenge
}

// Theme 词汇主题标签。ThemeAny 表示不限主题的通用词。
type Theme string

const (
	ThemeAny       Theme = "any"
	ThemeAnimals   Theme = "animals"
	ThemeNature    Theme = "nature"
	ThemeSpace     Theme = "space"
	ThemeOcean     Theme = "ocean"
	ThemeVehicles  Theme = "vehicles"
	ThemeFood      Theme = "food"
	ThemeHome      Theme = "home"
	ThemeAdventure Theme = "adventure"
)

// DefaultTheme 未知主题的回退主题
const DefaultTheme = ThemeAnimals

// PhonicsPattern 拼读规则标签
type PhonicsPattern string

const (
	PatternCVC         PhonicsPattern = "cvc"
	PatternDigraph     PhonicsPattern = "digraph"
	PatternBlend       PhonicsPattern = "blend"
	PatternVowelTeam   PhonicsPattern = "vowel_team"
	PatternMagicE      PhonicsPattern = "magic_e"
	PatternRControlled PhonicsPattern = "r_controlled"
	PatternSightWord   PhonicsPattern = "sight_word"
)

// WordEntry 词库中的一个词条。数据在启动时装载一次，之后只读。
// Chunks 与 AltChunks 拼接必须还原 Word 本身；SoundChunks 面向发音提示，
// 允许与视觉分块不同。
type WordEntry struct {
	Word        string           `json:"word"`
	Tier        Tier             `json:"tier"`
	Patterns    []PhonicsPattern `json:"patterns"`
	Themes      []Theme          `json:"themes"`
	Chunks      []string         `json:"chunks"`
	AltChunks   []string         `json:"altChunks,omitempty"`
	SoundChunks []string         `json:"soundChunks,omitempty"`
	Meaning     string           `json:"meaning,omitempty"`
	Icon        string           `json:"icon,omitempty"`
}

// HasTheme 命中主题或通用标签即为真
func (w *WordEntry) HasTheme(theme Theme) bool {
	for _, t := range w.Themes {
		if t == theme || t == ThemeAny {
			return true
		}
	}
	return false
}

func (w *WordEntry) HasPattern(p PhonicsPattern) bool {
	for _, wp := range w.Patterns {
		if wp == p {
			return true
		}
	}
	return false
}

// WordDataset 增强词库 JSON 的顶层结构
type WordDataset struct {
	Metadata DatasetMetadata `json:"metadata"`
	Words    []WordEntry     `json:"words"`
}

type DatasetMetadata struct {
	Version    string `json:"version"`
	TotalWords int    `json:"totalWords"`
	Source     string `json:"source,omitempty"`
}
