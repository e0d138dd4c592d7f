package service

import "sensory_sheets_backend/internal/model"

// 内置词库。增强数据集缺失时的回退数据源，启动后只读。
// Chunks 是面向视觉追踪的分块，拼接必须还原词面。

// CalmWords 过载状态下的固定最简词汇子集。
// overwhelmed 情绪是硬覆盖：无论其他参数如何，主条目只从这里选。
var CalmWords = []string{"cat", "sun", "hat", "dog", "bed", "mat", "top", "big", "red", "cup"}

// ConsonantPool 圈字母活动的干扰字母池
var ConsonantPool = []string{"B", "C", "D", "F", "G", "H", "J", "K", "L", "M", "N", "P", "R", "S", "T", "V", "W", "Z"}

var builtinWords = []model.WordEntry{
	// easy / CVC
	{Word: "cat", Tier: model.TierEasy, Patterns: []model.PhonicsPattern{model.PatternCVC}, Themes: []model.Theme{model.ThemeAnimals}, Chunks: []string{"c", "at"}, AltChunks: []string{"ca", "t"}, Icon: "cat"},
	{Word: "dog", Tier: model.TierEasy, Patterns: []model.PhonicsPattern{model.PatternCVC}, Themes: []model.Theme{model.ThemeAnimals}, Chunks: []string{"d", "og"}, Icon: "dog"},
	{Word: "pig", Tier: model.TierEasy, Patterns: []model.PhonicsPattern{model.PatternCVC}, Themes: []model.Theme{model.ThemeAnimals}, Chunks: []string{"p", "ig"}, Icon: "pig"},
	{Word: "hen", Tier: model.TierEasy, Patterns: []model.PhonicsPattern{model.PatternCVC}, Themes: []model.Theme{model.ThemeAnimals}, Chunks: []string{"h", "en"}},
	{Word: "fox", Tier: model.TierEasy, Patterns: []model.PhonicsPattern{model.PatternCVC}, Themes: []model.Theme{model.ThemeAnimals}, Chunks: []string{"f", "ox"}, Icon: "fox"},
	{Word: "sun", Tier: model.TierEasy, Patterns: []model.PhonicsPattern{model.PatternCVC}, Themes: []model.Theme{model.ThemeNature, model.ThemeSpace}, Chunks: []string{"s", "un"}, Icon: "sun"},
	{Word: "hat", Tier: model.TierEasy, Patterns: []model.PhonicsPattern{model.PatternCVC}, Themes: []model.Theme{model.ThemeAny}, Chunks: []string{"h", "at"}, Icon: "hat"},
	{Word: "bed", Tier: model.TierEasy, Patterns: []model.PhonicsPattern{model.PatternCVC}, Themes: []model.Theme{model.ThemeHome}, Chunks: []string{"b", "ed"}},
	{Word: "mat", Tier: model.TierEasy, Patterns: []model.PhonicsPattern{model.PatternCVC}, Themes: []model.Theme{model.ThemeHome}, Chunks: []string{"m", "at"}},
	{Word: "cup", Tier: model.TierEasy, Patterns: []model.PhonicsPattern{model.PatternCVC}, Themes: []model.Theme{model.ThemeHome, model.ThemeFood}, Chunks: []string{"c", "up"}, Icon: "cup"},
	{Word: "top", Tier: model.TierEasy, Patterns: []model.PhonicsPattern{model.PatternCVC}, Themes: []model.Theme{model.ThemeAny}, Chunks: []string{"t", "op"}},
	{Word: "big", Tier: model.TierEasy, Patterns: []model.PhonicsPattern{model.PatternCVC, model.PatternSightWord}, Themes: []model.Theme{model.ThemeAny}, Chunks: []string{"b", "ig"}},
	{Word: "red", Tier: model.TierEasy, Patterns: []model.PhonicsPattern{model.PatternCVC, model.PatternSightWord}, Themes: []model.Theme{model.ThemeAny}, Chunks: []string{"r", "ed"}},
	{Word: "bus", Tier: model.TierEasy, Patterns: []model.PhonicsPattern{model.PatternCVC}, Themes: []model.Theme{model.ThemeVehicles}, Chunks: []string{"b", "us"}, Icon: "bus"},
	{Word: "van", Tier: model.TierEasy, Patterns: []model.PhonicsPattern{model.PatternCVC}, Themes: []model.Theme{model.ThemeVehicles}, Chunks: []string{"v", "an"}},
	{Word: "jam", Tier: model.TierEasy, Patterns: []model.PhonicsPattern{model.PatternCVC}, Themes: []model.Theme{model.ThemeFood}, Chunks: []string{"j", "am"}},
	{Word: "map", Tier: model.TierEasy, Patterns: []model.PhonicsPattern{model.PatternCVC}, Themes: []model.Theme{model.ThemeAdventure}, Chunks: []string{"m", "ap"}, Icon: "map"},
	{Word: "web", Tier: model.TierEasy, Patterns: []model.PhonicsPattern{model.PatternCVC}, Themes: []model.Theme{model.ThemeNature}, Chunks: []string{"w", "eb"}},

	// regular / digraphs and blends
	{Word: "ship", Tier: model.TierRegular, Patterns: []model.PhonicsPattern{model.PatternDigraph}, Themes: []model.Theme{model.ThemeOcean, model.ThemeVehicles}, Chunks: []string{"sh", "ip"}, Icon: "ship"},
	{Word: "fish", Tier: model.TierRegular, Patterns: []model.PhonicsPattern{model.PatternDigraph}, Themes: []model.Theme{model.ThemeOcean, model.ThemeAnimals}, Chunks: []string{"f", "ish"}, SoundChunks: []string{"f", "i", "sh"}, Icon: "fish"},
	{Word: "moth", Tier: model.TierRegular, Patterns: []model.PhonicsPattern{model.PatternDigraph}, Themes: []model.Theme{model.ThemeAnimals, model.ThemeNature}, Chunks: []string{"m", "oth"}},
	{Word: "chick", Tier: model.TierRegular, Patterns: []model.PhonicsPattern{model.PatternDigraph}, Themes: []model.Theme{model.ThemeAnimals}, Chunks: []string{"ch", "ick"}, SoundChunks: []string{"ch", "i", "ck"}},
	{Word: "shell", Tier: model.TierRegular, Patterns: []model.PhonicsPattern{model.PatternDigraph}, Themes: []model.Theme{model.ThemeOcean}, Chunks: []string{"sh", "ell"}, Icon: "shell"},
	{Word: "frog", Tier: model.TierRegular, Patterns: []model.PhonicsPattern{model.PatternBlend}, Themes: []model.Theme{model.ThemeAnimals, model.ThemeNature}, Chunks: []string{"fr", "og"}, Icon: "frog"},
	{Word: "crab", Tier: model.TierRegular, Patterns: []model.PhonicsPattern{model.PatternBlend}, Themes: []model.Theme{model.ThemeOcean, model.ThemeAnimals}, Chunks: []string{"cr", "ab"}, Icon: "crab"},
	{Word: "star", Tier: model.TierRegular, Patterns: []model.PhonicsPattern{model.PatternBlend, model.PatternRControlled}, Themes: []model.Theme{model.ThemeSpace, model.ThemeNature}, Chunks: []string{"st", "ar"}, Icon: "star"},
	{Word: "drum", Tier: model.TierRegular, Patterns: []model.PhonicsPattern{model.PatternBlend}, Themes: []model.Theme{model.ThemeAny}, Chunks: []string{"dr", "um"}, Icon: "drum"},
	{Word: "plant", Tier: model.TierRegular, Patterns: []model.PhonicsPattern{model.PatternBlend}, Themes: []model.Theme{model.ThemeNature}, Chunks: []string{"pl", "ant"}},
	{Word: "truck", Tier: model.TierRegular, Patterns: []model.PhonicsPattern{model.PatternBlend}, Themes: []model.Theme{model.ThemeVehicles}, Chunks: []string{"tr", "uck"}, Icon: "truck"},
	{Word: "train", Tier: model.TierRegular, Patterns: []model.PhonicsPattern{model.PatternBlend, model.PatternVowelTeam}, Themes: []model.Theme{model.ThemeVehicles}, Chunks: []string{"tr", "ain"}, Icon: "train"},
	{Word: "moon", Tier: model.TierRegular, Patterns: []model.PhonicsPattern{model.PatternVowelTeam}, Themes: []model.Theme{model.ThemeSpace}, Chunks: []string{"m", "oon"}, Icon: "moon"},
	{Word: "boat", Tier: model.TierRegular, Patterns: []model.PhonicsPattern{model.PatternVowelTeam}, Themes: []model.Theme{model.ThemeOcean, model.ThemeVehicles}, Chunks: []string{"b", "oat"}, Icon: "boat"},
	{Word: "rain", Tier: model.TierRegular, Patterns: []model.PhonicsPattern{model.PatternVowelTeam}, Themes: []model.Theme{model.ThemeNature}, Chunks: []string{"r", "ain"}, Icon: "rain"},
	{Word: "leaf", Tier: model.TierRegular, Patterns: []model.PhonicsPattern{model.PatternVowelTeam}, Themes: []model.Theme{model.ThemeNature}, Chunks: []string{"l", "eaf"}, Icon: "leaf"},
	{Word: "cake", Tier: model.TierRegular, Patterns: []model.PhonicsPattern{model.PatternMagicE}, Themes: []model.Theme{model.ThemeFood}, Chunks: []string{"c", "ake"}, Icon: "cake"},
	{Word: "home", Tier: model.TierRegular, Patterns: []model.PhonicsPattern{model.PatternMagicE, model.PatternSightWord}, Themes: []model.Theme{model.ThemeHome}, Chunks: []string{"h", "ome"}, Icon: "home"},
	{Word: "cave", Tier: model.TierRegular, Patterns: []model.PhonicsPattern{model.PatternMagicE}, Themes: []model.Theme{model.ThemeAdventure, model.ThemeNature}, Chunks: []string{"c", "ave"}},
	{Word: "bird", Tier: model.TierRegular, Patterns: []model.PhonicsPattern{model.PatternRControlled}, Themes: []model.Theme{model.ThemeAnimals}, Chunks: []string{"b", "ird"}, Icon: "bird"},
	{Word: "fort", Tier: model.TierRegular, Patterns: []model.PhonicsPattern{model.PatternRControlled}, Themes: []model.Theme{model.ThemeAdventure}, Chunks: []string{"f", "ort"}},

	// challenge / longer, morphologically richer
	{Word: "rabbit", Tier: model.TierChallenge, Patterns: []model.PhonicsPattern{model.PatternCVC}, Themes: []model.Theme{model.ThemeAnimals}, Chunks: []string{"rab", "bit"}, SoundChunks: []string{"ra", "bbit"}, Icon: "rabbit"},
	{Word: "dolphin", Tier: model.TierChallenge, Patterns: []model.PhonicsPattern{model.PatternDigraph}, Themes: []model.Theme{model.ThemeOcean, model.ThemeAnimals}, Chunks: []string{"dol", "phin"}, Icon: "dolphin"},
	{Word: "rocket", Tier: model.TierChallenge, Patterns: []model.PhonicsPattern{model.PatternCVC}, Themes: []model.Theme{model.ThemeSpace, model.ThemeVehicles}, Chunks: []string{"rock", "et"}, Icon: "rocket"},
	{Word: "planet", Tier: model.TierChallenge, Patterns: []model.PhonicsPattern{model.PatternBlend}, Themes: []model.Theme{model.ThemeSpace}, Chunks: []string{"plan", "et"}, Icon: "planet"},
	{Word: "thunder", Tier: model.TierChallenge, Patterns: []model.PhonicsPattern{model.PatternDigraph, model.PatternRControlled}, Themes: []model.Theme{model.ThemeNature}, Chunks: []string{"thun", "der"}},
	{Word: "starfish", Tier: model.TierChallenge, Patterns: []model.PhonicsPattern{model.PatternBlend, model.PatternDigraph}, Themes: []model.Theme{model.ThemeOcean}, Chunks: []string{"star", "fish"}, Icon: "starfish"},
	{Word: "garden", Tier: model.TierChallenge, Patterns: []model.PhonicsPattern{model.PatternRControlled}, Themes: []model.Theme{model.ThemeNature, model.ThemeHome}, Chunks: []string{"gar", "den"}, Icon: "garden"},
	{Word: "jungle", Tier: model.TierChallenge, Patterns: []model.PhonicsPattern{model.PatternBlend}, Themes: []model.Theme{model.ThemeAdventure, model.ThemeNature}, Chunks: []string{"jun", "gle"}},
	{Word: "treasure", Tier: model.TierChallenge, Patterns: []model.PhonicsPattern{model.PatternBlend}, Themes: []model.Theme{model.ThemeAdventure}, Chunks: []string{"trea", "sure"}, Meaning: "something precious that is hidden", Icon: "treasure"},
	{Word: "lantern", Tier: model.TierChallenge, Patterns: []model.PhonicsPattern{model.PatternRControlled}, Themes: []model.Theme{model.ThemeAdventure, model.ThemeHome}, Chunks: []string{"lan", "tern"}},
	{Word: "sandwich", Tier: model.TierChallenge, Patterns: []model.PhonicsPattern{model.PatternDigraph}, Themes: []model.Theme{model.ThemeFood}, Chunks: []string{"sand", "wich"}, Icon: "sandwich"},
	{Word: "seahorse", Tier: model.TierChallenge, Patterns: []model.PhonicsPattern{model.PatternVowelTeam}, Themes: []model.Theme{model.ThemeOcean}, Chunks: []string{"sea", "horse"}, Icon: "seahorse"},
}
