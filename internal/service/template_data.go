package service

import "sensory_sheets_backend/internal/model"

// 内置故事模板。模板数据集缺失时的回退；同一槽名（如 CHARACTER）
// 会在三个复杂度级别之间锁定同一个词，因此各级别的 hints 可以重叠。

var builtinTemplates = []model.StoryTemplate{
	{
		ID:      "meadow_friends",
		Title:   "The Meadow Friends",
		Version: 2,
		Themes:  []model.Theme{model.ThemeAnimals, model.ThemeNature},
		Levels: map[model.Complexity][]model.Section{
			model.ComplexitySimple: {
				{
					Type: model.SectionIntro,
					Text: "[CHARACTER] is a [ANIMAL]. [CHARACTER] likes the sun.",
					Slots: []model.WordSlot{
						{Name: "CHARACTER", Hints: []string{"Pip", "Momo", "Tilly"}},
						{Name: "ANIMAL", Themes: []model.Theme{model.ThemeAnimals}, Tier: model.TierEasy, Hints: []string{"cat", "dog", "pig"}},
					},
					TargetWordCount: 10,
					Emphasis:        []model.PhonicsPattern{model.PatternCVC},
				},
				{
					Type: model.SectionProblem,
					Text: "[CHARACTER] lost a [OBJECT]. [CHARACTER] is sad.",
					Slots: []model.WordSlot{
						{Name: "CHARACTER", Hints: []string{"Pip", "Momo", "Tilly"}},
						{Name: "OBJECT", Tier: model.TierEasy, Hints: []string{"hat", "cup", "map"}},
					},
					TargetWordCount: 10,
					Emphasis:        []model.PhonicsPattern{model.PatternCVC},
				},
				{
					Type: model.SectionSolution,
					Text: "[CHARACTER_2] helps. They find the [OBJECT] by the [LOCATION]. Hooray!",
					Slots: []model.WordSlot{
						{Name: "CHARACTER_2", Hints: []string{"Momo", "Tilly", "Benny"}},
						{Name: "OBJECT", Tier: model.TierEasy, Hints: []string{"hat", "cup", "map"}},
						{Name: "LOCATION", Themes: []model.Theme{model.ThemeNature}, Hints: []string{"web", "sun", "mat"}},
					},
					TargetWordCount: 12,
				},
			},
			model.ComplexityFull: {
				{
					Type: model.SectionIntro,
					Text: "[CHARACTER] the [ANIMAL] lives near a quiet [LOCATION]. Every morning [CHARACTER] hums a little song.",
					Slots: []model.WordSlot{
						{Name: "CHARACTER", Hints: []string{"Pip", "Momo", "Tilly"}},
						{Name: "ANIMAL", Themes: []model.Theme{model.ThemeAnimals}, Tier: model.TierRegular, Hints: []string{"frog", "bird", "fish"}},
						{Name: "LOCATION", Themes: []model.Theme{model.ThemeNature}, Hints: []string{"garden", "cave"}},
					},
					TargetWordCount: 18,
					Emphasis:        []model.PhonicsPattern{model.PatternBlend, model.PatternDigraph},
				},
				{
					Type: model.SectionSetup,
					Text: "One day [CHARACTER] packs a [OBJECT] and sets off with [CHARACTER_2].",
					Slots: []model.WordSlot{
						{Name: "CHARACTER", Hints: []string{"Pip", "Momo", "Tilly"}},
						{Name: "CHARACTER_2", Hints: []string{"Momo", "Tilly", "Benny"}},
						{Name: "OBJECT", Tier: model.TierRegular, Hints: []string{"map", "drum", "shell"}},
					},
					TargetWordCount: 14,
				},
				{
					Type: model.SectionProblem,
					Text: "Wind! Rain! The [OBJECT] slips away and rolls toward the [LOCATION].",
					Slots: []model.WordSlot{
						{Name: "OBJECT", Tier: model.TierRegular, Hints: []string{"map", "drum", "shell"}},
						{Name: "LOCATION", Themes: []model.Theme{model.ThemeNature}, Hints: []string{"garden", "cave"}},
					},
					TargetWordCount: 12,
					Emphasis:        []model.PhonicsPattern{model.PatternVowelTeam},
				},
				{
					Type: model.SectionSolution,
					Text: "[CHARACTER_2] spots it first. Together they carry the [OBJECT] home, one [STEP_WORD] at a time.",
					Slots: []model.WordSlot{
						{Name: "CHARACTER_2", Hints: []string{"Momo", "Tilly", "Benny"}},
						{Name: "OBJECT", Tier: model.TierRegular, Hints: []string{"map", "drum", "shell"}},
						{Name: "STEP_WORD", AllowRepeat: true, Hints: []string{"hop", "skip", "step"}},
					},
					TargetWordCount: 16,
				},
				{
					Type: model.SectionReflection,
					Text: "[CHARACTER] smiles. Friends make heavy things light.",
					Slots: []model.WordSlot{
						{Name: "CHARACTER", Hints: []string{"Pip", "Momo", "Tilly"}},
					},
					TargetWordCount: 8,
				},
			},
			model.ComplexityChallenge: {
				{
					Type: model.SectionIntro,
					Text: "[CHARACTER] the [ANIMAL] kept a treasured [OBJECT] beside the old [LOCATION], polished and ready for adventure.",
					Slots: []model.WordSlot{
						{Name: "CHARACTER", Hints: []string{"Pip", "Momo", "Tilly"}},
						{Name: "ANIMAL", Themes: []model.Theme{model.ThemeAnimals}, Tier: model.TierChallenge, Hints: []string{"rabbit", "dolphin"}},
						{Name: "OBJECT", Tier: model.TierChallenge, Hints: []string{"lantern", "treasure"}},
						{Name: "LOCATION", Themes: []model.Theme{model.ThemeNature}, Hints: []string{"garden", "jungle"}},
					},
					TargetWordCount: 22,
					Emphasis:        []model.PhonicsPattern{model.PatternRControlled},
				},
				{
					Type: model.SectionProblem,
					Text: "A thunderstorm scattered everything. The [OBJECT] vanished somewhere deep inside the [LOCATION], and [CHARACTER] felt a knot of worry.",
					Slots: []model.WordSlot{
						{Name: "OBJECT", Tier: model.TierChallenge, Hints: []string{"lantern", "treasure"}},
						{Name: "LOCATION", Themes: []model.Theme{model.ThemeNature}, Hints: []string{"garden", "jungle"}},
						{Name: "CHARACTER", Hints: []string{"Pip", "Momo", "Tilly"}},
					},
					TargetWordCount: 20,
					Emphasis:        []model.PhonicsPattern{model.PatternDigraph},
				},
				{
					Type: model.SectionSolution,
					Text: "Patient [CHARACTER_2] suggested searching in circles, wider and wider, until the [OBJECT] glinted under a fern.",
					Slots: []model.WordSlot{
						{Name: "CHARACTER_2", Hints: []string{"Momo", "Tilly", "Benny"}},
						{Name: "OBJECT", Tier: model.TierChallenge, Hints: []string{"lantern", "treasure"}},
					},
					TargetWordCount: 18,
				},
				{
					Type: model.SectionReflection,
					Text: "That night [CHARACTER] wrote in the sand: lost things return to careful friends.",
					Slots: []model.WordSlot{
						{Name: "CHARACTER", Hints: []string{"Pip", "Momo", "Tilly"}},
					},
					TargetWordCount: 14,
				},
			},
		},
	},
	{
		ID:      "tide_pool_quest",
		Title:   "The Tide Pool Quest",
		Version: 1,
		Themes:  []model.Theme{model.ThemeOcean, model.ThemeAdventure},
		Levels: map[model.Complexity][]model.Section{
			model.ComplexitySimple: {
				{
					Type: model.SectionIntro,
					Text: "[CHARACTER] sees a [CREATURE] in the pool.",
					Slots: []model.WordSlot{
						{Name: "CHARACTER", Hints: []string{"Finn", "Coral", "Sandy"}},
						{Name: "CREATURE", Themes: []model.Theme{model.ThemeOcean}, Tier: model.TierRegular, Hints: []string{"crab", "fish"}},
					},
					TargetWordCount: 8,
					Emphasis:        []model.PhonicsPattern{model.PatternBlend},
				},
				{
					Type: model.SectionProblem,
					Text: "The [CREATURE] hides under a [OBJECT].",
					Slots: []model.WordSlot{
						{Name: "CREATURE", Themes: []model.Theme{model.ThemeOcean}, Tier: model.TierRegular, Hints: []string{"crab", "fish"}},
						{Name: "OBJECT", Themes: []model.Theme{model.ThemeOcean}, Hints: []string{"shell", "boat"}},
					},
					TargetWordCount: 8,
					Emphasis:        []model.PhonicsPattern{model.PatternDigraph},
				},
				{
					Type: model.SectionSolution,
					Text: "[CHARACTER] waits. The [CREATURE] peeks out. Hello!",
					Slots: []model.WordSlot{
						{Name: "CHARACTER", Hints: []string{"Finn", "Coral", "Sandy"}},
						{Name: "CREATURE", Themes: []model.Theme{model.ThemeOcean}, Tier: model.TierRegular, Hints: []string{"crab", "fish"}},
					},
					TargetWordCount: 10,
				},
			},
			model.ComplexityFull: {
				{
					Type: model.SectionIntro,
					Text: "At low tide, [CHARACTER] explores the rocks and finds a shy [CREATURE] near a broken [OBJECT].",
					Slots: []model.WordSlot{
						{Name: "CHARACTER", Hints: []string{"Finn", "Coral", "Sandy"}},
						{Name: "CREATURE", Themes: []model.Theme{model.ThemeOcean}, Tier: model.TierRegular, Hints: []string{"crab", "fish", "seahorse"}},
						{Name: "OBJECT", Themes: []model.Theme{model.ThemeOcean}, Hints: []string{"shell", "boat"}},
					},
					TargetWordCount: 18,
					Emphasis:        []model.PhonicsPattern{model.PatternDigraph, model.PatternVowelTeam},
				},
				{
					Type: model.SectionProblem,
					Text: "A wave rushes in. The [CREATURE] tumbles, and [CHARACTER] gasps.",
					Slots: []model.WordSlot{
						{Name: "CREATURE", Themes: []model.Theme{model.ThemeOcean}, Tier: model.TierRegular, Hints: []string{"crab", "fish", "seahorse"}},
						{Name: "CHARACTER", Hints: []string{"Finn", "Coral", "Sandy"}},
					},
					TargetWordCount: 12,
				},
				{
					Type: model.SectionSolution,
					Text: "[CHARACTER] makes a calm little wall of sand. The [CREATURE] settles beside the [OBJECT], safe again.",
					Slots: []model.WordSlot{
						{Name: "CHARACTER", Hints: []string{"Finn", "Coral", "Sandy"}},
						{Name: "CREATURE", Themes: []model.Theme{model.ThemeOcean}, Tier: model.TierRegular, Hints: []string{"crab", "fish", "seahorse"}},
						{Name: "OBJECT", Themes: []model.Theme{model.ThemeOcean}, Hints: []string{"shell", "boat"}},
					},
					TargetWordCount: 18,
				},
			},
			model.ComplexityChallenge: {
				{
					Type: model.SectionIntro,
					Text: "Every explorer needs patience, and [CHARACTER] had plenty. Beneath the swirling water, a [CREATURE] guarded a gleaming [OBJECT].",
					Slots: []model.WordSlot{
						{Name: "CHARACTER", Hints: []string{"Finn", "Coral", "Sandy"}},
						{Name: "CREATURE", Themes: []model.Theme{model.ThemeOcean}, Tier: model.TierChallenge, Hints: []string{"starfish", "seahorse", "dolphin"}},
						{Name: "OBJECT", Themes: []model.Theme{model.ThemeOcean}, Tier: model.TierChallenge, Hints: []string{"treasure", "shell"}},
					},
					TargetWordCount: 22,
					Emphasis:        []model.PhonicsPattern{model.PatternBlend, model.PatternVowelTeam},
				},
				{
					Type: model.SectionProblem,
					Text: "The current grew stronger, clouding the pool with sand until the [CREATURE] disappeared entirely from view.",
					Slots: []model.WordSlot{
						{Name: "CREATURE", Themes: []model.Theme{model.ThemeOcean}, Tier: model.TierChallenge, Hints: []string{"starfish", "seahorse", "dolphin"}},
					},
					TargetWordCount: 16,
				},
				{
					Type: model.SectionSolution,
					Text: "[CHARACTER] breathed slowly, counted the ripples, and waited for the water to clear. There it was: the [CREATURE], still guarding its [OBJECT].",
					Slots: []model.WordSlot{
						{Name: "CHARACTER", Hints: []string{"Finn", "Coral", "Sandy"}},
						{Name: "CREATURE", Themes: []model.Theme{model.ThemeOcean}, Tier: model.TierChallenge, Hints: []string{"starfish", "seahorse", "dolphin"}},
						{Name: "OBJECT", Themes: []model.Theme{model.ThemeOcean}, Tier: model.TierChallenge, Hints: []string{"treasure", "shell"}},
					},
					TargetWordCount: 24,
					Emphasis:        []model.PhonicsPattern{model.PatternRControlled},
				},
			},
		},
	},
}
