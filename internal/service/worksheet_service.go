package service

import (
	"fmt"
	"sensory_sheets_backend/internal/model"
	"sensory_sheets_backend/internal/util"
	"strings"
)

// 活动标识。请求里出现表外的活动 id 直接拒绝。
const (
	ActivityTrace         = "trace3"
	ActivityBreatheCircle = "breatheCircle"
	ActivityPointRead     = "pointRead"
	ActivityIconBoxes     = "iconBoxes"
	ActivityMatchPairs    = "matchPairs"
	ActivitySoundSort     = "soundSections"
)

var validActivities = map[string]bool{
	ActivityTrace:         true,
	ActivityBreatheCircle: true,
	ActivityPointRead:     true,
	ActivityIconBoxes:     true,
	ActivityMatchPairs:    true,
	ActivitySoundSort:     true,
}

// moodConstraints 情绪状态 → 约束表行，固定不变。
// overwhelmed 的词汇覆盖是硬规则，在 selectMoodWords 里单独处理。
var moodConstraints = map[model.Mood]model.WorksheetConstraints{
	model.MoodOverwhelmed: {
		MaxItems:           3,
		Font:               model.FontXLarge,
		BreathingGuide:     true,
		MovementBreak:      false,
		AllowNoWriting:     true,
		CompletionTemplate: "Just %d words. You did it. Breathe and smile.",
	},
	model.MoodHighEnergy: {
		MaxItems:           6,
		Font:               model.FontLarge,
		BreathingGuide:     false,
		MovementBreak:      true,
		AllowNoWriting:     false,
		CompletionTemplate: "Wow! All %d words conquered. Shake it out!",
	},
	model.MoodLowEnergy: {
		MaxItems:           4,
		Font:               model.FontLarge,
		BreathingGuide:     true,
		MovementBreak:      false,
		AllowNoWriting:     true,
		CompletionTemplate: "Gentle work. %d words, nice and slow.",
	},
}

// MoodConstraints 渲染端也需要读同一张表
func MoodConstraints(mood model.Mood) (model.WorksheetConstraints, bool) {
	c, ok := moodConstraints[mood]
	return c, ok
}

// UsageGate 生成前必须询问的配额闸口。检查先于记录发生，
// 记录失败不得放行生成（见 UsageService）。
type UsageGate interface {
	CheckAndRecord(userID uint, tier model.SubscriptionTier) (*model.QuotaStatus, bool, error)
}

// WorksheetService 工作表组装器：选词、造干扰项、按活动组织结构化内容。
// 每次请求产出全新的 WorksheetData，交给渲染端后不再修改。
type WorksheetService struct {
	Bank     *WordBankService
	Template *TemplateService
	Filler   *FillerService
	Gate     UsageGate
}

func NewWorksheetService(bank *WordBankService, tmpl *TemplateService, filler *FillerService, gate UsageGate) *WorksheetService {
	return &WorksheetService{Bank: bank, Template: tmpl, Filler: filler, Gate: gate}
}

// GuardedCompose 先过配额闸口再生成。额度耗尽返回 (nil, status, nil)：
// 这是正常决策结果，不是错误。
func (s *WorksheetService) GuardedCompose(userID uint, tier model.SubscriptionTier, compose func() (*model.WorksheetData, error)) (*model.WorksheetData, *model.QuotaStatus, error) {
	status, allowed, err := s.Gate.CheckAndRecord(userID, tier)
	if err != nil {
		return nil, nil, err
	}
	if !allowed {
		return nil, status, nil
	}
	data, err := compose()
	return data, status, err
}

// ComposeMoodWorksheet 情绪状态驱动的工作表
func (s *WorksheetService) ComposeMoodWorksheet(mood model.Mood, activityID string) (*model.WorksheetData, error) {
	constraints, ok := moodConstraints[mood]
	if !ok {
		return nil, util.ErrUnknownMood
	}
	if !validActivities[activityID] {
		return nil, util.ErrUnknownActivity
	}

	items, err := s.selectMoodWords(mood, constraints.MaxItems)
	if err != nil {
		return nil, err
	}

	data := &model.WorksheetData{
		Mood:        mood,
		ActivityID:  activityID,
		Constraints: constraints,
		Items:       items,
	}

	s.buildActivityContent(data)
	return data, nil
}

// ComposePatternWorksheet 按拼读规则组卷（无情绪上下文时用中性约束）
func (s *WorksheetService) ComposePatternWorksheet(pattern model.PhonicsPattern, tier model.Tier, activityID string) (*model.WorksheetData, error) {
	if !validActivities[activityID] {
		return nil, util.ErrUnknownActivity
	}
	constraints := model.WorksheetConstraints{
		MaxItems:           6,
		Font:               model.FontLarge,
		CompletionTemplate: "All %d words done. Great focus!",
	}

	words, err := s.Bank.WordsForPattern(pattern, tier)
	if err != nil {
		return nil, err
	}

	data := &model.WorksheetData{
		Pattern:     pattern,
		ActivityID:  activityID,
		Constraints: constraints,
		Items:       toItems(words, constraints.MaxItems, s.Bank),
	}

	s.buildActivityContent(data)
	return data, nil
}

// selectMoodWords overwhelmed 是硬覆盖：无视其他参数，
// 只从固定的最简词汇子集里取
func (s *WorksheetService) selectMoodWords(mood model.Mood, maxItems int) ([]model.WorksheetItem, error) {
	if mood == model.MoodOverwhelmed {
		calm := make([]model.WordEntry, 0, len(CalmWords))
		for _, w := range CalmWords {
			if entry, ok := s.Bank.Lookup(w); ok {
				calm = append(calm, *entry)
			} else {
				calm = append(calm, model.WordEntry{Word: w, Tier: model.TierEasy})
			}
		}
		s.Bank.shuffle(calm)
		return toItems(calm, maxItems, s.Bank), nil
	}

	tier := model.TierRegular
	if mood == model.MoodLowEnergy {
		tier = model.TierEasy
	}

	words, err := s.Bank.WordsForTheme(model.ThemeAny, tier)
	if err != nil {
		return nil, err
	}
	return toItems(words, maxItems, s.Bank), nil
}

func toItems(words []model.WordEntry, maxItems int, bank *WordBankService) []model.WorksheetItem {
	if len(words) > maxItems {
		words = words[:maxItems]
	}
	items := make([]model.WorksheetItem, len(words))
	for i, w := range words {
		items[i] = model.WorksheetItem{
			Word:   w.Word,
			Icon:   w.Icon,
			Chunks: bank.ChunksFor(w.Word),
		}
	}
	return items
}

// buildActivityContent 按活动种类填充 tagged variant，并按需生成干扰项
func (s *WorksheetService) buildActivityContent(data *model.WorksheetData) {
	switch data.ActivityID {
	case ActivityBreatheCircle:
		rows := make([]model.LetterRow, 0, len(data.Items))
		for _, it := range data.Items {
			rows = append(rows, s.buildLetterRow(it.Word))
		}
		data.Content = model.ActivityContent{Kind: model.ContentLetterGrid, Rows: rows}

	case ActivityMatchPairs:
		data.Distractors = s.buildDistractors(data.PrimaryWords())
		rights := data.PrimaryWords()
		s.shuffleStrings(rights)
		pairs := make([]model.WordPair, len(data.Items))
		for i, it := range data.Items {
			pairs[i] = model.WordPair{Left: it.Word, Right: rights[i]}
		}
		data.Content = model.ActivityContent{Kind: model.ContentWordPairs, Pairs: pairs}

	case ActivitySoundSort:
		data.Distractors = s.buildDistractors(data.PrimaryWords())
		data.Content = model.ActivityContent{Kind: model.ContentSoundSections, Sections: groupByInitial(data.Items)}

	case ActivityPointRead, ActivityIconBoxes, ActivityTrace:
		if data.ActivityID == ActivityPointRead {
			data.Distractors = s.buildDistractors(data.PrimaryWords())
		}
		data.Content = model.ActivityContent{Kind: model.ContentPlainWords, Words: data.Items}

	default:
		data.Content = model.ActivityContent{Kind: model.ContentPlainWords, Words: data.Items}
	}
}

// buildLetterRow 目标字母出现 2~3 次，掺入 4~5 个互不相同的干扰辅音，
// 总长固定 7，打乱后仍保留目标字母信息（首元素）。
func (s *WorksheetService) buildLetterRow(word string) model.LetterRow {
	target := strings.ToUpper(word[:1])

	targetCount := 2 + s.Bank.Intn(2) // 2 或 3
	distractorCount := 7 - targetCount

	pool := make([]string, 0, len(ConsonantPool))
	for _, c := range ConsonantPool {
		if c != target {
			pool = append(pool, c)
		}
	}
	s.shuffleStrings(pool)

	cells := make([]string, 0, 7)
	for i := 0; i < targetCount; i++ {
		cells = append(cells, target)
	}
	cells = append(cells, pool[:distractorCount]...)
	s.shuffleStrings(cells)

	return model.LetterRow{Target: target, Cells: cells}
}

// buildDistractors 干扰词池 = 全部词汇 − 主条目，最多取主条目数的两倍
func (s *WorksheetService) buildDistractors(primaries []string) []string {
	primary := make(map[string]bool, len(primaries))
	for _, p := range primaries {
		primary[strings.ToLower(p)] = true
	}

	var pool []string
	for _, w := range s.Bank.AllWords() {
		if !primary[strings.ToLower(w.Word)] {
			pool = append(pool, w.Word)
		}
	}
	s.shuffleStrings(pool)

	limit := 2 * len(primaries)
	if len(pool) > limit {
		pool = pool[:limit]
	}
	return pool
}

func (s *WorksheetService) shuffleStrings(ss []string) {
	s.Bank.rngMu.Lock()
	defer s.Bank.rngMu.Unlock()
	s.Bank.rng.Shuffle(len(ss), func(i, j int) {
		ss[i], ss[j] = ss[j], ss[i]
	})
}

func groupByInitial(items []model.WorksheetItem) []model.SoundSection {
	index := make(map[string]int)
	var sections []model.SoundSection
	for _, it := range items {
		initial := strings.ToUpper(it.Word[:1])
		heading := fmt.Sprintf("Words that start with %s", initial)
		pos, ok := index[initial]
		if !ok {
			pos = len(sections)
			index[initial] = pos
			sections = append(sections, model.SoundSection{Heading: heading})
		}
		sections[pos].Items = append(sections[pos].Items, it)
	}
	return sections
}

// ComposeStoryWorksheet 三个复杂度版本讲同一个故事：
// 实体锁定只计算一次，三个版本全部复用；级别差异只体现在句式与重点词上。
func (s *WorksheetService) ComposeStoryWorksheet(interests []model.Theme, brainState model.Mood) (*model.MultiVersionStory, error) {
	interest := model.DefaultTheme
	if len(interests) > 0 {
		interest = interests[0]
	}

	tmpl, ok := s.Template.ForInterest(interest)
	if !ok {
		tmpl, ok = s.Template.Fallback()
	}
	if !ok {
		// 连兜底模板都没有：按固定骨架现造，请求不失败
		tmpl = s.Template.Synthesize(interest)
	}

	locks := s.Filler.ComputeLocks(tmpl)

	story := &model.MultiVersionStory{
		TemplateID:    tmpl.ID,
		Title:         tmpl.Title,
		Interest:      interest,
		BrainState:    brainState,
		LockedChoices: locks,
		Versions:      make(map[model.Complexity]model.FilledDocument, len(model.Complexities)),
	}

	for _, level := range model.Complexities {
		doc, err := s.Filler.Resolve(tmpl, level, locks)
		if err != nil {
			return nil, err
		}
		story.Versions[level] = *doc
	}
	return story, nil
}
