package service

import (
	"fmt"
	"math/rand"
	"sensory_sheets_backend/internal/model"
	"sensory_sheets_backend/internal/util"
	"sort"
	"strings"
	"sync"
	"time"
)

// FillerService 把模板槽位解析成具体用词。
// 关键实体槽（角色、同伴、动物/生物、地点、物品）在整份文档的
// 所有分节、所有复杂度级别中锁定同一个词；局部描述槽每次出现独立选词。
type FillerService struct {
	Bank *WordBankService

	rng   *rand.Rand
	rngMu sync.Mutex
}

func NewFillerService(bank *WordBankService, rng *rand.Rand) *FillerService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &FillerService{Bank: bank, rng: rng}
}

// criticalNamePatterns 关键槽名的启发式匹配集。
// 模板可以用显式 scope 声明覆盖这套启发式（schema 层面的改进）。
var criticalNamePatterns = []string{"CHARACTER", "COMPANION", "ANIMAL", "CREATURE", "LOCATION", "OBJECT"}

// IsCriticalSlot 显式声明优先；未声明时按槽名子串判断
func IsCriticalSlot(slot *model.WordSlot) bool {
	switch slot.Scope {
	case model.ScopeDocument:
		return true
	case model.ScopeSection:
		return false
	}
	if slot.AllowRepeat {
		return false
	}
	for _, p := range criticalNamePatterns {
		if strings.Contains(slot.Name, p) {
			return true
		}
	}
	return false
}

func (f *FillerService) pick(candidates []string) string {
	f.rngMu.Lock()
	defer f.rngMu.Unlock()
	return candidates[f.rng.Intn(len(candidates))]
}

// ComputeLocks 为模板的所有关键槽名各锁定一个词。
// 先跨级别、跨分节收集每个槽名的候选并集，再依次挑选；
// 候选全部被其他槽占用时回退到该槽自己的完整候选表，
// 最后的消歧环节保证两个不同实体不会落到同一个词上。
func (f *FillerService) ComputeLocks(t *model.StoryTemplate) map[string]string {
	hintUnion := make(map[string][]string)
	var order []string

	for _, level := range model.Complexities {
		for _, sec := range t.Levels[level] {
			for i := range sec.Slots {
				slot := &sec.Slots[i]
				if !IsCriticalSlot(slot) {
					continue
				}
				if _, seen := hintUnion[slot.Name]; !seen {
					order = append(order, slot.Name)
				}
				hintUnion[slot.Name] = appendUnique(hintUnion[slot.Name], slot.Hints...)
			}
		}
	}

	locks := make(map[string]string, len(order))
	claimed := make(map[string]bool, len(order))

	for _, name := range order {
		hints := hintUnion[name]
		if len(hints) == 0 {
			continue
		}
		free := unclaimed(hints, claimed)
		if len(free) == 0 {
			// 候选耗尽：回退到完整候选表而不是让生成失败
			free = hints
		}
		word := f.pick(free)
		locks[name] = word
		claimed[word] = true
	}

	f.disambiguate(locks, hintUnion, order)
	return locks
}

// disambiguate 两个不同的关键槽名撞到同一个词时重选其中一个，
// 优先改动剩余候选更多的那个。
func (f *FillerService) disambiguate(locks map[string]string, hintUnion map[string][]string, order []string) {
	for {
		a, b, ok := findCollision(locks, order)
		if !ok {
			return
		}

		claimed := make(map[string]bool, len(locks))
		for _, w := range locks {
			claimed[w] = true
		}

		// 候选多的那个让步
		repick := a
		if remaining(hintUnion[b], claimed) > remaining(hintUnion[a], claimed) {
			repick = b
		}

		free := unclaimed(hintUnion[repick], claimed)
		if len(free) == 0 {
			// 双方候选完全重合且只有一个词：无法消歧，保持现状
			return
		}
		locks[repick] = f.pick(free)
	}
}

func findCollision(locks map[string]string, order []string) (string, string, bool) {
	for i := 0; i < len(order); i++ {
		for j := i + 1; j < len(order); j++ {
			wa, oka := locks[order[i]]
			wb, okb := locks[order[j]]
			if oka && okb && wa == wb {
				return order[i], order[j], true
			}
		}
	}
	return "", "", false
}

func remaining(hints []string, claimed map[string]bool) int {
	return len(unclaimed(hints, claimed))
}

func unclaimed(hints []string, claimed map[string]bool) []string {
	var free []string
	for _, h := range hints {
		if !claimed[h] {
			free = append(free, h)
		}
	}
	return free
}

func appendUnique(dst []string, items ...string) []string {
	for _, it := range items {
		dup := false
		for _, d := range dst {
			if d == it {
				dup = true
				break
			}
		}
		if !dup {
			dst = append(dst, it)
		}
	}
	return dst
}

// Resolve 按文档顺序填充指定复杂度级别的全部分节。
// locks 必须来自同一模板的 ComputeLocks，三个级别复用同一份。
func (f *FillerService) Resolve(t *model.StoryTemplate, level model.Complexity, locks map[string]string) (*model.FilledDocument, error) {
	sections, ok := t.Levels[level]
	if !ok {
		return nil, fmt.Errorf("template %s: %w at level %s", t.ID, util.ErrTemplateNotFound, level)
	}

	doc := &model.FilledDocument{
		TemplateID: t.ID,
		Title:      t.Title,
		Level:      level,
		Sections:   make([]model.FilledSection, 0, len(sections)),
	}

	for si := range sections {
		filled, err := f.fillSection(&sections[si], locks)
		if err != nil {
			return nil, fmt.Errorf("template %s %s section %d: %w", t.ID, level, si, err)
		}
		doc.Sections = append(doc.Sections, *filled)
	}
	return doc, nil
}

// fillSection 逐个占位符替换；同名非关键槽的多次出现各自独立选词
func (f *FillerService) fillSection(sec *model.Section, locks map[string]string) (*model.FilledSection, error) {
	slotByName := make(map[string]*model.WordSlot, len(sec.Slots))
	for i := range sec.Slots {
		slotByName[sec.Slots[i].Name] = &sec.Slots[i]
	}

	var sb strings.Builder
	var chosen []string
	text := sec.Text

	for i := 0; i < len(text); {
		start := strings.IndexByte(text[i:], '[')
		if start < 0 {
			sb.WriteString(text[i:])
			break
		}
		start += i
		end := strings.IndexByte(text[start:], ']')
		if end < 0 {
			sb.WriteString(text[i:])
			break
		}
		end += start

		name := text[start+1 : end]
		if !isSlotName(name) {
			sb.WriteString(text[i : end+1])
			i = end + 1
			continue
		}

		slot, ok := slotByName[name]
		if !ok {
			// 占位符没有对应槽定义：模板制作错误，不能静默跳过
			return nil, fmt.Errorf("%w: [%s]", util.ErrUnresolvedSlot, name)
		}

		word := f.resolveSlot(slot, locks)
		sb.WriteString(text[i:start])
		sb.WriteString(word)
		chosen = append(chosen, word)
		i = end + 1
	}

	return &model.FilledSection{
		Type:       sec.Type,
		Text:       sb.String(),
		FocalWords: f.focalWords(sec, chosen),
	}, nil
}

func (f *FillerService) resolveSlot(slot *model.WordSlot, locks map[string]string) string {
	// AllowRepeat 槽完全绕开整篇一词的规则
	if !slot.AllowRepeat && IsCriticalSlot(slot) {
		if word, ok := locks[slot.Name]; ok {
			return word
		}
	}
	if len(slot.Hints) == 0 {
		return slot.Name
	}
	return f.pick(slot.Hints)
}

// focalWords 实际选中的词里，词库条目带有本分节强调拼读规则的那些
func (f *FillerService) focalWords(sec *model.Section, chosen []string) []string {
	if len(sec.Emphasis) == 0 || len(chosen) == 0 {
		return nil
	}

	seen := make(map[string]bool)
	var focal []string
	for _, w := range chosen {
		lw := strings.ToLower(w)
		if seen[lw] {
			continue
		}
		entry, ok := f.Bank.Lookup(w)
		if !ok {
			continue
		}
		for _, p := range sec.Emphasis {
			if entry.HasPattern(p) {
				focal = append(focal, entry.Word)
				seen[lw] = true
				break
			}
		}
	}
	sort.Strings(focal)
	return focal
}
