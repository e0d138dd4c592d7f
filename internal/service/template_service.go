package service

import (
	"encoding/json"
	"fmt"
	"os"
	"sensory_sheets_backend/internal/config"
	"sensory_sheets_backend/internal/model"
	"sensory_sheets_backend/pkg/logger"
	"strings"

	"go.uber.org/zap"
)

// TemplateService 故事/工作表模板仓库。模板数据与词库一样：
// 启动装载一次，之后只读。
type TemplateService struct {
	Cfg       *config.Config
	templates []model.StoryTemplate
	byID      map[string]*model.StoryTemplate
}

func NewTemplateService(cfg *config.Config) *TemplateService {
	s := &TemplateService{Cfg: cfg}
	s.loadDataset()
	return s
}

func (s *TemplateService) loadDataset() {
	templates := builtinTemplates

	if s.Cfg != nil && s.Cfg.Content.TemplateDatasetPath != "" {
		loaded, err := loadTemplateFile(s.Cfg.Content.TemplateDatasetPath)
		if err != nil {
			// 数据集缺失是正常情况，不向调用方抛错
			logger.Log.Info("template dataset unavailable, using builtin templates",
				zap.String("path", s.Cfg.Content.TemplateDatasetPath), zap.Error(err))
		} else if len(loaded) > 0 {
			templates = loaded
			logger.Log.Info("template dataset loaded", zap.Int("templates", len(loaded)))
		}
	}

	valid := make([]model.StoryTemplate, 0, len(templates))
	for _, t := range templates {
		if err := ValidateTemplate(&t); err != nil {
			logger.Log.Warn("template dropped", zap.String("id", t.ID), zap.Error(err))
			continue
		}
		valid = append(valid, t)
	}

	s.templates = valid
	s.byID = make(map[string]*model.StoryTemplate, len(valid))
	for i := range s.templates {
		s.byID[s.templates[i].ID] = &s.templates[i]
	}
}

func loadTemplateFile(path string) ([]model.StoryTemplate, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var ds model.TemplateDataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("parse template dataset: %w", err)
	}
	return ds.Templates, nil
}

// ValidateTemplate 每个复杂度级别必须齐全，且文本引用的槽名必须有定义。
// 槽定义缺失属于模板制作错误，不能静默放过。
func ValidateTemplate(t *model.StoryTemplate) error {
	if t.ID == "" {
		return fmt.Errorf("template has no id")
	}
	for _, level := range model.Complexities {
		sections, ok := t.Levels[level]
		if !ok || len(sections) == 0 {
			return fmt.Errorf("template %s: missing %s level", t.ID, level)
		}
		for si, sec := range sections {
			defined := make(map[string]bool, len(sec.Slots))
			for _, slot := range sec.Slots {
				defined[slot.Name] = true
			}
			for _, name := range SlotTokens(sec.Text) {
				if !defined[name] {
					return fmt.Errorf("template %s %s section %d: text references undefined slot %s", t.ID, level, si, name)
				}
			}
		}
	}
	return nil
}

// SlotTokens 提取文本中的 [SLOT_NAME] 占位符名
func SlotTokens(text string) []string {
	var names []string
	for i := 0; i < len(text); i++ {
		if text[i] != '[' {
			continue
		}
		end := strings.IndexByte(text[i:], ']')
		if end < 0 {
			break
		}
		name := text[i+1 : i+end]
		if name != "" && isSlotName(name) {
			names = append(names, name)
		}
		i += end
	}
	return names
}

// isSlotName 槽名只含大写字母、数字和下划线
func isSlotName(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') && c != '_' {
			return false
		}
	}
	return true
}

// ByID 按标识查模板
func (s *TemplateService) ByID(id string) (*model.StoryTemplate, bool) {
	t, ok := s.byID[id]
	return t, ok
}

// ForInterest 返回覆盖兴趣主题的模板；没有匹配也没有注册回退时，
// 由调用方走 Synthesize 而不是失败。
func (s *TemplateService) ForInterest(interest model.Theme) (*model.StoryTemplate, bool) {
	for i := range s.templates {
		if s.templates[i].HasTheme(interest) {
			return &s.templates[i], true
		}
	}
	return nil, false
}

// Fallback 注册的兜底模板（取第一个内置模板）
func (s *TemplateService) Fallback() (*model.StoryTemplate, bool) {
	if len(s.templates) == 0 {
		return nil, false
	}
	return &s.templates[0], true
}

// Synthesize 没有任何可用模板时按固定骨架现造一个三级模板，
// 只用兴趣名参数化，保证请求不失败。
func (s *TemplateService) Synthesize(interest model.Theme) *model.StoryTemplate {
	name := strings.Title(string(interest))
	charSlot := model.WordSlot{Name: "CHARACTER", Hints: []string{"Alex", "Sam", "Riley"}}

	section := func(st model.SectionType, text string, count int) model.Section {
		return model.Section{
			Type:            st,
			Text:            text,
			Slots:           []model.WordSlot{charSlot},
			TargetWordCount: count,
		}
	}

	return &model.StoryTemplate{
		ID:      "synthetic_" + string(interest),
		Title:   "A " + name + " Story",
		Version: 1,
		Themes:  []model.Theme{interest},
		Levels: map[model.Complexity][]model.Section{
			model.ComplexitySimple: {
				section(model.SectionIntro, "[CHARACTER] loves "+string(interest)+".", 6),
				section(model.SectionProblem, "One day something about "+string(interest)+" surprises [CHARACTER].", 10),
				section(model.SectionSolution, "[CHARACTER] looks closely. Now it makes sense. What a day!", 12),
			},
			model.ComplexityFull: {
				section(model.SectionIntro, "[CHARACTER] thinks about "+string(interest)+" every single day.", 10),
				section(model.SectionProblem, "Today something about "+string(interest)+" does not go the way [CHARACTER] expected.", 14),
				section(model.SectionSolution, "[CHARACTER] slows down, tries again, and figures it out step by step.", 14),
				section(model.SectionReflection, "[CHARACTER] smiles. Tomorrow there will be more to discover.", 10),
			},
			model.ComplexityChallenge: {
				section(model.SectionIntro, "Of all the things in the world, [CHARACTER] finds "+string(interest)+" the most fascinating.", 16),
				section(model.SectionProblem, "But fascination brings puzzles, and today "+string(interest)+" hands [CHARACTER] a tricky one.", 16),
				section(model.SectionSolution, "Careful observation, a little patience, and one bold guess finally unlock the answer for [CHARACTER].", 18),
				section(model.SectionReflection, "[CHARACTER] writes the discovery down, so tomorrow can begin where today ended.", 14),
			},
		},
	}
}
