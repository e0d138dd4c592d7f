package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"sensory_sheets_backend/internal/config"
	"sensory_sheets_backend/internal/model"
	"sensory_sheets_backend/internal/util"
	"sensory_sheets_backend/pkg/logger"
	"strings"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	wordDatasetCacheKey = "sensory:dataset:words:v1"

	// 挣扎判定阈值：超时 / 提示次数 / 重置次数，三者任一命中即算挣扎
	struggleTimeThreshold = 30 * time.Second
	struggleHintThreshold = 2

	// 连续 2 次挣扎降一级，连续 3 次成功升一级
	struggleDownCount = 2
	successUpCount    = 3

	maxFallbackChunks = 4
)

// WordBankService 词库与自适应难度。词表启动后只读，可安全共享；
// 会话状态保存在内存里，进程重启即失效。
type WordBankService struct {
	Cfg *config.Config
	Rdb *redis.Client

	rng   *rand.Rand
	rngMu sync.Mutex

	words  []model.WordEntry
	byWord map[string]*model.WordEntry

	sessions map[string]*model.AdaptiveSession
	sessMu   sync.RWMutex
}

// NewWordBankService rng 传 nil 时使用新鲜熵源；测试注入固定种子保证可复现。
func NewWordBankService(cfg *config.Config, rdb *redis.Client, rng *rand.Rand) *WordBankService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	s := &WordBankService{
		Cfg:      cfg,
		Rdb:      rdb,
		rng:      rng,
		sessions: make(map[string]*model.AdaptiveSession),
	}
	s.loadDataset()
	return s
}

// loadDataset 增强数据集缺失是正常情况，静默回退到内置词库
func (s *WordBankService) loadDataset() {
	words := builtinWords

	if s.Cfg != nil && s.Cfg.Content.WordDatasetPath != "" {
		if ds, err := s.fetchDataset(s.Cfg.Content.WordDatasetPath); err != nil {
			logger.Log.Info("enhanced word dataset unavailable, using builtin vocabulary",
				zap.String("path", s.Cfg.Content.WordDatasetPath), zap.Error(err))
		} else {
			valid := ds.Words[:0]
			for _, w := range ds.Words {
				// 主拆块和备选拆块都必须拼回原词
				if strings.Join(w.Chunks, "") != w.Word ||
					(len(w.AltChunks) > 0 && strings.Join(w.AltChunks, "") != w.Word) {
					logger.Log.Warn("word entry dropped: chunks do not reproduce surface form", zap.String("word", w.Word))
					continue
				}
				valid = append(valid, w)
			}
			if len(valid) > 0 {
				words = valid
				logger.Log.Info("enhanced word dataset loaded",
					zap.Int("words", len(valid)), zap.String("version", ds.Metadata.Version))
			}
		}
	}

	s.words = words
	s.byWord = make(map[string]*model.WordEntry, len(words))
	for i := range s.words {
		s.byWord[strings.ToLower(s.words[i].Word)] = &s.words[i]
	}
}

// fetchDataset 支持本地路径与 URL；URL 结果经 Redis 缓存
func (s *WordBankService) fetchDataset(path string) (*model.WordDataset, error) {
	var raw []byte
	var err error

	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		raw, err = s.fetchURL(path)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	var ds model.WordDataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("parse word dataset: %w", err)
	}
	if len(ds.Words) == 0 {
		return nil, fmt.Errorf("word dataset is empty")
	}
	return &ds, nil
}

func (s *WordBankService) fetchURL(url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Redis 不可用时直接穿透到源
	if s.Rdb != nil {
		if cached, err := s.Rdb.Get(ctx, wordDatasetCacheKey).Bytes(); err == nil {
			return cached, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dataset fetch returned %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if s.Rdb != nil {
		ttl := time.Duration(s.Cfg.Content.CacheTTLMinutes) * time.Minute
		if ttl <= 0 {
			ttl = time.Hour
		}
		if err := s.Rdb.Set(ctx, wordDatasetCacheKey, raw, ttl).Err(); err != nil {
			logger.Log.Warn("failed to cache word dataset", zap.Error(err))
		}
	}
	return raw, nil
}

// AllWords 全量词表（只读切片，调用方不得修改）
func (s *WordBankService) AllWords() []model.WordEntry {
	return s.words
}

// Lookup 按词面查词条
func (s *WordBankService) Lookup(word string) (*model.WordEntry, bool) {
	e, ok := s.byWord[strings.ToLower(word)]
	return e, ok
}

// WordsForTheme 返回主题+难度匹配的词条，顺序随机。
// 查询 ThemeAny 表示不限主题；未知主题回退到默认主题；
// 过滤后为空返回 ErrNoMatchingWords，由调用方决定是否继续降级。
func (s *WordBankService) WordsForTheme(theme model.Theme, tier model.Tier) ([]model.WordEntry, error) {
	matched := s.filter(func(w *model.WordEntry) bool {
		return w.Tier == tier && (theme == model.ThemeAny || w.HasTheme(theme))
	})

	if len(matched) == 0 && theme != model.DefaultTheme {
		matched = s.filter(func(w *model.WordEntry) bool {
			return w.Tier == tier && w.HasTheme(model.DefaultTheme)
		})
	}

	if len(matched) == 0 {
		return nil, util.ErrNoMatchingWords
	}

	s.shuffle(matched)
	return matched, nil
}

// WordsForPattern 按拼读规则过滤，语义同 WordsForTheme
func (s *WordBankService) WordsForPattern(pattern model.PhonicsPattern, tier model.Tier) ([]model.WordEntry, error) {
	matched := s.filter(func(w *model.WordEntry) bool {
		return w.Tier == tier && w.HasPattern(pattern)
	})

	if len(matched) == 0 {
		return nil, util.ErrNoMatchingWords
	}

	s.shuffle(matched)
	return matched, nil
}

func (s *WordBankService) filter(keep func(*model.WordEntry) bool) []model.WordEntry {
	var out []model.WordEntry
	for i := range s.words {
		if keep(&s.words[i]) {
			out = append(out, s.words[i])
		}
	}
	return out
}

func (s *WordBankService) shuffle(words []model.WordEntry) {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	s.rng.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})
}

// Intn 暴露给组装器使用同一个随机源
func (s *WordBankService) Intn(n int) int {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.rng.Intn(n)
}

// ChunksFor 返回存储的视觉分块；词库外的词走启发式回退分块。
func (s *WordBankService) ChunksFor(word string) []string {
	if e, ok := s.Lookup(word); ok && len(e.Chunks) > 0 {
		return e.Chunks
	}
	return FallbackChunks(word)
}

// ---- 回退分块器 ----
//
// 按优先级贪心匹配：三字母组合 → 词缀整体 → 元音组合 → r 控制元音 →
// 辅音连缀 → 二合字母；未命中的连续段在双辅音或 CV|CV 边界切分。
// 这是一个视觉启发式，不是语音学意义上的真值。

var chunkPatternClasses = [][]string{
	// trigraphs
	{"tch", "dge", "igh"},
	// 前后缀整体
	{"tion", "ing", "est", "ful", "pre", "un", "re", "ed", "er", "ly"},
	// vowel teams
	{"ai", "ay", "ea", "ee", "oa", "oo", "ow", "ou", "oi", "oy", "au", "aw", "ue", "ew", "ie"},
	// r-controlled
	{"ar", "er", "ir", "or", "ur"},
	// consonant blends
	{"str", "spr", "scr", "spl", "squ", "thr", "bl", "cl", "fl", "gl", "pl", "sl", "br", "cr", "dr", "fr", "gr", "pr", "tr", "sc", "sk", "sm", "sn", "sp", "st", "sw", "tw"},
	// digraphs
	{"ch", "sh", "th", "wh", "ph", "ck", "ng", "qu"},
}

func isVowel(b byte) bool {
	switch b {
	case 'a', 'e', 'i', 'o', 'u', 'A', 'E', 'I', 'O', 'U':
		return true
	}
	return false
}

// FallbackChunks 对词库外的词做确定性分块，输出不超过 4 块，
// 拼接始终还原输入（大小写保持原样）。
func FallbackChunks(word string) []string {
	if word == "" {
		return nil
	}
	lower := strings.ToLower(word)

	var chunks []string
	var run []byte // 当前未匹配段
	i := 0

	flushRun := func() {
		if len(run) == 0 {
			return
		}
		chunks = append(chunks, splitUnmatchedRun(string(run))...)
		run = nil
	}

	for i < len(word) {
		matched := ""
		// 某些大小写折叠会改变字节长度（如 U+212A → "k"），
		// lower 与 word 可能不等长，越界的下标直接视为未命中。
		for _, class := range chunkPatternClasses {
			if i >= len(lower) {
				break
			}
			for _, p := range class {
				if i+len(p) <= len(word) && strings.HasPrefix(lower[i:], p) && len(p) > len(matched) {
					matched = p
				}
			}
			if matched != "" {
				break
			}
		}

		if matched != "" {
			flushRun()
			chunks = append(chunks, word[i:i+len(matched)])
			i += len(matched)
			continue
		}

		run = append(run, word[i])
		i++
	}
	flushRun()

	return mergeChunks(chunks)
}

// splitUnmatchedRun 在双辅音之间或 CV|CV 边界切开未匹配段
func splitUnmatchedRun(run string) []string {
	if len(run) <= 2 {
		return []string{run}
	}

	for i := 1; i < len(run); i++ {
		if run[i] == run[i-1] && !isVowel(run[i]) {
			return append([]string{run[:i]}, splitUnmatchedRun(run[i:])...)
		}
	}

	// CV|CV：在元音后、且后面还有元音的位置切
	for i := 1; i < len(run)-1; i++ {
		if isVowel(run[i-1]) && !isVowel(run[i]) {
			rest := run[i:]
			if strings.IndexFunc(rest, func(r rune) bool { return isVowel(byte(r)) }) >= 0 {
				return append([]string{run[:i]}, splitUnmatchedRun(rest)...)
			}
		}
	}

	return []string{run}
}

// mergeChunks 先合并相邻的单字符块，仍超过 4 块时把多余尾块并入最后一块
func mergeChunks(chunks []string) []string {
	if len(chunks) <= maxFallbackChunks {
		return chunks
	}

	merged := make([]string, 0, len(chunks))
	for _, c := range chunks {
		if len(merged) > 0 && len(c) == 1 && len(merged[len(merged)-1]) == 1 {
			merged[len(merged)-1] += c
			continue
		}
		merged = append(merged, c)
	}

	if len(merged) > maxFallbackChunks {
		tail := strings.Join(merged[maxFallbackChunks-1:], "")
		merged = append(merged[:maxFallbackChunks-1], tail)
	}
	return merged
}

// ---- 自适应会话 ----

// StartSession 新建一次练习会话，年龄只决定起始层级
func (s *WordBankService) StartSession(age int) *model.AdaptiveSession {
	sess := &model.AdaptiveSession{
		ID:        uuid.New().String(),
		Age:       age,
		Tier:      model.StartingTierForAge(age),
		CreatedAt: time.Now(),
	}

	s.sessMu.Lock()
	s.sessions[sess.ID] = sess
	s.sessMu.Unlock()
	return sess
}

// Session 查询会话
func (s *WordBankService) Session(id string) (*model.AdaptiveSession, error) {
	s.sessMu.RLock()
	defer s.sessMu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, util.ErrSessionNotFound
	}
	return sess, nil
}

// EndSession 会话结束即丢弃，核心不做持久化
func (s *WordBankService) EndSession(id string) {
	s.sessMu.Lock()
	delete(s.sessions, id)
	s.sessMu.Unlock()
}

// IsStruggle 挣扎判定是精确的布尔组合，不是加权评分
func IsStruggle(obs model.PerformanceObservation) bool {
	return obs.TimeTaken > struggleTimeThreshold ||
		obs.HintsUsed >= struggleHintThreshold ||
		obs.Resets > 0
}

// RecordPerformance 记录一次观测并按状态机调整层级。
// 两个计数器互斥；任何一次调整都会将二者清零；层级只会单步移动。
func (s *WordBankService) RecordPerformance(sessionID string, obs model.PerformanceObservation) (*model.AdaptiveSession, error) {
	s.sessMu.Lock()
	defer s.sessMu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, util.ErrSessionNotFound
	}

	sess.Observations = append(sess.Observations, obs)

	if IsStruggle(obs) {
		sess.ConsecutiveStruggle++
		sess.ConsecutiveSuccess = 0
	} else {
		sess.ConsecutiveSuccess++
		sess.ConsecutiveStruggle = 0
	}

	switch {
	case sess.ConsecutiveStruggle >= struggleDownCount:
		sess.Tier = tierDown(sess.Tier)
		sess.ConsecutiveStruggle = 0
		sess.ConsecutiveSuccess = 0
		sess.LastAdaptedAt = time.Now()
	case sess.ConsecutiveSuccess >= successUpCount:
		sess.Tier = tierUp(sess.Tier)
		sess.ConsecutiveStruggle = 0
		sess.ConsecutiveSuccess = 0
		sess.LastAdaptedAt = time.Now()
	}

	return sess, nil
}

func tierDown(t model.Tier) model.Tier {
	switch t {
	case model.TierChallenge:
		return model.TierRegular
	case model.TierRegular:
		return model.TierEasy
	default:
		return model.TierEasy
	}
}

func tierUp(t model.Tier) model.Tier {
	switch t {
	case model.TierEasy:
		return model.TierRegular
	case model.TierRegular:
		return model.TierChallenge
	default:
		return model.TierChallenge
	}
}
