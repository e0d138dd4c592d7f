package service

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"sensory_sheets_backend/internal/config"
	"sensory_sheets_backend/internal/model"
	"sensory_sheets_backend/internal/util"
	"sensory_sheets_backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestBank(t *testing.T) *WordBankService {
	t.Helper()
	return NewWordBankService(nil, nil, rand.New(rand.NewSource(1)))
}

// 内置词库的分块必须能还原词面，这是渲染端的前提
func TestBuiltinChunksReproduceWord(t *testing.T) {
	for _, w := range builtinWords {
		assert.Equal(t, w.Word, strings.Join(w.Chunks, ""), "chunks of %q", w.Word)
		if len(w.AltChunks) > 0 {
			assert.Equal(t, w.Word, strings.Join(w.AltChunks, ""), "alt chunks of %q", w.Word)
		}
	}
}

func TestFallbackChunks(t *testing.T) {
	cases := []struct {
		word string
		want []string
	}{
		{"ship", []string{"sh", "ip"}},
		{"catch", []string{"ca", "tch"}},
		{"", nil},
		{"a", []string{"a"}},
	}
	for _, c := range cases {
		got := FallbackChunks(c.word)
		assert.Equal(t, c.want, got, "chunks for %q", c.word)
	}

	// 任意输入都满足：拼接还原、块数不超上限
	for _, word := range []string{"butterfly", "strawberry", "playground", "xylophone", "hippopotamus", "night"} {
		got := FallbackChunks(word)
		require.NotEmpty(t, got)
		assert.Equal(t, word, strings.Join(got, ""), "concat for %q", word)
		assert.LessOrEqual(t, len(got), maxFallbackChunks, "chunk count for %q", word)
	}
}

func TestLoadDatasetDropsEntriesWithBadChunks(t *testing.T) {
	if logger.Log == nil {
		logger.Log = zap.NewNop()
	}

	// 主拆块或备选拆块拼不回原词的词条在装载时整条丢弃
	raw := `{"metadata":{"version":"t1"},"words":[
		{"word":"ship","tier":"easy","themes":["ocean"],"chunks":["sh","ip"],"altChunks":["s","hip"]},
		{"word":"boat","tier":"easy","themes":["ocean"],"chunks":["b","oat"],"altChunks":["bo","ta"]},
		{"word":"wave","tier":"easy","themes":["ocean"],"chunks":["wa","ve"]}]}`
	path := filepath.Join(t.TempDir(), "words.json")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	cfg := &config.Config{}
	cfg.Content.WordDatasetPath = path
	bank := NewWordBankService(cfg, nil, rand.New(rand.NewSource(1)))

	assert.Len(t, bank.words, 2)
	assert.Contains(t, bank.byWord, "ship")
	assert.Contains(t, bank.byWord, "wave")
	assert.NotContains(t, bank.byWord, "boat")
}

func TestFallbackChunksNonASCII(t *testing.T) {
	// 大小写折叠可能改变字节长度（U+212A → "k"，U+0130 → "i̇"），
	// 分块不得越界，拼接仍须还原输入
	for _, word := range []string{"KK", "King", "İp", "naïve", "日本", "crème"} {
		got := FallbackChunks(word)
		require.NotEmpty(t, got, "chunks for %q", word)
		assert.Equal(t, word, strings.Join(got, ""), "concat for %q", word)
		assert.LessOrEqual(t, len(got), maxFallbackChunks, "chunk count for %q", word)
	}
}

func TestChunksForPrefersStoredChunks(t *testing.T) {
	bank := newTestBank(t)

	assert.Equal(t, []string{"c", "at"}, bank.ChunksFor("cat"))
	assert.Equal(t, []string{"c", "at"}, bank.ChunksFor("CAT"))

	// 词库外的词走回退分块
	out := bank.ChunksFor("zebra")
	require.NotEmpty(t, out)
	assert.Equal(t, "zebra", strings.Join(out, ""))
}

func TestIsStruggle(t *testing.T) {
	cases := []struct {
		name string
		obs  model.PerformanceObservation
		want bool
	}{
		{"clean pass", model.PerformanceObservation{TimeTaken: 10 * time.Second, Completed: true}, false},
		{"exactly at time threshold", model.PerformanceObservation{TimeTaken: 30 * time.Second}, false},
		{"over time threshold", model.PerformanceObservation{TimeTaken: 31 * time.Second}, true},
		{"one hint is fine", model.PerformanceObservation{HintsUsed: 1}, false},
		{"two hints", model.PerformanceObservation{HintsUsed: 2}, true},
		{"single reset", model.PerformanceObservation{Resets: 1}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, IsStruggle(c.obs))
		})
	}
}

func TestStartingTierForAge(t *testing.T) {
	assert.Equal(t, model.TierEasy, model.StartingTierForAge(4))
	assert.Equal(t, model.TierEasy, model.StartingTierForAge(5))
	assert.Equal(t, model.TierRegular, model.StartingTierForAge(6))
	assert.Equal(t, model.TierRegular, model.StartingTierForAge(7))
	assert.Equal(t, model.TierChallenge, model.StartingTierForAge(9))
}

func TestRecordPerformanceAdaptsDownAfterTwoStruggles(t *testing.T) {
	bank := newTestBank(t)
	sess := bank.StartSession(7)
	require.Equal(t, model.TierRegular, sess.Tier)

	struggle := model.PerformanceObservation{TimeTaken: 45 * time.Second}

	got, err := bank.RecordPerformance(sess.ID, struggle)
	require.NoError(t, err)
	assert.Equal(t, model.TierRegular, got.Tier)
	assert.Equal(t, 1, got.ConsecutiveStruggle)

	got, err = bank.RecordPerformance(sess.ID, struggle)
	require.NoError(t, err)
	assert.Equal(t, model.TierEasy, got.Tier)
	assert.Zero(t, got.ConsecutiveStruggle)
	assert.Zero(t, got.ConsecutiveSuccess)
	assert.False(t, got.LastAdaptedAt.IsZero())
}

func TestRecordPerformanceAdaptsUpAfterThreeSuccesses(t *testing.T) {
	bank := newTestBank(t)
	sess := bank.StartSession(6)

	success := model.PerformanceObservation{TimeTaken: 8 * time.Second, Completed: true}

	for i := 0; i < 2; i++ {
		got, err := bank.RecordPerformance(sess.ID, success)
		require.NoError(t, err)
		assert.Equal(t, model.TierRegular, got.Tier)
	}

	got, err := bank.RecordPerformance(sess.ID, success)
	require.NoError(t, err)
	assert.Equal(t, model.TierChallenge, got.Tier)
	assert.Zero(t, got.ConsecutiveSuccess)
}

// 计数器互斥：一次成功清零挣扎计数，反之亦然
func TestRecordPerformanceCountersAreMutuallyExclusive(t *testing.T) {
	bank := newTestBank(t)
	sess := bank.StartSession(7)

	struggle := model.PerformanceObservation{Resets: 2}
	success := model.PerformanceObservation{TimeTaken: 5 * time.Second, Completed: true}

	_, err := bank.RecordPerformance(sess.ID, struggle)
	require.NoError(t, err)

	got, err := bank.RecordPerformance(sess.ID, success)
	require.NoError(t, err)
	assert.Zero(t, got.ConsecutiveStruggle)
	assert.Equal(t, 1, got.ConsecutiveSuccess)
	assert.Equal(t, model.TierRegular, got.Tier)
}

// 层级单步移动且有边界：easy 不再降，challenge 不再升
func TestRecordPerformanceTierRails(t *testing.T) {
	bank := newTestBank(t)

	easy := bank.StartSession(4)
	struggle := model.PerformanceObservation{HintsUsed: 3}
	for i := 0; i < 4; i++ {
		got, err := bank.RecordPerformance(easy.ID, struggle)
		require.NoError(t, err)
		assert.Equal(t, model.TierEasy, got.Tier)
	}

	hard := bank.StartSession(10)
	success := model.PerformanceObservation{TimeTaken: time.Second, Completed: true}
	for i := 0; i < 7; i++ {
		got, err := bank.RecordPerformance(hard.ID, success)
		require.NoError(t, err)
		assert.Equal(t, model.TierChallenge, got.Tier)
	}
}

func TestSessionLifecycle(t *testing.T) {
	bank := newTestBank(t)
	sess := bank.StartSession(6)

	got, err := bank.Session(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)

	bank.EndSession(sess.ID)
	_, err = bank.Session(sess.ID)
	assert.ErrorIs(t, err, util.ErrSessionNotFound)

	_, err = bank.RecordPerformance("no-such-session", model.PerformanceObservation{})
	assert.ErrorIs(t, err, util.ErrSessionNotFound)
}

func TestWordsForTheme(t *testing.T) {
	bank := newTestBank(t)

	words, err := bank.WordsForTheme(model.ThemeOcean, model.TierRegular)
	require.NoError(t, err)
	require.NotEmpty(t, words)
	for _, w := range words {
		assert.Equal(t, model.TierRegular, w.Tier)
		assert.True(t, w.HasTheme(model.ThemeOcean), "word %q", w.Word)
	}

	// ThemeAny 是通配查询，返回该层级全部词条
	all, err := bank.WordsForTheme(model.ThemeAny, model.TierEasy)
	require.NoError(t, err)
	assert.Greater(t, len(all), 10)

	// 未知主题回退到默认主题而不是报错
	fallback, err := bank.WordsForTheme(model.Theme("dinosaurs"), model.TierEasy)
	require.NoError(t, err)
	require.NotEmpty(t, fallback)
	for _, w := range fallback {
		assert.True(t, w.HasTheme(model.DefaultTheme), "word %q", w.Word)
	}
}

func TestWordsForPattern(t *testing.T) {
	bank := newTestBank(t)

	words, err := bank.WordsForPattern(model.PatternDigraph, model.TierRegular)
	require.NoError(t, err)
	require.NotEmpty(t, words)
	for _, w := range words {
		assert.True(t, w.HasPattern(model.PatternDigraph), "word %q", w.Word)
	}

	_, err = bank.WordsForPattern(model.PatternMagicE, model.TierEasy)
	assert.ErrorIs(t, err, util.ErrNoMatchingWords)
}
