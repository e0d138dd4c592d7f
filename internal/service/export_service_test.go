package service

import (
	"context"
	"io"
	"testing"
	"time"

	"sensory_sheets_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStorage 内存存储，记录上传内容
type memStorage struct {
	files map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{files: make(map[string][]byte)}
}

func (m *memStorage) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	raw, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	m.files[filename] = raw
	return "/exports/" + filename, nil
}

func (m *memStorage) Delete(ctx context.Context, filename string) error {
	delete(m.files, filename)
	return nil
}

func (m *memStorage) GetURL(filename string) string {
	return "/exports/" + filename
}

// memExportStore 内存版导出记录
type memExportStore struct {
	exports []model.WorksheetExport
}

func (m *memExportStore) Create(export *model.WorksheetExport) error {
	m.exports = append(m.exports, *export)
	return nil
}

func (m *memExportStore) FindByUser(userID uint, limit int) ([]model.WorksheetExport, error) {
	var out []model.WorksheetExport
	for _, e := range m.exports {
		if e.UserID == userID && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

func newTestExport() (*ExportService, *memStorage, *memExportStore) {
	storage := newMemStorage()
	store := &memExportStore{}
	svc := NewExportService(&StorageService{Provider: storage}, store)
	svc.Now = func() time.Time {
		return time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC)
	}
	return svc, storage, store
}

func TestExportWorksheet(t *testing.T) {
	svc, storage, store := newTestExport()
	composer := newTestWorksheet(t, nil)

	data, err := composer.ComposeMoodWorksheet(model.MoodOverwhelmed, ActivityTrace)
	require.NoError(t, err)

	export, err := svc.ExportWorksheet(context.Background(), 1, data)
	require.NoError(t, err)

	assert.Equal(t, "overwhelmed_trace3_20260315_103000.pdf", export.Filename)
	assert.Equal(t, "/exports/overwhelmed_trace3_20260315_103000.pdf", export.URL)
	assert.GreaterOrEqual(t, export.Pages, 1)

	raw, ok := storage.files[export.Filename]
	require.True(t, ok)
	assert.Equal(t, "%PDF", string(raw[:4]))

	require.Len(t, store.exports, 1)
	assert.Equal(t, uint(1), store.exports[0].UserID)
}

func TestExportWorksheetPatternPrefix(t *testing.T) {
	svc, _, _ := newTestExport()
	composer := newTestWorksheet(t, nil)

	data, err := composer.ComposePatternWorksheet(model.PatternDigraph, model.TierRegular, ActivityPointRead)
	require.NoError(t, err)

	export, err := svc.ExportWorksheet(context.Background(), 2, data)
	require.NoError(t, err)
	assert.Equal(t, "digraph_pointRead_20260315_103000.pdf", export.Filename)
}

func TestExportStory(t *testing.T) {
	svc, _, _ := newTestExport()
	composer := newTestWorksheet(t, nil)

	story, err := composer.ComposeStoryWorksheet([]model.Theme{model.ThemeOcean}, model.MoodLowEnergy)
	require.NoError(t, err)

	export, err := svc.ExportStory(context.Background(), 1, story)
	require.NoError(t, err)
	assert.Equal(t, "story_tide_pool_quest_20260315_103000.pdf", export.Filename)
	// 三个版本之间强制换页
	assert.GreaterOrEqual(t, export.Pages, 3)
}

func TestExportHistoryClampsLimit(t *testing.T) {
	svc, _, store := newTestExport()
	for i := 0; i < 30; i++ {
		store.exports = append(store.exports, model.WorksheetExport{UserID: 1})
	}

	out, err := svc.History(1, 0)
	require.NoError(t, err)
	assert.Len(t, out, 20)

	out, err = svc.History(1, 5)
	require.NoError(t, err)
	assert.Len(t, out, 5)
}
