package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/fadilmartias/interview-coach/internal/dto"
	applog "github.com/fadilmartias/interview-coach/internal/logger"
	"github.com/fadilmartias/interview-coach/internal/model"
	"github.com/fadilmartias/interview-coach/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

type stubAnalyzer struct {
	result    *dto.AnalysisResult
	err       error
	questions []model.SuggestedQuestion
	check     *dto.CompletionCheck

	questionCalls int
	lastExisting  []model.Pointer
	lastStrict    bool
}

func (a *stubAnalyzer) Analyze(_ context.Context, _ string, existing []model.Pointer, strictMode bool) (*dto.AnalysisResult, error) {
	a.lastExisting = existing
	a.lastStrict = strictMode
	if a.err != nil {
		return nil, a.err
	}
	return a.result, nil
}

func (a *stubAnalyzer) GeneratePracticeQuestions(context.Context, []string) []model.SuggestedQuestion {
	a.questionCalls++
	return a.questions
}

func (a *stubAnalyzer) ValidateCompletedPointer(context.Context, model.Pointer, string) (*dto.CompletionCheck, error) {
	if a.check == nil {
		return nil, errors.New("no check stubbed")
	}
	return a.check, nil
}

type memoryCache struct {
	entries map[string][]model.SuggestedQuestion
}

func (c *memoryCache) key(topics []string) string {
	return fmt.Sprint(topics)
}

func (c *memoryCache) Get(_ context.Context, topics []string) ([]model.SuggestedQuestion, bool) {
	q, ok := c.entries[c.key(topics)]
	return q, ok
}

func (c *memoryCache) Set(_ context.Context, topics []string, questions []model.SuggestedQuestion) {
	c.entries[c.key(topics)] = questions
}

func nopLogger() *applog.Logger {
	return applog.Nop()
}
