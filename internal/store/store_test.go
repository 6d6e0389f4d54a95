package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestWithPragmas(t *testing.T) {
	tests := []struct {
		dsn, prefix string
	}{
		{"/tmp/smartprep.db", "/tmp/smartprep.db?_pragma="},
		{"file:x?mode=memory", "file:x?mode=memory&_pragma="},
	}
	for _, tt := range tests {
		got := withPragmas(tt.dsn)
		assert.True(t, strings.HasPrefix(got, tt.prefix), got)
		assert.Equal(t, len(pragmas), strings.Count(got, "_pragma="))
	}
}

func TestOpen_AppliesPragmasAndTables(t *testing.T) {
	db := openTestStore(t).DB()

	// journal_mode stays "memory" for in-memory databases.
	for pragma, want := range map[string]string{"foreign_keys": "1", "synchronous": "1", "busy_timeout": "5000"} {
		var got string
		require.NoError(t, db.QueryRow("PRAGMA "+pragma).Scan(&got), pragma)
		assert.Equal(t, want, got, pragma)
	}

	var n int
	require.NoError(t, db.QueryRow(`SELECT count(*) FROM sqlite_master WHERE type = 'table'
		AND name IN ('preferences', 'llm_request_events', 'assessment_events', 'global_sequence')`).Scan(&n))
	assert.Equal(t, 4, n)
}

func TestOpen_FileOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "smartprep.db")
	require.NoError(t, EnsureDir(path))

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.PreferenceRepo().Set(context.Background(), "k", "v"))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	v, ok, err := s.PreferenceRepo().Get(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestSequenceCounter(t *testing.T) {
	sc, err := newSequenceCounter(openTestStore(t).DB())
	require.NoError(t, err)

	var got []int64
	for range 4 {
		seq, err := sc.Next(context.Background())
		require.NoError(t, err)
		got = append(got, seq)
	}
	assert.Equal(t, []int64{1, 2, 3, 4}, got)
}

func TestPreferences(t *testing.T) {
	s := openTestStore(t)
	repo := s.PreferenceRepo()
	ctx := context.Background()

	_, ok, err := repo.Get(ctx, "smartprep_streak")
	require.NoError(t, err)
	assert.False(t, ok, "missing key should report not found")

	require.NoError(t, repo.Set(ctx, "smartprep_streak", "3"))
	require.NoError(t, repo.Set(ctx, "smartprep_streak", "4"))

	v, ok, err := repo.Get(ctx, "smartprep_streak")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "4", v)

	require.NoError(t, repo.Delete(ctx, "smartprep_streak", "never_set"))
	_, ok, err = repo.Get(ctx, "smartprep_streak")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "questions", InputTokens: 100, OutputTokens: 50, LatencyMs: 200, Success: true},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "roadmap", InputTokens: 300, OutputTokens: 900, LatencyMs: 400, Success: true},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "questions", InputTokens: 120, OutputTokens: 0, LatencyMs: 100, Success: false, ErrorMessage: "rate limited"},
	}
	for _, e := range events {
		require.NoError(t, repo.AppendLLMRequest(ctx, e))
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "rate limited", all[0].ErrorMessage, "newest event first")
	assert.WithinDuration(t, time.Now(), all[0].Timestamp, time.Minute)

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1, Purpose: "roadmap"})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, 900, limited[0].OutputTokens)

	got, err := repo.GetLLMEvent(ctx, limited[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "roadmap", got.Purpose)

	missing, err := repo.GetLLMEvent(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 2)
	assert.Equal(t, PurposeUsage{Purpose: "questions", Calls: 2, InputTokens: 220, OutputTokens: 50, AvgLatencyMs: 150}, byPurpose[0])

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 1)
	assert.Equal(t, 3, byModel[0].Calls)
	assert.Equal(t, 520, byModel[0].InputTokens)
}

func TestAssessmentEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendAssessment(ctx, AssessmentEventData{
		AttemptID: "a1", Username: "asha", Topic: "Aptitude", Kind: "mcq",
		Score: 14, Total: 20, Level: "Intermediate",
		WeakAreas: []string{"Advanced Concepts"}, StrongAreas: []string{"Syntax", "Core Logic"},
	}))
	require.NoError(t, repo.AppendAssessment(ctx, AssessmentEventData{
		AttemptID: "a2", Username: "asha", Topic: "Comprehensive Interview Prep", Kind: "full",
		Score: 6, Total: 15, Level: "Intermediate",
		WeakAreas: []string{"Core CS", "Technical Coding Implementation"},
	}))

	got, err := repo.QueryAssessments(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "full", got[0].Kind)
	assert.Equal(t, []string{"Core CS", "Technical Coding Implementation"}, got[0].WeakAreas)
	assert.Equal(t, []string{}, got[0].StrongAreas)
	assert.Equal(t, []string{"Syntax", "Core Logic"}, got[1].StrongAreas)

	mine, err := repo.QueryAssessments(ctx, QueryOpts{Username: "ASHA", Limit: 1})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "a2", mine[0].AttemptID)

	others, err := repo.QueryAssessments(ctx, QueryOpts{Username: "ravi"})
	require.NoError(t, err)
	assert.Empty(t, others)

	n, err := repo.ClearAssessments(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	got, err = repo.QueryAssessments(ctx, QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEventsShareSequence(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "mock", Purpose: "questions", Success: true}))
	require.NoError(t, repo.AppendAssessment(ctx, AssessmentEventData{AttemptID: "x", Topic: "SQL", Kind: "coding", Score: 40, Total: 100}))

	llmEvents, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	assessments, err := repo.QueryAssessments(ctx, QueryOpts{})
	require.NoError(t, err)

	assert.Less(t, llmEvents[0].Sequence, assessments[0].Sequence)

	after, err := repo.QueryAssessments(ctx, QueryOpts{After: assessments[0].Sequence})
	require.NoError(t, err)
	assert.Empty(t, after)
}
