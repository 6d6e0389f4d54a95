package assessment

import (
	"context"

	"github.com/google/uuid"

	"github.com/abhisek/smartprep/internal/store"
)

// Kinds recorded in assessment history.
const (
	KindMCQ    = "mcq"
	KindCoding = "coding"
	KindFull   = "full"
)

// Record appends a completed assessment to history under a fresh attempt
// id and returns that id.
func Record(ctx context.Context, repo store.EventRepo, user, topic, kind string, r Result) (string, error) {
	id := uuid.NewString()
	err := repo.AppendAssessment(ctx, store.AssessmentEventData{
		AttemptID:   id,
		Username:    user,
		Topic:       topic,
		Kind:        kind,
		Score:       r.Score,
		Total:       r.Total,
		Level:       string(LevelFor(r)),
		WeakAreas:   r.WeakAreas,
		StrongAreas: r.StrongAreas,
	})
	if err != nil {
		return "", err
	}
	return id, nil
}
