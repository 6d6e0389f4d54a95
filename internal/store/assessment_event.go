package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

func (r *eventRepo) AppendAssessment(ctx context.Context, data AssessmentEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	weak, err := marshalAreas(data.WeakAreas)
	if err != nil {
		return err
	}
	strong, err := marshalAreas(data.StrongAreas)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO assessment_events
		(sequence, timestamp, attempt_id, username, topic, kind, score, total, level, weak_areas, strong_areas)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, time.Now().UnixMilli(), data.AttemptID, data.Username, data.Topic,
		data.Kind, data.Score, data.Total, data.Level, weak, strong,
	)
	if err != nil {
		return fmt.Errorf("save assessment event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAssessments(ctx context.Context, opts QueryOpts) ([]AssessmentEvent, error) {
	where, args := buildWhere(opts, assessmentTable)
	query := `SELECT id, sequence, timestamp, attempt_id, username, topic, kind, score, total,
		level, weak_areas, strong_areas FROM assessment_events` + where + ` ORDER BY sequence DESC`
	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query assessment events: %w", err)
	}
	defer rows.Close()

	var out []AssessmentEvent
	for rows.Next() {
		var (
			e            AssessmentEvent
			ts           int64
			weak, strong string
		)
		if err := rows.Scan(&e.ID, &e.Sequence, &ts, &e.AttemptID, &e.Username, &e.Topic,
			&e.Kind, &e.Score, &e.Total, &e.Level, &weak, &strong); err != nil {
			return nil, fmt.Errorf("scan assessment event: %w", err)
		}
		e.Timestamp = time.UnixMilli(ts)
		if err := json.Unmarshal([]byte(weak), &e.WeakAreas); err != nil {
			return nil, fmt.Errorf("decode weak areas: %w", err)
		}
		if err := json.Unmarshal([]byte(strong), &e.StrongAreas); err != nil {
			return nil, fmt.Errorf("decode strong areas: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *eventRepo) ClearAssessments(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM assessment_events`)
	if err != nil {
		return 0, fmt.Errorf("clear assessment events: %w", err)
	}
	return res.RowsAffected()
}

func marshalAreas(areas []string) (string, error) {
	if areas == nil {
		areas = []string{}
	}
	b, err := json.Marshal(areas)
	if err != nil {
		return "", fmt.Errorf("encode areas: %w", err)
	}
	return string(b), nil
}
