package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"rpsboard/internal/models"
)

// EventPostgres serves the event streams from a relational mirror of the
// gameLogs/coinLogs collections. Timestamps are kept as the client's ISO
// text so range filters compare the same way the document store does.
type EventPostgres struct {
	db *sql.DB
}

func NewEventPostgres(db *sql.DB) *EventPostgres {
	return &EventPostgres{db: db}
}

func (r *EventPostgres) FindByStudentPrefix(ctx context.Context, stream models.Stream, prefix string) ([]models.Event, error) {
	table, err := tableFor(stream)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT student_id, student_id_only, type, time, result, reward, amount
		FROM %s
		WHERE starts_with(student_id_only, $1)
		ORDER BY student_id_only ASC, time DESC
	`, table)

	events, err := r.query(ctx, stream, query, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s by student: %w", table, err)
	}
	return events, nil
}

func (r *EventPostgres) FindBetween(ctx context.Context, stream models.Stream, from, to time.Time) ([]models.Event, error) {
	table, err := tableFor(stream)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT student_id, student_id_only, type, time, result, reward, amount
		FROM %s
		WHERE time >= $1 AND time < $2
	`, table)

	events, err := r.query(ctx, stream, query, from.UTC().Format(isoLayout), to.UTC().Format(isoLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s by time: %w", table, err)
	}
	return events, nil
}

func (r *EventPostgres) query(ctx context.Context, stream models.Stream, query string, args ...interface{}) ([]models.Event, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var (
			studentID, studentIDOnly, typ, ts string
			result, reward                   sql.NullString
			amount                           sql.NullFloat64
		)
		if err := rows.Scan(&studentID, &studentIDOnly, &typ, &ts, &result, &reward, &amount); err != nil {
			return nil, err
		}

		doc := map[string]interface{}{
			fieldStudentID:     studentID,
			fieldStudentIDOnly: studentIDOnly,
			fieldType:          typ,
			fieldTime:          ts,
		}
		if result.Valid {
			doc[fieldResult] = result.String
		}
		if reward.Valid {
			doc[fieldReward] = reward.String
		}
		if amount.Valid {
			doc[fieldAmount] = amount.Float64
		}
		events = append(events, DecodeEvent(stream, doc))
	}
	return events, rows.Err()
}

func tableFor(stream models.Stream) (string, error) {
	switch stream {
	case models.StreamGame:
		return "game_logs", nil
	case models.StreamCoin:
		return "coin_logs", nil
	default:
		return "", fmt.Errorf("unknown stream %q", stream)
	}
}
