package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"rpsboard/internal/models"
)

const (
	collectionGameLogs = "gameLogs"
	collectionCoinLogs = "coinLogs"

	// prefixSentinel sorts after every character a student id can contain,
	// turning a range filter into a starts-with match.
	prefixSentinel = "\uf8ff"
)

type FirestoreEventLog struct {
	client *firestore.Client
}

func NewFirestoreEventLog(ctx context.Context, projectID, credentialsFile string) (*FirestoreEventLog, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	return &FirestoreEventLog{client: client}, nil
}

func (r *FirestoreEventLog) Close() error {
	return r.client.Close()
}

func (r *FirestoreEventLog) FindByStudentPrefix(ctx context.Context, stream models.Stream, prefix string) ([]models.Event, error) {
	col, err := collectionFor(stream)
	if err != nil {
		return nil, err
	}

	q := r.client.Collection(col).
		Where(fieldStudentIDOnly, ">=", prefix).
		Where(fieldStudentIDOnly, "<=", prefix+prefixSentinel).
		OrderBy(fieldStudentIDOnly, firestore.Asc).
		OrderBy(fieldTime, firestore.Desc)

	events, err := collect(stream, q.Documents(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s by student: %w", col, err)
	}
	return events, nil
}

func (r *FirestoreEventLog) FindBetween(ctx context.Context, stream models.Stream, from, to time.Time) ([]models.Event, error) {
	col, err := collectionFor(stream)
	if err != nil {
		return nil, err
	}

	q := r.client.Collection(col).
		Where(fieldTime, ">=", from.UTC().Format(isoLayout)).
		Where(fieldTime, "<", to.UTC().Format(isoLayout))

	events, err := collect(stream, q.Documents(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s by time: %w", col, err)
	}
	return events, nil
}

func collect(stream models.Stream, it *firestore.DocumentIterator) ([]models.Event, error) {
	defer it.Stop()

	var events []models.Event
	for {
		doc, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		events = append(events, DecodeEvent(stream, doc.Data()))
	}
	return events, nil
}

func collectionFor(stream models.Stream) (string, error) {
	switch stream {
	case models.StreamGame:
		return collectionGameLogs, nil
	case models.StreamCoin:
		return collectionCoinLogs, nil
	default:
		return "", fmt.Errorf("unknown stream %q", stream)
	}
}
