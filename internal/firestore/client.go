// Package firestore replace-writes the extracted calendar into a
// Firestore collection for scheduled ingestion runs.
package firestore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"finsk-kalender/internal/model"
)

const batchSize = 250 // Stay well under Firestore's 500 operation limit

// Client wraps the Firestore client for calendar operations.
type Client struct {
	client     *firestore.Client
	collection string
}

// New creates a new Firestore client.
func New(ctx context.Context, projectID, collection string) (*Client, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}
	return &Client{
		client:     client,
		collection: collection,
	}, nil
}

// Close closes the Firestore client.
func (c *Client) Close() error {
	return c.client.Close()
}

// ReplaceCalendar atomically replaces the collection contents with the
// given services. It deletes all existing documents, then writes the new
// ones in batches, tagging each with the run's batch ID.
func (c *Client) ReplaceCalendar(ctx context.Context, services []model.ChurchService, batchID string) error {
	coll := c.client.Collection(c.collection)

	if err := c.clearCollection(ctx); err != nil {
		return fmt.Errorf("deleting existing services: %w", err)
	}

	for i := 0; i < len(services); i += batchSize {
		end := i + batchSize
		if end > len(services) {
			end = len(services)
		}
		batch := c.client.Batch()

		for _, svc := range services[i:end] {
			doc := coll.Doc(docID(svc))
			batch.Set(doc, serviceToMap(svc, batchID))
		}

		if _, err := batch.Commit(ctx); err != nil {
			return fmt.Errorf("committing batch: %w", err)
		}
	}

	return nil
}

// clearCollection deletes every document in the collection.
func (c *Client) clearCollection(ctx context.Context) error {
	coll := c.client.Collection(c.collection)

	for {
		iter := coll.Limit(batchSize).Documents(ctx)
		batch := c.client.Batch()
		numDeleted := 0

		for {
			doc, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				return fmt.Errorf("iterating documents: %w", err)
			}
			batch.Delete(doc.Ref)
			numDeleted++
		}

		if numDeleted == 0 {
			return nil
		}

		if _, err := batch.Commit(ctx); err != nil {
			return fmt.Errorf("committing delete batch: %w", err)
		}

		if numDeleted < batchSize {
			return nil
		}
	}
}

// docID creates a deterministic document ID from the fields that identify
// a service on the calendar.
func docID(svc model.ChurchService) string {
	timeStr := ""
	if svc.Time != nil {
		timeStr = *svc.Time
	}
	data := fmt.Sprintf("%s|%s|%s", svc.Date, svc.ServiceName, timeStr)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:16]) // Use first 16 bytes for shorter ID
}

// serviceToMap converts a ChurchService to a Firestore document map.
// Optional fields are simply absent rather than stored as nulls.
func serviceToMap(svc model.ChurchService, batchID string) map[string]interface{} {
	m := map[string]interface{}{
		"date":         svc.Date,
		"day_of_week":  svc.DayOfWeek,
		"service_name": svc.ServiceName,
		"batch_id":     batchID,
	}
	if svc.Location != nil {
		m["location"] = *svc.Location
	}
	if svc.Time != nil {
		m["time"] = *svc.Time
	}
	if svc.Occasion != nil {
		m["occasion"] = *svc.Occasion
	}
	if svc.Notes != nil {
		m["notes"] = *svc.Notes
	}
	return m
}
