// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mmynk/dropin/internal/models"
)

// RosterKey is the key the roster snapshot is stored under in key-value
// backends. The mobile client uses the same key.
const RosterKey = "participants"

// SnapshotStore holds the whole roster as a single value.
// The snapshot is read once at startup and overwritten wholesale on every
// change; there is no incremental update and no versioning.
type SnapshotStore interface {
	// LoadRoster returns the stored roster, or an empty slice if nothing
	// has been saved yet.
	LoadRoster(ctx context.Context) ([]models.Participant, error)

	// SaveRoster replaces the stored roster.
	SaveRoster(ctx context.Context, participants []models.Participant) error

	// Close releases any resources held by the store.
	Close() error
}

// RemoteStore mirrors the roster into a relational table, one row per
// participant keyed by participant ID.
type RemoteStore interface {
	// ListParticipants returns every row in roster order.
	ListParticipants(ctx context.Context) ([]models.Participant, error)

	// UpsertParticipants inserts or replaces the given rows. Position is the
	// roster index of each participant, used to keep the list order.
	UpsertParticipants(ctx context.Context, rows []PositionedParticipant) error

	// DeleteParticipant removes one row. Missing rows are not an error.
	DeleteParticipant(ctx context.Context, id string) error

	// DeleteParticipants removes every row whose ID is listed.
	DeleteParticipants(ctx context.Context, ids []string) error

	// Close releases any resources held by the store.
	Close() error
}

// PositionedParticipant is a participant together with its roster index.
type PositionedParticipant struct {
	models.Participant
	Position int
}

// EncodeRoster serializes a roster snapshot as a JSON array.
func EncodeRoster(participants []models.Participant) (string, error) {
	if participants == nil {
		participants = []models.Participant{}
	}
	data, err := json.Marshal(participants)
	if err != nil {
		return "", fmt.Errorf("failed to encode roster: %w", err)
	}
	return string(data), nil
}

// DecodeRoster parses a snapshot written by EncodeRoster or by the mobile
// client. An empty value decodes to an empty roster.
func DecodeRoster(value string) ([]models.Participant, error) {
	if value == "" {
		return []models.Participant{}, nil
	}
	var participants []models.Participant
	if err := json.Unmarshal([]byte(value), &participants); err != nil {
		return nil, fmt.Errorf("failed to decode roster: %w", err)
	}
	if participants == nil {
		participants = []models.Participant{}
	}
	return participants, nil
}
