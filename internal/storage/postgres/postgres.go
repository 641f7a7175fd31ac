// Package postgres mirrors the roster into a hosted Postgres table, one row
// per participant, so other devices can read it.
package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/mmynk/dropin/internal/models"
	"github.com/mmynk/dropin/internal/storage"
)

var _ storage.RemoteStore = (*PostgresStore)(nil)

// participantRow is the table layout.
type participantRow struct {
	ID            string  `gorm:"primaryKey"`
	Name          string  `gorm:"not null"`
	PaymentMethod *string // NULL while unpaid
	Note          string
	Position      int       `gorm:"index;not null;default:0"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (participantRow) TableName() string { return "participants" }

// PostgresStore implements storage.RemoteStore with gorm.
type PostgresStore struct {
	db *gorm.DB
}

// New opens the database described by dsn and migrates the table.
func New(dsn string) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return NewFromDB(db)
}

// NewFromDB wraps an existing gorm connection and migrates the table.
func NewFromDB(db *gorm.DB) (*PostgresStore, error) {
	if err := db.AutoMigrate(&participantRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate participants table: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// Close closes the underlying connection pool.
func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ListParticipants returns every row in roster order.
func (s *PostgresStore) ListParticipants(ctx context.Context) ([]models.Participant, error) {
	var rows []participantRow
	if err := s.db.WithContext(ctx).Order("position, id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	out := make([]models.Participant, 0, len(rows))
	for _, r := range rows {
		out = append(out, fromRow(r))
	}
	return out, nil
}

// UpsertParticipants inserts new rows and overwrites existing ones.
func (s *PostgresStore) UpsertParticipants(ctx context.Context, participants []storage.PositionedParticipant) error {
	if len(participants) == 0 {
		return nil
	}
	rows := make([]participantRow, 0, len(participants))
	for _, p := range participants {
		rows = append(rows, toRow(p))
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "payment_method", "note", "position", "updated_at"}),
		}).
		Create(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to upsert participants: %w", err)
	}
	return nil
}

// DeleteParticipant removes one row by ID.
func (s *PostgresStore) DeleteParticipant(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&participantRow{}).Error; err != nil {
		return fmt.Errorf("failed to delete participant %s: %w", id, err)
	}
	return nil
}

// DeleteParticipants removes every row whose ID is in ids.
func (s *PostgresStore) DeleteParticipants(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Delete(&participantRow{}).Error; err != nil {
		return fmt.Errorf("failed to delete %d participants: %w", len(ids), err)
	}
	return nil
}

func toRow(p storage.PositionedParticipant) participantRow {
	row := participantRow{
		ID:       p.ID,
		Name:     p.Name,
		Note:     p.Note,
		Position: p.Position,
	}
	if p.PaymentMethod.Paid() {
		method := string(p.PaymentMethod)
		row.PaymentMethod = &method
	}
	return row
}

func fromRow(r participantRow) models.Participant {
	p := models.Participant{ID: r.ID, Name: r.Name, Note: r.Note}
	if r.PaymentMethod != nil {
		// Rows written by other clients may carry methods we do not know;
		// those read as unpaid rather than failing the whole list.
		if m, err := models.ParsePaymentMethod(*r.PaymentMethod); err == nil {
			p.PaymentMethod = m
		}
	}
	return p
}
