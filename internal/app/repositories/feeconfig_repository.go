package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arjunrk/feeledger/internal/app/models"
)

// FeeConfigRepository persists the fee locker configuration document.
// The whole document lives in a single JSONB row; history is not kept.
type FeeConfigRepository struct {
	db *pgxpool.Pool
}

// NewFeeConfigRepository creates a new FeeConfigRepository
func NewFeeConfigRepository(db *pgxpool.Pool) *FeeConfigRepository {
	return &FeeConfigRepository{db: db}
}

// Get returns the stored configuration document, or nil when none has
// been saved yet. Callers treat nil as "baseline targets only".
func (r *FeeConfigRepository) Get(ctx context.Context) (*models.FeeConfigDoc, error) {
	var raw []byte
	var updatedAt time.Time
	var updatedBy string

	err := r.db.QueryRow(ctx,
		`SELECT doc, updated_at, updated_by FROM fee_config WHERE id = 1`,
	).Scan(&raw, &updatedAt, &updatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error loading fee config: %w", err)
	}

	doc := &models.FeeConfigDoc{}
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("error decoding fee config document: %w", err)
	}
	doc.UpdatedAt = updatedAt
	doc.UpdatedBy = updatedBy
	return doc, nil
}

// Set replaces the stored configuration document.
func (r *FeeConfigRepository) Set(ctx context.Context, doc *models.FeeConfigDoc) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("error encoding fee config document: %w", err)
	}

	query := `
		INSERT INTO fee_config (id, doc, updated_at, updated_by)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			doc = EXCLUDED.doc,
			updated_at = EXCLUDED.updated_at,
			updated_by = EXCLUDED.updated_by`

	if _, err := r.db.Exec(ctx, query, raw, doc.UpdatedAt, doc.UpdatedBy); err != nil {
		return fmt.Errorf("error saving fee config: %w", err)
	}
	return nil
}
