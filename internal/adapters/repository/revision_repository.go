package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/rachef/sitecms/internal/domain/document"
	"github.com/rachef/sitecms/internal/domain/entities"
	"github.com/rachef/sitecms/internal/ports"
)

// RevisionRepositoryImpl archives saved document pairs in SQL
type RevisionRepositoryImpl struct {
	db *sqlx.DB
}

// NewRevisionRepository creates a new revision repository
func NewRevisionRepository(db *sqlx.DB) ports.RevisionRepository {
	return &RevisionRepositoryImpl{db: db}
}

type revisionRow struct {
	ID      int64     `db:"id"`
	Action  string    `db:"action"`
	SavedAt time.Time `db:"saved_at"`
	Data    []byte    `db:"data"`
	Datap   []byte    `db:"datap"`
}

func (r *RevisionRepositoryImpl) Append(ctx context.Context, rev *entities.Revision) error {
	data, err := json.Marshal(rev.Data)
	if err != nil {
		return fmt.Errorf("encode data: %w", err)
	}
	datap, err := json.Marshal(rev.Datap)
	if err != nil {
		return fmt.Errorf("encode datap: %w", err)
	}

	query := r.db.Rebind(`
		INSERT INTO revisions (action, saved_at, data, datap)
		VALUES (?, ?, ?, ?)
		RETURNING id`)

	err = r.db.QueryRowxContext(ctx, query, rev.Action, rev.SavedAt.UTC(), string(data), string(datap)).Scan(&rev.ID)
	if err != nil {
		return fmt.Errorf("append revision: %w", err)
	}

	return nil
}

func (r *RevisionRepositoryImpl) List(ctx context.Context, limit int) ([]entities.Revision, error) {
	query := r.db.Rebind(`
		SELECT id, action, saved_at
		FROM revisions
		ORDER BY saved_at DESC, id DESC
		LIMIT ?`)

	var rows []revisionRow
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("list revisions: %w", err)
	}

	revs := make([]entities.Revision, 0, len(rows))
	for _, row := range rows {
		revs = append(revs, entities.Revision{ID: row.ID, Action: row.Action, SavedAt: row.SavedAt.UTC()})
	}
	return revs, nil
}

func (r *RevisionRepositoryImpl) Get(ctx context.Context, id int64) (*entities.Revision, error) {
	query := r.db.Rebind(`
		SELECT id, action, saved_at, data, datap
		FROM revisions
		WHERE id = ?`)

	var row revisionRow
	err := r.db.GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrRevisionNotFound
		}
		return nil, fmt.Errorf("get revision: %w", err)
	}

	data, err := document.Parse(row.Data)
	if err != nil {
		return nil, fmt.Errorf("decode revision %d data: %w", id, err)
	}
	datap, err := document.Parse(row.Datap)
	if err != nil {
		return nil, fmt.Errorf("decode revision %d datap: %w", id, err)
	}

	return &entities.Revision{
		ID:      row.ID,
		Action:  row.Action,
		SavedAt: row.SavedAt.UTC(),
		Data:    data,
		Datap:   datap,
	}, nil
}
