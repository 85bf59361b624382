package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/portfolio/internal/model"
)

var _ model.ResumeStore = (*ResumeRepository)(nil)

type ResumeRepository struct {
	db *Connection
}

func NewResumeRepository(db *Connection) *ResumeRepository {
	return &ResumeRepository{db: db}
}

const resumeColumns = `id, file_name, object_key, content_type, size, uploaded_by, uploaded_at`

func (r *ResumeRepository) Get(ctx context.Context) (model.Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resume WHERE singleton`

	var res model.Resume
	err := r.db.QueryRow(ctx, query).Scan(
		&res.ID, &res.FileName, &res.ObjectKey, &res.ContentType, &res.Size, &res.UploadedBy, &res.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Resume{}, model.ErrNotFound
		}
		return model.Resume{}, fmt.Errorf("failed to get resume: %w", err)
	}

	return res, nil
}

func (r *ResumeRepository) Replace(ctx context.Context, resume model.Resume) (model.Resume, bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return model.Resume{}, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var previous model.Resume
	hadPrevious := true
	err = tx.QueryRow(ctx, `SELECT `+resumeColumns+` FROM resume WHERE singleton FOR UPDATE`).Scan(
		&previous.ID, &previous.FileName, &previous.ObjectKey, &previous.ContentType, &previous.Size,
		&previous.UploadedBy, &previous.UploadedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		hadPrevious = false
	} else if err != nil {
		return model.Resume{}, false, fmt.Errorf("failed to lock current resume: %w", err)
	}

	const upsert = `
		INSERT INTO resume (singleton, id, file_name, object_key, content_type, size, uploaded_by, uploaded_at)
		VALUES (TRUE, $1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (singleton) DO UPDATE SET
			id = EXCLUDED.id, file_name = EXCLUDED.file_name, object_key = EXCLUDED.object_key,
			content_type = EXCLUDED.content_type, size = EXCLUDED.size,
			uploaded_by = EXCLUDED.uploaded_by, uploaded_at = EXCLUDED.uploaded_at`
	_, err = tx.Exec(ctx, upsert,
		resume.ID, resume.FileName, resume.ObjectKey, resume.ContentType, resume.Size,
		resume.UploadedBy, resume.UploadedAt,
	)
	if err != nil {
		return model.Resume{}, false, fmt.Errorf("failed to store resume: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return model.Resume{}, false, fmt.Errorf("failed to commit resume: %w", err)
	}

	return previous, hadPrevious, nil
}
