package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/portfolio/internal/model"
)

var _ model.ProjectStore = (*ProjectRepository)(nil)

type ProjectRepository struct {
	db *Connection
}

func NewProjectRepository(db *Connection) *ProjectRepository {
	return &ProjectRepository{
		db: db,
	}
}

const projectColumns = `id, title, description, github_link, live_link, image_key, image_content_type,
		created_at, updated_at, deleted_at`

func scanProject(row pgx.Row) (model.Project, error) {
	var p model.Project
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.GithubLink, &p.LiveLink, &p.ImageKey, &p.ImageContentType,
		&p.CreatedAt, &p.UpdatedAt, &p.DeletedAt,
	)
	return p, err
}

func (r *ProjectRepository) Create(ctx context.Context, project model.Project) (model.Project, error) {
	query := `INSERT INTO projects (id, title, description, github_link, live_link, image_key, image_content_type)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING ` + projectColumns

	saved, err := scanProject(r.db.QueryRow(ctx, query,
		project.ID, project.Title, project.Description, project.GithubLink, project.LiveLink,
		project.ImageKey, project.ImageContentType,
	))
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to create project: %w", err)
	}

	return saved, nil
}

// List returns live projects in insertion order.
func (r *ProjectRepository) List(ctx context.Context) ([]model.Project, error) {
	query := `SELECT ` + projectColumns + `
			  FROM projects
			  WHERE deleted_at IS NULL
			  ORDER BY seq ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := make([]model.Project, 0, 16)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate projects: %w", err)
	}

	return projects, nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Project, error) {
	query := `SELECT ` + projectColumns + `
			  FROM projects
			  WHERE id = $1 AND deleted_at IS NULL`

	p, err := scanProject(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Project{}, model.ErrNotFound
		}
		return model.Project{}, fmt.Errorf("failed to get project by id: %w", err)
	}

	return p, nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `UPDATE projects SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
