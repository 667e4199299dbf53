package projectstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"clipforge/internal/editconfig"
)

const projectColumns = "id, filename, status, config_json, export_url, error_message, created_at, updated_at"

// Create inserts a new project with its initial configuration tree.
func (s *Store) Create(ctx context.Context, id, filename string, tree editconfig.Tree) (*Project, error) {
	raw, err := encodeTree(tree)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	stamp := now.Format(time.RFC3339Nano)
	_, err = s.execWithRetry(ctx,
		"INSERT INTO projects (id, filename, status, config_json, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		id, filename, string(StatusPending), raw, stamp, stamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	return &Project{
		ID:        id,
		Filename:  filename,
		Status:    StatusPending,
		Config:    tree,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Get returns the project with the given id.
func (s *Store) Get(ctx context.Context, id string) (*Project, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx, "SELECT "+projectColumns+" FROM projects WHERE id = ?", id)
	project, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("query project: %w", err)
	}
	return project, nil
}

// List returns all projects ordered by creation time, newest first.
func (s *Store) List(ctx context.Context) ([]*Project, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, "SELECT "+projectColumns+" FROM projects ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()

	var projects []*Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return projects, nil
}

// UpdateConfig replaces the stored configuration tree.
func (s *Store) UpdateConfig(ctx context.Context, id string, tree editconfig.Tree) error {
	raw, err := encodeTree(tree)
	if err != nil {
		return err
	}
	return s.updateColumns(ctx, id, "config_json = ?", raw)
}

// UpdateStatus transitions the project to the given status.
func (s *Store) UpdateStatus(ctx context.Context, id string, status Status) error {
	if !status.valid() {
		return fmt.Errorf("invalid status %q", status)
	}
	return s.updateColumns(ctx, id, "status = ?", string(status))
}

// UpdateExportURL records the public URL of a finished export.
func (s *Store) UpdateExportURL(ctx context.Context, id, url string) error {
	return s.updateColumns(ctx, id, "export_url = ?", url)
}

// UpdateError records the failure message of the last render attempt.
func (s *Store) UpdateError(ctx context.Context, id, message string) error {
	return s.updateColumns(ctx, id, "error_message = ?", message)
}

func (s *Store) updateColumns(ctx context.Context, id, assignment string, args ...any) error {
	stamp := time.Now().UTC().Format(time.RFC3339Nano)
	query := "UPDATE projects SET " + assignment + ", updated_at = ? WHERE id = ?"
	args = append(args, stamp, id)
	res, err := s.execWithRetry(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return notFound(id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*Project, error) {
	var (
		project            Project
		status             string
		raw                string
		createdAt, updated string
	)
	if err := row.Scan(&project.ID, &project.Filename, &status, &raw, &project.ExportURL, &project.ErrorMessage, &createdAt, &updated); err != nil {
		return nil, err
	}
	project.Status = Status(status)

	tree, err := decodeTree(raw)
	if err != nil {
		return nil, err
	}
	project.Config = tree

	if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		project.CreatedAt = ts
	}
	if ts, err := time.Parse(time.RFC3339Nano, updated); err == nil {
		project.UpdatedAt = ts
	}
	return &project, nil
}
