package testsupport

import (
	"context"
	"testing"

	"clipforge/internal/config"
	"clipforge/internal/editconfig"
	"clipforge/internal/projectstore"
)

// MustOpenStore opens a projectstore.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *projectstore.Store {
	t.Helper()

	store, err := projectstore.Open(cfg)
	if err != nil {
		t.Fatalf("projectstore.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// NewProject creates a ready project with a minimal 1080p configuration tree.
func NewProject(t testing.TB, store *projectstore.Store, id string) *projectstore.Project {
	t.Helper()

	tree := editconfig.New(id, "video-"+id, "https://example.com/source.mp4", editconfig.VideoMetadata{
		Width:    1920,
		Height:   1080,
		Duration: 30,
	})
	project, err := store.Create(context.Background(), id, "source.mp4", tree)
	if err != nil {
		t.Fatalf("store.Create: %v", err)
	}
	if err := store.UpdateStatus(context.Background(), id, projectstore.StatusReady); err != nil {
		t.Fatalf("store.UpdateStatus: %v", err)
	}
	project.Status = projectstore.StatusReady
	return project
}
