package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"clipforge/internal/config"
	"clipforge/internal/encoder"
	"clipforge/internal/logging"
	"clipforge/internal/projectstore"
	"clipforge/internal/render"
	"clipforge/internal/services"
	"clipforge/internal/storage"
)

// Phase names the stage a live render job is in.
type Phase string

const (
	PhaseRendering Phase = "rendering"
	PhaseUploading Phase = "uploading"
	PhaseCompleted Phase = "completed"
)

// Fraction of total progress spent encoding; the remainder is upload.
const encodeShare = 0.8

// Options selects per-render parameters. Empty fields fall back to the
// configured render defaults.
type Options struct {
	ProjectName  string
	Resolution   render.Resolution
	Quality      render.Quality
	BurnCaptions *bool
}

// Snapshot reports a project's render state for polling.
type Snapshot struct {
	ProjectID string
	Status    projectstore.Status
	Progress  float64
	Phase     Phase
	ExportURL string
	Error     string
}

type job struct {
	cancel   context.CancelFunc
	done     chan struct{}
	progress float64
	phase    Phase
}

// Manager coordinates render jobs across projects.
type Manager struct {
	cfg      *config.Config
	store    *projectstore.Store
	encoder  encoder.Client
	uploader storage.Uploader
	logger   *slog.Logger

	mu   sync.Mutex
	jobs map[string]*job
}

// NewManager wires a manager from its collaborators. uploader may be nil;
// renders then land in the local exports directory.
func NewManager(cfg *config.Config, store *projectstore.Store, enc encoder.Client, uploader storage.Uploader, logger *slog.Logger) *Manager {
	return &Manager{
		cfg:      cfg,
		store:    store,
		encoder:  enc,
		uploader: uploader,
		logger:   logging.NewComponentLogger(logger, "jobs"),
		jobs:     make(map[string]*job),
	}
}

// StartRender compiles the project's configuration and launches a render job
// in the background. Returns the output filename the artifact will carry.
// A project with a live job cannot start another.
func (m *Manager) StartRender(ctx context.Context, projectID string, opts Options) (string, error) {
	project, err := m.store.Get(ctx, projectID)
	if err != nil {
		return "", err
	}
	if project.Status == projectstore.StatusRendering {
		return "", services.Wrap(services.ErrConfiguration, "jobs", "start render", fmt.Sprintf("project %s is already being rendered", projectID), nil)
	}

	tree := project.Config.Clone()
	if opts.BurnCaptions != nil {
		tree.Export.BurnCaptions = *opts.BurnCaptions
	}

	resolution := opts.Resolution
	if resolution == "" {
		resolution = render.Resolution(m.cfg.Render.Resolution)
	}
	quality := opts.Quality
	if quality == "" {
		quality = render.Quality(m.cfg.Render.Quality)
	}

	spec, err := render.Compile(tree, render.Options{
		Resolution: resolution,
		Quality:    quality,
		FontFile:   m.cfg.FFmpeg.FontFile,
	})
	if err != nil {
		return "", err
	}

	filename := exportFilename(opts.ProjectName, projectID)

	jobCtx, cancel := context.WithCancel(context.Background())
	entry := &job{cancel: cancel, done: make(chan struct{}), phase: PhaseRendering}

	m.mu.Lock()
	if _, exists := m.jobs[projectID]; exists {
		m.mu.Unlock()
		cancel()
		return "", services.Wrap(services.ErrConfiguration, "jobs", "start render", fmt.Sprintf("project %s is already being rendered", projectID), nil)
	}
	m.jobs[projectID] = entry
	m.mu.Unlock()

	if err := m.store.UpdateStatus(ctx, projectID, projectstore.StatusRendering); err != nil {
		m.clear(projectID, entry)
		cancel()
		return "", err
	}

	m.logger.Info("render started",
		logging.String(logging.FieldProjectID, projectID),
		logging.String("filename", filename),
		logging.String("resolution", string(resolution)),
		logging.String("quality", string(quality)),
	)

	go m.run(jobCtx, projectID, entry, spec, filename)
	return filename, nil
}

func (m *Manager) run(ctx context.Context, projectID string, entry *job, spec *render.Spec, filename string) {
	var tempFiles []string
	defer func() {
		for _, path := range tempFiles {
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				m.logger.Warn("failed to remove temp artifact",
					logging.String(logging.FieldProjectID, projectID),
					logging.String("path", path),
					logging.Error(err),
				)
			}
		}
		m.clear(projectID, entry)
		close(entry.done)
	}()

	lock := flock.New(filepath.Join(m.cfg.Paths.StagingDir, "render.lock"))
	locked, err := lock.TryLockContext(ctx, time.Second)
	if err != nil || !locked {
		if ctx.Err() != nil {
			m.cancelled(projectID)
			return
		}
		m.fail(projectID, services.Wrap(services.ErrEncode, "jobs", "render", "acquire staging lock", err))
		return
	}
	defer func() { _ = lock.Unlock() }()

	session := uuid.New().String()
	var subtitlePath string
	if spec.Subtitles != "" {
		subtitlePath = filepath.Join(m.cfg.Paths.StagingDir, "render-"+session+".ass")
		if err := os.WriteFile(subtitlePath, []byte(spec.Subtitles), 0o644); err != nil {
			m.fail(projectID, services.Wrap(services.ErrEncode, "jobs", "render", "stage subtitle file", err))
			return
		}
		tempFiles = append(tempFiles, subtitlePath)
	}
	outputPath := filepath.Join(m.cfg.Paths.StagingDir, "render-"+session+".mp4")
	tempFiles = append(tempFiles, outputPath)

	sampler := logging.NewProgressSampler(5)

	err = m.encoder.Encode(ctx, spec, subtitlePath, outputPath, func(u encoder.ProgressUpdate) {
		m.setProgress(projectID, entry, u.Percent*encodeShare, PhaseRendering, sampler)
	})
	if err != nil {
		if ctx.Err() != nil {
			m.cancelled(projectID)
			return
		}
		m.fail(projectID, err)
		return
	}

	exportURL, err := m.publish(ctx, projectID, entry, outputPath, filename, sampler)
	if err != nil {
		m.fail(projectID, err)
		return
	}

	background := context.Background()
	if err := m.store.UpdateExportURL(background, projectID, exportURL); err != nil {
		m.fail(projectID, err)
		return
	}
	if err := m.store.UpdateStatus(background, projectID, projectstore.StatusExported); err != nil {
		m.fail(projectID, err)
		return
	}
	m.setProgress(projectID, entry, 100, PhaseCompleted, sampler)

	m.logger.Info("export complete",
		logging.String(logging.FieldProjectID, projectID),
		logging.String("export_url", exportURL),
	)
}

func (m *Manager) publish(ctx context.Context, projectID string, entry *job, outputPath, filename string, sampler *logging.ProgressSampler) (string, error) {
	if m.uploader == nil {
		exportDir := filepath.Join(m.cfg.Paths.DataDir, "exports")
		if err := os.MkdirAll(exportDir, 0o755); err != nil {
			return "", services.Wrap(services.ErrUpload, "jobs", "publish", "create exports directory", err)
		}
		exportPath := filepath.Join(exportDir, filename)
		if err := os.Rename(outputPath, exportPath); err != nil {
			return "", services.Wrap(services.ErrUpload, "jobs", "publish", "move artifact", err)
		}
		return exportPath, nil
	}

	m.setProgress(projectID, entry, 100*encodeShare, PhaseUploading, sampler)
	return m.uploader.Upload(ctx, outputPath, filename, func(p float64) {
		m.setProgress(projectID, entry, 100*encodeShare+p*(1-encodeShare), PhaseUploading, sampler)
	})
}

// Cancel terminates the live render for a project and waits for it to wind
// down. The project returns to the ready state.
func (m *Manager) Cancel(ctx context.Context, projectID string) error {
	m.mu.Lock()
	entry, ok := m.jobs[projectID]
	m.mu.Unlock()
	if !ok {
		return services.Wrap(services.ErrNotFound, "jobs", "cancel", fmt.Sprintf("no active render for project %s", projectID), nil)
	}

	entry.cancel()
	select {
	case <-entry.done:
	case <-ctx.Done():
		return ctx.Err()
	}
	m.logger.Info("render cancelled", logging.String(logging.FieldProjectID, projectID))
	return nil
}

// Status reports the project's render state, overlaying live progress when a
// job is running.
func (m *Manager) Status(ctx context.Context, projectID string) (Snapshot, error) {
	project, err := m.store.Get(ctx, projectID)
	if err != nil {
		return Snapshot{}, err
	}

	snapshot := Snapshot{
		ProjectID: projectID,
		Status:    project.Status,
		ExportURL: project.ExportURL,
		Error:     project.ErrorMessage,
	}
	if project.Status == projectstore.StatusExported {
		snapshot.Progress = 100
		snapshot.Phase = PhaseCompleted
	}

	m.mu.Lock()
	if entry, ok := m.jobs[projectID]; ok {
		snapshot.Progress = entry.progress
		snapshot.Phase = entry.phase
	}
	m.mu.Unlock()
	return snapshot, nil
}

// Wait blocks until the live job for a project finishes. It returns
// immediately when no job is running.
func (m *Manager) Wait(projectID string) {
	m.mu.Lock()
	entry, ok := m.jobs[projectID]
	m.mu.Unlock()
	if ok {
		<-entry.done
	}
}

func (m *Manager) setProgress(projectID string, entry *job, progress float64, phase Phase, sampler *logging.ProgressSampler) {
	m.mu.Lock()
	// Progress never moves backwards within a job.
	if progress > entry.progress {
		entry.progress = progress
	} else {
		progress = entry.progress
	}
	entry.phase = phase
	m.mu.Unlock()

	if sampler.ShouldLog(progress, string(phase)) {
		m.logger.Info("render progress",
			logging.String(logging.FieldProjectID, projectID),
			logging.String(logging.FieldPhase, string(phase)),
			logging.Float64("progress", progress),
		)
	}
}

func (m *Manager) cancelled(projectID string) {
	if err := m.store.UpdateStatus(context.Background(), projectID, projectstore.StatusReady); err != nil {
		m.logger.Warn("failed to reset project after cancel",
			logging.String(logging.FieldProjectID, projectID),
			logging.Error(err),
		)
	}
}

func (m *Manager) fail(projectID string, cause error) {
	background := context.Background()
	if err := m.store.UpdateStatus(background, projectID, projectstore.StatusFailed); err != nil {
		m.logger.Warn("failed to record failed status",
			logging.String(logging.FieldProjectID, projectID),
			logging.Error(err),
		)
	}
	if err := m.store.UpdateError(background, projectID, cause.Error()); err != nil {
		m.logger.Warn("failed to record render error",
			logging.String(logging.FieldProjectID, projectID),
			logging.Error(err),
		)
	}
	m.logger.Error("render failed",
		logging.String(logging.FieldProjectID, projectID),
		logging.Error(cause),
	)
}

func (m *Manager) clear(projectID string, entry *job) {
	m.mu.Lock()
	if current, ok := m.jobs[projectID]; ok && current == entry {
		delete(m.jobs, projectID)
	}
	m.mu.Unlock()
}

// exportFilename derives the artifact name from an optional project name,
// falling back to the project id. A short random suffix keeps repeated
// exports from colliding.
func exportFilename(projectName, projectID string) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")
	if name := sanitizeName(projectName); name != "" {
		return fmt.Sprintf("%s_%s.mp4", name, suffix[:6])
	}
	return fmt.Sprintf("video_%s_%s.mp4", projectID, suffix[:8])
}

func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('_')
		}
	}
	return strings.Trim(b.String(), "_")
}
