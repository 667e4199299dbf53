package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"clipforge/internal/config"
	"clipforge/internal/jobs"
	"clipforge/internal/projectstore"
	"clipforge/internal/render"
)

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var resolution string
	var quality string
	var name string
	var noCaptions bool

	cmd := &cobra.Command{
		Use:   "render <project-id>",
		Short: "Render and export a project",
		Long: "Compile the project's edit configuration, run the ffmpeg encode, and export " +
			"the artifact. Interrupting with Ctrl-C cancels the encode and returns the " +
			"project to the ready state.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *projectstore.Store) error {
				manager := newManager(cfg, store, newLogger(cfg))

				opts := jobs.Options{
					ProjectName: name,
					Resolution:  render.Resolution(resolution),
					Quality:     render.Quality(quality),
				}
				if noCaptions {
					burn := false
					opts.BurnCaptions = &burn
				}

				signalCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
				defer stop()

				projectID := args[0]
				filename, err := manager.StartRender(signalCtx, projectID, opts)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Rendering %s -> %s\n", projectID, filename)

				done := make(chan struct{})
				go func() {
					manager.Wait(projectID)
					close(done)
				}()

				interactive := shouldColorize(out)
				ticker := time.NewTicker(300 * time.Millisecond)
				defer ticker.Stop()
				lastReported := -1.0

			wait:
				for {
					select {
					case <-done:
						break wait
					case <-signalCtx.Done():
						fmt.Fprintln(out, "\nCancelling render...")
						if err := manager.Cancel(context.Background(), projectID); err != nil {
							return err
						}
						<-done
						fmt.Fprintln(out, "Render cancelled; project is ready to resume")
						return nil
					case <-ticker.C:
						snapshot, err := manager.Status(signalCtx, projectID)
						if err != nil {
							continue
						}
						lastReported = reportProgress(out, snapshot, interactive, lastReported)
					}
				}

				snapshot, err := manager.Status(context.Background(), projectID)
				if err != nil {
					return err
				}
				if interactive && lastReported >= 0 {
					fmt.Fprintln(out)
				}
				if snapshot.Status == projectstore.StatusFailed {
					return fmt.Errorf("render failed: %s", snapshot.Error)
				}
				fmt.Fprintf(out, "Exported to %s\n", snapshot.ExportURL)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&resolution, "resolution", "", "Target resolution (original, 1080p, 720p, 480p)")
	cmd.Flags().StringVar(&quality, "quality", "", "Encode quality (high, medium, low)")
	cmd.Flags().StringVar(&name, "name", "", "Project name used to derive the output filename")
	cmd.Flags().BoolVar(&noCaptions, "no-captions", false, "Skip burning captions into the video")
	return cmd
}

// reportProgress writes one progress update. Interactive terminals get an
// overwritten line; everything else gets a line per 10 percent step.
func reportProgress(out io.Writer, snapshot jobs.Snapshot, interactive bool, last float64) float64 {
	if interactive {
		fmt.Fprintf(out, "\r  %-10s %5.1f%%", phaseLabel(string(snapshot.Phase)), snapshot.Progress)
		return snapshot.Progress
	}
	if snapshot.Progress >= last+10 {
		fmt.Fprintf(out, "  %-10s %5.1f%%\n", phaseLabel(string(snapshot.Phase)), snapshot.Progress)
		return snapshot.Progress
	}
	return last
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status <project-id>",
		Short: "Show a project's render status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *projectstore.Store) error {
				project, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Project: %s\n", project.ID)
				fmt.Fprintf(out, "Status:  %s\n", colorizeStatus(project.Status, shouldColorize(out)))
				if project.ExportURL != "" {
					fmt.Fprintf(out, "Export:  %s\n", project.ExportURL)
				}
				if project.ErrorMessage != "" {
					fmt.Fprintf(out, "Error:   %s\n", project.ErrorMessage)
				}
				return nil
			})
		},
	}
}

func newCancelCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <project-id>",
		Short: "Return a stuck rendering project to the ready state",
		Long: "Reset a project left in the rendering state by an interrupted render session. " +
			"A live render is cancelled with Ctrl-C from the render command itself.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *projectstore.Store) error {
				project, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if project.Status != projectstore.StatusRendering {
					return fmt.Errorf("project %s is not rendering (status %s)", project.ID, project.Status)
				}
				if err := store.UpdateStatus(cmd.Context(), project.ID, projectstore.StatusReady); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Project %s returned to ready\n", project.ID)
				return nil
			})
		},
	}
}
