package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"clipforge/internal/config"
	"clipforge/internal/edit"
	"clipforge/internal/editconfig"
	"clipforge/internal/generation"
	"clipforge/internal/projectstore"
)

func newProjectCommand(ctx *commandContext) *cobra.Command {
	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Manage edit projects",
	}

	projectCmd.AddCommand(newProjectCreateCommand(ctx))
	projectCmd.AddCommand(newProjectListCommand(ctx))
	projectCmd.AddCommand(newProjectShowCommand(ctx))
	projectCmd.AddCommand(newProjectApplyCommand(ctx))
	projectCmd.AddCommand(newProjectGenerateCommand(ctx))

	return projectCmd
}

func newProjectCreateCommand(ctx *commandContext) *cobra.Command {
	var filename string
	var width, height int
	var duration float64

	cmd := &cobra.Command{
		Use:   "create <video-url>",
		Short: "Create a project with a defaulted edit configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			videoURL := strings.TrimSpace(args[0])
			if videoURL == "" {
				return fmt.Errorf("video url is required")
			}
			if duration <= 0 {
				return fmt.Errorf("--duration must be positive")
			}
			if filename == "" {
				filename = deriveFilename(videoURL)
			}

			return ctx.withStore(func(cfg *config.Config, store *projectstore.Store) error {
				projectID := uuid.New().String()
				tree := editconfig.New(projectID, uuid.New().String(), videoURL, editconfig.VideoMetadata{
					Width:    width,
					Height:   height,
					Duration: duration,
				})
				project, err := store.Create(cmd.Context(), projectID, filename, tree)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created project %s (%s)\n", project.ID, project.Filename)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&filename, "filename", "", "Original upload filename (defaults to the URL basename)")
	cmd.Flags().IntVar(&width, "width", 1920, "Source video width in pixels")
	cmd.Flags().IntVar(&height, "height", 1080, "Source video height in pixels")
	cmd.Flags().Float64Var(&duration, "duration", 0, "Source video duration in seconds")
	_ = cmd.MarkFlagRequired("duration")
	return cmd
}

func newProjectListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *projectstore.Store) error {
				projects, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(projects) == 0 {
					fmt.Fprintln(out, "No projects")
					return nil
				}
				colorize := shouldColorize(out)
				rows := make([][]string, 0, len(projects))
				for _, project := range projects {
					rows = append(rows, []string{
						project.ID,
						project.Filename,
						colorizeStatus(project.Status, colorize),
						project.UpdatedAt.Local().Format(time.DateTime),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"ID", "Filename", "Status", "Updated"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
				))
				return nil
			})
		},
	}
}

func newProjectShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <project-id>",
		Short: "Show a project and its edit configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *projectstore.Store) error {
				project, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if asJSON {
					data, err := json.MarshalIndent(project.Config, "", "  ")
					if err != nil {
						return fmt.Errorf("encode configuration: %w", err)
					}
					fmt.Fprintln(out, string(data))
					return nil
				}

				tree := project.Config
				title := "-"
				if tree.Tracks.Text.Title != nil {
					title = tree.Tracks.Text.Title.Content
				}
				fmt.Fprintf(out, "Project:    %s\n", project.ID)
				fmt.Fprintf(out, "Filename:   %s\n", project.Filename)
				fmt.Fprintf(out, "Status:     %s\n", colorizeStatus(project.Status, shouldColorize(out)))
				fmt.Fprintf(out, "Duration:   %.2fs\n", tree.Source.Video.Duration)
				fmt.Fprintf(out, "Title:      %s\n", title)
				fmt.Fprintf(out, "Captions:   %d\n", len(tree.Tracks.Text.Captions))
				fmt.Fprintf(out, "Highlights: %d\n", len(tree.Tracks.Text.Highlights))
				if project.ExportURL != "" {
					fmt.Fprintf(out, "Export:     %s\n", project.ExportURL)
				}
				if project.ErrorMessage != "" {
					fmt.Fprintf(out, "Error:      %s\n", project.ErrorMessage)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full configuration tree as JSON")
	return cmd
}

func newProjectApplyCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply <project-id> <instructions-file>",
		Short: "Apply a batch of edit instructions",
		Long: "Apply a JSON array of edit instructions to the project's configuration. " +
			"Each instruction is validated and applied independently; pass - to read from stdin.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd.InOrStdin(), args[1])
			if err != nil {
				return err
			}
			instructions, err := edit.DecodeBatch(data)
			if err != nil {
				return err
			}

			return ctx.withStore(func(cfg *config.Config, store *projectstore.Store) error {
				project, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				tree, result := edit.ApplyBatch(project.Config, instructions)
				if result.AnyApplied() {
					if err := store.UpdateConfig(cmd.Context(), project.ID, tree); err != nil {
						return err
					}
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Applied %d of %d instructions\n", len(result.Applied), len(instructions))
				for _, rejection := range result.Rejected {
					fmt.Fprintf(out, "  rejected [%d] %s: %s\n", rejection.Index, rejection.Instruction.Action, rejection.Reason)
				}
				return nil
			})
		},
	}
	return cmd
}

func newProjectGenerateCommand(ctx *commandContext) *cobra.Command {
	var firstRun bool
	var fromWords bool

	cmd := &cobra.Command{
		Use:   "generate <project-id> <payload-file>",
		Short: "Merge a generated caption payload into the configuration",
		Long: "Merge a generated title/segment payload into the project's configuration tree. " +
			"With --words the file is a word-level transcript that is grouped into captions first. " +
			"Pass - to read from stdin.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd.InOrStdin(), args[1])
			if err != nil {
				return err
			}

			return ctx.withStore(func(cfg *config.Config, store *projectstore.Store) error {
				project, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				var tree editconfig.Tree
				if fromWords {
					var words []generation.Word
					if err := json.Unmarshal(data, &words); err != nil {
						return fmt.Errorf("decode transcript words: %w", err)
					}
					tree = project.Config.Clone()
					tree.Tracks.Text.Captions = generation.GroupWords(words)
				} else {
					payload, err := generation.DecodePayload(data)
					if err != nil {
						return err
					}
					merged, err := generation.Merge(project.Config, payload, firstRun || project.Status == projectstore.StatusPending)
					if err != nil {
						return err
					}
					tree = merged
				}

				if err := store.UpdateConfig(cmd.Context(), project.ID, tree); err != nil {
					return err
				}
				if project.Status == projectstore.StatusPending {
					if err := store.UpdateStatus(cmd.Context(), project.ID, projectstore.StatusReady); err != nil {
						return err
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Merged %d captions into project %s\n", len(tree.Tracks.Text.Captions), project.ID)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&firstRun, "first-run", false, "Treat the payload as the first generation cycle")
	cmd.Flags().BoolVar(&fromWords, "words", false, "Group a word-level transcript into captions")
	return cmd
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func deriveFilename(videoURL string) string {
	trimmed := strings.TrimRight(videoURL, "/")
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	if idx := strings.IndexAny(trimmed, "?#"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	if trimmed == "" {
		return "video.mp4"
	}
	return trimmed
}
