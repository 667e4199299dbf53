package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"clipforge/internal/presets"
)

func newPresetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "presets [category]",
		Short:       "List animation presets",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		Args:        cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			categories := presets.Categories()
			if len(args) == 1 {
				requested := presets.Category(strings.ToLower(strings.TrimSpace(args[0])))
				if len(presets.IDs(requested)) == 0 {
					return fmt.Errorf("unknown preset category %q", args[0])
				}
				categories = []presets.Category{requested}
			}

			rows := make([][]string, 0, len(categories))
			for _, category := range categories {
				rows = append(rows, []string{
					string(category),
					strings.Join(presets.IDs(category), ", "),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Category", "Presets"},
				rows,
				[]columnAlignment{alignLeft, alignLeft},
			))
			return nil
		},
	}
}
