package main

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"bundledit/internal/filter"
	"bundledit/internal/store"

	"github.com/gobwas/glob"
	"github.com/spf13/cobra"
)

// NewStatsCmd creates the stats command
func NewStatsCmd() *cobra.Command {
	var byType bool

	cmd := &cobra.Command{
		Use:   "stats <bundle.csv|pattern>...",
		Short: "Report translation progress for bundles",
		Long:  `Report row counts and translation progress for one or more bundle files. Arguments may be paths or glob patterns like "locale/**/*.csv".`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := expandPatterns(args)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return fmt.Errorf("no bundle files matched")
			}

			var totalRows, totalUntranslated int
			for _, path := range paths {
				t, err := store.ReadFile(path)
				if err != nil {
					fmt.Printf("%s: %v\n", path, err)
					continue
				}
				s := filter.Stats(t)
				totalRows += s.Total
				totalUntranslated += s.Untranslated
				fmt.Printf("%s: %d rows, %d untranslated (%d%% translated)\n",
					path, s.Total, s.Untranslated, s.Percent)

				if byType {
					printTypeBreakdown(t)
				}
			}

			if len(paths) > 1 {
				percent := 0
				if totalRows > 0 {
					percent = (totalRows - totalUntranslated) * 100 / totalRows
				}
				fmt.Printf("total: %d rows, %d untranslated (%d%% translated)\n",
					totalRows, totalUntranslated, percent)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&byType, "by-type", "t", false, "Break counts down per file type")

	return cmd
}

func printTypeBreakdown(t *store.Table) {
	for _, fileType := range filter.FileTypes(t) {
		var total, untranslated int
		for _, row := range t.Rows() {
			if !strings.EqualFold(row.FileType, fileType) {
				continue
			}
			total++
			if row.Untranslated() {
				untranslated++
			}
		}
		fmt.Printf("  %s: %d rows, %d untranslated\n", fileType, total, untranslated)
	}
}

// expandPatterns resolves each argument to bundle files. Plain paths pass
// through; arguments with glob metacharacters are matched against the files
// under the current directory.
func expandPatterns(args []string) ([]string, error) {
	var paths []string
	seen := make(map[string]bool)
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			paths = append(paths, path)
		}
	}

	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[{") {
			add(arg)
			continue
		}

		g, err := glob.Compile(filepath.ToSlash(arg), '/')
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
		}

		err = filepath.WalkDir(".", func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			if g.Match(filepath.ToSlash(path)) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return paths, nil
}
