package main

import (
	"fmt"
	"sort"

	"bundledit/internal/glossary"
	"bundledit/internal/store"

	"github.com/spf13/cobra"
)

// NewGlossaryCmd creates the glossary command group
func NewGlossaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "glossary",
		Short: "Inspect the glossary and where its terms occur",
	}

	cmd.AddCommand(newGlossaryListCmd())
	cmd.AddCommand(newGlossaryScanCmd())

	return cmd
}

func loadGlossary() (*glossary.Glossary, error) {
	if cfg.Files.Glossary == "" {
		return nil, fmt.Errorf("no glossary configured; set files.glossary or pass --glossary")
	}
	return glossary.LoadFile(cfg.Files.Glossary)
}

func newGlossaryListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List glossary terms and their fixed translations",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGlossary()
			if err != nil {
				return err
			}
			for _, e := range g.Entries() {
				fmt.Printf("%s — %s\n", e.Term, e.Translation)
			}
			fmt.Printf("%d terms\n", g.Len())
			return nil
		},
	}
}

func newGlossaryScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan <bundle.csv>",
		Short: "Count which glossary terms occur in a bundle's source texts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGlossary()
			if err != nil {
				return err
			}
			t, err := store.ReadFile(args[0])
			if err != nil {
				return err
			}

			counts := make(map[string]int)
			for _, row := range t.Rows() {
				for _, term := range g.Scan(row.Source) {
					counts[term]++
				}
			}
			if len(counts) == 0 {
				fmt.Println("No glossary terms found.")
				return nil
			}

			terms := make([]string, 0, len(counts))
			for term := range counts {
				terms = append(terms, term)
			}
			sort.Strings(terms)
			for _, term := range terms {
				translation, _ := g.TranslationFor(term)
				fmt.Printf("%s — %s: %d rows\n", term, translation, counts[term])
			}
			return nil
		},
	}
}
