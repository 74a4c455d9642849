package cmd

import (
	"github.com/adalundhe/collectc/core/collection"
	"github.com/spf13/cobra"
)

var (
	compMeta   string
	compDir    string
	compOut    string
	compSortBy string
	compWrite  bool
	compCheck  bool
)

var competenciesCmd = &cobra.Command{
	Use:   "competencies",
	Short: "Compile or verify the competencies collection",
	Long: `Compile the competency records into the collection artifact (--write),
or verify that the existing artifact still matches the sources (--check).`,
	RunE: runCompetencies,
}

func init() {
	rootCmd.AddCommand(competenciesCmd)
	competenciesCmd.Flags().StringVar(&compMeta, "meta", "", "Path to the collection metadata JSON file")
	competenciesCmd.Flags().StringVar(&compDir, "competencies-dir", "", "Root directory of competency records")
	competenciesCmd.Flags().StringVar(&compOut, "out", "", "Artifact output path")
	competenciesCmd.Flags().StringVar(&compSortBy, "sort-by", "", "Record sort key (id, name)")
	competenciesCmd.Flags().BoolVar(&compWrite, "write", false, "Write the compiled artifact")
	competenciesCmd.Flags().BoolVar(&compCheck, "check", false, "Verify the artifact matches the sources")
}

func runCompetencies(cmd *cobra.Command, args []string) error {
	return runCompile(compileInput{
		variant:  collection.Competencies,
		defaults: cfg.Competencies,
		meta:     compMeta,
		dir:      compDir,
		out:      compOut,
		sortBy:   compSortBy,
		write:    compWrite,
		check:    compCheck,
	})
}
