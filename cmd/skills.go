package cmd

import (
	"github.com/adalundhe/collectc/core/collection"
	"github.com/spf13/cobra"
)

var (
	skillsMeta   string
	skillsDir    string
	skillsOut    string
	skillsSortBy string
	skillsWrite  bool
	skillsCheck  bool
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Compile or verify the skills collection",
	Long: `Compile the skill records into the collection artifact (--write), or
verify that the existing artifact still matches the sources (--check).`,
	RunE: runSkills,
}

func init() {
	rootCmd.AddCommand(skillsCmd)
	skillsCmd.Flags().StringVar(&skillsMeta, "meta", "", "Path to the collection metadata JSON file")
	skillsCmd.Flags().StringVar(&skillsDir, "skills-dir", "", "Root directory of skill records")
	skillsCmd.Flags().StringVar(&skillsOut, "out", "", "Artifact output path")
	skillsCmd.Flags().StringVar(&skillsSortBy, "sort-by", "", "Record sort key (id, skillName)")
	skillsCmd.Flags().BoolVar(&skillsWrite, "write", false, "Write the compiled artifact")
	skillsCmd.Flags().BoolVar(&skillsCheck, "check", false, "Verify the artifact matches the sources")
}

func runSkills(cmd *cobra.Command, args []string) error {
	return runCompile(compileInput{
		variant:  collection.Skills,
		defaults: cfg.Skills,
		meta:     skillsMeta,
		dir:      skillsDir,
		out:      skillsOut,
		sortBy:   skillsSortBy,
		write:    skillsWrite,
		check:    skillsCheck,
	})
}
