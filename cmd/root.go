package cmd

import (
	"github.com/adalundhe/collectc/core/config"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "collectc",
	Short: "Collectc - deterministic skill collection compiler",
	Long: `Collectc compiles a directory of canonical JSON records into a single
deterministic collection artifact, and verifies that a previously written
artifact still matches the current sources.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		return err
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to collectc.yaml")
}
