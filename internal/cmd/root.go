// Package cmd implements the loanchecklist command line.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nhle/loan-checklist/internal/model"
)

var (
	cfgFile string
	cfg     *model.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "loanchecklist",
	Short: "Loan checklist and document workflow service",
	Long: `loanchecklist materializes per-loan checklists from the template
catalog, tracks action items and document reviews, and serves the
checklist API used by the loan pipeline UI.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := model.LoadConfig(cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", model.DefaultConfigPath(), "config file")
}
