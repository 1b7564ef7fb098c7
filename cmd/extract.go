package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extracts statement(s)",
	Long: `Extracts a given statement or every statement in a folder
and prints the categorized transactions as JSON.`,
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	ext, err := newExtractor()
	if err != nil {
		return err
	}
	return ext.ExecuteAgainstPath(viper.GetString("target"), os.Stdout)
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringP("folder", "f", ".", "File or folder in which ledgr will scan for statements")
	viper.BindPFlag("target", extractCmd.Flags().Lookup("folder"))
}
