package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ontography",
	Short: "ontography — an interactive 3D map of concepts and their weak ties",
	Long: Brand.Sprint("ontography") + " — hover a node to see its ties, click the legend to spotlight a category\n" +
		Subtle.Sprint("Drag to orbit • Scroll to zoom • H toggles the legend • Esc leaves the view, Enter returns"),
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runView()
	},
}

func init() {
	rootCmd.AddCommand(
		viewCmd(),
		legendCmd(),
		checkCmd(),
	)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
