package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "finis-oculus",
	Short: "Finis Oculus market sentiment services",
	Long: `Finis Oculus serves market data, watchlists and profiles (api-service),
shows watchlists in the terminal (dashboard) and manages the schema (migrate).
Each is built from its own directory under cmd/.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your CLI '%s'", err)
		os.Exit(1)
	}
}
