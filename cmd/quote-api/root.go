package main

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use: "quote-api",
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(runCmd)
}
