package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "objkit",
	Short: "Storage-service HTTP calls from the terminal.",
	Long: `objkit issues requests against HTTP object-storage services and
normalizes every outcome into a single result shape: decoded response
data on success, a structured storage error otherwise.

Service URL, default headers, and transport settings come from
.objkit.yaml (current directory or $HOME); values support ${VAR}
expansion and .env files.`,
	SilenceUsage: true,
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitUsageError)
	}
}

func init() {
	rootCmd.AddCommand(newCallCmd("GET"))
	rootCmd.AddCommand(newCallCmd("POST"))
	rootCmd.AddCommand(newCallCmd("PUT"))
	rootCmd.AddCommand(newCallCmd("DELETE"))
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}
