package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var statusFormat string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the repository status fingerprint",
	Long: `Show the repository's current state: HEAD commit, whether the working
tree carries uncommitted changes, and the status fingerprint callers use
as a cache-invalidation key.`,
	Run: runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&statusFormat, "format", "human", "Output format (json, human)")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) {
	e, _ := mustSetup()
	defer func() { _ = e.Close() }()

	state, err := e.Status(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if statusFormat == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(state); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding output: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Printf("head:        %s\n", state.HeadCommit)
	fmt.Printf("dirty:       %v\n", state.Dirty)
	fmt.Printf("fingerprint: %s\n", state.Fingerprint)
}
