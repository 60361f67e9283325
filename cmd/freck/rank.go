package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	rankFormat string
	rankLimit  int
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank repository files by frecency",
	Long: `Rank the repository's files by frecency: the sum of exponentially
time-decayed contributions from every commit that touched each file.

Examples:
  freck rank
  freck rank --limit=10
  freck rank --format=json`,
	Run: runRank,
}

func init() {
	rankCmd.Flags().StringVar(&rankFormat, "format", "human", "Output format (json, human)")
	rankCmd.Flags().IntVar(&rankLimit, "limit", 20, "Maximum files to show (0 = all)")
	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, args []string) {
	e, _ := mustSetup()
	defer func() { _ = e.Close() }()

	ranked, err := e.TopFiles(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error ranking files: %v\n", err)
		os.Exit(1)
	}

	if rankLimit > 0 && len(ranked) > rankLimit {
		ranked = ranked[:rankLimit]
	}

	if rankFormat == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(ranked); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding output: %v\n", err)
			os.Exit(1)
		}
		return
	}

	for i, file := range ranked {
		fmt.Printf("%3d. %-50s %8.4f\n", i+1, file.Name, file.Score)
	}
}
