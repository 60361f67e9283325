package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"freck/internal/errors"
)

var fileFormat string

var fileCmd = &cobra.Command{
	Use:   "file <path>",
	Short: "Show the ranking details of a single file",
	Long: `Show one file's frecency score, current blob identity and recorded
commit subjects. The path must exist in the committed tree at HEAD; a new
or uncommitted file is reported as not-in-snapshot.

Examples:
  freck file internal/server/server.go
  freck file --format=json main.go`,
	Args: cobra.ExactArgs(1),
	Run:  runFile,
}

func init() {
	fileCmd.Flags().StringVar(&fileFormat, "format", "human", "Output format (json, human)")
	rootCmd.AddCommand(fileCmd)
}

func runFile(cmd *cobra.Command, args []string) {
	e, _ := mustSetup()
	defer func() { _ = e.Close() }()

	file, err := e.File(context.Background(), args[0])
	if err != nil {
		if errors.HasCode(err, errors.FileNotInSnapshot) {
			fmt.Fprintf(os.Stderr, "%s is not in the committed tree at HEAD\n", args[0])
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}

	if fileFormat == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(file); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding output: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Printf("file:     %s\n", file.Name)
	fmt.Printf("identity: %s\n", file.Identity)
	fmt.Printf("score:    %.4f\n", file.Score)
	for _, subject := range file.Subjects {
		fmt.Printf("  - %s\n", subject)
	}
}
