package main

import (
	"github.com/spf13/cobra"

	"freck/internal/version"
)

var (
	// repoFlag overrides repository discovery with an explicit root
	repoFlag string
)

var rootCmd = &cobra.Command{
	Use:   "freck",
	Short: "freck - frecency ranking for git repositories",
	Long: `freck ranks the files of a git repository by a frecency score that blends
how often and how recently each file changed, derived entirely from commit
history. Code-search and browsing tools use the ranking to surface the
files a developer is most likely working on right now.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("freck version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&repoFlag, "repo", "",
		"Repository root (default: discovered from the working directory)")
}
