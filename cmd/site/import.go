package main

import (
	"os"

	"github.com/spf13/cobra"

	site "github.com/42arch/site"
	"github.com/42arch/site/content"
)

var (
	importRepo string
	importRef  string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import markdown posts and projects into the database",
	Long: `import reads posts/ and projects/ from content_dir, or from a shallow
clone of --repo, and upserts them into the SQLite store. Project covers are
resized into static_dir/uploads.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLogger()
		if err != nil {
			return err
		}

		dir := appConfig.ContentDir
		if importRepo != "" {
			cloned, cleanup, err := content.Clone(cmd.Context(), importRepo, importRef)
			if err != nil {
				return err
			}
			defer cleanup()
			dir = cloned
			log.Info().Str("repo", importRepo).Str("ref", importRef).Msg("content cloned")
		}

		store, err := site.NewStore(appConfig.DatabasePath)
		if err != nil {
			return err
		}
		defer store.Close()

		im := &content.Importer{Store: store, StaticDir: appConfig.StaticDir, Log: log}
		_, err = im.Import(cmd.Context(), os.DirFS(dir))
		return err
	},
}

func init() {
	importCmd.Flags().StringVar(&importRepo, "repo", "", "git repository URL to import from")
	importCmd.Flags().StringVar(&importRef, "ref", "", "branch to clone (default: remote HEAD)")
	importCmd.Flags().String("content_dir", "content", "markdown content root")
	rootCmd.AddCommand(importCmd)
}
