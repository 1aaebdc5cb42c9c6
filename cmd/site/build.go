package main

import (
	"os"

	"github.com/spf13/cobra"

	site "github.com/42arch/site"
	"github.com/42arch/site/content"
	"github.com/42arch/site/views"
)

var (
	buildOut         string
	buildFromContent bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render the website to static files",
	Long: `build renders every page into the output directory. By default posts
and projects come from the SQLite store; with --from-content they are read
straight from the content directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLogger()
		if err != nil {
			return err
		}
		opts := []site.Option{site.WithLogger(log)}
		if buildFromContent {
			fsys := os.DirFS(appConfig.ContentDir)
			im := &content.Importer{StaticDir: appConfig.StaticDir, Log: log}
			if _, err := im.WriteCovers(cmd.Context(), fsys); err != nil {
				return err
			}
			opts = append(opts, site.WithProvider(content.NewProvider(fsys)))
		}

		app, err := site.New(appConfig, views.Funcs(), opts...)
		if err != nil {
			return err
		}
		defer app.Close()
		return app.Build(cmd.Context(), buildOut)
	},
}

func init() {
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "dist", "output directory")
	buildCmd.Flags().BoolVar(&buildFromContent, "from-content", false, "read posts and projects from content_dir instead of the database")
	buildCmd.Flags().String("content_dir", "content", "markdown content root")
	rootCmd.AddCommand(buildCmd)
}
