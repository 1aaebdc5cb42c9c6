package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	site "github.com/42arch/site"
	"github.com/42arch/site/views"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the website",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLogger()
		if err != nil {
			return err
		}
		app, err := site.New(appConfig, views.Funcs(), site.WithLogger(log))
		if err != nil {
			return err
		}
		defer app.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return app.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":3000", "listen address")
	rootCmd.AddCommand(serveCmd)
}
