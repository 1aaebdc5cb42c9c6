package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	site "github.com/42arch/site"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	cfgFile   string
	appConfig site.SiteConfig
)

var rootCmd = &cobra.Command{
	Use:   "site",
	Short: "42arch personal website",
	Long: `site serves the 42arch website, renders it to static files, and
imports markdown content into its SQLite store.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", site.EnvOr("SITE_CONFIG", ""), "config file (default is ./site.yaml)")
	rootCmd.PersistentFlags().String("log_level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log_human", false, "human readable console logs")
}

// configKeys are the settings read from the config file, SITE_* variables
// and flags, in increasing priority.
var configKeys = map[string]any{
	"name":           "42arch",
	"url":            "http://localhost:3000",
	"description":    "42Arch, Dan's personal site.",
	"author":         "Dan",
	"addr":           ":3000",
	"database_path":  "data/site.db",
	"content_dir":    "content",
	"static_dir":     "public",
	"admin_password": "",
	"session_secret": "",
	"cookie_secure":  false,
	"post_cache_ttl": "5m",
	"log_level":      "info",
	"log_human":      false,
}

func initializeConfig(cmd *cobra.Command) error {
	v := viper.New()
	for k, def := range configKeys {
		v.SetDefault(k, def)
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("site")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("SITE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || cfgFile != "" {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(&appConfig); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	return nil
}

func newLogger() (zerolog.Logger, error) {
	return site.NewLogger(appConfig.LogLevel, appConfig.LogHuman, os.Stderr)
}
