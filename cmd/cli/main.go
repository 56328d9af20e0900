// Command bookstreak is the CLI client for the bookstreak API.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bookstreak/internal/cli/auth"
	"bookstreak/internal/cli/badges"
	"bookstreak/internal/cli/books"
	"bookstreak/internal/cli/reading"
	"bookstreak/internal/cli/stats"
)

var rootCmd = &cobra.Command{
	Use:   "bookstreak",
	Short: "bookstreak - track your daily reading habit",
	Long:  "CLI client for the bookstreak reading tracker: log readings, keep streaks, unlock badges",
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("server", "localhost", "API server host")
	rootCmd.PersistentFlags().Int("port", 8080, "API server port")
	viper.BindPFlag("server.host", rootCmd.PersistentFlags().Lookup("server"))
	viper.BindPFlag("server.port", rootCmd.PersistentFlags().Lookup("port"))

	rootCmd.AddCommand(auth.AuthCmd)
	rootCmd.AddCommand(books.BooksCmd)
	rootCmd.AddCommand(reading.ReadingCmd)
	rootCmd.AddCommand(stats.StatsCmd)
	rootCmd.AddCommand(badges.BadgesCmd)
}

// initConfig loads ~/.bookstreak/config.yaml when present. The file holds
// the saved auth token between invocations.
func initConfig() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}

	viper.AddConfigPath(filepath.Join(home, ".bookstreak"))
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.ReadInConfig()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
