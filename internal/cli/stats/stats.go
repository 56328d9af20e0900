package stats

import "github.com/spf13/cobra"

var StatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "View your reading statistics",
}
