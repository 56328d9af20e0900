package badges

import "github.com/spf13/cobra"

var BadgesCmd = &cobra.Command{
	Use:   "badges",
	Short: "View your achievement badges",
}
