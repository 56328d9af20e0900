package reading

import "github.com/spf13/cobra"

var ReadingCmd = &cobra.Command{
	Use:   "reading",
	Short: "Log and review reading activity",
}
