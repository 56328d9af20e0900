package books

import "github.com/spf13/cobra"

var BooksCmd = &cobra.Command{
	Use:   "books",
	Short: "Manage your tracked books",
}
