package books

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Start tracking a new book",
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		author, _ := cmd.Flags().GetString("author")
		pages, _ := cmd.Flags().GetInt("pages")

		if title == "" {
			return fmt.Errorf("--title is required")
		}
		if pages < 1 {
			return fmt.Errorf("--pages must be at least 1")
		}

		token := viper.GetString("user.token")
		if token == "" {
			return fmt.Errorf("not logged in. Please run: bookstreak auth login")
		}

		body := map[string]interface{}{
			"title":       title,
			"author":      author,
			"total_pages": pages,
		}

		jsonBody, _ := json.Marshal(body)
		serverURL := fmt.Sprintf("http://%s:%d/api/v1/books",
			viper.GetString("server.host"),
			viper.GetInt("server.port"))

		req, _ := http.NewRequest("POST", serverURL, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		client := &http.Client{}
		resp, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("failed to add book: %w", err)
		}
		defer resp.Body.Close()

		respBody, _ := io.ReadAll(resp.Body)
		var result map[string]interface{}
		json.Unmarshal(respBody, &result)

		if result["success"] != true {
			return fmt.Errorf("failed to add book: %v", result["error"])
		}

		data := result["data"].(map[string]interface{})
		book := data["book"].(map[string]interface{})

		fmt.Println("✓ Book added!")
		fmt.Printf("  Title: %s\n", book["title"])
		fmt.Printf("  Pages: %v\n", book["total_pages"])
		fmt.Printf("  ID:    %s\n", book["id"])
		return nil
	},
}

func init() {
	addCmd.Flags().String("title", "", "Book title")
	addCmd.Flags().String("author", "", "Book author")
	addCmd.Flags().Int("pages", 0, "Total page count")
	BooksCmd.AddCommand(addCmd)
}
