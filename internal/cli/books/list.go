package books

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List your tracked books",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetString("status")

		token := viper.GetString("user.token")
		if token == "" {
			return fmt.Errorf("not logged in. Please run: bookstreak auth login")
		}

		serverURL := fmt.Sprintf("http://%s:%d/api/v1/books?status=%s",
			viper.GetString("server.host"),
			viper.GetInt("server.port"),
			status)

		req, _ := http.NewRequest("GET", serverURL, nil)
		req.Header.Set("Authorization", "Bearer "+token)

		client := &http.Client{}
		resp, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("failed to list books: %w", err)
		}
		defer resp.Body.Close()

		respBody, _ := io.ReadAll(resp.Body)
		var result map[string]interface{}
		json.Unmarshal(respBody, &result)

		if result["success"] != true {
			return fmt.Errorf("failed to list books: %v", result["error"])
		}

		data := result["data"].(map[string]interface{})
		items, _ := data["books"].([]interface{})
		if len(items) == 0 {
			fmt.Println("No books yet. Add one with: bookstreak books add")
			return nil
		}

		for _, item := range items {
			book := item.(map[string]interface{})
			fmt.Printf("%-38s %-30s %4.0f/%4.0f  [%s]\n",
				book["id"],
				book["title"],
				book["current_page"],
				book["total_pages"],
				book["status"])
		}
		return nil
	},
}

func init() {
	listCmd.Flags().String("status", "", "Filter by status (active, completed, paused)")
	BooksCmd.AddCommand(listCmd)
}
