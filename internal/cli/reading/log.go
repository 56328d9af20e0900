package reading

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Log pages read today",
	Long:  "Log a reading session - keeps your streak alive and may unlock badges!",
	RunE: func(cmd *cobra.Command, args []string) error {
		bookID, _ := cmd.Flags().GetString("book-id")
		pages, _ := cmd.Flags().GetInt("pages")
		notes, _ := cmd.Flags().GetString("notes")

		if bookID == "" {
			return fmt.Errorf("--book-id is required")
		}
		if pages < 1 {
			return fmt.Errorf("--pages must be at least 1")
		}

		token := viper.GetString("user.token")
		if token == "" {
			return fmt.Errorf("not logged in. Please run: bookstreak auth login")
		}

		body := map[string]interface{}{
			"book_id":    bookID,
			"pages_read": pages,
			"notes":      notes,
		}

		jsonBody, _ := json.Marshal(body)
		serverURL := fmt.Sprintf("http://%s:%d/api/v1/readings",
			viper.GetString("server.host"),
			viper.GetInt("server.port"))

		req, _ := http.NewRequest("POST", serverURL, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		client := &http.Client{}
		resp, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("failed to log reading: %w", err)
		}
		defer resp.Body.Close()

		respBody, _ := io.ReadAll(resp.Body)
		var result map[string]interface{}
		json.Unmarshal(respBody, &result)

		if result["success"] != true {
			return fmt.Errorf("failed to log reading: %v", result["error"])
		}

		data := result["data"].(map[string]interface{})
		entry := data["reading"].(map[string]interface{})
		book := data["book"].(map[string]interface{})

		fmt.Println("✓ Reading logged!")
		fmt.Printf("  Pages: %v (%v -> %v)\n", entry["pages_read"], entry["from_page"], entry["to_page"])
		fmt.Printf("  Book:  %s [%s]\n", book["title"], book["status"])

		if newBadges, ok := data["new_badges"].([]interface{}); ok && len(newBadges) > 0 {
			fmt.Println("\n🎉 New badges unlocked:")
			for _, nb := range newBadges {
				badge := nb.(map[string]interface{})
				fmt.Printf("  %s %s - %s\n", badge["icon"], badge["name"], badge["unlock_message"])
			}
		}
		return nil
	},
}

func init() {
	logCmd.Flags().String("book-id", "", "Book ID")
	logCmd.Flags().Int("pages", 0, "Pages read")
	logCmd.Flags().String("notes", "", "Optional session notes")
	ReadingCmd.AddCommand(logCmd)
}
