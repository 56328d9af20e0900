package badges

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
	Short: "List all badges and your progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		unlockedOnly, _ := cmd.Flags().GetBool("unlocked")

		token := viper.GetString("user.token")
		if token == "" {
			return fmt.Errorf("not logged in. Please run: bookstreak auth login")
		}

		serverURL := fmt.Sprintf("http://%s:%d/api/v1/badges",
			viper.GetString("server.host"),
			viper.GetInt("server.port"))

		req, _ := http.NewRequest("GET", serverURL, nil)
		req.Header.Set("Authorization", "Bearer "+token)

		client := &http.Client{}
		resp, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("failed to fetch badges: %w", err)
		}
		defer resp.Body.Close()

		respBody, _ := io.ReadAll(resp.Body)
		var result map[string]interface{}
		json.Unmarshal(respBody, &result)

		if result["success"] != true {
			return fmt.Errorf("failed to fetch badges: %v", result["error"])
		}

		data := result["data"].(map[string]interface{})
		items, _ := data["badges"].([]interface{})

		fmt.Printf("🏆 Badges: %v/%v unlocked\n\n", data["unlocked"], data["total"])
		for _, item := range items {
			badge := item.(map[string]interface{})
			unlocked, _ := badge["unlocked"].(bool)
			if unlockedOnly && !unlocked {
				continue
			}

			mark := " "
			if unlocked {
				mark = "✓"
			}
			fmt.Printf("  [%s] %s %-22s %s", mark, badge["icon"], badge["name"], badge["description"])
			if !unlocked {
				if progress, ok := badge["progress"].(float64); ok && progress > 0 {
					fmt.Printf(" (%.0f%%)", progress)
				}
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	listCmd.Flags().Bool("unlocked", false, "Show only unlocked badges")
	BadgesCmd.AddCommand(listCmd)
}
