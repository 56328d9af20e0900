package stats

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your stats for a period",
	RunE: func(cmd *cobra.Command, args []string) error {
		period, _ := cmd.Flags().GetString("period")

		token := viper.GetString("user.token")
		if token == "" {
			return fmt.Errorf("not logged in. Please run: bookstreak auth login")
		}

		serverURL := fmt.Sprintf("http://%s:%d/api/v1/stats?period=%s",
			viper.GetString("server.host"),
			viper.GetInt("server.port"),
			period)

		req, _ := http.NewRequest("GET", serverURL, nil)
		req.Header.Set("Authorization", "Bearer "+token)

		client := &http.Client{}
		resp, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("failed to fetch stats: %w", err)
		}
		defer resp.Body.Close()

		respBody, _ := io.ReadAll(resp.Body)
		var result map[string]interface{}
		json.Unmarshal(respBody, &result)

		if result["success"] != true {
			return fmt.Errorf("failed to fetch stats: %v", result["error"])
		}

		data := result["data"].(map[string]interface{})
		stats := data["stats"].(map[string]interface{})
		streak := stats["streak"].(map[string]interface{})

		fmt.Printf("📊 Reading stats (%s)\n\n", period)
		fmt.Printf("  Current streak:  %v days 🔥\n", streak["current"])
		fmt.Printf("  Longest streak:  %v days\n", streak["longest"])
		fmt.Printf("  Pages read:      %v\n", stats["total_pages_read"])
		fmt.Printf("  Avg per day:     %v\n", stats["average_per_day"])
		fmt.Printf("  Books:           %v total, %v completed, %v active\n",
			stats["total_books"], stats["completed_books"], stats["active_books"])
		return nil
	},
}

func init() {
	showCmd.Flags().String("period", "all", "Period: all, week, month, year")
	StatsCmd.AddCommand(showCmd)
}
