package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "finwatch-cli",
		Short: "FinWatch CLI tool",
		Long:  `A command line interface for interacting with the FinWatch API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the FinWatch API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(alertsCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(forecastCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func alertsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "alerts",
		Short: "Show current alerts",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := doGet("/api/v1/alerts")
			if err != nil {
				return err
			}

			var resp struct {
				Alerts []struct {
					Kind    string `json:"kind"`
					Message string `json:"message"`
				} `json:"alerts"`
				Incomplete bool `json:"incomplete"`
			}
			if err := json.Unmarshal(body, &resp); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}

			if resp.Incomplete {
				fmt.Println("WARNING: evaluated on incomplete data")
			}
			if len(resp.Alerts) == 0 {
				fmt.Println("No alerts.")
				return nil
			}
			for _, a := range resp.Alerts {
				fmt.Printf("%-18s %s\n", truncate(a.Kind, 18), a.Message)
			}
			return nil
		},
	}
}

func reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report <period>",
		Short: "Show the monthly report for a period (YYYY-MM)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := doGet("/api/v1/reports/monthly/" + args[0])
			if err != nil {
				return err
			}

			var report map[string]any
			if err := json.Unmarshal(body, &report); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}

			printJSON(report)
			return nil
		},
	}
}

func forecastCmd() *cobra.Command {
	var months int

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Show the spending forecast",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/forecast"
			if months > 0 {
				path = fmt.Sprintf("%s?months=%d", path, months)
			}

			body, err := doGet(path)
			if err != nil {
				return err
			}

			// Amounts are serialized as decimal strings.
			var resp struct {
				Historical []string `json:"historical"`
				Predicted  []string `json:"predicted"`
				Trend      string   `json:"trend"`
			}
			if err := json.Unmarshal(body, &resp); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}

			fmt.Printf("Trend: %s\n", resp.Trend)
			fmt.Printf("History:   %s\n", strings.Join(resp.Historical, ", "))
			fmt.Printf("Predicted: %s\n", strings.Join(resp.Predicted, ", "))
			return nil
		},
	}

	cmd.Flags().IntVar(&months, "months", 0, "How many trailing months of history to use")

	return cmd
}

func doGet(path string) ([]byte, error) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("failed to render output: %v\n", err)
		return
	}
	fmt.Println(string(data))
}
