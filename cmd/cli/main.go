package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rentas-cli",
		Short: "Rentas CLI tool",
		Long:  `A command line interface for interacting with the Rentas API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Rentas API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	rootCmd.AddCommand(exportCmd(), importCmd(), reconcileCmd(), balanceCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func exportCmd() *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download a full backup",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := get("/api/v1/export")
			if err != nil {
				return err
			}

			if outFile == "" {
				fmt.Println(string(body))
				return nil
			}

			if err := os.WriteFile(outFile, body, 0o644); err != nil {
				return fmt.Errorf("failed to write backup: %w", err)
			}

			fmt.Printf("backup written to %s (%d bytes)\n", outFile, len(body))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outFile, "output", "o", "", "File to write the backup to (default stdout)")
	return cmd
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the entire store from a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read backup: %w", err)
			}

			body, err := post("/api/v1/import", data)
			if err != nil {
				return err
			}

			var stats map[string]any
			if err := json.Unmarshal(body, &stats); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}

			fmt.Println("import succeeded")
			printJSON(stats)
			return nil
		},
	}
}

func reconcileCmd() *cobra.Command {
	var repair bool

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Check stored balances against recomputed ones",
		RunE: func(cmd *cobra.Command, args []string) error {
			var body []byte
			var err error

			if repair {
				body, err = post("/api/v1/reconciliation/repair", nil)
			} else {
				body, err = get("/api/v1/reconciliation")
			}
			if err != nil {
				return err
			}

			var report struct {
				Clean                 bool  `json:"clean"`
				TenantsChecked        int   `json:"tenants_checked"`
				RegistersChecked      int   `json:"registers_checked"`
				TenantDiscrepancies   []any `json:"tenant_discrepancies"`
				RegisterDiscrepancies []any `json:"register_discrepancies"`
			}
			if err := json.Unmarshal(body, &report); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}

			if report.Clean {
				fmt.Printf("reconciliation PASSED (%d tenants, %d registers)\n",
					report.TenantsChecked, report.RegistersChecked)
				return nil
			}

			fmt.Printf("reconciliation found drift: %d tenant(s), %d register(s)\n",
				len(report.TenantDiscrepancies), len(report.RegisterDiscrepancies))
			printJSON(json.RawMessage(body))

			if !repair {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&repair, "repair", false, "Overwrite drifted stored balances with recomputed values")
	return cmd
}

func balanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show the register position per currency",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := get("/api/v1/cash/balance")
			if err != nil {
				return err
			}

			printJSON(json.RawMessage(body))
			return nil
		},
	}
}

func get(path string) ([]byte, error) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body)
	}

	return body, nil
}

func post(path string, payload []byte) ([]byte, error) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body)
	}

	return body, nil
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("failed to render json: %v\n", err)
		return
	}
	fmt.Println(string(out))
}
