package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/iho/tripledger/internal/infrastructure/config"
	"github.com/iho/tripledger/internal/infrastructure/postgres"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tripledger-cli",
		Short: "TripLedger CLI tool",
		Long:  `A command line interface for interacting with the TripLedger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the TripLedger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Ledger commands
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	consistencyCmd := &cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency",
		Run: func(cmd *cobra.Command, args []string) {
			if err := checkConsistency(os.Stdout); err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
		},
	}

	ledgerCmd.AddCommand(consistencyCmd)
	rootCmd.AddCommand(ledgerCmd)

	// Plan commands
	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan operations",
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [plan-id]",
		Short: "Show a plan's balance snapshot",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := showSnapshot(os.Stdout, args[0]); err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
		},
	}

	planCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(planCmd)

	// Migration commands
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migrations",
	}

	migrateUpCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		Run: func(cmd *cobra.Command, args []string) {
			runMigrations(false)
		},
	}

	migrateDownCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		Run: func(cmd *cobra.Command, args []string) {
			runMigrations(true)
		},
	}

	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
	rootCmd.AddCommand(migrateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func checkConsistency(w io.Writer) error {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/api/v1/ledger/consistency")
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("consistency check failed (status %d): %s", resp.StatusCode, string(body))
	}

	var report struct {
		TotalExpenses      int      `json:"total_expenses"`
		ConsistentExpenses int      `json:"consistent_expenses"`
		Discrepancies      []string `json:"discrepancies"`
	}
	if err := json.Unmarshal(body, &report); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if len(report.Discrepancies) == 0 {
		fmt.Fprintf(w, "Consistency check PASSED\n")
	} else {
		fmt.Fprintf(w, "Consistency check FAILED\n")
	}
	fmt.Fprintf(w, "Expenses: %d checked, %d consistent\n", report.TotalExpenses, report.ConsistentExpenses)
	for _, id := range report.Discrepancies {
		fmt.Fprintf(w, "  discrepancy: %s\n", id)
	}

	if len(report.Discrepancies) > 0 {
		return fmt.Errorf("%d expense(s) inconsistent", len(report.Discrepancies))
	}

	return nil
}

func showSnapshot(w io.Writer, planID string) error {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/api/v1/plans/" + planID + "/snapshot")
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("snapshot failed (status %d): %s", resp.StatusCode, string(body))
	}

	return printJSON(w, json.RawMessage(body))
}

func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s\n", out)
	return nil
}

func runMigrations(down bool) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if down {
		err = postgres.RunMigrationsDown(cfg.DatabaseURL, cfg.MigrationsPath)
	} else {
		err = postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath)
	}
	if err != nil {
		fmt.Printf("migration failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("migrations applied")
}
