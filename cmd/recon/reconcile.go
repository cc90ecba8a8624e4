package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/diffrun/recon/internal/api"
	"github.com/diffrun/recon/internal/cli"
	"github.com/diffrun/recon/internal/config"
	"github.com/diffrun/recon/internal/export"
	"github.com/diffrun/recon/internal/model"
)

func reconcileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Reconcile gateway payments against order records",
		Long: `Run a direct reconciliation query against the backend and print the
canonical summary. Payments that match no order transaction ID are the
"NA" set; use --na-csv to save their IDs as a CSV artifact.`,
		RunE: runReconcile,
	}

	// Flags
	cmd.Flags().String("from", "", "Start date (YYYY-MM-DD), empty for all time")
	cmd.Flags().String("to", "", "End date (YYYY-MM-DD), empty for all time")
	cmd.Flags().String("na-status", "captured", "Only count NA payments with this gateway status")
	cmd.Flags().Bool("case-insensitive", false, "Lowercase IDs on both sides before matching")
	cmd.Flags().Int("max-fetch", model.DefaultMaxFetch, "Upper bound on payments fetched from the gateway")
	cmd.Flags().Int("orders-batch-size", 0, "Order scan batch size (0: server default)")
	cmd.Flags().String("na-csv", "", "Write NA payment IDs to this CSV file")

	// Bind to viper
	_ = viper.BindPFlag("reconcile.from", cmd.Flags().Lookup("from"))
	_ = viper.BindPFlag("reconcile.to", cmd.Flags().Lookup("to"))
	_ = viper.BindPFlag("reconcile.na_status", cmd.Flags().Lookup("na-status"))
	_ = viper.BindPFlag("reconcile.case_insensitive", cmd.Flags().Lookup("case-insensitive"))
	_ = viper.BindPFlag("reconcile.max_fetch", cmd.Flags().Lookup("max-fetch"))
	_ = viper.BindPFlag("reconcile.orders_batch_size", cmd.Flags().Lookup("orders-batch-size"))
	_ = viper.BindPFlag("reconcile.na_csv", cmd.Flags().Lookup("na-csv"))

	return cmd
}

func runReconcile(cmd *cobra.Command, _ []string) error {
	query := model.ReconcileQuery{
		FromDate:           viper.GetString("reconcile.from"),
		ToDate:             viper.GetString("reconcile.to"),
		Status:             viper.GetString("reconcile.na_status"),
		CaseInsensitiveIDs: viper.GetBool("reconcile.case_insensitive"),
		MaxFetch:           viper.GetInt("reconcile.max_fetch"),
		OrdersBatchSize:    viper.GetInt("reconcile.orders_batch_size"),
	}.Normalized()

	client := api.NewClient(config.APIBase())

	fmt.Println(cli.FormatTitle("Reconciling payments against orders..."))

	ctx, cancel := context.WithTimeout(cmd.Context(), config.ReconcileTimeout())
	defer cancel()

	result, err := client.Reconcile(ctx, query)
	if err != nil {
		if api.IsTimeout(err) {
			return fmt.Errorf("%s", cli.FormatError("Request timed out"))
		}
		return fmt.Errorf("%s", cli.FormatError(err.Error()))
	}

	fmt.Println(cli.RenderBox("Reconciliation summary", cli.RenderSummary(&result.Summary)))

	if naPath := viper.GetString("reconcile.na_csv"); naPath != "" {
		if err := export.SaveNAPaymentIDs(naPath, result.NAPaymentIDs); err != nil {
			return fmt.Errorf("failed to save NA payment IDs: %w", err)
		}
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Saved %d NA payment IDs to %s", len(result.NAPaymentIDs), naPath)))
	} else if result.Summary.NACount > 0 {
		slog.Debug("NA payment IDs available", "count", len(result.NAPaymentIDs))
		fmt.Println(cli.FormatWarning(fmt.Sprintf("%d NA payments found; rerun with --na-csv to save their IDs", result.Summary.NACount)))
	}

	return nil
}
