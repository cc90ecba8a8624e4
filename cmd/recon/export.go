package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/diffrun/recon/internal/api"
	"github.com/diffrun/recon/internal/cli"
	"github.com/diffrun/recon/internal/config"
	"github.com/diffrun/recon/internal/model"
)

// Export defaults mirror the backend's CSV route, which is tuned for
// smaller, human-sized pulls than the reconcile scan.
const defaultExportMaxFetch = 2000

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download raw gateway payments as CSV",
		Long: `Download the payments CSV export from the backend and save it locally.
The stream is saved as-is; nothing is parsed client-side.`,
		RunE: runExport,
	}

	// Flags
	cmd.Flags().String("from", "", "Start date (YYYY-MM-DD), empty for all time")
	cmd.Flags().String("to", "", "End date (YYYY-MM-DD), empty for all time")
	cmd.Flags().String("status", "captured", "Filter payments by gateway status")
	cmd.Flags().Int("max-fetch", defaultExportMaxFetch, "Upper bound on payments fetched")
	cmd.Flags().StringP("out", "o", "razorpay_payments.csv", "Output file path")

	// Bind to viper
	_ = viper.BindPFlag("export.from", cmd.Flags().Lookup("from"))
	_ = viper.BindPFlag("export.to", cmd.Flags().Lookup("to"))
	_ = viper.BindPFlag("export.status", cmd.Flags().Lookup("status"))
	_ = viper.BindPFlag("export.max_fetch", cmd.Flags().Lookup("max-fetch"))
	_ = viper.BindPFlag("export.out", cmd.Flags().Lookup("out"))

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	query := model.ReconcileQuery{
		FromDate: viper.GetString("export.from"),
		ToDate:   viper.GetString("export.to"),
		Status:   viper.GetString("export.status"),
		MaxFetch: viper.GetInt("export.max_fetch"),
	}.Normalized()
	outPath := viper.GetString("export.out")

	client := api.NewClient(config.APIBase())

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	defer func() { _ = f.Close() }()

	// Content length is unknown up front; -1 gives a spinner-style byte
	// counter instead of a percentage bar.
	bar := progressbar.DefaultBytes(-1, "downloading payments CSV")

	ctx, cancel := context.WithTimeout(cmd.Context(), config.ReconcileTimeout())
	defer cancel()

	n, err := client.DownloadPaymentsCSV(ctx, query, io.MultiWriter(f, bar))
	if err != nil {
		if api.IsTimeout(err) {
			return fmt.Errorf("%s", cli.FormatError("Download timed out"))
		}
		return fmt.Errorf("%s", cli.FormatError(err.Error()))
	}
	_ = bar.Finish()

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to finish writing %s: %w", outPath, err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Saved %d bytes to %s", n, outPath)))
	return nil
}
