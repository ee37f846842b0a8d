package main

import (
	"fmt"
	"io"
	"sync"

	"trends-exporter/internal/models"
	"trends-exporter/internal/services"
	"trends-exporter/internal/shutdown"

	"github.com/spf13/cobra"
)

// NewExportCmd creates the headless export command.
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Fetch trending searches and write the CSV without opening the GUI",
		Long: `Export fetches the trending searches for every --region and writes one CSV
with a "Trending in <CODE>" column per region that answered.

Regions that fail are skipped. If none answer, no file is written and the
command exits with an error.

Examples:
  trends-exporter export --region GR --output ~/exports
  trends-exporter export -r GR -r RO -r BG -o .`,
		Args: cobra.NoArgs,
		RunE: runExportCmd,
	}

	cmd.Flags().StringSliceP("region", "r", nil, "Region code to fetch (repeatable; default from config)")
	cmd.Flags().StringP("output", "o", "", "Folder the CSV is written to (default from config)")

	return cmd
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	rt, err := loadRuntime(cmd)
	if err != nil {
		return err
	}

	codes, err := cmd.Flags().GetStringSlice("region")
	if err != nil {
		return err
	}
	if len(codes) == 0 {
		codes = rt.cfg.Export.DefaultRegions
	}

	outputDir, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	if outputDir == "" {
		outputDir = rt.cfg.Export.OutputDir
	}

	sel := models.NewSelection(codes, outputDir)
	if err := sel.Validate(); err != nil {
		return err
	}

	provider := newProvider(rt)
	shutdownMgr := shutdown.NewManager(rt.log)
	shutdownMgr.Register("trends provider", provider)
	shutdownMgr.Listen(nil)
	defer shutdownMgr.Shutdown()

	service := services.NewExportService(provider, rt.log, rt.cfg.Export.Concurrency)
	result, err := service.Run(shutdownMgr.Context(), sel, newWriterSink(cmd.OutOrStdout()))
	if err != nil {
		return err
	}

	for _, f := range result.Failures {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s: %v\n", f.Code, f.Err)
	}
	return nil
}

// newWriterSink serializes status lines from concurrent region fetches.
func newWriterSink(w io.Writer) services.StatusSink {
	var mu sync.Mutex
	return services.StatusFunc(func(msg string) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintln(w, msg)
	})
}
