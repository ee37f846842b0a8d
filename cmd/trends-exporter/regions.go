package main

import (
	"fmt"
	"text/tabwriter"

	"trends-exporter/internal/models"

	"github.com/spf13/cobra"
)

// NewRegionsCmd lists the region catalog.
func NewRegionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regions",
		Short: "List the regions that can be exported",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tREGION\tDEFAULT")
			for _, r := range models.Regions() {
				def := ""
				if r.Code == models.DefaultRegionCode {
					def = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", r.Code, r.Name, def)
			}
			return w.Flush()
		},
	}
}
