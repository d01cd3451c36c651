package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hnrobert/envportal/internal/flows"
)

func flowsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "flows",
		Short: "List the flows with their routes and required fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printFlows(cmd.OutOrStdout(), registry)
			return nil
		},
	}
}

func printFlows(w io.Writer, r *flows.Registry) {
	name := color.New(color.Bold)
	dim := color.New(color.Faint)
	req := color.New(color.FgYellow)

	for _, d := range r.All() {
		_, _ = name.Fprintf(w, "%-16s", d.Name)
		_, _ = dim.Fprintf(w, " %s\n", flows.Path(d.Name))
		for _, f := range d.Fields {
			marker := " "
			if d.IsRequired(f.ID) {
				marker = req.Sprint("*")
			}
			fmt.Fprintf(w, "  %s %-16s %-8s %s\n", marker, f.ID, f.Type, f.Label)
		}
		if len(d.Required) == 0 {
			fmt.Fprintln(w, "  (nothing required)")
		} else {
			fmt.Fprintf(w, "  required: %s\n", strings.Join(d.Required, ", "))
		}
		fmt.Fprintln(w)
	}
}
