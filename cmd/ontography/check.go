package main

import (
	"fmt"
	"io"

	"github.com/Carmen-Shannon/oxy-ontography/ontology"
	"github.com/spf13/cobra"
)

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report dataset consistency: dropped edges, unknown categories, duplicate labels",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			writeCheck(cmd.OutOrStdout(), ontology.Default())
		},
	}
}

// writeCheck prints a summary line per issue kind followed by the individual findings.
// Findings are informational: the viewer tolerates all of them.
func writeCheck(out io.Writer, ds *ontology.Dataset) ontology.Report {
	report := ontology.Check(ds)

	fmt.Fprintf(out, "%s %d nodes, %d edges, %d categories\n\n",
		Brand.Sprint("dataset"), len(ds.Nodes), len(ds.Edges), len(ds.Categories))

	kinds := []struct {
		kind  ontology.IssueKind
		label string
	}{
		{ontology.IssueMalformed, "malformed records"},
		{ontology.IssueUnresolvedEdge, "dropped edges"},
		{ontology.IssueUnknownCategory, "unknown categories"},
		{ontology.IssueDuplicateLabel, "duplicate labels"},
	}
	for _, k := range kinds {
		n := report.Count(k.kind)
		fmt.Fprintf(out, "  %s %-20s %d\n", statusIcon(n == 0), k.label, n)
	}

	if report.Empty() {
		fmt.Fprintln(out)
		Good.Fprintln(out, "  dataset is consistent")
		return report
	}
	fmt.Fprintln(out)
	for _, issue := range report.Issues {
		fmt.Fprintf(out, "  %s %s\n", Warn.Sprint("!"), issue)
	}
	return report
}
