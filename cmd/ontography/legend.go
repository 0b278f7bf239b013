package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/Carmen-Shannon/oxy-ontography/config"
	"github.com/Carmen-Shannon/oxy-ontography/ontology"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func legendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "legend",
		Short: "Print the color key",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			writeLegend(cmd.OutOrStdout(), ontology.Default(), config.Default().Legend)
		},
	}
}

// writeLegend prints the color key in style-table order with one swatch per category.
func writeLegend(out io.Writer, ds *ontology.Dataset, texts config.LegendConfig) {
	rows := make([]string, 0, len(ds.Categories))
	for _, c := range ds.Categories {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			swatch(c.Style.Color.Hex()), " ",
			keyStyle.Render(string(c.Key)),
			meaningStyle.Render(c.Style.Meaning),
		))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(texts.Title))
	b.WriteString("\n")
	b.WriteString(strings.Join(rows, "\n"))
	for _, note := range []string{texts.EdgeNote, texts.Tip} {
		if note != "" {
			b.WriteString("\n\n")
			b.WriteString(meaningStyle.Render(note))
		}
	}
	fmt.Fprintln(out, panelStyle.Render(b.String()))
}
