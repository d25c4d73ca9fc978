package outwriter

import (
	"encoding/csv"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/vidgrade/vidgrade/schema"
)

// PrintSignalDefinitions outputs the static signal and highlight
// reference, dispatching based on the output format configured.
func PrintSignalDefinitions(output schema.OutputMode, outputFile string) error {
	defs := schema.AllSignalDefinitions()

	switch output {
	case schema.JSONOut:
		return writeWithFile(outputFile, func(w io.Writer) error {
			return writeJSON(w, defs)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(outputFile, func(w io.Writer) error {
			header := []string{"name", "kind", "analysis", "description"}
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				for _, d := range defs {
					if err := cw.Write([]string{d.Name, d.Kind, d.Analysis, d.Description}); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(outputFile, func(w io.Writer) error {
			table := tablewriter.NewWriter(w)
			table.Header([]string{"Name", "Kind", "Analysis", "Description"})
			var data [][]string
			for _, d := range defs {
				data = append(data, []string{d.Name, d.Kind, d.Analysis, d.Description})
			}
			if err := table.Bulk(data); err != nil {
				return err
			}
			return table.Render()
		}, "Wrote table")
	}
}
