package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/finmodel/namedxlsx-go/pkg/namedxlsx"
)

var specHeader = []string{"name", "sheet", "coord", "value"}

// WriteSpecsCSV writes a specification listing as CSV with a header row.
func WriteSpecsCSV(w io.Writer, specs []namedxlsx.Spec) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(specHeader); err != nil {
		return err
	}
	for _, s := range specs {
		if err := cw.Write([]string{s.Name, s.Sheet, s.Coord, fmt.Sprint(s.Value)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSpecsTable writes a specification listing as an aligned text table.
func WriteSpecsTable(w io.Writer, specs []namedxlsx.Spec) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSHEET\tCOORD\tVALUE")
	for _, s := range specs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%v\n", s.Name, s.Sheet, s.Coord, s.Value)
	}
	return tw.Flush()
}
