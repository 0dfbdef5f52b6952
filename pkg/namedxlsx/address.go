// Package namedxlsx maps defined names and table-column references to
// spreadsheet cell addresses and moves structured configuration data in and
// out of the named locations.
package namedxlsx

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Order selects the traversal order of a range's coordinate array.
type Order string

const (
	// OrderRow walks left to right, then top to bottom.
	OrderRow Order = "row"
	// OrderCol walks top to bottom, then left to right.
	OrderCol Order = "col"
)

// Address is an immutable spreadsheet address, with or without a sheet
// qualifier, covering a single cell or a rectangular range.
//
// A space-containing sheet name may appear quoted or unquoted on input;
// canonical String output is unquoted either way.
type Address struct {
	sheet string // "" means no sheet qualifier
	coord string // normalized, e.g. "A10" or "A10:B11"

	c1, r1 int // top-left corner, 1-based
	c2, r2 int // bottom-right corner, 1-based
}

// ParseAddress parses "[sheet!]cell[:cell]". Coordinates may carry $
// anchors and lowercase column letters; both are normalized away. Returns a
// *ParseError when the text does not match the grammar.
func ParseAddress(text string) (Address, error) {
	var sheet, coord string
	if i := strings.LastIndex(text, "!"); i >= 0 {
		if i == 0 {
			return Address{}, &ParseError{Text: text, Err: fmt.Errorf("empty sheet name")}
		}
		sheet, coord = text[:i], text[i+1:]
		if strings.HasPrefix(sheet, "'") && strings.HasSuffix(sheet, "'") && len(sheet) >= 2 {
			sheet = strings.ReplaceAll(sheet[1:len(sheet)-1], "''", "'")
		}
	} else {
		coord = text
	}
	a, err := newAddress(sheet, coord)
	if err != nil {
		return Address{}, &ParseError{Text: text, Err: err}
	}
	return a, nil
}

// AddressFromParts builds an Address from a sheet name and coordinates.
// An empty sheet produces an unqualified address.
func AddressFromParts(sheet, coord string) (Address, error) {
	a, err := newAddress(sheet, coord)
	if err != nil {
		text := coord
		if sheet != "" {
			text = sheet + "!" + coord
		}
		return Address{}, &ParseError{Text: text, Err: err}
	}
	return a, nil
}

func newAddress(sheet, coord string) (Address, error) {
	first, last, isRange := strings.Cut(coord, ":")
	if !isRange {
		last = first
	}
	c1, r1, err := parseCell(first)
	if err != nil {
		return Address{}, err
	}
	c2, r2, err := parseCell(last)
	if err != nil {
		return Address{}, err
	}
	if c2 < c1 {
		c1, c2 = c2, c1
	}
	if r2 < r1 {
		r1, r2 = r2, r1
	}
	a := Address{sheet: sheet, c1: c1, r1: r1, c2: c2, r2: r2}
	a.coord, err = formatCoord(c1, r1, c2, r2)
	if err != nil {
		return Address{}, err
	}
	return a, nil
}

func parseCell(cell string) (col, row int, err error) {
	cell = strings.ToUpper(strings.ReplaceAll(cell, "$", ""))
	return excelize.CellNameToCoordinates(cell)
}

func formatCoord(c1, r1, c2, r2 int) (string, error) {
	first, err := excelize.CoordinatesToCellName(c1, r1)
	if err != nil {
		return "", err
	}
	if c1 == c2 && r1 == r2 {
		return first, nil
	}
	last, err := excelize.CoordinatesToCellName(c2, r2)
	if err != nil {
		return "", err
	}
	return first + ":" + last, nil
}

// Sheet returns the sheet qualifier, or "" when there is none.
func (a Address) Sheet() string { return a.sheet }

// Coord returns the normalized coordinate text without the sheet qualifier.
func (a Address) Coord() string { return a.coord }

// Size returns the number of cells covered.
func (a Address) Size() int {
	rows, cols := a.Shape()
	return rows * cols
}

// Shape returns the covered (rows, columns).
func (a Address) Shape() (rows, cols int) {
	return a.r2 - a.r1 + 1, a.c2 - a.c1 + 1
}

// IsRange reports whether the address covers more than one cell.
func (a Address) IsRange() bool {
	return a.Size() > 1
}

// Array returns the covered single-cell coordinates as a rectangular array.
// OrderRow yields one inner slice per row; OrderCol yields one per column
// (the transpose). Coordinates carry no sheet qualifier.
func (a Address) Array(order Order) [][]string {
	rows, cols := a.Shape()
	var out [][]string
	switch order {
	case OrderCol:
		out = make([][]string, 0, cols)
		for c := a.c1; c <= a.c2; c++ {
			line := make([]string, 0, rows)
			for r := a.r1; r <= a.r2; r++ {
				line = append(line, cellName(c, r))
			}
			out = append(out, line)
		}
	default:
		out = make([][]string, 0, rows)
		for r := a.r1; r <= a.r2; r++ {
			line := make([]string, 0, cols)
			for c := a.c1; c <= a.c2; c++ {
				line = append(line, cellName(c, r))
			}
			out = append(out, line)
		}
	}
	return out
}

// Flat returns the covered single-cell coordinates as a flat slice in the
// given order. This is Array with the single-sized dimensions squeezed away.
func (a Address) Flat(order Order) []string {
	out := make([]string, 0, a.Size())
	for _, line := range a.Array(order) {
		out = append(out, line...)
	}
	return out
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// String returns the canonical text: "sheet!coord" when sheet-qualified,
// else the bare coordinates. The sheet is never quoted on output.
func (a Address) String() string {
	if a.sheet != "" {
		return a.sheet + "!" + a.coord
	}
	return a.coord
}

var _ fmt.Stringer = Address{}
