package engine

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

func init() {
	Register("excelize", func(path string, opts Options) (Engine, error) {
		f, err := excelize.OpenFile(path, excelize.Options{RawCellValue: opts.Raw})
		if err != nil {
			return nil, err
		}
		return New(f, path), nil
	})
}

// Excelize is the file-format binding, backed by xuri/excelize. It works
// headless on the saved state of a workbook: formula cells yield the cached
// result of the last evaluation, not a recomputed one.
type Excelize struct {
	f    *excelize.File
	path string
}

// New wraps an already opened excelize file. path may be "" when the
// workbook has no origin file.
func New(f *excelize.File, path string) *Excelize {
	return &Excelize{f: f, path: path}
}

func (e *Excelize) CellValue(sheet, coord string) (string, error) {
	return e.f.GetCellValue(sheet, coord)
}

func (e *Excelize) SetCellValue(sheet, coord string, value any) error {
	return e.f.SetCellValue(sheet, coord, value)
}

func (e *Excelize) DefinedNames() []string {
	defined := e.f.GetDefinedName()
	out := make([]string, 0, len(defined))
	for _, dn := range defined {
		out = append(out, dn.Name)
	}
	return out
}

func (e *Excelize) DefinedNameRefersTo(name string) (string, error) {
	for _, dn := range e.f.GetDefinedName() {
		if dn.Name == name {
			return dn.RefersTo, nil
		}
	}
	return "", fmt.Errorf("defined name %q not found", name)
}

func (e *Excelize) DefinedNameDestinations(name string) ([]Destination, error) {
	refersTo, err := e.DefinedNameRefersTo(name)
	if err != nil {
		return nil, err
	}
	areas := splitAreas(refersTo)
	out := make([]Destination, 0, len(areas))
	for _, area := range areas {
		dest, err := parseArea(area)
		if err != nil {
			return nil, fmt.Errorf("defined name %q: %w", name, err)
		}
		out = append(out, dest)
	}
	return out, nil
}

func (e *Excelize) Tables() ([]TableInfo, error) {
	var out []TableInfo
	for _, sheet := range e.f.GetSheetList() {
		tables, err := e.f.GetTables(sheet)
		if err != nil {
			return nil, fmt.Errorf("list tables on %q: %w", sheet, err)
		}
		for _, tbl := range tables {
			columns, err := e.tableColumns(sheet, tbl.Range)
			if err != nil {
				return nil, fmt.Errorf("table %q: %w", tbl.Name, err)
			}
			out = append(out, TableInfo{
				Name:    tbl.Name,
				Sheet:   sheet,
				Columns: columns,
				Range:   tbl.Range,
			})
		}
	}
	return out, nil
}

// tableColumns reads the column names from the header row of a table range.
func (e *Excelize) tableColumns(sheet, rng string) ([]string, error) {
	first, last, ok := strings.Cut(rng, ":")
	if !ok {
		last = first
	}
	c1, r1, err := excelize.CellNameToCoordinates(strings.ReplaceAll(first, "$", ""))
	if err != nil {
		return nil, err
	}
	c2, _, err := excelize.CellNameToCoordinates(strings.ReplaceAll(last, "$", ""))
	if err != nil {
		return nil, err
	}
	columns := make([]string, 0, c2-c1+1)
	for c := c1; c <= c2; c++ {
		cell, err := excelize.CoordinatesToCellName(c, r1)
		if err != nil {
			return nil, err
		}
		v, err := e.f.GetCellValue(sheet, cell)
		if err != nil {
			return nil, err
		}
		columns = append(columns, v)
	}
	return columns, nil
}

func (e *Excelize) Save() error {
	if e.path == "" {
		return ErrMissingPath
	}
	return e.f.SaveAs(e.path)
}

func (e *Excelize) SaveAs(path string) error {
	if path == "" {
		return ErrMissingPath
	}
	e.path = path
	return e.f.SaveAs(path)
}

func (e *Excelize) Close() error {
	return e.f.Close()
}

func (e *Excelize) Path() string {
	return e.path
}

// splitAreas splits a refers-to text on area-separating commas, leaving
// commas inside quoted sheet names alone.
func splitAreas(text string) []string {
	var out []string
	var b strings.Builder
	quoted := false
	for _, r := range text {
		switch {
		case r == '\'':
			quoted = !quoted
			b.WriteRune(r)
		case r == ',' && !quoted:
			out = append(out, b.String())
			b.Reset()
		default:
			b.WriteRune(r)
		}
	}
	if b.Len() > 0 {
		out = append(out, b.String())
	}
	return out
}

// parseArea splits a single "[sheet!]coord" area into its parts, unwrapping
// a quoted sheet name and dropping $ anchors from the coordinates.
func parseArea(area string) (Destination, error) {
	area = strings.TrimSpace(area)
	if area == "" {
		return Destination{}, fmt.Errorf("empty destination area")
	}
	var sheet, coord string
	if i := strings.LastIndex(area, "!"); i >= 0 {
		sheet, coord = area[:i], area[i+1:]
		sheet = strings.TrimPrefix(sheet, "'")
		sheet = strings.TrimSuffix(sheet, "'")
		sheet = strings.ReplaceAll(sheet, "''", "'")
	} else {
		coord = area
	}
	coord = strings.ReplaceAll(coord, "$", "")
	if coord == "" {
		return Destination{}, fmt.Errorf("destination %q has no coordinates", area)
	}
	return Destination{Sheet: sheet, Coord: coord}, nil
}
