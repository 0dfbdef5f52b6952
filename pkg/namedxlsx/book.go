package namedxlsx

import (
	"fmt"
	"reflect"

	"github.com/finmodel/namedxlsx-go/pkg/namedxlsx/engine"
)

// Book wraps a workbook engine with name resolution and typed read/write
// dispatch. It is not safe for concurrent use; a Book mutates exactly one
// workbook at a time.
type Book struct {
	eng engine.Engine

	// Discovered tables and their column address maps, computed once per
	// Book. A new workbook handle means a new Book, so there is no
	// invalidation beyond that.
	tables  map[string]Table
	columns map[string]map[string]Address
}

// NewBook wraps an already opened engine.
func NewBook(e engine.Engine) *Book {
	return &Book{eng: e}
}

// OpenBook opens path with the named engine binding and wraps it.
func OpenBook(engineName, path string, opts engine.Options) (*Book, error) {
	e, err := engine.Open(engineName, path, opts)
	if err != nil {
		return nil, err
	}
	return NewBook(e), nil
}

// Names lists the workbook's defined names.
func (b *Book) Names() []string {
	return b.eng.DefinedNames()
}

// Read returns the value at addr. A single cell yields a scalar; a range
// yields its cells in row-major order, squeezed: []any for a single row or
// column, [][]any otherwise. ReadAs coerces each element; ReadHook runs
// once on the final value, after coercion.
func (b *Book) Read(addr Address, opts ...ReadOption) (any, error) {
	var cfg readConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if addr.Sheet() == "" {
		return nil, fmt.Errorf("cannot read %s: address has no sheet qualifier", addr)
	}

	var value any
	if addr.IsRange() {
		v, err := b.readRange(addr, cfg)
		if err != nil {
			return nil, err
		}
		value = v
	} else {
		v, err := b.readCell(addr.Sheet(), addr.Coord(), cfg)
		if err != nil {
			return nil, err
		}
		value = v
	}
	if cfg.hook != nil {
		return cfg.hook(value)
	}
	return value, nil
}

func (b *Book) readCell(sheet, coord string, cfg readConfig) (any, error) {
	raw, err := b.eng.CellValue(sheet, coord)
	if err != nil {
		return nil, err
	}
	if cfg.coerce == nil {
		return raw, nil
	}
	v, err := cfg.coerce(raw)
	if err != nil {
		return nil, fmt.Errorf("cell %s!%s: %w", sheet, coord, err)
	}
	return v, nil
}

func (b *Book) readRange(addr Address, cfg readConfig) (any, error) {
	cells := addr.Flat(OrderRow)
	flat := make([]any, 0, len(cells))
	for _, coord := range cells {
		v, err := b.readCell(addr.Sheet(), coord, cfg)
		if err != nil {
			return nil, err
		}
		flat = append(flat, v)
	}
	rows, cols := addr.Shape()
	if rows == 1 || cols == 1 {
		return flat, nil
	}
	out := make([][]any, 0, rows)
	for r := 0; r < rows; r++ {
		out = append(out, flat[r*cols:(r+1)*cols])
	}
	return out, nil
}

// Write assigns value at addr. A single cell takes the value directly; a
// range broadcasts a slice of values positionally over its cells in
// row-major order. The value count must equal the cell count exactly, else
// a *ShapeMismatchError is returned. Nested slices are flattened row-major,
// so a matrix read result can be written back as is.
func (b *Book) Write(addr Address, value any) error {
	if addr.Sheet() == "" {
		return fmt.Errorf("cannot write %s: address has no sheet qualifier", addr)
	}
	if !addr.IsRange() {
		return b.eng.SetCellValue(addr.Sheet(), addr.Coord(), value)
	}
	values, ok := flattenValues(value)
	if !ok {
		return fmt.Errorf("cannot broadcast %T over range %s: need a slice of values", value, addr)
	}
	cells := addr.Flat(OrderRow)
	if len(values) != len(cells) {
		return &ShapeMismatchError{Addr: addr, Values: len(values), Cells: len(cells)}
	}
	for i, coord := range cells {
		if err := b.eng.SetCellValue(addr.Sheet(), coord, values[i]); err != nil {
			return err
		}
	}
	return nil
}

// ReadName resolves name to its address and reads it.
func (b *Book) ReadName(name string, opts ...ReadOption) (any, error) {
	addr, err := b.NameAddress(name)
	if err != nil {
		return nil, err
	}
	return b.Read(addr, opts...)
}

// WriteName resolves name to its address and writes value there.
func (b *Book) WriteName(name string, value any) error {
	addr, err := b.NameAddress(name)
	if err != nil {
		return err
	}
	return b.Write(addr, value)
}

// Save writes the workbook back to its origin path.
func (b *Book) Save() error {
	return b.eng.Save()
}

// SaveAs writes the workbook to path.
func (b *Book) SaveAs(path string) error {
	return b.eng.SaveAs(path)
}

// Close releases the underlying workbook.
func (b *Book) Close() error {
	return b.eng.Close()
}

// Path returns the workbook's remembered origin path, or "".
func (b *Book) Path() string {
	return b.eng.Path()
}

// flattenValues turns a slice of any element kind, possibly nested, into a
// flat []any. Reports false for non-slice values.
func flattenValues(v any) ([]any, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		el := rv.Index(i).Interface()
		if nested, ok := flattenValues(el); ok {
			out = append(out, nested...)
		} else {
			out = append(out, el)
		}
	}
	return out, true
}
