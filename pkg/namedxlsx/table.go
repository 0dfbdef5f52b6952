package namedxlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/finmodel/namedxlsx-go/pkg/namedxlsx/engine"
)

// Default row trim for table column addresses: one header row at the top
// and one totals row at the bottom. This is a fixed project convention for
// the workbooks we handle, not something autodetected.
const (
	DefaultTrimTop    = 1
	DefaultTrimBottom = 1
)

// Table is a structured table discovered in a workbook.
type Table struct {
	// Name is the table identifier. By project convention tables referenced
	// through defined names carry a "t." prefix in the identifier itself.
	Name string
	// Sheet is the owning sheet.
	Sheet string
	// Columns lists column names in declared order.
	Columns []string
	// Range is the table's full occupied range, header and totals included.
	Range Address
}

// discoverTables enumerates every sheet's registered tables.
func discoverTables(e engine.Engine) (map[string]Table, error) {
	infos, err := e.Tables()
	if err != nil {
		return nil, err
	}
	tables := make(map[string]Table, len(infos))
	for _, info := range infos {
		rng, err := AddressFromParts(info.Sheet, info.Range)
		if err != nil {
			return nil, fmt.Errorf("table %q: %w", info.Name, err)
		}
		tables[info.Name] = Table{
			Name:    info.Name,
			Sheet:   info.Sheet,
			Columns: info.Columns,
			Range:   rng,
		}
	}
	return tables, nil
}

// ColumnAddresses maps each column name to the absolute range the column's
// data cells occupy, shrinking the table's occupied range by trimTop rows
// from the top and trimBottom rows from the bottom. Columns are emitted in
// the table's declared order.
func (t Table) ColumnAddresses(trimTop, trimBottom int) (map[string]Address, error) {
	top := t.Range.r1 + trimTop
	bottom := t.Range.r2 - trimBottom
	if top > bottom {
		return nil, fmt.Errorf("table %q: cannot trim %d+%d rows from %d-row range %s",
			t.Name, trimTop, trimBottom, t.Range.r2-t.Range.r1+1, t.Range)
	}
	out := make(map[string]Address, len(t.Columns))
	for i, name := range t.Columns {
		col := t.Range.c1 + i
		if col > t.Range.c2 {
			break
		}
		letter, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return nil, err
		}
		addr, err := AddressFromParts(t.Sheet, fmt.Sprintf("%s%d:%s%d", letter, top, letter, bottom))
		if err != nil {
			return nil, err
		}
		out[name] = addr
	}
	return out, nil
}
