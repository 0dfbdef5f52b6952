package namedxlsx

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// tableRefPrefix marks a defined name whose destination text refers to a
// column of a registered table instead of a plain cell reference. The
// prefix is part of the table's own identifier: a destination "t.Sales[Amount]"
// names column "Amount" of the table registered as "t.Sales".
const tableRefPrefix = "t."

// NameAddress resolves a defined name to its absolute address.
//
// Native defined-name resolution does not understand the table-column
// convention, so destinations matching it are reduced here to the column's
// data range (header and totals rows excluded). Either way the caller gets
// one Address and stays oblivious to which convention produced it. Names
// resolving to more than one destination are rejected, never picked from.
func (b *Book) NameAddress(name string) (Address, error) {
	names := b.eng.DefinedNames()
	if !slices.Contains(names, name) {
		return Address{}, &NameNotFoundError{Name: name, Available: names}
	}
	refersTo, err := b.eng.DefinedNameRefersTo(name)
	if err != nil {
		return Address{}, fmt.Errorf("cannot resolve address for name %q: %w", name, err)
	}
	if strings.HasPrefix(refersTo, tableRefPrefix) {
		addr, err := b.tableDestination(refersTo)
		if err != nil {
			return Address{}, fmt.Errorf("cannot resolve address for name %q: %w", name, err)
		}
		return addr, nil
	}
	dests, err := b.eng.DefinedNameDestinations(name)
	if err != nil {
		return Address{}, fmt.Errorf("cannot resolve address for name %q: %w", name, err)
	}
	if len(dests) == 0 {
		return Address{}, fmt.Errorf("name %q has no destination", name)
	}
	if len(dests) > 1 {
		return Address{}, &MultipleDestinationsError{Name: name, Count: len(dests)}
	}
	return AddressFromParts(dests[0].Sheet, dests[0].Coord)
}

// tableDestination reduces a "table[column]" destination text to the
// column's data range.
func (b *Book) tableDestination(ref string) (Address, error) {
	tableName, column, err := splitTableRef(ref)
	if err != nil {
		return Address{}, err
	}
	columns, err := b.tableColumns(tableName)
	if err != nil {
		return Address{}, err
	}
	addr, ok := columns[column]
	if !ok {
		return Address{}, fmt.Errorf("table %q has no column %q (available: %s)",
			tableName, column, strings.Join(sortedKeys(columns), ", "))
	}
	return addr, nil
}

func splitTableRef(ref string) (table, column string, err error) {
	open := strings.LastIndex(ref, "[")
	if open <= 0 || !strings.HasSuffix(ref, "]") {
		return "", "", fmt.Errorf("malformed table reference %q: want table[column]", ref)
	}
	return ref[:open], ref[open+1 : len(ref)-1], nil
}

// tableSet discovers the workbook's tables once and memoizes them.
func (b *Book) tableSet() (map[string]Table, error) {
	if b.tables == nil {
		tables, err := discoverTables(b.eng)
		if err != nil {
			return nil, err
		}
		b.tables = tables
	}
	return b.tables, nil
}

// tableColumns returns the memoized column address map of one table, with
// the conventional header and totals rows trimmed off.
func (b *Book) tableColumns(tableName string) (map[string]Address, error) {
	if columns, ok := b.columns[tableName]; ok {
		return columns, nil
	}
	tables, err := b.tableSet()
	if err != nil {
		return nil, err
	}
	tbl, ok := tables[tableName]
	if !ok {
		return nil, fmt.Errorf("table %q not found (available: %s)",
			tableName, strings.Join(sortedKeys(tables), ", "))
	}
	columns, err := tbl.ColumnAddresses(DefaultTrimTop, DefaultTrimBottom)
	if err != nil {
		return nil, err
	}
	if b.columns == nil {
		b.columns = map[string]map[string]Address{}
	}
	b.columns[tableName] = columns
	return columns, nil
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
