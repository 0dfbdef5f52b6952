// Package engine defines the workbook capability interface and the
// registry of available bindings.
package engine

import (
	"errors"
	"fmt"
	"sort"
)

// ErrMissingPath indicates a save was requested with neither an explicit
// target nor a remembered origin path.
var ErrMissingPath = errors.New("no file path: need an explicit target or a remembered origin")

// Destination is a single resolved defined-name target.
type Destination struct {
	Sheet string
	Coord string
}

// TableInfo describes a structured table registered in a workbook.
type TableInfo struct {
	// Name is the table identifier.
	Name string
	// Sheet is the owning sheet.
	Sheet string
	// Columns lists column names in the table's declared order.
	Columns []string
	// Range is the table's full occupied range (header and totals included),
	// e.g. "A1:D10".
	Range string
}

// Engine is the capability set the core requires from a workbook binding.
// Every call is direct and blocking; the core adds no batching or retries.
type Engine interface {
	// CellValue returns the value of a single cell. For formula cells this
	// is the cached evaluated value unless the binding was opened raw.
	CellValue(sheet, coord string) (string, error)
	// SetCellValue assigns a single cell.
	SetCellValue(sheet, coord string, value any) error

	// DefinedNames lists the workbook's defined-name identifiers.
	DefinedNames() []string
	// DefinedNameRefersTo returns the raw destination text of a defined name.
	DefinedNameRefersTo(name string) (string, error)
	// DefinedNameDestinations returns the parsed destination list of a
	// defined name, one entry per referenced area.
	DefinedNameDestinations(name string) ([]Destination, error)

	// Tables lists every structured table across all sheets.
	Tables() ([]TableInfo, error)

	// Save writes the workbook back to its remembered origin path.
	// Returns ErrMissingPath when there is none.
	Save() error
	// SaveAs writes the workbook to the given path.
	SaveAs(path string) error
	// Close releases the underlying workbook.
	Close() error
	// Path returns the remembered origin path, or "".
	Path() string
}

// Options configures how a binding opens a workbook.
type Options struct {
	// Raw requests raw stored cell values instead of formatted cached
	// results of formula evaluation.
	Raw bool
}

// Opener opens a workbook file and returns an Engine bound to it.
type Opener func(path string, opts Options) (Engine, error)

var registry = map[string]Opener{}

// Register makes a binding available under the given name. Bindings call
// this from init; a binding whose runtime dependency is absent simply never
// registers, so its name is missing from the registry rather than crashing.
func Register(name string, open Opener) {
	registry[name] = open
}

// Open opens path with the named binding.
func Open(name, path string, opts Options) (Engine, error) {
	open, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown engine %q (available: %v)", name, Names())
	}
	return open(path, opts)
}

// Names lists the registered binding names, sorted.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
