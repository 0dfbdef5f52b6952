package namedxlsx

import (
	"fmt"
	"strings"
)

// ParseError indicates a textual address did not match the grammar.
type ParseError struct {
	// Text is the offending input.
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse address %q: %v", e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NameNotFoundError indicates a requested name is absent from the
// workbook's defined names.
type NameNotFoundError struct {
	Name string
	// Available lists the names the workbook does define.
	Available []string
}

func (e *NameNotFoundError) Error() string {
	return fmt.Sprintf("name %q not defined in workbook (available: %s)",
		e.Name, strings.Join(e.Available, ", "))
}

// MultipleDestinationsError indicates a defined name resolves to more than
// one destination, which is unsupported by design.
type MultipleDestinationsError struct {
	Name  string
	Count int
}

func (e *MultipleDestinationsError) Error() string {
	return fmt.Sprintf("name %q resolves to %d destinations: multiple destinations not supported",
		e.Name, e.Count)
}

// ShapeMismatchError indicates a range write was given a value count that
// does not equal the range's cell count.
type ShapeMismatchError struct {
	Addr   Address
	Values int
	Cells  int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("cannot broadcast %d values over %d cells of %s",
		e.Values, e.Cells, e.Addr)
}
