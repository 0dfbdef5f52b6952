package namedxlsx

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddress(t *testing.T) {
	tests := []struct {
		text    string
		sheet   string
		coord   string
		size    int
		isRange bool
	}{
		{"A10", "", "A10", 1, false},
		{"A10:A10", "", "A10", 1, false},
		{"Sheet!A10", "Sheet", "A10", 1, false},
		{"Sheet!A10:D10", "Sheet", "A10:D10", 4, true},
		{"Sheet!A10:B11", "Sheet", "A10:B11", 4, true},
		{"A10:C11", "", "A10:C11", 6, true},
		{"A10:A12", "", "A10:A12", 3, true},
		{"A B!A10:B15", "A B", "A10:B15", 12, true},
		{"'A B'!A10:B15", "A B", "A10:B15", 12, true},
		{"$a$10", "", "A10", 1, false},
		{"Sheet!$A$10:$D$10", "Sheet", "A10:D10", 4, true},
		{"B11:A10", "", "A10:B11", 4, true},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			a, err := ParseAddress(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.sheet, a.Sheet())
			assert.Equal(t, tt.coord, a.Coord())
			assert.Equal(t, tt.size, a.Size())
			assert.Equal(t, tt.isRange, a.IsRange())
		})
	}
}

func TestParseAddressInvalid(t *testing.T) {
	for _, text := range []string{"", "hello world", "10A", "Sheet!", "A1:B2:C3", "!A1"} {
		t.Run(text, func(t *testing.T) {
			_, err := ParseAddress(text)
			require.Error(t, err)
			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, text, parseErr.Text)
			assert.Contains(t, err.Error(), text)
		})
	}
}

func TestAddressFromParts(t *testing.T) {
	a, err := AddressFromParts("My Sheet", "A10")
	require.NoError(t, err)
	assert.Equal(t, "My Sheet!A10", a.String())

	a, err = AddressFromParts("", "A10")
	require.NoError(t, err)
	assert.Equal(t, "A10", a.String())
	assert.Equal(t, "", a.Sheet())

	_, err = AddressFromParts("Sheet", "nope")
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "Sheet!nope", parseErr.Text)
}

func TestAddressShape(t *testing.T) {
	tests := []struct {
		text   string
		format string
		rows   int
		cols   int
		size   int
	}{
		{"A10", "A10", 1, 1, 1},
		{"Sheet!A10", "Sheet!A10", 1, 1, 1},
		{"A10:B15", "A10:B15", 6, 2, 12},
		{"A!A10:B15", "A!A10:B15", 6, 2, 12},
		{"A B!A10:B15", "A B!A10:B15", 6, 2, 12},
	}
	for _, tt := range tests {
		a, err := ParseAddress(tt.text)
		require.NoError(t, err)
		assert.Equal(t, tt.format, a.String())
		rows, cols := a.Shape()
		assert.Equal(t, tt.rows, rows)
		assert.Equal(t, tt.cols, cols)
		assert.Equal(t, tt.size, a.Size())
	}
}

func TestAddressRoundTrip(t *testing.T) {
	// Canonical text must survive parse+format verbatim. A sheet name with
	// spaces stays unquoted in canonical output.
	for _, text := range []string{"A10", "Sheet!A10", "A10:B15", "Sheet!A10:B11", "A B!A10:B15"} {
		a, err := ParseAddress(text)
		require.NoError(t, err)
		assert.Equal(t, text, a.String())
	}
}

func TestAddressArray(t *testing.T) {
	a, err := ParseAddress("A10:B11")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"A10", "B10"}, {"A11", "B11"}}, a.Array(OrderRow))
	assert.Equal(t, [][]string{{"A10", "A11"}, {"B10", "B11"}}, a.Array(OrderCol))

	// The sheet qualifier never leaks into the coordinate array.
	q, err := ParseAddress("Hello!A10:B11")
	require.NoError(t, err)
	assert.Equal(t, a.Array(OrderRow), q.Array(OrderRow))

	row, err := ParseAddress("A10:D10")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"A10", "B10", "C10", "D10"}}, row.Array(OrderRow))
	assert.Equal(t, []string{"A10", "B10", "C10", "D10"}, row.Flat(OrderRow))

	col, err := ParseAddress("A10:A13")
	require.NoError(t, err)
	assert.Equal(t, []string{"A10", "A11", "A12", "A13"}, col.Flat(OrderRow))
	assert.Equal(t, col.Flat(OrderRow), col.Flat(OrderCol))

	single, err := ParseAddress("C3")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"C3"}}, single.Array(OrderRow))
	assert.Equal(t, []string{"C3"}, single.Flat(OrderCol))
}

func TestAddressArrayTranspose(t *testing.T) {
	for _, text := range []string{"A1:C4", "A10:B11", "A10:D10", "B2"} {
		a, err := ParseAddress(text)
		require.NoError(t, err)
		rowMajor := a.Array(OrderRow)
		colMajor := a.Array(OrderCol)
		for r := range rowMajor {
			for c := range rowMajor[r] {
				assert.Equal(t, rowMajor[r][c], colMajor[c][r], "transpose mismatch at (%d,%d) of %s", r, c, text)
			}
		}
	}
}

func TestAddressFlatMatchesArray(t *testing.T) {
	for _, order := range []Order{OrderRow, OrderCol} {
		a, err := ParseAddress("B2:D5")
		require.NoError(t, err)
		var flattened []string
		for _, line := range a.Array(order) {
			flattened = append(flattened, line...)
		}
		assert.Equal(t, flattened, a.Flat(order))
	}
}

func TestParseErrorUnwrap(t *testing.T) {
	_, err := ParseAddress("not an address")
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.NotNil(t, errors.Unwrap(parseErr))
}
