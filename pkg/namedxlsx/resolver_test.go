package namedxlsx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finmodel/namedxlsx-go/pkg/namedxlsx/engine"
)

func salesEngine() *fakeEngine {
	eng := newFakeEngine()
	// A table following the project convention: identifier prefixed "t.",
	// one header row on top, one totals row at the bottom.
	eng.tables = []engine.TableInfo{{
		Name:    "t.Sales",
		Sheet:   "Data",
		Columns: []string{"Amount", "Region"},
		Range:   "B2:C6",
	}}
	eng.names = append(eng.names, "sales_amounts", "sales_regions")
	eng.refers["sales_amounts"] = "t.Sales[Amount]"
	eng.refers["sales_regions"] = "t.Sales[Region]"
	return eng
}

func TestNameAddressNative(t *testing.T) {
	eng := newFakeEngine()
	eng.defineName("total", "Summary", "D10")
	book := NewBook(eng)

	addr, err := book.NameAddress("total")
	require.NoError(t, err)
	assert.Equal(t, "Summary!D10", addr.String())
}

func TestNameAddressNotFound(t *testing.T) {
	eng := newFakeEngine()
	eng.defineName("alpha", "S", "A1")
	eng.defineName("beta", "S", "B1")
	book := NewBook(eng)

	_, err := book.NameAddress("gamma")
	var notFound *NameNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "gamma", notFound.Name)
	assert.Equal(t, []string{"alpha", "beta"}, notFound.Available)
	assert.Contains(t, err.Error(), "alpha")
	assert.Contains(t, err.Error(), "beta")
}

func TestNameAddressMultipleDestinations(t *testing.T) {
	eng := newFakeEngine()
	eng.names = append(eng.names, "split")
	eng.refers["split"] = "Sheet1!$A$1,Sheet2!$B$2"
	eng.dests["split"] = []engine.Destination{
		{Sheet: "Sheet1", Coord: "A1"},
		{Sheet: "Sheet2", Coord: "B2"},
	}
	book := NewBook(eng)

	_, err := book.NameAddress("split")
	var multi *MultipleDestinationsError
	require.ErrorAs(t, err, &multi)
	assert.Equal(t, "split", multi.Name)
	assert.Equal(t, 2, multi.Count)
}

func TestNameAddressNoDestination(t *testing.T) {
	eng := newFakeEngine()
	eng.names = append(eng.names, "dangling")
	eng.refers["dangling"] = "Sheet1!$A$1"
	book := NewBook(eng)

	_, err := book.NameAddress("dangling")
	require.ErrorContains(t, err, "no destination")
}

func TestNameAddressTableColumn(t *testing.T) {
	book := NewBook(salesEngine())

	// The table occupies B2:C6; the header row (2) and totals row (6) are
	// excluded, leaving exactly the data rows.
	addr, err := book.NameAddress("sales_amounts")
	require.NoError(t, err)
	assert.Equal(t, "Data!B3:B5", addr.String())

	addr, err = book.NameAddress("sales_regions")
	require.NoError(t, err)
	assert.Equal(t, "Data!C3:C5", addr.String())
}

func TestNameAddressTableColumnUnknown(t *testing.T) {
	eng := salesEngine()
	eng.names = append(eng.names, "bad_column", "bad_table", "malformed")
	eng.refers["bad_column"] = "t.Sales[Nope]"
	eng.refers["bad_table"] = "t.Missing[Amount]"
	eng.refers["malformed"] = "t.Sales"
	book := NewBook(eng)

	_, err := book.NameAddress("bad_column")
	require.ErrorContains(t, err, `no column "Nope"`)
	require.ErrorContains(t, err, "Amount")

	_, err = book.NameAddress("bad_table")
	require.ErrorContains(t, err, `"t.Missing" not found`)
	require.ErrorContains(t, err, "t.Sales")

	_, err = book.NameAddress("malformed")
	require.ErrorContains(t, err, "malformed table reference")
}

func TestTableDiscoveryMemoized(t *testing.T) {
	eng := salesEngine()
	book := NewBook(eng)

	_, err := book.NameAddress("sales_amounts")
	require.NoError(t, err)

	// A second resolve must hit the cache, not rediscover. Dropping the
	// engine's table list makes a rediscovery visible.
	eng.tables = nil
	addr, err := book.NameAddress("sales_regions")
	require.NoError(t, err)
	assert.Equal(t, "Data!C3:C5", addr.String())
}

func TestReadWriteName(t *testing.T) {
	eng := salesEngine()
	eng.defineName("threshold", "Summary", "D1")
	eng.cells["Summary!D1"] = "0.25"
	eng.cells["Data!B3"] = "10"
	eng.cells["Data!B4"] = "20"
	eng.cells["Data!B5"] = "30"
	book := NewBook(eng)

	v, err := book.ReadName("threshold", ReadAs(AsFloat))
	require.NoError(t, err)
	assert.Equal(t, 0.25, v)

	v, err = book.ReadName("sales_amounts", ReadAs(AsInt))
	require.NoError(t, err)
	assert.Equal(t, []any{int64(10), int64(20), int64(30)}, v)

	require.NoError(t, book.WriteName("sales_amounts", []int{7, 8, 9}))
	assert.Equal(t, "8", eng.cells["Data!B4"])

	err = book.WriteName("sales_amounts", []int{7, 8})
	var mismatch *ShapeMismatchError
	require.ErrorAs(t, err, &mismatch)
}
