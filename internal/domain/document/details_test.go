package document_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-documentos/internal/domain/document"
	"github.com/jhoicas/inventario-documentos/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixtures
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// assertDecimal compara por valor ("50" y "50.00" son iguales).
func assertDecimal(t *testing.T, expected string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, dec(expected).Equal(got), append([]any{"esperado %s, obtenido %s", expected, got.String()}, msgAndArgs...)...)
}

func item(id int64, name string) entity.ItemReference {
	return entity.ItemReference{
		ID:            id,
		ItemName:      name,
		Description:   "item description " + name,
		ValuationType: "AVERAGE",
	}
}

func detail(itemID int64, name, qty, price string) entity.Detail {
	return entity.Detail{
		Item:        item(itemID, name),
		Description: "detail item " + name,
		Quantity:    dec(qty),
		UnitPrice:   dec(price),
		TotalPrice:  entity.ComputeTotal(dec(qty), dec(price)),
	}
}

func stored(d entity.Detail, id int64, line int) entity.Detail {
	d.ID = entity.Int64Ptr(id)
	d.LineNumber = line
	return d
}

// Tres líneas persistidas: 5×10=50, 3×8=24, 5×8=40 → 114 / 13.
func storedRows() []entity.Detail {
	return []entity.Detail{
		stored(detail(1, "one", "5", "10"), 1, 1),
		stored(detail(2, "two", "3", "8"), 2, 2),
		stored(detail(3, "three", "5", "8"), 3, 3),
	}
}

func seededCollection() *document.DetailCollection {
	return document.NewDetailCollection(&document.DetailSeed{
		Details:  storedRows(),
		Counter:  3,
		Amount:   dec("114"),
		Quantity: dec("13"),
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Construcción
// ──────────────────────────────────────────────────────────────────────────────

func TestNewDetailCollection_SinSemilla(t *testing.T) {
	c := document.NewDetailCollection(nil)

	assert.Empty(t, c.Rows())
	assert.Equal(t, 0, c.LineCounter())
	assertDecimal(t, "0", c.TotalAmount())
	assertDecimal(t, "0", c.TotalQuantity())
	assert.False(t, c.RowsEdited())
}

func TestNewDetailCollection_SoloContador(t *testing.T) {
	c := document.NewDetailCollection(&document.DetailSeed{Counter: 10})
	assert.Equal(t, 10, c.LineCounter())
}

func TestNewDetailCollection_TotalesEnCeroSeCalculan(t *testing.T) {
	rows := []entity.Detail{
		detail(1, "one", "5", "10"),
		detail(2, "two", "3", "8"),
		detail(3, "three", "5", "8"),
	}
	c := document.NewDetailCollection(&document.DetailSeed{Details: rows, Counter: 3})

	assert.Equal(t, 3, c.LineCounter())
	assertDecimal(t, "114", c.TotalAmount())
	assertDecimal(t, "13", c.TotalQuantity())
	assert.True(t, entity.DetailsEqual(rows, c.Rows()), "las líneas sembradas se conservan sin ordenar")
}

func TestNewDetailCollection_ConfiaEnTotalesSembrados(t *testing.T) {
	c := document.NewDetailCollection(&document.DetailSeed{
		Details:  storedRows(),
		Counter:  3,
		Amount:   dec("999"),
		Quantity: dec("1"),
	})
	assertDecimal(t, "999", c.TotalAmount())
	assertDecimal(t, "1", c.TotalQuantity())
}

func TestIncrementLineCounter(t *testing.T) {
	c := document.NewDetailCollection(nil)
	assert.Equal(t, 1, c.IncrementLineCounter())
	assert.Equal(t, 1, c.LineCounter())
}

func TestCreateDetail_NoModificaLaColeccion(t *testing.T) {
	c := document.NewDetailCollection(nil)
	candidate := detail(1, "one", "5", "10")

	created := c.CreateDetail(candidate)

	assert.True(t, created.Equal(candidate))
	assert.Equal(t, 0, c.LineCounter())
	assert.Empty(t, c.Rows())
}

// ──────────────────────────────────────────────────────────────────────────────
// AddDetail / UpdateDetails / RemoveDetails
// ──────────────────────────────────────────────────────────────────────────────

func TestAddDetail_ColeccionVacia(t *testing.T) {
	c := document.NewDetailCollection(nil)

	added := c.AddDetail(detail(1, "one", "5", "10"))

	assert.Equal(t, 1, added.LineNumber)
	assert.Equal(t, 1, c.LineCounter())
	require.Len(t, c.Rows(), 1)
	assert.True(t, c.Rows()[0].Equal(added))
	assertDecimal(t, "50", c.TotalAmount())
	assertDecimal(t, "5", c.TotalQuantity())
	assert.True(t, c.RowsEdited())
}

func TestAddDetail_ConSemilla_InsertaAlInicio(t *testing.T) {
	c := document.NewDetailCollection(&document.DetailSeed{
		Details:  document.SortByLineNumberDesc(storedRows()),
		Counter:  3,
		Amount:   dec("114"),
		Quantity: dec("13"),
	})

	c.AddDetail(detail(4, "four", "1", "10"))

	rows := c.Rows()
	require.Len(t, rows, 4)
	assert.Equal(t, 4, c.LineCounter())
	assertDecimal(t, "124", c.TotalAmount())
	assertDecimal(t, "14", c.TotalQuantity())
	for i, want := range []int{4, 3, 2, 1} {
		assert.Equal(t, want, rows[i].LineNumber)
	}
}

func TestUpdateDetails_ReemplazaEnSuPosicion(t *testing.T) {
	c := seededCollection()
	updated := stored(detail(2, "two", "10", "10"), 2, 2)
	updated.Description = "detail item two updated"

	found := c.UpdateDetails(updated)

	require.True(t, found)
	rows := c.Rows()
	assert.Equal(t, 3, c.LineCounter())
	assertDecimal(t, "190", c.TotalAmount())
	assertDecimal(t, "20", c.TotalQuantity())
	assert.True(t, rows[1].Equal(updated))
	assert.Equal(t, int64(1), *rows[0].ID)
	assert.Equal(t, int64(3), *rows[2].ID)
	assert.True(t, c.RowsEdited())
}

func TestUpdateDetails_IDDesconocido(t *testing.T) {
	c := seededCollection()

	found := c.UpdateDetails(stored(detail(9, "nine", "1", "1"), 99, 9))

	assert.False(t, found)
	assert.True(t, entity.DetailsEqual(storedRows(), c.Rows()))
	assertDecimal(t, "114", c.TotalAmount())
}

func TestRemoveDetails_DosLineas(t *testing.T) {
	c := seededCollection()
	rows := storedRows()

	changed := c.RemoveDetails([]entity.Detail{rows[0], rows[2]})

	assert.Equal(t, 2, changed)
	got := c.Rows()
	require.Len(t, got, 3, "la baja es lógica: las líneas permanecen")
	assert.Equal(t, 3, c.LineCounter())
	assertDecimal(t, "24", c.TotalAmount())
	assertDecimal(t, "3", c.TotalQuantity())
	assert.True(t, got[0].Deleted)
	assert.False(t, got[1].Deleted)
	assert.True(t, got[2].Deleted)
	assert.Len(t, c.ActiveRows(), 1)
	assert.True(t, c.RowsEdited())
}

func TestRemoveDetails_SeleccionSinCoincidencias(t *testing.T) {
	c := seededCollection()

	changed := c.RemoveDetails([]entity.Detail{detail(1, "one", "5", "10")}) // sin id

	assert.Zero(t, changed)
	assertDecimal(t, "114", c.TotalAmount())
	assertDecimal(t, "13", c.TotalQuantity())
	for _, r := range c.Rows() {
		assert.False(t, r.Deleted)
	}
	assert.False(t, c.RowsEdited())
}

func TestRemoveDetails_LineasSinIDPorNumeroDeLinea(t *testing.T) {
	c := seededCollection()
	added := c.AddDetail(detail(4, "four", "1", "10"))
	require.Nil(t, added.ID)

	changed := c.RemoveDetails([]entity.Detail{{LineNumber: added.LineNumber}})

	assert.Equal(t, 1, changed)
	assertDecimal(t, "114", c.TotalAmount())
	assertDecimal(t, "13", c.TotalQuantity())
	for _, r := range c.Rows() {
		assert.Equal(t, r.LineNumber == 4, r.Deleted, "línea %d", r.LineNumber)
	}

	// Un número de línea no alcanza a las líneas guardadas: esas se seleccionan por id.
	assert.Zero(t, c.RemoveDetails([]entity.Detail{{LineNumber: 1}}))
}

func TestRemoveDetails_Idempotente(t *testing.T) {
	c := seededCollection()
	sel := []entity.Detail{storedRows()[0]}

	c.RemoveDetails(sel)
	first := c.Rows()
	amount := c.TotalAmount()

	assert.Zero(t, c.RemoveDetails(sel))
	assert.True(t, entity.DetailsEqual(first, c.Rows()))
	assert.True(t, amount.Equal(c.TotalAmount()))
}

// Ejemplo del enunciado: A(5×10) y B(2×25), baja de A.
func TestRemoveDetails_TotalesSoloDeLineasActivas(t *testing.T) {
	a := stored(detail(1, "A", "5", "10"), 1, 1)
	b := stored(detail(2, "B", "2", "25"), 2, 2)
	c := document.NewDetailCollection(&document.DetailSeed{
		Details:  []entity.Detail{a, b},
		Counter:  2,
		Amount:   dec("100"),
		Quantity: dec("7"),
	})

	c.RemoveDetails([]entity.Detail{a})

	assertDecimal(t, "50", c.TotalAmount())
	assertDecimal(t, "2", c.TotalQuantity())
	assert.True(t, c.Rows()[0].Deleted)
}

// ──────────────────────────────────────────────────────────────────────────────
// SortRow / ResetDetails / ClearDetails / servicio
// ──────────────────────────────────────────────────────────────────────────────

func TestSortRow_DescendentePorLinea(t *testing.T) {
	c := seededCollection()
	input := c.Rows()

	sorted := c.SortRow(input)

	require.Len(t, sorted, 3)
	assert.Equal(t, []int{3, 2, 1}, []int{sorted[0].LineNumber, sorted[1].LineNumber, sorted[2].LineNumber})
	assert.Equal(t, 1, input[0].LineNumber, "la entrada no se modifica")
	assertDecimal(t, "114", c.TotalAmount())
}

func TestSortRow_Estable(t *testing.T) {
	a := stored(detail(1, "a", "1", "1"), 1, 5)
	b := stored(detail(2, "b", "1", "1"), 2, 5)

	sorted := document.SortByLineNumberDesc([]entity.Detail{a, b})

	assert.Equal(t, int64(1), *sorted[0].ID)
	assert.Equal(t, int64(2), *sorted[1].ID)
}

func TestResetDetails_VuelveALaSemilla(t *testing.T) {
	c := seededCollection()
	c.UpdateDetails(stored(detail(2, "two", "10", "10"), 2, 2))
	c.AddDetail(detail(4, "four", "1", "1"))
	require.True(t, c.RowsEdited())

	c.ResetDetails()

	assert.Equal(t, 3, c.LineCounter())
	assertDecimal(t, "114", c.TotalAmount())
	assertDecimal(t, "13", c.TotalQuantity())
	assert.True(t, entity.DetailsEqual(storedRows(), c.Rows()))
	assert.False(t, c.RowsEdited())
}

func TestResetDetails_SemillaNoSeComparteConLasLineas(t *testing.T) {
	seed := storedRows()
	c := document.NewDetailCollection(&document.DetailSeed{Details: seed, Counter: 3})
	seed[0].Quantity = dec("1000")

	c.RemoveDetails([]entity.Detail{storedRows()[0]})
	c.ResetDetails()

	rows := c.Rows()
	assert.False(t, rows[0].Deleted)
	assertDecimal(t, "5", rows[0].Quantity)
}

func TestClearDetails(t *testing.T) {
	c := seededCollection()

	c.ClearDetails()

	assert.Empty(t, c.Rows())
	assert.Equal(t, 0, c.LineCounter())
	assertDecimal(t, "0", c.TotalAmount())
	assertDecimal(t, "0", c.TotalQuantity())
	assert.True(t, c.RowsEdited())
}

func TestClearDetails_VaciaNoMarcaEdicion(t *testing.T) {
	c := document.NewDetailCollection(nil)
	c.ClearDetails()
	assert.False(t, c.RowsEdited())
}

func TestUpdateDetailFromService_NoTocaRowsEdited(t *testing.T) {
	c := document.NewDetailCollection(nil)
	c.AddDetail(detail(1, "one", "5", "10"))

	c.UpdateDetailFromService(storedRows(), 3, dec("114"), dec("13"))

	assert.True(t, c.RowsEdited())
	assert.Equal(t, 3, c.LineCounter())
	assertDecimal(t, "114", c.TotalAmount())
	assert.True(t, entity.DetailsEqual(storedRows(), c.Rows()))
}

func TestReseed_FijaNuevoPuntoDeReset(t *testing.T) {
	c := document.NewDetailCollection(nil)
	c.AddDetail(detail(1, "one", "5", "10"))

	c.Reseed(document.DetailSeed{Details: storedRows(), Counter: 3, Amount: dec("114"), Quantity: dec("13")})
	assert.False(t, c.RowsEdited())

	c.ClearDetails()
	c.ResetDetails()

	assert.Equal(t, 3, c.LineCounter())
	assert.True(t, entity.DetailsEqual(storedRows(), c.Rows()))
}

// ──────────────────────────────────────────────────────────────────────────────
// ReadDetailFromBarcode
// ──────────────────────────────────────────────────────────────────────────────

func scanOf(itemID int64, name string) entity.Detail {
	return detail(itemID, name, "3", "5")
}

func TestReadDetailFromBarcode_ArticuloNuevo(t *testing.T) {
	c := document.NewDetailCollection(&document.DetailSeed{
		Details:  document.SortByLineNumberDesc(storedRows()),
		Counter:  3,
		Amount:   dec("114"),
		Quantity: dec("13"),
	})

	got, ok := c.ReadDetailFromBarcode(scanOf(4, "four"))

	require.True(t, ok)
	rows := c.Rows()
	require.Len(t, rows, 4)
	assert.Equal(t, 4, c.LineCounter())
	assert.Equal(t, 4, rows[0].LineNumber)
	assert.Nil(t, rows[0].ID)
	assert.Equal(t, int64(4), rows[0].Item.ID)
	assert.Equal(t, "detail item four", rows[0].Description)
	assertDecimal(t, "1", rows[0].Quantity)
	assertDecimal(t, "0", rows[0].UnitPrice)
	assertDecimal(t, "0", rows[0].TotalPrice)
	assert.True(t, got.Equal(rows[0]))
	assertDecimal(t, "114", c.TotalAmount())
	assertDecimal(t, "14", c.TotalQuantity())
	assert.True(t, c.RowsEdited())
}

func TestReadDetailFromBarcode_ArticuloExistente(t *testing.T) {
	c := document.NewDetailCollection(&document.DetailSeed{
		Details:  document.SortByLineNumberDesc(storedRows()),
		Counter:  3,
		Amount:   dec("114"),
		Quantity: dec("13"),
	})

	_, ok := c.ReadDetailFromBarcode(scanOf(2, "two"))

	require.True(t, ok)
	rows := c.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, 3, c.LineCounter())
	assert.Equal(t, int64(2), *rows[1].ID)
	assert.Equal(t, 2, rows[1].LineNumber)
	assertDecimal(t, "4", rows[1].Quantity)
	assertDecimal(t, "8", rows[1].UnitPrice)
	assertDecimal(t, "32", rows[1].TotalPrice)
	assertDecimal(t, "122", c.TotalAmount())
	assertDecimal(t, "14", c.TotalQuantity())
}

func TestReadDetailFromBarcode_DobleLecturaSinLineas(t *testing.T) {
	c := document.NewDetailCollection(nil)

	c.ReadDetailFromBarcode(scanOf(7, "seven"))
	c.ReadDetailFromBarcode(scanOf(7, "seven"))

	rows := c.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].LineNumber)
	assert.Equal(t, 1, c.LineCounter())
	assertDecimal(t, "2", rows[0].Quantity)
	assertDecimal(t, "0", rows[0].TotalPrice)
}

func TestReadDetailFromBarcode_SinArticuloNoHaceNada(t *testing.T) {
	c := seededCollection()

	_, ok := c.ReadDetailFromBarcode(entity.Detail{Description: "sin artículo"})

	assert.False(t, ok)
	assert.Equal(t, 3, c.LineCounter())
	assert.Len(t, c.Rows(), 3)
	assert.False(t, c.RowsEdited())
}

func TestAccessors_DevuelvenCopias(t *testing.T) {
	c := seededCollection()

	rows := c.Rows()
	rows[0].Quantity = dec("1000")
	*rows[0].ID = 500

	fresh := c.Rows()
	assertDecimal(t, "5", fresh[0].Quantity)
	assert.Equal(t, int64(1), *fresh[0].ID)
}
