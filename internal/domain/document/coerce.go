package document

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Errores del motor de edición.
var (
	ErrUnknownField = errors.New("document: campo desconocido")
	ErrInvalidValue = errors.New("document: valor incompatible con el campo")
)

// Nombres de campo aceptados por UpdateRowDataField y UpdateDocumentField.
const (
	FieldID            = "id"
	FieldLineNumber    = "lineNumber"
	FieldItem          = "item"
	FieldDescription   = "description"
	FieldQuantity      = "quantity"
	FieldUnitPrice     = "unitPrice"
	FieldTotalPrice    = "totalPrice"
	FieldDeleted       = "deleted"
	FieldType          = "type"
	FieldDate          = "date"
	FieldStatus        = "status"
	FieldWarehouse     = "warehouse"
	FieldTotalQuantity = "totalQuantity"
	FieldTotalAmount   = "totalAmount"
	FieldCounter       = "counter"
)

// toDecimal convierte cualquier entrada numérica o textual a decimal.
// nil, texto en blanco o no numérico valen cero: la entrada se normaliza, no se rechaza.
func toDecimal(value any) decimal.Decimal {
	switch v := value.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return v
	case *decimal.Decimal:
		if v == nil {
			return decimal.Zero
		}
		return *v
	case float64:
		return decimal.NewFromFloat(v)
	case float32:
		return decimal.NewFromFloat32(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case json.Number:
		return parseDecimal(string(v))
	case string:
		return parseDecimal(v)
	}
	return decimal.Zero
}

func parseDecimal(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// toInt convierte a entero; misma normalización que toDecimal.
func toInt(value any) int {
	return int(toDecimal(value).IntPart())
}

// toString acepta texto o nil.
func toString(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", true
	case string:
		return v, true
	case json.Number:
		return string(v), true
	}
	return "", false
}

// toBool acepta bool, nil o texto "true"/"false".
func toBool(value any) (bool, bool) {
	switch v := value.(type) {
	case nil:
		return false, true
	case bool:
		return v, true
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true":
			return true, true
		case "", "false":
			return false, true
		}
	}
	return false, false
}

// toOptionalID acepta nil, enteros y texto numérico.
func toOptionalID(value any) (*int64, bool) {
	switch v := value.(type) {
	case nil:
		return nil, true
	case *int64:
		if v == nil {
			return nil, true
		}
		id := *v
		return &id, true
	case int64, int, int32, float64, json.Number:
		id := toDecimal(v).IntPart()
		return &id, true
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, true
		}
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return nil, false
		}
		id := d.IntPart()
		return &id, true
	}
	return nil, false
}
