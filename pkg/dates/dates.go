// Package dates convierte fechas entre el formato de texto que usa el backend
// de inventario ("03-07-2023 23:41:50.000") y time.Time.
package dates

import (
	"strings"
	"time"
)

// Layout formato de fecha del backend (día-mes-año hora:min:seg.milis).
const Layout = "02-01-2006 15:04:05.000"

// shortLayouts formatos aceptados además de Layout al leer.
var shortLayouts = []string{
	"02-01-2006 15:04:05",
	"02-01-2006",
	time.RFC3339Nano,
}

// Parse interpreta s en la zona local. Un texto vacío o inválido devuelve la fecha cero
// y ok=false; nunca falla.
func Parse(s string) (t time.Time, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.ParseInLocation(Layout, s, time.Local); err == nil {
		return t, true
	}
	for _, layout := range shortLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Format devuelve la fecha en Layout; la fecha cero se envía como texto vacío.
func Format(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(time.Local).Format(Layout)
}
