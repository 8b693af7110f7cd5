package main

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type catalog struct {
	Bodegas   []bodega   `xml:"bodegas>bodega"`
	Articulos []articulo `xml:"articulos>articulo"`
}

type bodega struct {
	ID        string `xml:"id,attr"`
	Nombre    string `xml:"nombre,attr"`
	Bloqueada string `xml:"bloqueada,attr"`
}

type articulo struct {
	ID          string `xml:"id,attr"`
	Nombre      string `xml:"nombre,attr"`
	Descripcion string `xml:"descripcion"`
	Valuacion   string `xml:"valuacion,attr"`
	Codigo      string `xml:"codigo,attr"`
	Bloqueado   string `xml:"bloqueado,attr"`
}

func decodeCatalog(r io.Reader) (*catalog, error) {
	var c catalog
	dec := xml.NewDecoder(r)
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		if strings.EqualFold(charset, "ISO-8859-1") || strings.EqualFold(charset, "ISO8859-1") {
			return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
		}
		if strings.EqualFold(charset, "windows-1252") {
			return transform.NewReader(input, charmap.Windows1252.NewDecoder()), nil
		}
		return input, nil
	}
	if err := dec.Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// writeSQL escribe los upserts ordenados por id; omite registros sin id numérico o sin nombre.
func writeSQL(w io.Writer, c *catalog) (warehouses, items int, err error) {
	bw := bufio.NewWriter(w)

	var ws, its []sqlRow
	for _, b := range c.Bodegas {
		id, err := strconv.ParseInt(strings.TrimSpace(b.ID), 10, 64)
		if err != nil || strings.TrimSpace(b.Nombre) == "" {
			continue
		}
		ws = append(ws, sqlRow{id, fmt.Sprintf("(%d, '%s', %t)", id, escapeSQL(b.Nombre), flag(b.Bloqueada))})
	}
	for _, a := range c.Articulos {
		id, err := strconv.ParseInt(strings.TrimSpace(a.ID), 10, 64)
		if err != nil || strings.TrimSpace(a.Nombre) == "" {
			continue
		}
		valuation := strings.ToUpper(strings.TrimSpace(a.Valuacion))
		if valuation == "" {
			valuation = "AVERAGE"
		}
		its = append(its, sqlRow{id, fmt.Sprintf("(%d, '%s', '%s', '%s', %s, %t)",
			id, escapeSQL(a.Nombre), escapeSQL(a.Descripcion), escapeSQL(valuation), nullable(a.Codigo), flag(a.Bloqueado))})
	}
	sort.Slice(ws, func(i, j int) bool { return ws[i].id < ws[j].id })
	sort.Slice(its, func(i, j int) bool { return its[i].id < its[j].id })

	bw.WriteString("-- Catálogo de bodegas y artículos\n")
	bw.WriteString("-- Generado desde Catalogo.xml\n\n")

	if len(ws) > 0 {
		bw.WriteString("INSERT INTO warehouses (id, warehouse_name, locked) VALUES\n")
		writeValues(bw, ws)
		bw.WriteString("ON CONFLICT (id) DO UPDATE SET warehouse_name = EXCLUDED.warehouse_name, locked = EXCLUDED.locked;\n\n")
	}
	if len(its) > 0 {
		bw.WriteString("INSERT INTO items (id, item_name, description, valuation_type, barcode, locked) VALUES\n")
		writeValues(bw, its)
		bw.WriteString("ON CONFLICT (id) DO UPDATE SET item_name = EXCLUDED.item_name, description = EXCLUDED.description,\n")
		bw.WriteString("  valuation_type = EXCLUDED.valuation_type, barcode = EXCLUDED.barcode, locked = EXCLUDED.locked;\n\n")
	}
	// Los BIGSERIAL quedan detrás de los ids explícitos.
	bw.WriteString("SELECT setval(pg_get_serial_sequence('warehouses', 'id'), COALESCE((SELECT MAX(id) FROM warehouses), 1));\n")
	bw.WriteString("SELECT setval(pg_get_serial_sequence('items', 'id'), COALESCE((SELECT MAX(id) FROM items), 1));\n")

	return len(ws), len(its), bw.Flush()
}

type sqlRow struct {
	id     int64
	values string
}

func writeValues(bw *bufio.Writer, rows []sqlRow) {
	for i, r := range rows {
		if i < len(rows)-1 {
			fmt.Fprintf(bw, "  %s,\n", r.values)
		} else {
			fmt.Fprintf(bw, "  %s\n", r.values)
		}
	}
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "'", "''")
}

func nullable(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NULL"
	}
	return "'" + escapeSQL(s) + "'"
}

func flag(s string) bool {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "S", "SI", "1", "TRUE":
		return true
	}
	return false
}
