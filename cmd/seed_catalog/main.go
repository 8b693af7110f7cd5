// seed_catalog genera el script SQL que puebla bodegas y artículos a partir del XML
// exportado por el sistema contable (codificación ISO-8859-1).
//
// Uso: go run ./cmd/seed_catalog [ruta/Catalogo.xml]
// Por defecto busca Catalogo.xml en el directorio actual.
// Escribe: internal/infrastructure/postgres/seed_catalog.sql
package main

import (
	"fmt"
	"os"
	"path/filepath"
)

func main() {
	xmlPath := "Catalogo.xml"
	if len(os.Args) > 1 {
		xmlPath = os.Args[1]
	}
	f, err := os.Open(xmlPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir XML: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	cat, err := decodeCatalog(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Decodificar XML: %v\n", err)
		os.Exit(1)
	}

	outPath := filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "seed_catalog.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	warehouses, items, err := writeSQL(out, cat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d bodegas, %d artículos\n", outPath, warehouses, items)
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
