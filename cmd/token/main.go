// token emite un JWT firmado con JWT_SECRET para pruebas locales contra la API.
//
// Uso: go run ./cmd/token -user <id> -role admin|bodeguero|consulta
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/inventario-documentos/pkg/config"
	"github.com/jhoicas/inventario-documentos/pkg/jwt"
)

func main() {
	userID := flag.String("user", "", "id del usuario (claim user_id)")
	role := flag.String("role", jwt.RoleBodeguero, "rol: admin, bodeguero o consulta")
	flag.Parse()

	if *userID == "" {
		fmt.Fprintln(os.Stderr, "Falta -user")
		os.Exit(2)
	}
	switch *role {
	case jwt.RoleAdmin, jwt.RoleBodeguero, jwt.RoleConsulta:
	default:
		fmt.Fprintf(os.Stderr, "Rol desconocido: %s\n", *role)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	if cfg.JWT.Secret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET vacío: la API rechazaría el token")
		os.Exit(1)
	}
	tok, err := jwt.Generate(cfg.JWT.Secret, *userID, *role, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
