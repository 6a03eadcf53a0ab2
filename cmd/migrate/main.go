// Comando de migraciones del backend PostgreSQL (goose).
//
//	go run ./cmd/migrate            # up por defecto
//	go run ./cmd/migrate down       # revertir la última
//	go run ./cmd/migrate status
package main

import (
	"database/sql"
	"flag"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/jhoicas/stock-ledger/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("migrate: cargar configuración: %v", err)
	}

	var migrationsDir string
	flag.StringVar(&migrationsDir, "dir", "./migrations", "directorio con archivos de migración")
	flag.Parse()

	db, err := sql.Open("pgx", cfg.DB.ConnectionString())
	if err != nil {
		log.Fatalf("migrate: abrir conexión: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Fatalf("migrate: cerrar conexión: %v", err)
		}
	}()

	arguments := flag.Args()
	if len(arguments) == 0 {
		arguments = []string{"up"}
	}

	command := arguments[0]
	var args []string
	if len(arguments) > 1 {
		args = arguments[1:]
	}

	if err := goose.Run(command, db, migrationsDir, args...); err != nil {
		log.Fatalf("goose %v: %v", command, err)
	}

	log.Printf("goose %s ok", command)
}
