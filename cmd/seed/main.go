// seed carga el catálogo de demostración (productos, almacenes, clientes y proveedores).
//
// Uso:
//
//	go run ./cmd/seed               aplica el esquema y el catálogo en la base de DATABASE_URL / DB_*
//	go run ./cmd/seed salida.sql    solo escribe el script SQL
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jhoicas/inventario-ventas/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-ventas/internal/infrastructure/seed"
	"github.com/jhoicas/inventario-ventas/pkg/config"
	"github.com/jhoicas/inventario-ventas/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed"})
	catalog := seed.Demo()

	if len(os.Args) > 1 {
		out, err := os.Create(os.Args[1])
		if err != nil {
			log.Fatal().Err(err).Msg("crear archivo")
		}
		defer out.Close()
		if err := catalog.WriteSQL(out); err != nil {
			log.Fatal().Err(err).Msg("escribir SQL")
		}
		log.Info().Str("archivo", os.Args[1]).Int("productos", len(catalog.Products)).Msg("script generado")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conectar a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migrar esquema")
	}
	var sql strings.Builder
	if err := catalog.WriteSQL(&sql); err != nil {
		log.Fatal().Err(err).Msg("generar SQL")
	}
	if _, err := pool.Exec(ctx, sql.String()); err != nil {
		log.Fatal().Err(err).Msg("aplicar catálogo")
	}
	log.Info().
		Int("productos", len(catalog.Products)).
		Int("almacenes", len(catalog.Warehouses)).
		Int("clientes", len(catalog.Customers)).
		Int("proveedores", len(catalog.Suppliers)).
		Msg("catálogo aplicado")
}
