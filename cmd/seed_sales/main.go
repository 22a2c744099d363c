// seed_sales genera una serie diaria de ventas de demostración para una empresa
// y la guarda en sales_summary (upsert, se puede ejecutar varias veces).
//
// Uso: go run ./cmd/seed_sales --company <uuid> [--days 120] [--base 1500000] [--seed 42]
// La conexión sale de la misma configuración que la API (DATABASE_URL, DB_HOST, ...).
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"

	"github.com/jhoicas/inventario-dashboard/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-dashboard/pkg/config"
	"github.com/jhoicas/inventario-dashboard/pkg/logger"
)

func main() {
	var (
		companyID string
		days      int
		base      string
		seed      int64
		endDate   string
	)
	pflag.StringVar(&companyID, "company", "", "UUID de la empresa (obligatorio)")
	pflag.IntVar(&days, "days", 120, "cuántos días generar hacia atrás desde --end")
	pflag.StringVar(&base, "base", "1500000", "venta diaria promedio")
	pflag.Int64Var(&seed, "seed", 42, "semilla del generador (misma semilla = misma serie)")
	pflag.StringVar(&endDate, "end", "", "último día (YYYY-MM-DD); por defecto hoy")
	pflag.Parse()

	if _, err := uuid.Parse(companyID); err != nil {
		fmt.Fprintf(os.Stderr, "--company debe ser un UUID: %v\n", err)
		os.Exit(2)
	}
	if days <= 0 {
		fmt.Fprintln(os.Stderr, "--days debe ser > 0")
		os.Exit(2)
	}
	baseValue, err := decimal.NewFromString(base)
	if err != nil || baseValue.IsNegative() {
		fmt.Fprintf(os.Stderr, "--base inválido: %q\n", base)
		os.Exit(2)
	}
	end := time.Now().UTC()
	if endDate != "" {
		if end, err = time.Parse("2006-01-02", endDate); err != nil {
			fmt.Fprintf(os.Stderr, "--end inválido: %v\n", err)
			os.Exit(2)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: "seed_sales"})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("esquema")
	}

	repo := postgres.NewSalesSeriesRepository(pool)
	series := generateSeries(end, days, baseValue, seed)
	for _, rec := range series {
		if err := repo.UpsertDay(ctx, companyID, rec); err != nil {
			log.Fatal().Err(err).Msg("upsert")
		}
	}
	log.Info().
		Str("company_id", companyID).
		Int("days", len(series)).
		Str("from", series[0].Date.Format("2006-01-02")).
		Str("to", series[len(series)-1].Date.Format("2006-01-02")).
		Msg("serie de ventas generada")
}
