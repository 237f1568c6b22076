package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"laptop-storefront/internal/app"
	"laptop-storefront/internal/catalog"
	"laptop-storefront/internal/config"
	"laptop-storefront/internal/database"
	"laptop-storefront/internal/export"
	"laptop-storefront/internal/repository"
	"laptop-storefront/internal/seed"
)

func main() {
	cmd := &cli.Command{
		Name:   "laptop-storefront",
		Usage:  "Laptop storefront and admin API",
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API",
				Action: serve,
			},
			{
				Name:  "seed",
				Usage: "Insert demo products, customers and reviews",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "products", Value: 40, Usage: "products to create (the catalog holds at most 80)"},
					&cli.IntFlag{Name: "customers", Value: 25},
					&cli.IntFlag{Name: "reviews", Value: 30},
					&cli.IntFlag{Name: "seed", Usage: "random seed, 0 uses the clock"},
				},
				Action: runSeed,
			},
			{
				Name:  "export",
				Usage: "Export customers, products or reviews to CSV or XLSX",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "entity", Aliases: []string{"e"}, Value: "customers", Usage: "customers, products or reviews"},
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "csv", Usage: "csv or xlsx"},
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output file, defaults to <entity>-<date>.<format>"},
				},
				Action: runExport,
			},
			{
				Name:   "indexes",
				Usage:  "Create MongoDB indexes",
				Action: runIndexes,
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx, os.Args); err != nil {
		logrus.WithError(err).Fatal("command failed")
	}
}

// bootstrap carga la configuración y arma la aplicación.
// Los comandos que no levantan el servidor no necesitan el proveedor de identidad.
func bootstrap(ctx context.Context, serving bool) (*app.App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if serving {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	} else if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI is required")
	}
	return app.New(ctx, cfg)
}

func serve(ctx context.Context, _ *cli.Command) error {
	a, err := bootstrap(ctx, true)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := database.EnsureIndexes(ctx, a.DB, a.Logger); err != nil {
		a.Logger.WithError(err).Warn("could not ensure indexes")
	}
	return a.Serve(ctx)
}

func runSeed(ctx context.Context, c *cli.Command) error {
	a, err := bootstrap(ctx, false)
	if err != nil {
		return err
	}
	defer a.Close()

	s := seed.NewSeeder(a.Products, a.Customers, a.Reviews, a.Logger)
	summary, err := s.Run(ctx, seed.Options{
		Products:  int(c.Int("products")),
		Customers: int(c.Int("customers")),
		Reviews:   int(c.Int("reviews")),
		Seed:      int64(c.Int("seed")),
	})
	if err != nil {
		return err
	}

	fmt.Printf("seeded %d products, %d customers, %d reviews\n", summary.Products, summary.Customers, summary.Reviews)
	if summary.CapacityReached {
		fmt.Println("catalog is full, some products were skipped")
	}
	return nil
}

func runExport(ctx context.Context, c *cli.Command) error {
	format, err := export.ParseFormat(c.String("format"))
	if err != nil {
		return err
	}

	a, err := bootstrap(ctx, false)
	if err != nil {
		return err
	}
	defer a.Close()

	now := time.Now()
	var table export.Table
	switch entity := c.String("entity"); entity {
	case "customers":
		customers, err := a.Customers.List(ctx, repository.CustomerQuery{})
		if err != nil {
			return err
		}
		table = export.CustomersTable(customers, now)
	case "products":
		products, err := a.Products.List(ctx, catalog.FilterSpec{}, "")
		if err != nil {
			return err
		}
		table = export.ProductsTable(products)
	case "reviews":
		reviews, err := a.Reviews.List(ctx, repository.ReviewQuery{})
		if err != nil {
			return err
		}
		table = export.ReviewsTable(reviews)
	default:
		return fmt.Errorf("unknown entity %q", entity)
	}

	out := c.String("out")
	if out == "" {
		out = export.Filename(c.String("entity"), format, now)
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}
	defer f.Close()

	if err := export.Write(f, format, table); err != nil {
		return err
	}
	fmt.Printf("wrote %d rows to %s\n", len(table.Rows), out)
	return nil
}

func runIndexes(ctx context.Context, _ *cli.Command) error {
	a, err := bootstrap(ctx, false)
	if err != nil {
		return err
	}
	defer a.Close()

	return database.EnsureIndexes(ctx, a.DB, a.Logger)
}
