package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/erazemk/garderoba/internal/backup"
	"github.com/erazemk/garderoba/internal/db"
	"github.com/erazemk/garderoba/internal/imaging"
	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/outfit"
	"github.com/erazemk/garderoba/internal/report"
	"github.com/erazemk/garderoba/internal/store"
	"github.com/erazemk/garderoba/internal/wardrobe"
)

const usage = "Usage: garderoba <init|add|wear|report|chart|outfit|export|import>"

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "init":
		cmdInit(os.Args[2:])
	case "add":
		cmdAdd(os.Args[2:])
	case "wear":
		cmdWear(os.Args[2:])
	case "report":
		cmdReport(os.Args[2:])
	case "chart":
		cmdChart(os.Args[2:])
	case "outfit":
		cmdOutfit(os.Args[2:])
	case "export":
		cmdExport(os.Args[2:])
	case "import":
		cmdImport(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n%s\n", os.Args[1], usage)
		os.Exit(1)
	}
}

// commonFlags registers the flags every subcommand shares.
func commonFlags(fs *flag.FlagSet) (dbPath, imagesDir *string) {
	dbPath = fs.String("db", "garderoba.sqlite3", "path to SQLite database file")
	imagesDir = fs.String("images", "images", "path to the image directory")
	return dbPath, imagesDir
}

func cmdInit(args []string) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	dbPath, _ := commonFlags(fs)
	fs.Parse(args)

	if _, err := os.Stat(*dbPath); err == nil {
		fatalf("database file %s already exists", *dbPath)
	}

	database, err := db.Open(*dbPath)
	if err != nil {
		fatalf("%v", err)
	}
	defer database.Close()

	if err := db.EnsureSchema(database); err != nil {
		os.Remove(*dbPath)
		fatalf("%v", err)
	}

	fmt.Printf("Database created: %s\n", *dbPath)
}

func cmdAdd(args []string) {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	dbPath, imagesDir := commonFlags(fs)
	category := fs.String("category", "", "item category")
	price := fs.String("price", "", "purchase price")
	original := fs.String("original-price", "", "pre-discount price (defaults to price)")
	reason := fs.String("reason", "", "purchase justification")
	platform := fs.String("platform", "", "acquisition platform or channel")
	size := fs.String("size", "", "item size")
	images := fs.String("photos", "", "comma-separated photo files (at least one)")
	fs.Parse(args)

	ledger, imageStore, cleanup := openLedger(*dbPath, *imagesDir)
	defer cleanup()

	item := model.Item{
		Category: model.Category(*category),
		Reason:   *reason,
		Platform: *platform,
		Size:     *size,
	}
	var err error
	if item.Price, err = decimal.NewFromString(*price); err != nil {
		fatalf("invalid price %q", *price)
	}
	if *original != "" {
		if item.OriginalPrice, err = decimal.NewFromString(*original); err != nil {
			fatalf("invalid original price %q", *original)
		}
	}

	for path := range strings.SplitSeq(*images, ",") {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		f, err := os.Open(path)
		if err != nil {
			fatalf("%v", err)
		}
		ref, err := imageStore.Store(f)
		f.Close()
		if err != nil {
			fatalf("storing photo %s: %v", path, err)
		}
		item.ImageRefs = append(item.ImageRefs, ref)
	}

	if err := ledger.AddItem(context.Background(), item); err != nil {
		fatalf("%v", err)
	}
	fmt.Printf("Added %s (%s, %s)\n", item.ID, item.Category, item.Price)
}

func cmdWear(args []string) {
	fs := flag.NewFlagSet("wear", flag.ExitOnError)
	dbPath, imagesDir := commonFlags(fs)
	id := fs.String("id", "", "item id")
	date := fs.String("date", "", "wear date as YYYY-MM-DD (defaults to today)")
	fs.Parse(args)

	ledger, _, cleanup := openLedger(*dbPath, *imagesDir)
	defer cleanup()

	itemID, err := uuid.Parse(*id)
	if err != nil {
		fatalf("invalid item id %q", *id)
	}

	var when time.Time
	if *date != "" {
		if when, err = time.ParseInLocation("2006-01-02", *date, time.Local); err != nil {
			fatalf("invalid date %q (want YYYY-MM-DD)", *date)
		}
	}

	if err := ledger.LogWear(context.Background(), itemID, when); err != nil {
		fatalf("%v", err)
	}
	fmt.Println("Wear logged.")
}

func cmdReport(args []string) {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	dbPath, imagesDir := commonFlags(fs)
	period := fs.String("period", "month", "statistics period: week, month or year")
	fs.Parse(args)

	ledger, _, cleanup := openLedger(*dbPath, *imagesDir)
	defer cleanup()

	p := model.Period(*period)
	if !p.Valid() {
		fatalf("unknown period %q", *period)
	}

	fmt.Print(report.Summary(ledger.BudgetFor(p), ledger.SpendingByCategory(p), ledger.MonthlyTitle(), ledger.ColdCount()))
}

func cmdChart(args []string) {
	fs := flag.NewFlagSet("chart", flag.ExitOnError)
	dbPath, imagesDir := commonFlags(fs)
	period := fs.String("period", "month", "statistics period: week, month or year")
	out := fs.String("out", "spending.png", "output PNG path")
	fs.Parse(args)

	ledger, _, cleanup := openLedger(*dbPath, *imagesDir)
	defer cleanup()

	p := model.Period(*period)
	if !p.Valid() {
		fatalf("unknown period %q", *period)
	}

	png, err := report.CategoryChartPNG(ledger.SpendingByCategory(p), p)
	if err != nil {
		fatalf("%v", err)
	}
	if err := os.WriteFile(*out, png, 0o644); err != nil {
		fatalf("%v", err)
	}
	fmt.Printf("Chart written to %s\n", *out)
}

func cmdOutfit(args []string) {
	fs := flag.NewFlagSet("outfit", flag.ExitOnError)
	dbPath, imagesDir := commonFlags(fs)
	budget := fs.String("budget", "1000", "price ceiling for the outfit")
	fs.Parse(args)

	ledger, _, cleanup := openLedger(*dbPath, *imagesDir)
	defer cleanup()

	ceiling, err := decimal.NewFromString(*budget)
	if err != nil {
		fatalf("invalid budget %q", *budget)
	}

	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	o, err := outfit.Generate(ledger.Items(), ceiling, rng)
	if err != nil {
		fatalf("%v", err)
	}

	fmt.Printf("Outfit for %s:\n", ceiling)
	for _, item := range o.Items() {
		fmt.Printf("  %-12s %-8s %s\n", item.Category, item.Price, item.Reason)
	}
	fmt.Printf("Total: %s\n", o.TotalPrice())
}

func cmdExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	dbPath, imagesDir := commonFlags(fs)
	out := fs.String("out", "", "output path (defaults to wardrobe-backup-<date>.json)")
	fs.Parse(args)

	ledger, _, cleanup := openLedger(*dbPath, *imagesDir)
	defer cleanup()

	now := time.Now()
	data, err := backup.Export(ledger.Items(), ledger.Settings(), ledger.Notes(), now)
	if err != nil {
		fatalf("%v", err)
	}

	path := *out
	if path == "" {
		path = backup.ExportFilename(now)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fatalf("%v", err)
	}
	fmt.Printf("Backup written to %s\n", path)
}

func cmdImport(args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	dbPath, imagesDir := commonFlags(fs)
	in := fs.String("in", "", "backup file to import")
	fs.Parse(args)

	if *in == "" {
		fatalf("-in is required")
	}
	data, err := os.ReadFile(*in)
	if err != nil {
		fatalf("%v", err)
	}

	items, settings, notes, err := backup.Import(data)
	if err != nil {
		fatalf("%v", err)
	}

	ledger, _, cleanup := openLedger(*dbPath, *imagesDir)
	defer cleanup()

	if err := ledger.Restore(context.Background(), items, settings, notes); err != nil {
		fatalf("%v", err)
	}
	fmt.Printf("Imported %d items.\n", len(items))
}

// openLedger opens the database (creating the schema if needed), the
// image directory and the ledger.
func openLedger(dbPath, imagesDir string) (*wardrobe.Ledger, *imaging.Store, func()) {
	log := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	database, err := db.Open(dbPath)
	if err != nil {
		fatalf("%v", err)
	}
	if err := db.EnsureSchema(database); err != nil {
		database.Close()
		fatalf("%v", err)
	}

	imageStore, err := imaging.NewStore(imagesDir)
	if err != nil {
		database.Close()
		fatalf("%v", err)
	}

	ledger := wardrobe.New(context.Background(), store.New(database), imageStore, wardrobe.WithLogger(log))
	return ledger, imageStore, func() { database.Close() }
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
