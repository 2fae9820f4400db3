package database

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/pkg/dataflow"
)

// DataSeeder fills the demo dashboard's three backends with sample data.
type DataSeeder struct {
	db        *sql.DB
	elastic   *ElasticClient
	datastore *DatastoreClient
}

func NewDataSeeder(db *sql.DB, ec *ElasticClient, dc *DatastoreClient) *DataSeeder {
	return &DataSeeder{db: db, elastic: ec, datastore: dc}
}

var (
	regions      = []string{"East", "West", "North", "South", "Central"}
	productNames = []string{"Laptop", "Monitor", "Keyboard", "Mouse", "Docking Station", "Headset", "Webcam", "Printer", "Tablet", "Router"}
	categories   = []string{"Hardware", "Accessories", "Peripherals", "Networking"}
	departments  = []string{"Engineering", "Sales", "Marketing", "Support", "Finance"}
)

// salesRow is one monthly_sales record.
type salesRow struct {
	Region    string
	SaleMonth time.Time
	Quantity  int
	Revenue   float64
}

// headcountEntity is one Headcount datastore record.
type headcountEntity struct {
	Department string
	Region     string
	Headcount  int64
	Budget     float64
}

// SeedData populates Postgres, Elasticsearch and Datastore for the demo
// dashboard. Counts come from the chosen preset.
func (ds *DataSeeder) SeedData(ctx context.Context, numMonths, numRegions, numProducts int) error {
	start := time.Now()
	fmt.Println("🚀 Seeding data...")

	if numRegions > len(regions) {
		numRegions = len(regions)
	}

	salesCount, err := ds.seedMonthlySales(ctx, numMonths, regions[:numRegions])
	if err != nil {
		return fmt.Errorf("failed to seed monthly sales: %w", err)
	}
	fmt.Printf("✅ Created %d monthly sales rows\n", salesCount)

	if ds.elastic != nil {
		fmt.Println("📦 Indexing product catalog...")
		if err := ds.seedProductCatalog(ctx, numProducts); err != nil {
			return fmt.Errorf("failed to seed product catalog: %w", err)
		}
		fmt.Printf("✅ Indexed %d products\n", numProducts)
	} else {
		fmt.Println("⏭️  Elasticsearch disabled, skipping product catalog")
	}

	if ds.datastore != nil {
		fmt.Println("📋 Creating headcounts in Datastore...")
		count, err := ds.seedHeadcounts(ctx, regions[:numRegions])
		if err != nil {
			return fmt.Errorf("failed to seed headcounts: %w", err)
		}
		fmt.Printf("✅ Created %d headcount entities\n", count)
	} else {
		fmt.Println("⏭️  Datastore disabled, skipping headcounts")
	}

	fmt.Printf("🎉 Done in %v\n", time.Since(start))
	return nil
}

// seedMonthlySales generates one row per region per month, merged from
// per-region streams, then appends the subtotal and blank-region rows the
// dashboard grid itself shows.
func (ds *DataSeeder) seedMonthlySales(ctx context.Context, numMonths int, seedRegions []string) (int, error) {
	if err := ds.ensureSalesTable(ctx); err != nil {
		return 0, err
	}

	months := monthRange(numMonths)
	streams := make([]dataflow.Stream, len(seedRegions))
	for i, region := range seedRegions {
		streams[i] = salesRowStream(region, months, time.Now().UnixNano()+int64(i))
	}

	var rows []salesRow
	monthTotals := make(map[time.Time]*salesRow)
	for _, item := range dataflow.Collect(ctx, dataflow.FanIn(ctx, streams...)) {
		row := item.(salesRow)
		rows = append(rows, row)

		total, ok := monthTotals[row.SaleMonth]
		if !ok {
			total = &salesRow{Region: "Total", SaleMonth: row.SaleMonth}
			monthTotals[row.SaleMonth] = total
		}
		total.Quantity += row.Quantity
		total.Revenue = math.Round((total.Revenue+row.Revenue)*100) / 100
	}

	for _, m := range months {
		if total, ok := monthTotals[m]; ok {
			rows = append(rows, *total)
		}
	}
	if len(months) > 0 {
		// One unattributed row, as dashboards with incomplete data show
		rows = append(rows, salesRow{Region: "", SaleMonth: months[0], Quantity: 7, Revenue: 350})
	}

	if err := ds.batchInsertSales(ctx, rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}

func (ds *DataSeeder) ensureSalesTable(ctx context.Context) error {
	_, err := ds.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS monthly_sales (
			id SERIAL PRIMARY KEY,
			region TEXT NOT NULL,
			sale_month DATE NOT NULL,
			quantity INTEGER NOT NULL,
			revenue NUMERIC(12, 2) NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create monthly_sales table: %w", err)
	}
	return nil
}

func (ds *DataSeeder) batchInsertSales(ctx context.Context, rows []salesRow) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := ds.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO monthly_sales (region, sale_month, quantity, revenue)
		VALUES ($1, $2, $3, $4)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx, r.Region, r.SaleMonth, r.Quantity, r.Revenue); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// salesRowStream emits one row per month for a region.
func salesRowStream(region string, months []time.Time, seed int64) dataflow.Stream {
	out := make(chan interface{})
	go func() {
		defer close(out)
		rng := rand.New(rand.NewSource(seed))
		for _, m := range months {
			qty := rng.Intn(50) + 1
			out <- salesRow{
				Region:    region,
				SaleMonth: m,
				Quantity:  qty,
				Revenue:   math.Round(float64(qty)*(50+rng.Float64()*450)*100) / 100,
			}
		}
	}()
	return dataflow.New(out)
}

func (ds *DataSeeder) seedProductCatalog(ctx context.Context, numProducts int) error {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	docs := make([]map[string]interface{}, numProducts)
	for i := range docs {
		docs[i] = map[string]interface{}{
			"sku":      fmt.Sprintf("SKU-%04d", i+1),
			"product":  productNames[rng.Intn(len(productNames))],
			"category": categories[rng.Intn(len(categories))],
			"price":    math.Round((20+rng.Float64()*1980)*100) / 100,
			"stock":    rng.Intn(500),
		}
	}

	return ds.elastic.BulkIndex(ctx, "product-catalog", "sku", docs)
}

func (ds *DataSeeder) seedHeadcounts(ctx context.Context, seedRegions []string) (int, error) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	var names []string
	var entities []headcountEntity
	for _, dept := range departments {
		for _, region := range seedRegions {
			names = append(names, fmt.Sprintf("%s-%s", dept, region))
			entities = append(entities, headcountEntity{
				Department: dept,
				Region:     region,
				Headcount:  int64(rng.Intn(80) + 5),
				Budget:     math.Round((100000+rng.Float64()*900000)*100) / 100,
			})
		}
	}

	if err := ds.datastore.BatchPut(ctx, "Headcount", names, entities); err != nil {
		return 0, err
	}
	return len(entities), nil
}

// ClearData removes everything the seeder created.
func (ds *DataSeeder) ClearData(ctx context.Context) error {
	fmt.Println("🗑️  Clearing data...")

	if _, err := ds.db.ExecContext(ctx, "DELETE FROM monthly_sales"); err != nil {
		return fmt.Errorf("failed to delete monthly sales: %w", err)
	}
	fmt.Println("✅ Cleared SQL data")

	if ds.elastic != nil {
		if err := ds.elastic.ResetIndex(ctx, "product-catalog"); err != nil {
			return fmt.Errorf("failed to reset product catalog: %w", err)
		}
		fmt.Println("✅ Cleared product catalog")
	}

	if ds.datastore != nil {
		if err := ds.datastore.DeleteKind(ctx, "Headcount"); err != nil {
			return fmt.Errorf("failed to delete headcounts: %w", err)
		}
		fmt.Println("✅ Cleared headcounts")
	}

	return nil
}

// Presets
type SeedPreset string

const (
	PresetSmall  SeedPreset = "small"
	PresetMedium SeedPreset = "medium"
	PresetLarge  SeedPreset = "large"
)

// monthRange returns consecutive first-of-month dates starting January of
// last year.
func monthRange(count int) []time.Time {
	start := time.Date(time.Now().Year()-1, time.January, 1, 0, 0, 0, 0, time.UTC)
	months := make([]time.Time, count)
	for i := range months {
		months[i] = start.AddDate(0, i, 0)
	}
	return months
}

// GetPresetConfig returns configuration for a preset
func GetPresetConfig(preset SeedPreset) (numMonths, numRegions, numProducts int) {
	switch preset {
	case PresetSmall:
		return 6, 3, 12
	case PresetMedium:
		return 12, 4, 40
	case PresetLarge:
		return 24, 5, 150
	default:
		return 12, 4, 40
	}
}
