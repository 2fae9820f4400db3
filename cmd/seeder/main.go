package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/config"
	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/database"
	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/logger"
)

func main() {
	// Define flags
	action := flag.String("action", "seed", "Action to perform: seed, clear")
	preset := flag.String("preset", "medium", "Data preset: small, medium, large")
	months := flag.Int("months", 0, "Months of sales history (overrides preset)")
	regions := flag.Int("regions", 0, "Number of sales regions (overrides preset)")
	products := flag.Int("products", 0, "Number of catalog products (overrides preset)")

	flag.Parse()

	ctx := context.Background()

	fmt.Println("🚀 Dashboard Data Seeder")
	fmt.Println(strings.Repeat("=", 50))

	// Load environment configuration
	if err := config.LoadEnvConfig(); err != nil {
		log.Fatal(err)
	}
	logger.InitLogging(config.DefaultEnvConfig.LOG_FILE_PATH, config.DefaultEnvConfig.LOG_LEVEL)

	// Connect to the backends the dashboard views read from
	fmt.Println("📡 Connecting to backends...")
	db, err := database.NewPostgresDB(ctx, database.Config{
		Host:            config.DefaultEnvConfig.DB_HOST,
		Port:            config.DefaultEnvConfig.DB_PORT,
		User:            config.DefaultEnvConfig.DB_USER,
		Password:        config.DefaultEnvConfig.DB_PASSWORD,
		DBName:          config.DefaultEnvConfig.DB_NAME,
		SSLMode:         config.DefaultEnvConfig.DB_SSL_MODE,
		MaxOpenConns:    config.DefaultEnvConfig.DB_MAX_OPEN_CONNS,
		MaxIdleConns:    config.DefaultEnvConfig.DB_MAX_IDLE_CONNS,
		ConnMaxLifetime: config.DefaultEnvConfig.DB_CONN_MAX_LIFETIME,
	})
	if err != nil {
		logger.ErrorLog(ctx, "Failed to initialize database", err)
		log.Fatal(err)
	}
	defer db.Close()

	var ec *database.ElasticClient
	if config.DefaultEnvConfig.ELASTIC_ENABLED {
		ec, err = database.NewElasticClient(config.DefaultEnvConfig.ELASTIC_URL)
		if err != nil {
			logger.ErrorLog(ctx, "Failed to initialize elasticsearch", err)
			log.Fatal(err)
		}
	}

	var dc *database.DatastoreClient
	if config.DefaultEnvConfig.DATASTORE_ENABLED {
		dc, err = database.NewDatastoreClient(ctx, config.DefaultEnvConfig.DATASTORE_PROJECT_ID)
		if err != nil {
			logger.ErrorLog(ctx, "Failed to initialize datastore", err)
			log.Fatal(err)
		}
	}

	// Create seeder
	seeder := database.NewDataSeeder(db, ec, dc)

	// Execute action
	switch *action {
	case "seed":
		performSeed(ctx, seeder, preset, months, regions, products)

	case "clear":
		performClear(ctx, seeder)

	default:
		fmt.Printf("❌ Unknown action: %s\n", *action)
		flag.PrintDefaults()
	}

	fmt.Println("\n✅ Done!")
}

func performSeed(ctx context.Context, seeder *database.DataSeeder, preset *string, months, regions, products *int) {
	var numMonths, numRegions, numProducts int

	// Determine configuration
	if *months > 0 && *regions > 0 && *products > 0 {
		// Use custom values
		numMonths = *months
		numRegions = *regions
		numProducts = *products
		fmt.Printf("📊 Using custom configuration: %d months, %d regions, %d products\n",
			numMonths, numRegions, numProducts)
	} else {
		// Use preset
		presetConfig := database.SeedPreset(*preset)
		numMonths, numRegions, numProducts = database.GetPresetConfig(presetConfig)
		fmt.Printf("📊 Using preset: %s\n", *preset)
	}

	// Perform seeding
	if err := seeder.SeedData(ctx, numMonths, numRegions, numProducts); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}
}

func performClear(ctx context.Context, seeder *database.DataSeeder) {
	fmt.Println("⚠️  This will delete all seeded data!")
	fmt.Print("Continue? (yes/no): ")

	var response string
	fmt.Scanln(&response)

	if response == "yes" {
		if err := seeder.ClearData(ctx); err != nil {
			log.Fatalf("❌ Clear failed: %v", err)
		}
	} else {
		fmt.Println("Cancelled.")
	}
}
