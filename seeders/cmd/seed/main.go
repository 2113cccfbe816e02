package main

import (
	"flag"
	"log"

	"apparel-erp/pkg/config"
	"apparel-erp/pkg/database/postgresql"
	"apparel-erp/seeders"
)

func main() {
	runDemo := flag.Bool("demo", false, "seed the demo workspace with admin user and master data")
	runAll := flag.Bool("all", false, "run every seeder")
	flag.Parse()

	if !*runDemo && !*runAll {
		log.Println("no seeder selected")
		flag.PrintDefaults()
		return
	}

	cfg := config.New()
	db := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer db.Close()

	if *runAll || *runDemo {
		if err := seeders.SeedDemoWorkspace(db); err != nil {
			log.Fatalf("demo seeder failed: %v", err)
		}
	}

	log.Println("seeding completed")
}
