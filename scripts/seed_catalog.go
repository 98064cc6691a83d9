// seed_catalog.go — standalone script to create the catalog schema and load a
// small demo part set so the search API has something to chew on.
//
// Usage:
//
//	go run scripts/seed_catalog.go -db postgres://localhost:5432/buildmate
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS cpus (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		brand TEXT, model TEXT, name TEXT, socket TEXT,
		price DOUBLE PRECISION,
		core_count INT, thread_count INT,
		core_clock DOUBLE PRECISION, boost_clock DOUBLE PRECISION,
		tdp INT, power_consumption_overclocked INT,
		benchmark_score DOUBLE PRECISION, workstation_score DOUBLE PRECISION
	)`,
	`CREATE TABLE IF NOT EXISTS gpus (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		brand TEXT, model TEXT, name TEXT,
		price DOUBLE PRECISION, memory_gb INT, tdp INT,
		benchmark_score DOUBLE PRECISION, workstation_score DOUBLE PRECISION
	)`,
	`CREATE TABLE IF NOT EXISTS motherboards (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT, slug TEXT, socket TEXT,
		price DOUBLE PRECISION, form_factor TEXT,
		ddr_version TEXT, ddr_max_speed DOUBLE PRECISION,
		nvme_support TEXT, memory_slots INT
	)`,
	`CREATE TABLE IF NOT EXISTS rams (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT, price DOUBLE PRECISION,
		ddr_generation TEXT, frequency_mhz INT,
		capacity_gb INT, modules INT, benchmark DOUBLE PRECISION
	)`,
	`CREATE TABLE IF NOT EXISTS storages (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT, price DOUBLE PRECISION,
		capacity_gb INT, storage_type TEXT, interface TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS psus (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT, price DOUBLE PRECISION,
		wattage INT, efficiency TEXT, modular TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS coolers (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT, price DOUBLE PRECISION,
		liquid BOOLEAN, power_throughput DOUBLE PRECISION
	)`,
	`CREATE TABLE IF NOT EXISTS cases (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT, price DOUBLE PRECISION, case_type TEXT
	)`,
}

type row struct {
	table string
	cols  string
	args  []interface{}
}

var demo = []row{
	{"cpus", "(brand, model, socket, price, tdp, power_consumption_overclocked, benchmark_score, workstation_score)",
		[]interface{}{"AMD", "Ryzen 5 7600", "AM5", 229.0, 65, 90, 125.0, 95.0}},
	{"cpus", "(brand, model, socket, price, tdp, power_consumption_overclocked, benchmark_score, workstation_score)",
		[]interface{}{"AMD", "Ryzen 7 7800X3D", "AM5", 449.0, 120, 162, 180.0, 130.0}},
	{"cpus", "(brand, model, socket, price, tdp, power_consumption_overclocked, benchmark_score, workstation_score)",
		[]interface{}{"Intel", "Core i5-13600K", "LGA1700", 319.0, 125, 181, 160.0, 140.0}},
	{"cpus", "(brand, model, socket, price, tdp, power_consumption_overclocked, benchmark_score, workstation_score)",
		[]interface{}{"AMD", "Ryzen 5 5600", "AM4", 135.0, 65, 76, 95.0, 72.0}},

	{"gpus", "(brand, name, price, memory_gb, tdp, benchmark_score, workstation_score)",
		[]interface{}{"NVIDIA", "RTX 4060", 299.0, 8, 115, 130.0, 100.0}},
	{"gpus", "(brand, name, price, memory_gb, tdp, benchmark_score, workstation_score)",
		[]interface{}{"NVIDIA", "RTX 4070 Super", 599.0, 12, 220, 200.0, 165.0}},
	{"gpus", "(brand, name, price, memory_gb, tdp, benchmark_score, workstation_score)",
		[]interface{}{"AMD", "RX 7800 XT", 499.0, 16, 263, 185.0, 140.0}},

	{"motherboards", "(name, socket, price, form_factor, ddr_version, ddr_max_speed, nvme_support)",
		[]interface{}{"MSI B650 Tomahawk", "AM5", 219.0, "ATX", "DDR5", 6400.0, "True"}},
	{"motherboards", "(name, socket, price, form_factor, ddr_version, ddr_max_speed, nvme_support)",
		[]interface{}{"Gigabyte B550M DS3H", "AM4", 99.0, "Micro ATX", "DDR4", 4400.0, "True"}},
	{"motherboards", "(name, socket, price, form_factor, ddr_version, ddr_max_speed, nvme_support)",
		[]interface{}{"ASUS Z690-P", "LGA1700", 189.0, "ATX", "DDR5", 6000.0, "True"}},
	{"motherboards", "(name, socket, price, form_factor, ddr_version, ddr_max_speed, nvme_support)",
		[]interface{}{"MSI PRO B660M-A", "LGA1700", 129.0, "Micro ATX", "DDR4", 4600.0, "True"}},

	{"rams", "(name, price, ddr_generation, frequency_mhz, capacity_gb, modules, benchmark)",
		[]interface{}{"Corsair Vengeance 32GB DDR5-6000", 104.0, "ddr5", 6000, 32, 2, 95.0}},
	{"rams", "(name, price, ddr_generation, frequency_mhz, capacity_gb, modules, benchmark)",
		[]interface{}{"G.Skill Ripjaws 16GB DDR4-3600", 45.0, "ddr4", 3600, 16, 2, 60.0}},
	{"rams", "(name, price, ddr_generation, frequency_mhz, capacity_gb, modules, benchmark)",
		[]interface{}{"Kingston Fury 32GB DDR4-3200", 70.0, "ddr4", 3200, 32, 2, 68.0}},

	{"storages", "(name, price, capacity_gb, storage_type, interface)",
		[]interface{}{"WD Black SN770 1TB", 79.0, 1000, "SSD", "NVMe"}},
	{"storages", "(name, price, capacity_gb, storage_type, interface)",
		[]interface{}{"Crucial MX500 1TB", 69.0, 1000, "SSD", "SATA"}},

	{"psus", "(name, price, wattage, efficiency, modular)",
		[]interface{}{"Corsair RM750e", 99.0, 750, "80+ Gold", "Full"}},
	{"psus", "(name, price, wattage, efficiency, modular)",
		[]interface{}{"EVGA 600 BR", 54.0, 600, "80+ Bronze", "No"}},

	{"coolers", "(name, price, liquid, power_throughput)",
		[]interface{}{"Thermalright Peerless Assassin", 35.0, false, 245.0}},
	{"coolers", "(name, price, liquid, power_throughput)",
		[]interface{}{"Arctic Liquid Freezer III 240", 89.0, true, 300.0}},

	{"cases", "(name, price, case_type)",
		[]interface{}{"Fractal Pop Air", 79.0, "ATX Mid Tower"}},
	{"cases", "(name, price, case_type)",
		[]interface{}{"Cooler Master NR200", 89.0, "Mini ITX Tower"}},
}

func main() {
	dbURL := flag.String("db", "postgres://localhost:5432/buildmate", "Postgres connection URL")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, *dbURL)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer conn.Close(ctx)

	for _, ddl := range schema {
		if _, err := conn.Exec(ctx, ddl); err != nil {
			log.Fatalf("create schema: %v", err)
		}
	}

	for _, r := range demo {
		ph := make([]string, len(r.args))
		for i := range r.args {
			ph[i] = fmt.Sprintf("$%d", i+1)
		}
		sql := "INSERT INTO " + r.table + " " + r.cols + " VALUES (" + strings.Join(ph, ", ") + ")"
		if _, err := conn.Exec(ctx, sql, r.args...); err != nil {
			log.Fatalf("insert into %s: %v", r.table, err)
		}
	}

	log.Printf("seeded %d demo parts", len(demo))
}
