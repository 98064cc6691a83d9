package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ruon90/PCBuildMate/internal/parts"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// LoadCatalog reads all eight part tables into one snapshot.
func (s *PostgresStore) LoadCatalog(ctx context.Context) (*parts.Catalog, error) {
	cat := &parts.Catalog{}
	var err error

	if cat.CPUs, err = s.loadCPUs(ctx); err != nil {
		return nil, fmt.Errorf("load cpus: %w", err)
	}
	if cat.GPUs, err = s.loadGPUs(ctx); err != nil {
		return nil, fmt.Errorf("load gpus: %w", err)
	}
	if cat.Motherboards, err = s.loadMotherboards(ctx); err != nil {
		return nil, fmt.Errorf("load motherboards: %w", err)
	}
	if cat.RAMs, err = s.loadRAMs(ctx); err != nil {
		return nil, fmt.Errorf("load rams: %w", err)
	}
	if cat.Storages, err = s.loadStorages(ctx); err != nil {
		return nil, fmt.Errorf("load storages: %w", err)
	}
	if cat.PSUs, err = s.loadPSUs(ctx); err != nil {
		return nil, fmt.Errorf("load psus: %w", err)
	}
	if cat.Coolers, err = s.loadCoolers(ctx); err != nil {
		return nil, fmt.Errorf("load coolers: %w", err)
	}
	if cat.Cases, err = s.loadCases(ctx); err != nil {
		return nil, fmt.Errorf("load cases: %w", err)
	}
	return cat, nil
}

func (s *PostgresStore) loadCPUs(ctx context.Context) ([]*parts.CPU, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, brand, model, name, socket, price,
			core_count, thread_count, core_clock, boost_clock,
			tdp, power_consumption_overclocked,
			benchmark_score, workstation_score
		FROM cpus ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*parts.CPU
	for rows.Next() {
		c := &parts.CPU{}
		var brand, model, name, socket *string
		if err := rows.Scan(&c.ID, &brand, &model, &name, &socket, &c.Price,
			&c.CoreCount, &c.ThreadCount, &c.CoreClock, &c.BoostClock,
			&c.TDP, &c.OverclockedPower,
			&c.BenchScore, &c.WorkstationScore); err != nil {
			return nil, err
		}
		c.Brand = strOrEmpty(brand)
		c.Model = strOrEmpty(model)
		c.Name = strOrEmpty(name)
		c.Socket = strOrEmpty(socket)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *PostgresStore) loadGPUs(ctx context.Context) ([]*parts.GPU, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, brand, model, name, price, memory_gb, tdp,
			benchmark_score, workstation_score
		FROM gpus ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*parts.GPU
	for rows.Next() {
		g := &parts.GPU{}
		var brand, model, name *string
		if err := rows.Scan(&g.ID, &brand, &model, &name, &g.Price,
			&g.MemoryGB, &g.TDP, &g.BenchScore, &g.WorkstationScore); err != nil {
			return nil, err
		}
		g.Brand = strOrEmpty(brand)
		g.Model = strOrEmpty(model)
		g.Name = strOrEmpty(name)
		out = append(out, g)
	}
	return out, rows.Err()
}

func (s *PostgresStore) loadMotherboards(ctx context.Context) ([]*parts.Motherboard, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, slug, socket, price, form_factor,
			ddr_version, ddr_max_speed, nvme_support, memory_slots
		FROM motherboards ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*parts.Motherboard
	for rows.Next() {
		m := &parts.Motherboard{}
		var name, slug, socket, formFactor, ddrVersion, nvmeSupport *string
		if err := rows.Scan(&m.ID, &name, &slug, &socket, &m.Price, &formFactor,
			&ddrVersion, &m.DDRMaxSpeed, &nvmeSupport, &m.MemorySlots); err != nil {
			return nil, err
		}
		m.Name = strOrEmpty(name)
		m.Slug = strOrEmpty(slug)
		m.Socket = strOrEmpty(socket)
		m.FormFactor = strOrEmpty(formFactor)
		m.DDRVersion = strOrEmpty(ddrVersion)
		m.NVMeSupport = strOrEmpty(nvmeSupport)
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *PostgresStore) loadRAMs(ctx context.Context) ([]*parts.RAM, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, price, ddr_generation, frequency_mhz,
			capacity_gb, modules, benchmark
		FROM rams ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*parts.RAM
	for rows.Next() {
		r := &parts.RAM{}
		var name, gen *string
		if err := rows.Scan(&r.ID, &name, &r.Price, &gen, &r.FrequencyMHz,
			&r.CapacityGB, &r.Modules, &r.Benchmark); err != nil {
			return nil, err
		}
		r.Name = strOrEmpty(name)
		r.DDRGeneration = strOrEmpty(gen)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *PostgresStore) loadStorages(ctx context.Context) ([]*parts.Storage, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, price, capacity_gb, storage_type, interface
		FROM storages ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*parts.Storage
	for rows.Next() {
		st := &parts.Storage{}
		var name, typ, iface *string
		if err := rows.Scan(&st.ID, &name, &st.Price, &st.CapacityGB, &typ, &iface); err != nil {
			return nil, err
		}
		st.Name = strOrEmpty(name)
		st.Type = strOrEmpty(typ)
		st.Interface = strOrEmpty(iface)
		out = append(out, st)
	}
	return out, rows.Err()
}

func (s *PostgresStore) loadPSUs(ctx context.Context) ([]*parts.PSU, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, price, wattage, efficiency, modular
		FROM psus ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*parts.PSU
	for rows.Next() {
		p := &parts.PSU{}
		var name, eff, modular *string
		if err := rows.Scan(&p.ID, &name, &p.Price, &p.Wattage, &eff, &modular); err != nil {
			return nil, err
		}
		p.Name = strOrEmpty(name)
		p.Efficiency = strOrEmpty(eff)
		p.Modular = strOrEmpty(modular)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PostgresStore) loadCoolers(ctx context.Context) ([]*parts.Cooler, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, price, liquid, power_throughput
		FROM coolers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*parts.Cooler
	for rows.Next() {
		c := &parts.Cooler{}
		var name *string
		if err := rows.Scan(&c.ID, &name, &c.Price, &c.Liquid, &c.PowerThroughput); err != nil {
			return nil, err
		}
		c.Name = strOrEmpty(name)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *PostgresStore) loadCases(ctx context.Context) ([]*parts.Case, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, price, case_type
		FROM cases ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*parts.Case
	for rows.Next() {
		c := &parts.Case{}
		var name, caseType *string
		if err := rows.Scan(&c.ID, &name, &c.Price, &caseType); err != nil {
			return nil, err
		}
		c.Name = strOrEmpty(name)
		c.CaseType = strOrEmpty(caseType)
		out = append(out, c)
	}
	return out, rows.Err()
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
