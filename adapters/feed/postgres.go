package feed

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"

	"titlequote/core/rates"
	"titlequote/core/types"
	"titlequote/internal/errors"
)

// PostgresSource loads the feed from a PostgreSQL rate database
// maintained by the upstream rate desk. The engine only reads.
type PostgresSource struct {
	db *sql.DB
}

// NewPostgresSource opens a connection to PostgreSQL and verifies it is
// reachable before returning.
func NewPostgresSource(dsn string) (*PostgresSource, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, errors.Feed("postgres open failed", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, errors.Feed("postgres ping failed after retries", err)
	}

	return &PostgresSource{db: db}, nil
}

// Close closes the underlying connection pool.
func (s *PostgresSource) Close() error {
	return s.db.Close()
}

// Load reads every rate table in one pass.
func (s *PostgresSource) Load(ctx context.Context) (rates.Tables, error) {
	var tables rates.Tables
	var err error

	if tables.RateTiers, err = s.loadRateTiers(ctx); err != nil {
		return rates.Tables{}, err
	}
	if tables.EscrowResale, err = s.loadEscrowResale(ctx); err != nil {
		return rates.Tables{}, err
	}
	if tables.EscrowRefinance, err = s.loadEscrowRefinance(ctx); err != nil {
		return rates.Tables{}, err
	}
	if tables.TransferTax, err = s.loadTransferTax(ctx); err != nil {
		return rates.Tables{}, err
	}
	if tables.Endorsements, err = s.loadEndorsements(ctx); err != nil {
		return rates.Tables{}, err
	}
	if tables.Fees, err = s.loadFees(ctx); err != nil {
		return rates.Tables{}, err
	}
	if tables.Zones, err = s.loadZones(ctx); err != nil {
		return rates.Tables{}, err
	}

	return tables, nil
}

func (s *PostgresSource) loadRateTiers(ctx context.Context) ([]types.RateTier, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT min_range, max_range, unbounded,
		       owner_rate, enhanced_owner_rate,
		       concurrent_lender_rate, standalone_lender_rate, full_lender_rate
		FROM rate_tiers
		ORDER BY min_range
	`)
	if err != nil {
		return nil, errors.Feed("postgres: query rate_tiers", err)
	}
	defer rows.Close()

	var tiers []types.RateTier
	for rows.Next() {
		var t types.RateTier
		if err := rows.Scan(
			&t.MinRange, &t.MaxRange, &t.Unbounded,
			&t.Owner, &t.EnhancedOwner,
			&t.ConcurrentLender, &t.StandaloneLender, &t.FullLender,
		); err != nil {
			return nil, errors.Feed("postgres: scan rate_tiers", err)
		}
		tiers = append(tiers, t)
	}
	return tiers, rows.Err()
}

func (s *PostgresSource) loadEscrowResale(ctx context.Context) ([]types.EscrowResaleRule, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT zone, min_range, max_range, unbounded,
		       flat_rate, minimum_rate, base_amount, per_thousand
		FROM escrow_resale_rules
		ORDER BY zone, min_range
	`)
	if err != nil {
		return nil, errors.Feed("postgres: query escrow_resale_rules", err)
	}
	defer rows.Close()

	var rules []types.EscrowResaleRule
	for rows.Next() {
		var r types.EscrowResaleRule
		if err := rows.Scan(
			&r.Zone, &r.MinRange, &r.MaxRange, &r.Unbounded,
			&r.FlatRate, &r.MinimumRate, &r.BaseAmount, &r.PerThousand,
		); err != nil {
			return nil, errors.Feed("postgres: scan escrow_resale_rules", err)
		}
		rules = append(rules, r)
	}
	return rules, rows.Err()
}

func (s *PostgresSource) loadEscrowRefinance(ctx context.Context) ([]types.EscrowRefinanceRule, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT zone, min_range, max_range, unbounded, escrow_rate
		FROM escrow_refinance_rules
		ORDER BY zone, min_range
	`)
	if err != nil {
		return nil, errors.Feed("postgres: query escrow_refinance_rules", err)
	}
	defer rows.Close()

	var rules []types.EscrowRefinanceRule
	for rows.Next() {
		var r types.EscrowRefinanceRule
		if err := rows.Scan(&r.Zone, &r.MinRange, &r.MaxRange, &r.Unbounded, &r.Rate); err != nil {
			return nil, errors.Feed("postgres: scan escrow_refinance_rules", err)
		}
		rules = append(rules, r)
	}
	return rules, rows.Err()
}

func (s *PostgresSource) loadTransferTax(ctx context.Context) ([]types.TransferTaxRule, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT county_id, county_rate, city_rate
		FROM transfer_tax_rules
		ORDER BY county_id
	`)
	if err != nil {
		return nil, errors.Feed("postgres: query transfer_tax_rules", err)
	}
	defer rows.Close()

	var rules []types.TransferTaxRule
	for rows.Next() {
		var r types.TransferTaxRule
		if err := rows.Scan(&r.CountyID, &r.CountyRate, &r.CityRate); err != nil {
			return nil, errors.Feed("postgres: scan transfer_tax_rules", err)
		}
		rules = append(rules, r)
	}
	return rules, rows.Err()
}

func (s *PostgresSource) loadEndorsements(ctx context.Context) ([]types.Endorsement, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, partition, fee, is_default
		FROM endorsements
		ORDER BY id
	`)
	if err != nil {
		return nil, errors.Feed("postgres: query endorsements", err)
	}
	defer rows.Close()

	var endorsements []types.Endorsement
	for rows.Next() {
		var e types.Endorsement
		var partition string
		if err := rows.Scan(&e.ID, &e.Name, &partition, &e.Fee, &e.Default); err != nil {
			return nil, errors.Feed("postgres: scan endorsements", err)
		}
		e.Partition = types.EndorsementPartition(partition)
		endorsements = append(endorsements, e)
	}
	return endorsements, rows.Err()
}

func (s *PostgresSource) loadFees(ctx context.Context) ([]types.Fee, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, category, transaction_type, amount, active
		FROM fees
		ORDER BY name
	`)
	if err != nil {
		return nil, errors.Feed("postgres: query fees", err)
	}
	defer rows.Close()

	var feesList []types.Fee
	for rows.Next() {
		var f types.Fee
		var category, txType string
		if err := rows.Scan(&f.Name, &category, &txType, &f.Amount, &f.Active); err != nil {
			return nil, errors.Feed("postgres: scan fees", err)
		}
		f.Category = types.FeeCategory(category)
		f.TransactionType = types.TransactionType(txType)
		feesList = append(feesList, f)
	}
	return feesList, rows.Err()
}

func (s *PostgresSource) loadZones(ctx context.Context) ([]types.Zone, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT zone_name, city_name, county_id
		FROM cities
		ORDER BY zone_name, city_name
	`)
	if err != nil {
		return nil, errors.Feed("postgres: query cities", err)
	}
	defer rows.Close()

	byZone := make(map[string]*types.Zone)
	var order []string
	for rows.Next() {
		var zoneName string
		var city types.City
		if err := rows.Scan(&zoneName, &city.Name, &city.CountyID); err != nil {
			return nil, errors.Feed("postgres: scan cities", err)
		}
		z, ok := byZone[zoneName]
		if !ok {
			z = &types.Zone{Name: zoneName}
			byZone[zoneName] = z
			order = append(order, zoneName)
		}
		z.Cities = append(z.Cities, city)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	zones := make([]types.Zone, 0, len(order))
	for _, name := range order {
		zones = append(zones, *byZone[name])
	}
	return zones, nil
}
