// internal/catalog/sql_source.go
package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"consultation-workers/internal/common/database"
	"consultation-workers/internal/common/errors"
	"consultation-workers/internal/models"
)

const createTableSQL = `CREATE TABLE IF NOT EXISTS service_packages (
	id            TEXT PRIMARY KEY,
	title         TEXT NOT NULL,
	description   TEXT NOT NULL,
	category      TEXT NOT NULL DEFAULT '',
	tier          TEXT NOT NULL,
	price_range   TEXT NOT NULL,
	timeline      TEXT NOT NULL,
	features      TEXT NOT NULL DEFAULT '[]',
	industry_tags TEXT NOT NULL DEFAULT '[]',
	eligibility   TEXT NOT NULL DEFAULT '{}',
	content       TEXT NOT NULL DEFAULT '{}'
)`

const selectPackagesSQL = `SELECT id, title, description, category, tier, price_range, timeline,
	features, industry_tags, eligibility, content
FROM service_packages
ORDER BY id`

const insertPackageSQL = `INSERT INTO service_packages
	(id, title, description, category, tier, price_range, timeline, features, industry_tags, eligibility, content)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// SQLSource loads packages from the service_packages table. List and object columns are
// stored as JSON text so the same schema works on postgres and sqlite.
type SQLSource struct {
	client *database.SQLClient
}

func NewSQLSource(client *database.SQLClient) *SQLSource {
	return &SQLSource{client: client}
}

func (s *SQLSource) Name() string { return s.client.Driver }

// Migrate creates the service_packages table if it is missing.
func (s *SQLSource) Migrate(ctx context.Context) error {
	if _, err := s.client.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("create service_packages: %w", err)
	}
	return nil
}

func (s *SQLSource) Load(ctx context.Context) ([]models.ServicePackage, error) {
	rows, err := s.client.Query(ctx, selectPackagesSQL)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("select service_packages", err)
	}
	defer rows.Close()

	var out []models.ServicePackage
	for rows.Next() {
		var (
			pkg                                      models.ServicePackage
			tier                                     string
			features, tags, eligibility, contentJSON string
		)
		if err := rows.Scan(&pkg.ID, &pkg.Title, &pkg.Description, &pkg.Category, &tier,
			&pkg.PriceRange, &pkg.Timeline, &features, &tags, &eligibility, &contentJSON); err != nil {
			return nil, fmt.Errorf("scan service_packages: %w", err)
		}
		pkg.Tier = models.ServiceTier(tier)

		if err := decodeColumn(pkg.ID, "features", features, &pkg.Features); err != nil {
			return nil, err
		}
		if err := decodeColumn(pkg.ID, "industry_tags", tags, &pkg.IndustryTags); err != nil {
			return nil, err
		}
		if err := decodeColumn(pkg.ID, "eligibility", eligibility, &pkg.Eligibility); err != nil {
			return nil, err
		}
		if err := decodeColumn(pkg.ID, "content", contentJSON, &pkg.Content); err != nil {
			return nil, err
		}
		out = append(out, pkg)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryExecutionFailedError("select service_packages", err)
	}
	return out, nil
}

// Replace overwrites the table with pkgs in a single transaction.
func (s *SQLSource) Replace(ctx context.Context, pkgs []models.ServicePackage) error {
	tx, err := s.client.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM service_packages"); err != nil {
		return fmt.Errorf("clear service_packages: %w", err)
	}

	insert := s.client.Rebind(insertPackageSQL)
	for _, pkg := range pkgs {
		id := pkg.ID
		if id == "" {
			id = Slugify(pkg.Title)
		}
		if id == "" {
			return errors.NewCatalogValidationFailedError(
				fmt.Sprintf("title %q has no letters or digits to build an id from", pkg.Title), nil)
		}

		features, err := encodeColumn(id, "features", nonNil(pkg.Features))
		if err != nil {
			return err
		}
		tags, err := encodeColumn(id, "industry_tags", nonNil(pkg.IndustryTags))
		if err != nil {
			return err
		}
		eligibility := "{}"
		if pkg.Eligibility != nil {
			if eligibility, err = encodeColumn(id, "eligibility", pkg.Eligibility); err != nil {
				return err
			}
		}
		content, err := encodeColumn(id, "content", pkg.Content)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, insert, id, pkg.Title, pkg.Description, pkg.Category,
			string(pkg.Tier), pkg.PriceRange, pkg.Timeline,
			features, tags, eligibility, content); err != nil {
			return fmt.Errorf("insert %s: %w", id, err)
		}
	}

	return tx.Commit()
}

func encodeColumn(id, column string, v interface{}) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("package %s: encode %s: %w", id, column, err)
	}
	return string(raw), nil
}

func decodeColumn(id, column, raw string, dst interface{}) error {
	if raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("package %s: decode %s: %w", id, column, err)
	}
	return nil
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
