package catalog

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"consultation-workers/internal/common/config"
	"consultation-workers/internal/common/database"
	"consultation-workers/internal/common/errors"
	"consultation-workers/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==== Test Helper Functions ====

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const yamlCatalog = `packages:
  - title: Growth Accelerator
    description: Align sales and marketing for revenue growth.
    category: growth
    tier: growth
    price_range: $10K-$25K
    timeline: 6-8 weeks
    features: [Revenue roadmap, KPI dashboard]
    industry_tags: [technology]
    eligibility:
      company_size: [small, medium]
    content:
      what_you_get: A revenue roadmap.
      next_steps: [Book a workshop]
`

const jsonCatalog = `{"packages":[{"title":"Enterprise Transformation","description":"End-to-end transformation.","tier":"enterprise","priceRange":"$100K+","timeline":"6 months+","features":["Platform modernization"],"industryTags":["finance"]}]}`

// ==== Tests ====

func TestFileSource_Load(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "growth/accelerator.yaml", yamlCatalog)
	writeFile(t, dir, "enterprise/transformation.json", jsonCatalog)
	writeFile(t, dir, "README.md", "not a catalog")

	src := FileSource{Patterns: []string{
		filepath.Join(dir, "**", "*.yaml"),
		filepath.Join(dir, "**", "*.json"),
		filepath.Join(dir, "growth", "*.yaml"),
	}}

	files, err := src.Files()
	require.NoError(t, err)
	assert.Len(t, files, 2)

	pkgs, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, pkgs, 2)

	byTitle := map[string]models.ServicePackage{}
	for _, p := range pkgs {
		byTitle[p.Title] = p
	}

	growth := byTitle["Growth Accelerator"]
	assert.Equal(t, models.TierGrowth, growth.Tier)
	assert.Equal(t, "$10K-$25K", growth.PriceRange)
	assert.Equal(t, []string{"small", "medium"}, growth.Eligibility["company_size"])
	assert.Equal(t, []string{"Book a workshop"}, growth.Content.NextSteps)

	enterprise := byTitle["Enterprise Transformation"]
	assert.Equal(t, []string{"finance"}, enterprise.IndustryTags)
}

func TestFileSource_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := FileSource{Patterns: []string{filepath.Join(dir, "*.yaml")}}.Load(context.Background())
	assert.ErrorContains(t, err, "no catalog files matched")

	bad := writeFile(t, dir, "bad.yaml", "packages:\n  - title: X\n    unknown_field: 1\n")
	_, err = ReadFile(bad)
	assert.Error(t, err)

	txt := writeFile(t, dir, "catalog.txt", "packages: []")
	_, err = ReadFile(txt)
	assert.ErrorContains(t, err, "unsupported")
}

func TestWriteYAML_RoundTrip(t *testing.T) {
	data, err := WriteYAML(DefaultPackages())
	require.NoError(t, err)

	path := writeFile(t, t.TempDir(), "seed.yaml", string(data))
	pkgs, err := ReadFile(path)
	require.NoError(t, err)

	expected := DefaultPackages()
	require.Len(t, pkgs, len(expected))
	for i := range expected {
		assert.Equal(t, expected[i].ID, pkgs[i].ID)
		assert.Equal(t, expected[i].Tier, pkgs[i].Tier)
		assert.Equal(t, expected[i].PriceRange, pkgs[i].PriceRange)
		assert.Equal(t, expected[i].Features, pkgs[i].Features)
		assert.Equal(t, expected[i].Content.WhatYouGet, pkgs[i].Content.WhatYouGet)
	}
}

func TestSQLSource_LoadWithSQLMock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{
		"id", "title", "description", "category", "tier", "price_range", "timeline",
		"features", "industry_tags", "eligibility", "content",
	}).AddRow(
		"growth-accelerator", "Growth Accelerator", "Revenue growth program", "growth", "growth",
		"$10K-$25K", "6-8 weeks",
		`["Revenue roadmap","KPI dashboard"]`, `["technology"]`,
		`{"company_size":["small"]}`, `{"whatYouGet":"A roadmap","nextSteps":["Call"]}`,
	)
	mock.ExpectQuery(regexp.QuoteMeta("FROM service_packages")).WillReturnRows(rows)

	src := NewSQLSource(&database.SQLClient{DB: db, Driver: database.DriverPostgres})
	assert.Equal(t, "postgres", src.Name())

	pkgs, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, pkgs, 1)

	pkg := pkgs[0]
	assert.Equal(t, "growth-accelerator", pkg.ID)
	assert.Equal(t, models.TierGrowth, pkg.Tier)
	assert.Equal(t, []string{"Revenue roadmap", "KPI dashboard"}, pkg.Features)
	assert.Equal(t, []string{"small"}, pkg.Eligibility["company_size"])
	assert.Equal(t, "A roadmap", pkg.Content.WhatYouGet)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLSource_BadJSONColumn(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{
		"id", "title", "description", "category", "tier", "price_range", "timeline",
		"features", "industry_tags", "eligibility", "content",
	}).AddRow("x", "X", "d", "", "growth", "$1", "1 week", `not-json`, `[]`, `{}`, `{}`)
	mock.ExpectQuery("SELECT").WillReturnRows(rows)

	_, err = NewSQLSource(&database.SQLClient{DB: db, Driver: database.DriverPostgres}).Load(context.Background())
	assert.ErrorContains(t, err, "decode features")
}

func TestSQLSource_QueryFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT").WillReturnError(sql.ErrConnDone)

	_, err = NewSQLSource(&database.SQLClient{DB: db, Driver: database.DriverPostgres}).Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeQueryExecutionFailed, errors.CodeOf(err))
}

func TestSQLSource_ReplaceUsesPostgresPlaceholders(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM service_packages").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)")).
		WithArgs("alpha", "Alpha", sqlmock.AnyArg(), sqlmock.AnyArg(), "growth", sqlmock.AnyArg(),
			sqlmock.AnyArg(), `["Workshop","Roadmap"]`, `["technology"]`, "{}", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	src := NewSQLSource(&database.SQLClient{DB: db, Driver: database.DriverPostgres})
	require.NoError(t, src.Replace(context.Background(), []models.ServicePackage{samplePackage("Alpha", models.TierGrowth)}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLSource_ReplaceRejectsUnkeyableTitle(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM service_packages").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	src := NewSQLSource(&database.SQLClient{DB: db, Driver: database.DriverPostgres})
	err = src.Replace(context.Background(), []models.ServicePackage{samplePackage("???", models.TierGrowth)})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeCatalogValidationFailed, errors.CodeOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEncodeColumn(t *testing.T) {
	raw, err := encodeColumn("alpha", "features", []string{"Workshop"})
	require.NoError(t, err)
	assert.Equal(t, `["Workshop"]`, raw)

	_, err = encodeColumn("alpha", "content", make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "package alpha: encode content")
}

func TestSQLSource_SQLiteRoundTrip(t *testing.T) {
	client, err := database.NewSQLite(config.SQLiteConfig{Path: ":memory:"})
	require.NoError(t, err)
	defer client.Close()

	ctx := context.Background()
	src := NewSQLSource(client)
	require.NoError(t, src.Migrate(ctx))
	require.NoError(t, src.Replace(ctx, DefaultPackages()))

	store := newTestStore(t, Options{Source: src})
	assert.Equal(t, 9, store.Len())

	pkg, err := store.Get("growth-accelerator")
	require.NoError(t, err)
	assert.Equal(t, models.TierGrowth, pkg.Tier)
	assert.NotEmpty(t, pkg.Content.NextSteps)
}
