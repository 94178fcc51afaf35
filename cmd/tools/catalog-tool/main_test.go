// cmd/tools/catalog-tool/main_test.go
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consultation-workers/internal/catalog"
	"consultation-workers/internal/common/config"
	"consultation-workers/internal/common/database"
	"consultation-workers/pkg/registry"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidate(t *testing.T) {
	data, err := catalog.WriteYAML(catalog.DefaultPackages())
	require.NoError(t, err)
	good := writeFile(t, "catalog.yaml", string(data))
	bad := writeFile(t, "bad.yaml", "packages:\n  - title: Broken\n    tier: platinum\n")

	tests := []struct {
		name    string
		args    []string
		wantErr bool
		want    string
	}{
		{"built-in catalog", []string{"validate"}, false, "Found 9 packages"},
		{"seed file", []string{"validate", good}, false, "Found 9 packages"},
		{"invalid file", []string{"validate", bad}, true, "  - "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestListAndSearch(t *testing.T) {
	out, err := run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "enterprise-digital-transformation")
	assert.Contains(t, out, "TIER")

	out, err = run(t, "search", "automation")
	require.NoError(t, err)
	assert.Contains(t, out, "enterprise-data-ai-strategy")

	out, err = run(t, "search", "zzz-nothing")
	require.NoError(t, err)
	assert.Contains(t, out, "No packages found.")
}

func TestEvaluate(t *testing.T) {
	answers := writeFile(t, "answers.json", `{
		"company_name": "Acme Labs",
		"business_type": "technology",
		"company_size": "enterprise",
		"industry": "technology",
		"budget_range": "100k+",
		"annual_revenue": "5m+",
		"timeline": "1-3 months",
		"primary_goals": ["digital transformation", "automation", "revenue growth"],
		"complexity_level": "complex"
	}`)

	out, err := run(t, "evaluate", "--answers", answers)
	require.NoError(t, err)

	var eval struct {
		Routing struct {
			Recommendation string `json:"recommendation"`
		} `json:"routing"`
		Report *struct {
			Title string `json:"title"`
		} `json:"report"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &eval))
	assert.Equal(t, "fast-track", eval.Routing.Recommendation)
	require.NotNil(t, eval.Report)
	assert.Equal(t, "Consultation Report for Acme Labs", eval.Report.Title)
}

func TestEvaluate_RequiresAnswers(t *testing.T) {
	_, err := run(t, "evaluate")
	assert.Error(t, err)

	notObject := writeFile(t, "answers.json", `[1, 2]`)
	_, err = run(t, "evaluate", "--answers", notObject)
	assert.Error(t, err)
}

func TestActivities(t *testing.T) {
	out, err := run(t, "activities")
	require.NoError(t, err)
	assert.Contains(t, out, "evaluate-submission")

	out, err = run(t, "activities", "--validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Found 5 activities")
}

func TestValidateRegistry(t *testing.T) {
	valid := registry.Activity{ID: "consultation.lead.route", DisplayName: "Route Lead", TaskType: "route-lead", Category: "routing"}

	tests := []struct {
		name    string
		mutate  func(a *registry.Activity)
		dup     bool
		wantErr string
	}{
		{"valid", func(a *registry.Activity) {}, false, ""},
		{"missing id", func(a *registry.Activity) { a.ID = "" }, false, "ID"},
		{"bad naming", func(a *registry.Activity) { a.ID = "route-lead" }, false, "domain.subdomain.action"},
		{"missing task type", func(a *registry.Activity) { a.TaskType = "" }, false, "TaskType"},
		{"missing category", func(a *registry.Activity) { a.Category = "" }, false, "Category"},
		{"duplicate", func(a *registry.Activity) {}, true, "duplicate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := valid
			tt.mutate(&a)
			reg := &registry.ActivityRegistry{Activities: []registry.Activity{a}}
			if tt.dup {
				reg.Activities = append(reg.Activities, a)
			}
			err := validateRegistry(reg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	assert.Error(t, validateRegistry(&registry.ActivityRegistry{}))
}

func TestSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")

	out, err := run(t, "seed", "--sqlite", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded 9 packages into sqlite database "+path)

	// a second run replaces rather than appends
	_, err = run(t, "seed", "--sqlite", path)
	require.NoError(t, err)

	db, err := database.NewSQLite(config.SQLiteConfig{Path: path})
	require.NoError(t, err)
	defer db.Close()

	pkgs, err := catalog.NewSQLSource(db).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, pkgs, 9)
}

func TestSeed_Errors(t *testing.T) {
	bad := writeFile(t, "bad.yaml", "packages:\n  - title: Broken\n    tier: platinum\n")
	path := filepath.Join(t.TempDir(), "catalog.db")

	tests := []struct {
		name string
		args []string
	}{
		{"no target", []string{"seed"}},
		{"both targets", []string{"seed", "--sqlite", path, "--config", "worker.yaml"}},
		{"invalid catalog", []string{"seed", "--file", bad, "--sqlite", path}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.Error(t, err)
		})
	}
}
