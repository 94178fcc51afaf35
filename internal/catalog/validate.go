// internal/catalog/validate.go
package catalog

import (
	"fmt"
	"strings"

	"consultation-workers/internal/common/errors"
	"consultation-workers/internal/common/validation"
	"consultation-workers/internal/models"

	"github.com/xeipuuv/gojsonschema"
)

const DefaultMaxPackagesPerTier = 12

// packageSchema is the required-fields ruleset every catalog entry must pass.
const packageSchema = `{
  "type": "object",
  "properties": {
    "title":        {"type": "string", "pattern": "\\S"},
    "description":  {"type": "string", "pattern": "\\S"},
    "category":     {"type": "string"},
    "tier":         {"type": "string", "enum": ["foundation", "growth", "enterprise"]},
    "priceRange":   {"type": "string", "pattern": "\\S"},
    "timeline":     {"type": "string", "pattern": "\\S"},
    "features":     {"type": "array", "minItems": 1, "items": {"type": "string", "pattern": "\\S"}},
    "industryTags": {"type": "array", "minItems": 1, "items": {"type": "string", "pattern": "\\S"}}
  },
  "required": ["title", "description", "tier", "priceRange", "timeline", "features", "industryTags"]
}`

// Validator applies the required-fields and tier-cardinality rules.
type Validator struct {
	schema     *gojsonschema.Schema
	maxPerTier int
}

func NewValidator(maxPerTier int) (*Validator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(packageSchema))
	if err != nil {
		return nil, fmt.Errorf("compile package schema: %w", err)
	}
	if maxPerTier <= 0 {
		maxPerTier = DefaultMaxPackagesPerTier
	}
	return &Validator{schema: schema, maxPerTier: maxPerTier}, nil
}

// MaxPerTier returns the tier cardinality limit.
func (v *Validator) MaxPerTier() int {
	return v.maxPerTier
}

// Validate checks a single package against the required-fields ruleset.
func (v *Validator) Validate(pkg models.ServicePackage) error {
	result, err := validation.ValidateDocument(v.schema, pkg)
	if err != nil {
		return errors.NewCatalogValidationFailedError(err.Error(), err)
	}
	if !result.Valid {
		return errors.NewCatalogValidationFailedError(
			fmt.Sprintf("%s: %s", pkg.Title, strings.Join(result.GetErrorMessages(), "; ")), nil)
	}
	return nil
}

// CheckCardinality rejects a package set with more than the allowed packages in any tier.
func (v *Validator) CheckCardinality(pkgs []models.ServicePackage) error {
	counts := make(map[models.ServiceTier]int, len(models.Tiers))
	for _, pkg := range pkgs {
		counts[pkg.Tier]++
	}
	for _, tier := range models.Tiers {
		if counts[tier] > v.maxPerTier {
			return errors.NewCatalogValidationFailedError(
				fmt.Sprintf("tier %s has %d packages, limit is %d", tier, counts[tier], v.maxPerTier), nil)
		}
	}
	return nil
}

// ValidateAll runs the full ruleset over a package set, including slug uniqueness. It
// returns every problem found rather than stopping at the first.
func (v *Validator) ValidateAll(pkgs []models.ServicePackage) []error {
	var problems []error
	seen := make(map[string]bool, len(pkgs))
	for _, pkg := range pkgs {
		if err := v.Validate(pkg); err != nil {
			problems = append(problems, err)
			continue
		}
		id := pkg.ID
		if id == "" {
			id = Slugify(pkg.Title)
		}
		if seen[id] {
			problems = append(problems, errors.NewDuplicatePackageError(id, nil))
		}
		seen[id] = true
	}
	if err := v.CheckCardinality(pkgs); err != nil {
		problems = append(problems, err)
	}
	return problems
}
