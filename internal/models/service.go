// internal/models/service.go
package models

type ServiceTier string

const (
	TierFoundation ServiceTier = "foundation"
	TierGrowth     ServiceTier = "growth"
	TierEnterprise ServiceTier = "enterprise"
)

// Tiers lists the service tiers in ascending size order.
var Tiers = []ServiceTier{TierFoundation, TierGrowth, TierEnterprise}

func (t ServiceTier) Valid() bool {
	switch t {
	case TierFoundation, TierGrowth, TierEnterprise:
		return true
	}
	return false
}

// Rank orders tiers foundation < growth < enterprise; unknown tiers sort last.
func (t ServiceTier) Rank() int {
	for i, tier := range Tiers {
		if tier == t {
			return i
		}
	}
	return len(Tiers)
}

type ServicePackage struct {
	ID           string              `json:"id" yaml:"id"`
	Title        string              `json:"title" yaml:"title"`
	Description  string              `json:"description" yaml:"description"`
	Category     string              `json:"category" yaml:"category"`
	Tier         ServiceTier         `json:"tier" yaml:"tier"`
	PriceRange   string              `json:"priceRange" yaml:"price_range"`
	Timeline     string              `json:"timeline" yaml:"timeline"`
	Features     []string            `json:"features" yaml:"features"`
	IndustryTags []string            `json:"industryTags" yaml:"industry_tags"`
	Eligibility  map[string][]string `json:"eligibility,omitempty" yaml:"eligibility,omitempty"`
	Content      ServiceContent      `json:"content" yaml:"content"`
}

type ServiceContent struct {
	WhatYouGet  string   `json:"whatYouGet" yaml:"what_you_get"`
	WhyThisFits string   `json:"whyThisFits" yaml:"why_this_fits"`
	Timeline    string   `json:"timeline" yaml:"timeline"`
	NextSteps   []string `json:"nextSteps" yaml:"next_steps"`
}

// Clone returns a deep copy so callers can hold a package without sharing slices or maps
// with the catalog.
func (p ServicePackage) Clone() ServicePackage {
	out := p
	out.Features = append([]string(nil), p.Features...)
	out.IndustryTags = append([]string(nil), p.IndustryTags...)
	out.Content.NextSteps = append([]string(nil), p.Content.NextSteps...)
	if p.Eligibility != nil {
		out.Eligibility = make(map[string][]string, len(p.Eligibility))
		for k, v := range p.Eligibility {
			out.Eligibility[k] = append([]string(nil), v...)
		}
	}
	return out
}
