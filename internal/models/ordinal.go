// internal/models/ordinal.go
package models

import (
	"sort"
	"strings"
)

var ordinalReplacer = strings.NewReplacer(" ", "_", "-", "_", "+", "_plus", "$", "")

// OrdinalKey folds an answer such as "$5K-$10K" or "1-3 Months" to its lookup key.
func OrdinalKey(s string) string {
	return ordinalReplacer.Replace(strings.ToLower(strings.TrimSpace(s)))
}

// Scale ranks ordinal answers, lowest tier first. Keys on the same level share a rank.
type Scale struct {
	levels int
	ranks  map[string]int
}

func newScale(levels ...[]string) Scale {
	s := Scale{levels: len(levels), ranks: make(map[string]int)}
	for rank, keys := range levels {
		for _, key := range keys {
			s.ranks[key] = rank
		}
	}
	return s
}

// Rank returns the tier of value, or -1 when it is blank or unknown.
func (s Scale) Rank(value string) int {
	rank, ok := s.ranks[OrdinalKey(value)]
	if !ok {
		return -1
	}
	return rank
}

func (s Scale) Levels() int {
	return s.levels
}

// Keys lists every accepted key in sorted order.
func (s Scale) Keys() []string {
	keys := make([]string, 0, len(s.ranks))
	for k := range s.ranks {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// UrgentTimelines are the timeline answers that ask for work to start now.
var UrgentTimelines = []string{"immediate", "urgent", "asap"}

var (
	BudgetScale = newScale(
		[]string{"bootstrap"},
		[]string{"under_5k", "5k_10k", "under_10k"},
		[]string{"10k_25k"},
		[]string{"25k_50k"},
		[]string{"50k_100k"},
		[]string{"100k_plus"},
	)
	RevenueScale = newScale(
		[]string{"pre_revenue"},
		[]string{"under_100k"},
		[]string{"100k_500k"},
		[]string{"500k_1m"},
		[]string{"1m_5m"},
		[]string{"5m_plus"},
	)
	TimelineScale = newScale(
		UrgentTimelines,
		[]string{"1_month"},
		[]string{"1_3_months"},
		[]string{"3_6_months"},
		[]string{"6_months_plus"},
		[]string{"exploring"},
	)
	SizeScale = newScale(
		[]string{"solo"},
		[]string{"startup"},
		[]string{"small"},
		[]string{"medium"},
		[]string{"large"},
		[]string{"enterprise"},
	)
)

// BudgetBands lists the package price bands that fit each budget answer, spaces removed.
var BudgetBands = map[string][]string{
	"bootstrap": {"under$5k"},
	"under_5k":  {"under$5k"},
	"under_10k": {"under$5k", "$5k-$10k"},
	"5k_10k":    {"$5k-$10k"},
	"10k_25k":   {"$5k-$10k", "$10k-$25k"},
	"25k_50k":   {"$10k-$25k", "$25k-$50k"},
	"50k_100k":  {"$25k-$50k", "$50k-$100k"},
	"100k_plus": {"$50k-$100k", "$100k+"},
}

// IsUrgentTimeline reports whether a timeline answer asks for immediate work.
func IsUrgentTimeline(timeline string) bool {
	t := strings.ToLower(timeline)
	for _, word := range UrgentTimelines {
		if strings.Contains(t, word) {
			return true
		}
	}
	return false
}
