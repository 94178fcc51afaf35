// internal/catalog/seed.go
package catalog

import "consultation-workers/internal/models"

// DefaultPackages returns the built-in catalog, three packages per tier.
func DefaultPackages() []models.ServicePackage {
	pkgs := []models.ServicePackage{
		{
			Title:        "Business Foundations Audit",
			Description:  "A focused review of operations, finances and go-to-market for early-stage businesses that want a clear plan for revenue growth.",
			Category:     "strategy",
			Tier:         models.TierFoundation,
			PriceRange:   "Under $5K",
			Timeline:     "2-3 weeks",
			Features:     []string{"Operations review", "Financial health check", "Go-to-market assessment", "90-day action plan"},
			IndustryTags: []string{"universal"},
			Eligibility:  map[string][]string{"company_size": {"solo", "startup", "small"}},
			Content: models.ServiceContent{
				WhatYouGet:  "A prioritized audit report and a 90-day action plan.",
				WhyThisFits: "You get clarity on the few changes that move revenue first.",
				Timeline:    "Two to three weeks from kickoff to final readout.",
				NextSteps:   []string{"Book a kickoff call", "Share financial statements", "Schedule stakeholder interviews"},
			},
		},
		{
			Title:        "Digital Presence Starter",
			Description:  "Website, analytics and marketing automation setup for small businesses focused on customer acquisition.",
			Category:     "marketing",
			Tier:         models.TierFoundation,
			PriceRange:   "$5K-$10K",
			Timeline:     "3-4 weeks",
			Features:     []string{"Website refresh", "Analytics setup", "Email automation", "Customer acquisition playbook"},
			IndustryTags: []string{"retail", "hospitality", "professional_services"},
			Content: models.ServiceContent{
				WhatYouGet:  "A launch-ready web presence with tracking and automated nurture emails.",
				WhyThisFits: "Small teams get an acquisition engine without hiring a marketing department.",
				Timeline:    "Three to four weeks.",
			},
		},
		{
			Title:        "Startup Launch Sprint",
			Description:  "A rapid sprint that validates product-market fit and builds the first sales pipeline for technology startups.",
			Category:     "strategy",
			Tier:         models.TierFoundation,
			PriceRange:   "Under $5K",
			Timeline:     "10 days",
			Features:     []string{"Customer discovery interviews", "Positioning workshop", "Pipeline setup", "Pitch review"},
			IndustryTags: []string{"technology", "saas"},
			Content: models.ServiceContent{
				WhatYouGet:  "Validated positioning and a working sales pipeline.",
				WhyThisFits: "Founders get signal fast before committing budget.",
				Timeline:    "Ten working days.",
				NextSteps:   []string{"Pick sprint dates", "Line up five customer interviews"},
			},
		},
		{
			Title:        "Growth Accelerator",
			Description:  "A growth program that aligns sales, marketing and operations to scale operations and drive revenue growth.",
			Category:     "growth",
			Tier:         models.TierGrowth,
			PriceRange:   "$10K-$25K",
			Timeline:     "6-8 weeks",
			Features:     []string{"Revenue growth roadmap", "Sales process redesign", "KPI dashboard", "Customer acquisition campaigns"},
			IndustryTags: []string{"technology", "retail", "professional_services"},
			Eligibility:  map[string][]string{"company_size": {"small", "medium", "large"}},
			Content: models.ServiceContent{
				WhatYouGet:  "A revenue roadmap, redesigned sales process and a live KPI dashboard.",
				WhyThisFits: "Growing teams need repeatable processes before adding headcount.",
				Timeline:    "Six to eight weeks with weekly working sessions.",
				NextSteps:   []string{"Schedule a discovery workshop", "Share current pipeline data", "Nominate a growth owner"},
			},
		},
		{
			Title:        "Operational Efficiency Program",
			Description:  "Process mapping and automation that removes bottlenecks and improves operational efficiency across teams.",
			Category:     "operations",
			Tier:         models.TierGrowth,
			PriceRange:   "$25K-$50K",
			Timeline:     "2-3 months",
			Features:     []string{"Process mapping", "Workflow automation", "Vendor consolidation", "Operational efficiency scorecard"},
			IndustryTags: []string{"manufacturing", "healthcare", "logistics"},
			Content: models.ServiceContent{
				WhatYouGet:  "Mapped core processes, automated hand-offs and a scorecard to track savings.",
				WhyThisFits: "Operational drag is the fastest margin to recover.",
				Timeline:    "Two to three months.",
			},
		},
		{
			Title:        "Market Expansion Blueprint",
			Description:  "Research and planning for market expansion into new regions or customer segments.",
			Category:     "strategy",
			Tier:         models.TierGrowth,
			PriceRange:   "$10K-$25K",
			Timeline:     "4-6 weeks",
			Features:     []string{"Market sizing", "Competitor analysis", "Entry strategy", "Partner shortlist"},
			IndustryTags: []string{"universal"},
			Content: models.ServiceContent{
				WhatYouGet:  "An evidence-backed entry plan for your next market.",
				WhyThisFits: "Expansion decisions deserve data before spend.",
				Timeline:    "Four to six weeks.",
			},
		},
		{
			Title:        "Enterprise Digital Transformation",
			Description:  "An end-to-end digital transformation program covering platform modernization, data strategy and automation at scale.",
			Category:     "transformation",
			Tier:         models.TierEnterprise,
			PriceRange:   "$100K+",
			Timeline:     "6 months+",
			Features:     []string{"Platform modernization", "Data strategy", "Automation at scale", "Change management", "Executive steering"},
			IndustryTags: []string{"finance", "healthcare", "manufacturing", "technology"},
			Eligibility:  map[string][]string{"company_size": {"large", "enterprise"}},
			Content: models.ServiceContent{
				WhatYouGet:  "A multi-phase transformation with a dedicated delivery team.",
				WhyThisFits: "Complex organizations need coordinated change across systems and people.",
				Timeline:    "Six months or longer, delivered in quarterly increments.",
				NextSteps:   []string{"Arrange an executive briefing", "Form a steering committee", "Scope phase one"},
			},
		},
		{
			Title:        "Enterprise Data & AI Strategy",
			Description:  "Data platform assessment and AI roadmap for organizations pursuing automation and operational efficiency.",
			Category:     "technology",
			Tier:         models.TierEnterprise,
			PriceRange:   "$50K-$100K",
			Timeline:     "3-4 months",
			Features:     []string{"Data maturity assessment", "AI use-case portfolio", "Governance model", "Automation roadmap"},
			IndustryTags: []string{"finance", "technology", "retail"},
			Content: models.ServiceContent{
				WhatYouGet:  "A governed data platform plan and a ranked AI use-case portfolio.",
				WhyThisFits: "AI programs fail without data foundations and governance.",
				Timeline:    "Three to four months.",
			},
		},
		{
			Title:        "Strategic Advisory Retainer",
			Description:  "Ongoing executive advisory for leadership teams navigating scale operations, mergers and market expansion.",
			Category:     "advisory",
			Tier:         models.TierEnterprise,
			PriceRange:   "$50K-$100K",
			Timeline:     "12 months",
			Features:     []string{"Monthly board preparation", "Executive coaching", "M&A support", "Quarterly strategy reviews"},
			IndustryTags: []string{"all"},
			Content: models.ServiceContent{
				WhatYouGet:  "A senior advisor embedded with your leadership team.",
				WhyThisFits: "High-stakes decisions benefit from a seasoned outside view.",
				Timeline:    "Twelve-month engagement.",
			},
		},
	}

	for i := range pkgs {
		pkgs[i].ID = Slugify(pkgs[i].Title)
	}
	return pkgs
}
