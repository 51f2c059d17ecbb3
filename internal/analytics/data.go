package analytics

import "time"

// Metrics is the agency-wide headline snapshot.
type Metrics struct {
	MonthlyAdSpend   float64 `json:"monthlyAdSpend"`
	ActiveClients    int     `json:"activeClients"`
	AverageROAS      float64 `json:"averageROAS"`
	TotalCampaigns   int     `json:"totalCampaigns"`
	TotalConversions int     `json:"totalConversions"`
	AvgCPC           float64 `json:"avgCPC"`
	AvgCTR           float64 `json:"avgCTR"`
	LastUpdated      string  `json:"lastUpdated"`
}

// RevenuePoint is one month of spend and return.
type RevenuePoint struct {
	Month   string  `json:"month"`
	AdSpend float64 `json:"adSpend"`
	Revenue float64 `json:"revenue"`
	ROAS    float64 `json:"roas"`
	Leads   int     `json:"leads"`
}

// TrafficSource is ad performance per acquisition channel.
type TrafficSource struct {
	Source      string  `json:"source"`
	Spend       float64 `json:"spend"`
	Conversions int     `json:"conversions"`
	ROAS        float64 `json:"roas"`
	Color       string  `json:"color"`
}

// DeviceShare is the conversion split per device class.
type DeviceShare struct {
	Device      string `json:"device"`
	Percentage  int    `json:"percentage"`
	Conversions int    `json:"conversions"`
	Color       string `json:"color"`
}

// CampaignSummary is a read-only campaign performance row, richer than
// the campaigns module's CRUD records.
type CampaignSummary struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Client      string  `json:"client"`
	Status      string  `json:"status"`
	Budget      float64 `json:"budget"`
	Spent       float64 `json:"spent"`
	Conversions int     `json:"conversions"`
	ROI         float64 `json:"roi"`
	Platform    string  `json:"platform"`
	Objective   string  `json:"objective"`
}

func currentMetrics() Metrics {
	return Metrics{
		MonthlyAdSpend:   847392,
		ActiveClients:    47,
		AverageROAS:      4.2,
		TotalCampaigns:   156,
		TotalConversions: 18947,
		AvgCPC:           2.34,
		AvgCTR:           3.8,
		LastUpdated:      time.Now().UTC().Format(time.RFC3339),
	}
}

func revenueSeries() []RevenuePoint {
	return []RevenuePoint{
		{Month: "Jan", AdSpend: 720000, Revenue: 3024000, ROAS: 4.2, Leads: 15420},
		{Month: "Feb", AdSpend: 780000, Revenue: 3354000, ROAS: 4.3, Leads: 16890},
		{Month: "Mar", AdSpend: 650000, Revenue: 2730000, ROAS: 4.2, Leads: 14230},
		{Month: "Apr", AdSpend: 890000, Revenue: 3738000, ROAS: 4.2, Leads: 19560},
		{Month: "May", AdSpend: 760000, Revenue: 3192000, ROAS: 4.2, Leads: 16780},
		{Month: "Jun", AdSpend: 950000, Revenue: 3990000, ROAS: 4.2, Leads: 21340},
		{Month: "Jul", AdSpend: 847000, Revenue: 3557400, ROAS: 4.2, Leads: 18947},
	}
}

func trafficSources() []TrafficSource {
	return []TrafficSource{
		{Source: "Google Ads", Spend: 356000, Conversions: 7240, ROAS: 4.8, Color: "#4285F4"},
		{Source: "Facebook Ads", Spend: 234000, Conversions: 5180, ROAS: 4.1, Color: "#1877F2"},
		{Source: "Instagram Ads", Spend: 145000, Conversions: 3420, ROAS: 3.9, Color: "#E4405F"},
		{Source: "LinkedIn Ads", Spend: 78000, Conversions: 890, ROAS: 3.2, Color: "#0A66C2"},
		{Source: "TikTok Ads", Spend: 34000, Conversions: 1217, ROAS: 5.1, Color: "#000000"},
	}
}

func deviceBreakdown() []DeviceShare {
	return []DeviceShare{
		{Device: "Desktop", Percentage: 45, Conversions: 8526, Color: "#FF1FB4"},
		{Device: "Mobile", Percentage: 42, Conversions: 7958, Color: "#00B9FF"},
		{Device: "Tablet", Percentage: 13, Conversions: 2463, Color: "#2CD5C4"},
	}
}

func campaignSummaries() []CampaignSummary {
	return []CampaignSummary{
		{
			ID: 1, Name: "TechStartup Q3 Lead Generation", Client: "InnovateAI Solutions",
			Status: "Active", Budget: 50000, Spent: 35680, Conversions: 1247, ROI: 420,
			Platform: "Google Ads", Objective: "Lead Generation",
		},
		{
			ID: 2, Name: "E-commerce Fashion BFCM Campaign", Client: "StyleHub Boutique",
			Status: "Active", Budget: 85000, Spent: 72450, Conversions: 2156, ROI: 380,
			Platform: "Facebook + Instagram", Objective: "Purchase Conversion",
		},
		{
			ID: 3, Name: "SaaS Free Trial Campaign", Client: "DataFlow Pro",
			Status: "Paused", Budget: 40000, Spent: 28900, Conversions: 892, ROI: 340,
			Platform: "LinkedIn Ads", Objective: "Trial Signup",
		},
		{
			ID: 4, Name: "Local Restaurant Chain Promotion", Client: "Bistro Milano",
			Status: "Active", Budget: 25000, Spent: 18760, Conversions: 1834, ROI: 520,
			Platform: "Facebook + Google Local", Objective: "Store Visits",
		},
		{
			ID: 5, Name: "Luxury Real Estate Campaign", Client: "Premier Properties Group",
			Status: "Active", Budget: 75000, Spent: 52340, Conversions: 234, ROI: 890,
			Platform: "Google Ads + YouTube", Objective: "High-Value Leads",
		},
	}
}
