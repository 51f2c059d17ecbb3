package reports

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"
)

// Report types.
const (
	TypeMonthly     = "monthly"
	TypeCampaign    = "campaign"
	TypePerformance = "performance"
)

// ValidType reports whether t is a known report type.
func ValidType(t string) bool {
	return t == TypeMonthly || t == TypeCampaign || t == TypePerformance
}

// DateRange is an inclusive day span.
type DateRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Summary aggregates the campaign rows of a report.
type Summary struct {
	TotalImpressions int     `json:"totalImpressions"`
	TotalClicks      int     `json:"totalClicks"`
	TotalConversions int     `json:"totalConversions"`
	TotalRevenue     int     `json:"totalRevenue"`
	AverageCTR       float64 `json:"averageCTR"`
	AverageCPC       float64 `json:"averageCPC"`
	AverageROAS      float64 `json:"averageROAS"`
}

// CampaignRow is one campaign's performance within a report.
type CampaignRow struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Impressions int     `json:"impressions"`
	Clicks      int     `json:"clicks"`
	Conversions int     `json:"conversions"`
	Spend       int     `json:"spend"`
	Revenue     int     `json:"revenue"`
	CTR         float64 `json:"ctr"`
	CPC         float64 `json:"cpc"`
	ROAS        float64 `json:"roas"`
}

// DailyMetric is one day's totals within the report range.
type DailyMetric struct {
	Date        string `json:"date"`
	Impressions int    `json:"impressions"`
	Clicks      int    `json:"clicks"`
	Conversions int    `json:"conversions"`
	Revenue     int    `json:"revenue"`
}

// TopPerformer names the campaign leading one metric.
type TopPerformer struct {
	Metric   string  `json:"metric"`
	Campaign string  `json:"campaign"`
	Value    float64 `json:"value"`
}

// ReportData is a complete generated report.
type ReportData struct {
	Type      string     `json:"type"`
	DateRange DateRange  `json:"dateRange"`
	Data      ReportBody `json:"data"`
}

// ReportBody holds the report's datasets.
type ReportBody struct {
	Summary       Summary        `json:"summary"`
	Campaigns     []CampaignRow  `json:"campaigns"`
	DailyMetrics  []DailyMetric  `json:"dailyMetrics"`
	TopPerformers []TopPerformer `json:"topPerformers"`
}

// Generator produces synthetic report data. Real ad-platform ingestion
// would slot in behind the same shape.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewGenerator creates a generator from the given seed, so tests can pin
// the output.
func NewGenerator(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// reportCampaigns are the fixed campaigns every report covers.
func reportCampaigns() []CampaignRow {
	return []CampaignRow{
		{ID: "1", Name: "Summer Sale 2025"},
		{ID: "2", Name: "Brand Awareness Q3"},
		{ID: "3", Name: "Product Launch Campaign"},
		{ID: "4", Name: "Holiday Special"},
		{ID: "5", Name: "Retargeting Campaign"},
	}
}

// Generate builds a report for the given type and inclusive date range.
func (g *Generator) Generate(reportType string, from, to time.Time) ReportData {
	g.mu.Lock()
	defer g.mu.Unlock()

	campaigns := reportCampaigns()
	for i := range campaigns {
		c := &campaigns[i]
		c.Impressions = g.intn(100000) + 50000
		c.Clicks = g.intn(5000) + 1000
		c.Conversions = g.intn(200) + 50
		c.Spend = g.intn(10000) + 2000
		c.Revenue = g.intn(25000) + 5000
		c.CTR = round2(g.rnd.Float64()*3 + 1)
		c.CPC = round2(g.rnd.Float64()*2 + 0.5)
		c.ROAS = round2(g.rnd.Float64()*4 + 2)
	}

	var impressions, clicks, conversions, spend, revenue int
	for _, c := range campaigns {
		impressions += c.Impressions
		clicks += c.Clicks
		conversions += c.Conversions
		spend += c.Spend
		revenue += c.Revenue
	}

	daily := []DailyMetric{}
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		daily = append(daily, DailyMetric{
			Date:        d.Format("2006-01-02"),
			Impressions: g.intn(5000) + 1000,
			Clicks:      g.intn(250) + 50,
			Conversions: g.intn(15) + 3,
			Revenue:     g.intn(1500) + 300,
		})
	}

	return ReportData{
		Type:      reportType,
		DateRange: DateRange{From: from.Format("2006-01-02"), To: to.Format("2006-01-02")},
		Data: ReportBody{
			Summary: Summary{
				TotalImpressions: impressions,
				TotalClicks:      clicks,
				TotalConversions: conversions,
				TotalRevenue:     revenue,
				AverageCTR:       round2(float64(clicks) / float64(impressions) * 100),
				AverageCPC:       round2(float64(spend) / float64(clicks)),
				AverageROAS:      round2(float64(revenue) / float64(spend)),
			},
			Campaigns:    campaigns,
			DailyMetrics: daily,
			TopPerformers: []TopPerformer{
				topBy(campaigns, "Highest ROAS", func(c CampaignRow) float64 { return c.ROAS }),
				topBy(campaigns, "Most Conversions", func(c CampaignRow) float64 { return float64(c.Conversions) }),
				topBy(campaigns, "Highest Revenue", func(c CampaignRow) float64 { return float64(c.Revenue) }),
			},
		},
	}
}

// topBy attributes the leading value to the campaign that actually holds it.
func topBy(campaigns []CampaignRow, metric string, value func(CampaignRow) float64) TopPerformer {
	best := campaigns[0]
	for _, c := range campaigns[1:] {
		if value(c) > value(best) {
			best = c
		}
	}
	return TopPerformer{Metric: metric, Campaign: best.Name, Value: value(best)}
}

func (g *Generator) intn(n int) int {
	return g.rnd.Intn(n)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// parseDay parses a yyyy-mm-dd string.
func parseDay(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// maxReportDays caps the inclusive day span of a single report. One daily
// metric row is generated per day, so an unbounded range would balloon the
// response.
const maxReportDays = 366

// validateRange rejects inverted or oversized date ranges. The returned
// message is suitable for the error envelope.
func validateRange(from, to time.Time) (string, bool) {
	if to.Before(from) {
		return "Invalid date range: from must not be after to", false
	}
	if days := int(to.Sub(from).Hours()/24) + 1; days > maxReportDays {
		return fmt.Sprintf("Date range too large: maximum %d days", maxReportDays), false
	}
	return "", true
}
