package domain

// Summary is the dashboard headline derived from the filtered report
// population. Rates are plain ratios; presentation owns rounding.
type Summary struct {
	CompanyCount   int      `json:"companyCount"`
	ReferenceMonth MonthKey `json:"referenceMonth"`
	FiledCount     int      `json:"filedCount"`
	CompletionRate float64  `json:"completionRate"`

	// Fallback is set when the latest month's filing completion was below the
	// usability cutoff and an earlier complete month was used instead.
	Fallback          bool     `json:"fallback"`
	SkippedMonth      MonthKey `json:"skippedMonth,omitempty"`
	SkippedCompletion float64  `json:"skippedCompletion,omitempty"`

	CurrentEmployees int     `json:"currentEmployees"`
	AverageEmployees float64 `json:"averageEmployees"`
	RecruitedYTD     int     `json:"recruitedYTD"`
	ResignedYTD      int     `json:"resignedYTD"`
	NetGrowthYTD     int     `json:"netGrowthYTD"`
	CurrentShortage  int     `json:"currentShortage"`
	ShortageRate     float64 `json:"shortageRate"` // shortage / (employees + shortage)
	TurnoverRate     float64 `json:"turnoverRate"` // cumulative resigned / current employees

	// HasData distinguishes true zeros from an empty population; rates are 0
	// whenever their denominator is 0.
	HasData bool `json:"hasData"`
}

// IndustryStat is the rollup for one industry group.
type IndustryStat struct {
	Industry         string  `json:"industry"`
	CompanyCount     int     `json:"companyCount"`
	TotalEmployees   int     `json:"totalEmployees"`
	AverageEmployees float64 `json:"averageEmployees"`
	ShortageCount    int     `json:"shortageCount"`
	ShortageRate     float64 `json:"shortageRate"`
	TurnoverRate     float64 `json:"turnoverRate"`
	TopTown          string  `json:"topTown"` // dominant town by employees
}

// TownStat is the rollup for one town group.
type TownStat struct {
	Town             string  `json:"town"`
	CompanyCount     int     `json:"companyCount"`
	TotalEmployees   int     `json:"totalEmployees"`
	AverageEmployees float64 `json:"averageEmployees"`
	ShortageCount    int     `json:"shortageCount"`
	ShortageRate     float64 `json:"shortageRate"`
	TurnoverRate     float64 `json:"turnoverRate"`
	TopIndustry      string  `json:"topIndustry"` // dominant industry by employees
}

// TrendPoint is one calendar month of the time series. FiledCount
// distinguishes a month with zero filed reports from missing data.
type TrendPoint struct {
	Month          MonthKey `json:"month"`
	FiledCount     int      `json:"filedCount"`
	TotalEmployees int      `json:"totalEmployees"`
	TotalShortage  int      `json:"totalShortage"`
	TotalRecruited int      `json:"totalRecruited"`
	TotalResigned  int      `json:"totalResigned"`
}

// RankMetric selects the ranking dimension for company leaderboards.
type RankMetric string

const (
	MetricShortage  RankMetric = "shortage"  // reference month shortage total
	MetricRecruited RankMetric = "recruited" // year-to-date recruits
	MetricTurnover  RankMetric = "turnover"  // YTD resigned / current employees
	MetricNetGrowth RankMetric = "netgrowth" // YTD recruited minus resigned
)

// IsValidRankMetric reports whether m is a known metric.
func IsValidRankMetric(m RankMetric) bool {
	switch m {
	case MetricShortage, MetricRecruited, MetricTurnover, MetricNetGrowth:
		return true
	}
	return false
}

// CompanyRanking is one leaderboard entry.
type CompanyRanking struct {
	CompanyID string   `json:"companyID"`
	Name      string   `json:"name"`
	Industry  string   `json:"industry"`
	Town      string   `json:"town"`
	Month     MonthKey `json:"month"` // reference month the value was taken at
	Value     float64  `json:"value"`
}

// AnomalyWarning is the detector's verdict on a month-over-month swing.
type AnomalyWarning struct {
	Flagged       bool    `json:"flagged"`
	ChangePercent float64 `json:"changePercent"`
	Detail        string  `json:"detail,omitempty"`
}
