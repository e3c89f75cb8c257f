package services

import (
	"fmt"
	"math"

	"github.com/tmzhouw/labor-report-backend/internal/core/domain"
)

// DefaultAnomalyThreshold flags a month-over-month headcount swing of 30% or
// more.
const DefaultAnomalyThreshold = 0.30

// AnomalyDetector compares a report's headcount with the prior month's and
// flags suspicious swings. It is stateless and read-only; verdicts are never
// persisted.
type AnomalyDetector struct {
	threshold float64
}

// NewAnomalyDetector creates a detector. A non-positive threshold falls back
// to the default.
func NewAnomalyDetector(threshold float64) *AnomalyDetector {
	if threshold <= 0 {
		threshold = DefaultAnomalyThreshold
	}
	return &AnomalyDetector{threshold: threshold}
}

// Detect computes the volatility verdict for current against previous. No
// warning is raised when either month is missing or the previous total is
// zero; the previous total must be positive before any ratio is formed.
func (d *AnomalyDetector) Detect(current, previous *domain.MonthlyReport) domain.AnomalyWarning {
	if current == nil || previous == nil {
		return domain.AnomalyWarning{}
	}
	if previous.Status == domain.StatusNotFiled || current.Status == domain.StatusNotFiled {
		return domain.AnomalyWarning{}
	}
	if previous.EmployeesTotal <= 0 {
		return domain.AnomalyWarning{}
	}

	change := math.Abs(float64(current.EmployeesTotal-previous.EmployeesTotal)) / float64(previous.EmployeesTotal)
	if change < d.threshold {
		return domain.AnomalyWarning{ChangePercent: change}
	}

	return domain.AnomalyWarning{
		Flagged:       true,
		ChangePercent: change,
		Detail: fmt.Sprintf("headcount moved from %d to %d, a %d%% swing against last month",
			previous.EmployeesTotal, current.EmployeesTotal, int(math.Round(change*100))),
	}
}
