package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/tmzhouw/labor-report-backend/internal/apperrors"
	"github.com/tmzhouw/labor-report-backend/internal/core/domain"
	portsrepo "github.com/tmzhouw/labor-report-backend/internal/core/ports/repositories"
	portssvc "github.com/tmzhouw/labor-report-backend/internal/core/ports/services"
)

// DefaultCompletionCutoff is the filing-completion rate below which the
// latest month is considered unusable as the reference month.
const DefaultCompletionCutoff = 0.50

// statsService derives dashboard statistics from a snapshot of the report
// population. All operations are pure reads; both SUBMITTED and APPROVED
// reports count as filed.
type statsService struct {
	BaseService
	companyRepo      portsrepo.CompanyRepository
	reportRepo       portsrepo.ReportRepository
	completionCutoff float64
}

// NewStatsService creates the aggregation engine. A cutoff outside (0, 1]
// falls back to the default.
func NewStatsService(companyRepo portsrepo.CompanyRepository, reportRepo portsrepo.ReportRepository, completionCutoff float64) portssvc.StatsSvcFacade {
	if completionCutoff <= 0 || completionCutoff > 1 {
		completionCutoff = DefaultCompletionCutoff
	}
	return &statsService{
		companyRepo:      companyRepo,
		reportRepo:       reportRepo,
		completionCutoff: completionCutoff,
	}
}

var _ portssvc.StatsSvcFacade = (*statsService)(nil)

// snapshot loads the filtered population without a month constraint, plus the
// post-filter company count; the month, when set, is applied by the caller
// through the reference-month selection.
func (s *statsService) snapshot(ctx context.Context, filter domain.StatsFilter) ([]domain.ReportRow, int, error) {
	companyCount, err := s.companyRepo.CountCompanies(ctx, filter.CompanyOnly())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count companies: %w", err)
	}
	allMonths := filter
	allMonths.Month = ""
	rows, err := s.reportRepo.ListReportRows(ctx, allMonths)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan reports: %w", err)
	}
	return filedRows(rows), companyCount, nil
}

// filedRows reduces a scan to the rows that count as filed: SUBMITTED and
// APPROVED. REJECTED filings are known-bad data awaiting resubmission and
// carry no statistical weight.
func filedRows(rows []domain.ReportRow) []domain.ReportRow {
	out := make([]domain.ReportRow, 0, len(rows))
	for i := range rows {
		switch rows[i].Status {
		case domain.StatusSubmitted, domain.StatusApproved:
			out = append(out, rows[i])
		}
	}
	return out
}

// referenceMonth picks the month every "current" figure is computed against.
// A pinned filter month wins outright. Otherwise the latest month in the data
// is used unless its filing completion is below the cutoff, in which case the
// most recent month at or above the cutoff is used and the skip is reported.
func (s *statsService) referenceMonth(rows []domain.ReportRow, companyCount int, pinned domain.MonthKey) (ref domain.MonthKey, fallback bool, skipped domain.MonthKey, skippedCompletion float64) {
	if pinned != "" {
		return pinned, false, "", 0
	}
	months := monthsDescending(rows)
	if len(months) == 0 {
		return "", false, "", 0
	}
	if companyCount <= 0 {
		return months[0], false, "", 0
	}
	for i, m := range months {
		completion := float64(countFiled(rows, m)) / float64(companyCount)
		if completion >= s.completionCutoff {
			if i > 0 {
				latest := months[0]
				return m, true, latest, float64(countFiled(rows, latest)) / float64(companyCount)
			}
			return m, false, "", 0
		}
	}
	// Every month is below the cutoff; the latest is as good as any.
	return months[0], false, "", 0
}

// Summarize computes the dashboard headline over the filtered population.
func (s *statsService) Summarize(ctx context.Context, filter domain.StatsFilter) (*domain.Summary, error) {
	rows, companyCount, err := s.snapshot(ctx, filter)
	if err != nil {
		return nil, err
	}

	summary := &domain.Summary{CompanyCount: companyCount}
	ref, fallback, skipped, skippedCompletion := s.referenceMonth(rows, companyCount, filter.Month)
	if ref == "" {
		// No filed reports at all; everything stays at its zero value.
		return summary, nil
	}
	summary.ReferenceMonth = ref
	summary.Fallback = fallback
	summary.SkippedMonth = skipped
	summary.SkippedCompletion = skippedCompletion

	for i := range rows {
		row := &rows[i]
		if row.ReportMonth == ref {
			summary.FiledCount++
			summary.CurrentEmployees += row.EmployeesTotal
			summary.CurrentShortage += row.ShortageTotal
		}
		if row.ReportMonth.Year() == ref.Year() && !ref.Before(row.ReportMonth) {
			summary.RecruitedYTD += row.RecruitedNew
			summary.ResignedYTD += row.ResignedTotal
		}
	}
	summary.NetGrowthYTD = summary.RecruitedYTD - summary.ResignedYTD
	summary.HasData = summary.FiledCount > 0

	if companyCount > 0 {
		summary.CompletionRate = float64(summary.FiledCount) / float64(companyCount)
	}
	if summary.FiledCount > 0 {
		summary.AverageEmployees = float64(summary.CurrentEmployees) / float64(summary.FiledCount)
	}
	if denom := summary.CurrentEmployees + summary.CurrentShortage; denom > 0 {
		summary.ShortageRate = float64(summary.CurrentShortage) / float64(denom)
	}
	if summary.CurrentEmployees > 0 {
		summary.TurnoverRate = float64(summary.ResignedYTD) / float64(summary.CurrentEmployees)
	}

	s.LogDebug(ctx, "Summary computed",
		slog.String("reference_month", ref.String()),
		slog.Bool("fallback", fallback),
		slog.Int("filed", summary.FiledCount))
	return summary, nil
}

// latestPerCompany reduces the snapshot to one row per company, preferring
// the pinned month when set and the latest available month otherwise.
func latestPerCompany(rows []domain.ReportRow, pinned domain.MonthKey) []domain.ReportRow {
	if pinned != "" {
		out := make([]domain.ReportRow, 0, len(rows))
		for i := range rows {
			if rows[i].ReportMonth == pinned {
				out = append(out, rows[i])
			}
		}
		return out
	}
	latest := make(map[string]domain.ReportRow, len(rows))
	for i := range rows {
		row := rows[i]
		if cur, ok := latest[row.CompanyID]; !ok || cur.ReportMonth.Before(row.ReportMonth) {
			latest[row.CompanyID] = row
		}
	}
	out := make([]domain.ReportRow, 0, len(latest))
	for _, row := range latest {
		out = append(out, row)
	}
	return out
}

// ByIndustry groups the filtered population by the company's industry.
func (s *statsService) ByIndustry(ctx context.Context, filter domain.StatsFilter) ([]domain.IndustryStat, error) {
	rows, err := s.reportRepo.ListReportRows(ctx, stripMonth(filter))
	if err != nil {
		return nil, fmt.Errorf("failed to scan reports: %w", err)
	}
	groups := rollup(latestPerCompany(filedRows(rows), filter.Month), func(r *domain.ReportRow) (string, string) {
		return r.Industry, r.Town
	})

	stats := make([]domain.IndustryStat, 0, len(groups))
	for _, g := range groups {
		stats = append(stats, domain.IndustryStat{
			Industry:         g.key,
			CompanyCount:     g.companyCount,
			TotalEmployees:   g.employees,
			AverageEmployees: g.averageEmployees(),
			ShortageCount:    g.shortage,
			ShortageRate:     g.shortageRate(),
			TurnoverRate:     g.turnoverRate(),
			TopTown:          g.topSubGroup(),
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].TotalEmployees != stats[j].TotalEmployees {
			return stats[i].TotalEmployees > stats[j].TotalEmployees
		}
		return stats[i].Industry < stats[j].Industry
	})
	return stats, nil
}

// ByTown groups the filtered population by the company's town.
func (s *statsService) ByTown(ctx context.Context, filter domain.StatsFilter) ([]domain.TownStat, error) {
	rows, err := s.reportRepo.ListReportRows(ctx, stripMonth(filter))
	if err != nil {
		return nil, fmt.Errorf("failed to scan reports: %w", err)
	}
	groups := rollup(latestPerCompany(filedRows(rows), filter.Month), func(r *domain.ReportRow) (string, string) {
		return r.Town, r.Industry
	})

	stats := make([]domain.TownStat, 0, len(groups))
	for _, g := range groups {
		stats = append(stats, domain.TownStat{
			Town:             g.key,
			CompanyCount:     g.companyCount,
			TotalEmployees:   g.employees,
			AverageEmployees: g.averageEmployees(),
			ShortageCount:    g.shortage,
			ShortageRate:     g.shortageRate(),
			TurnoverRate:     g.turnoverRate(),
			TopIndustry:      g.topSubGroup(),
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].TotalEmployees != stats[j].TotalEmployees {
			return stats[i].TotalEmployees > stats[j].TotalEmployees
		}
		return stats[i].Town < stats[j].Town
	})
	return stats, nil
}

// Trend returns one point per calendar month between the earliest and latest
// month present in the data. Gap months are emitted with zero values and a
// zero FiledCount rather than interpolated away.
func (s *statsService) Trend(ctx context.Context, filter domain.StatsFilter) ([]domain.TrendPoint, error) {
	allRows, err := s.reportRepo.ListReportRows(ctx, stripMonth(filter))
	if err != nil {
		return nil, fmt.Errorf("failed to scan reports: %w", err)
	}
	rows := filedRows(allRows)
	if len(rows) == 0 {
		return []domain.TrendPoint{}, nil
	}

	byMonth := make(map[domain.MonthKey]*domain.TrendPoint)
	first, last := rows[0].ReportMonth, rows[0].ReportMonth
	for i := range rows {
		row := &rows[i]
		m := row.ReportMonth
		if m.Before(first) {
			first = m
		}
		if last.Before(m) {
			last = m
		}
		point, ok := byMonth[m]
		if !ok {
			point = &domain.TrendPoint{Month: m}
			byMonth[m] = point
		}
		point.FiledCount++
		point.TotalEmployees += row.EmployeesTotal
		point.TotalShortage += row.ShortageTotal
		point.TotalRecruited += row.RecruitedNew
		point.TotalResigned += row.ResignedTotal
	}

	series := make([]domain.TrendPoint, 0, len(byMonth))
	for m := first; !last.Before(m); m = m.Next() {
		if point, ok := byMonth[m]; ok {
			series = append(series, *point)
		} else {
			series = append(series, domain.TrendPoint{Month: m})
		}
	}
	return series, nil
}

// TopN ranks companies by metric. Shortage and turnover rank on the reference
// month; recruited and net growth rank year-to-date through it.
func (s *statsService) TopN(ctx context.Context, metric domain.RankMetric, n int, filter domain.StatsFilter) ([]domain.CompanyRanking, error) {
	if !domain.IsValidRankMetric(metric) {
		return nil, apperrors.NewValidationFailedError("metric", "unknown ranking metric "+string(metric))
	}
	if n <= 0 {
		n = 10
	}

	rows, companyCount, err := s.snapshot(ctx, filter)
	if err != nil {
		return nil, err
	}
	ref, _, _, _ := s.referenceMonth(rows, companyCount, filter.Month)
	if ref == "" {
		return []domain.CompanyRanking{}, nil
	}

	type agg struct {
		ranking      domain.CompanyRanking
		refEmployees int
		refShortage  int
		recruitedYTD int
		resignedYTD  int
		filedRef     bool
	}
	byCompany := make(map[string]*agg)
	for i := range rows {
		row := &rows[i]
		a, ok := byCompany[row.CompanyID]
		if !ok {
			a = &agg{ranking: domain.CompanyRanking{
				CompanyID: row.CompanyID,
				Name:      row.CompanyName,
				Industry:  row.Industry,
				Town:      row.Town,
				Month:     ref,
			}}
			byCompany[row.CompanyID] = a
		}
		if row.ReportMonth == ref {
			a.refEmployees = row.EmployeesTotal
			a.refShortage = row.ShortageTotal
			a.filedRef = true
		}
		if row.ReportMonth.Year() == ref.Year() && !ref.Before(row.ReportMonth) {
			a.recruitedYTD += row.RecruitedNew
			a.resignedYTD += row.ResignedTotal
		}
	}

	rankings := make([]domain.CompanyRanking, 0, len(byCompany))
	for _, a := range byCompany {
		switch metric {
		case domain.MetricShortage:
			if !a.filedRef {
				continue
			}
			a.ranking.Value = float64(a.refShortage)
		case domain.MetricRecruited:
			a.ranking.Value = float64(a.recruitedYTD)
		case domain.MetricTurnover:
			if a.refEmployees <= 0 {
				continue
			}
			a.ranking.Value = float64(a.resignedYTD) / float64(a.refEmployees)
		case domain.MetricNetGrowth:
			a.ranking.Value = float64(a.recruitedYTD - a.resignedYTD)
		}
		rankings = append(rankings, a.ranking)
	}

	sort.Slice(rankings, func(i, j int) bool {
		if rankings[i].Value != rankings[j].Value {
			return rankings[i].Value > rankings[j].Value
		}
		return rankings[i].CompanyID < rankings[j].CompanyID
	})
	if len(rankings) > n {
		rankings = rankings[:n]
	}
	return rankings, nil
}

// group accumulates one rollup bucket.
type group struct {
	key          string
	companyCount int
	employees    int
	shortage     int
	resigned     int
	subGroups    map[string]int // sub-group -> employees
}

func (g *group) averageEmployees() float64 {
	if g.companyCount == 0 {
		return 0
	}
	return float64(g.employees) / float64(g.companyCount)
}

func (g *group) shortageRate() float64 {
	denom := g.employees + g.shortage
	if denom == 0 {
		return 0
	}
	return float64(g.shortage) / float64(denom)
}

func (g *group) turnoverRate() float64 {
	if g.employees == 0 {
		return 0
	}
	return float64(g.resigned) / float64(g.employees)
}

// topSubGroup returns the dominant sub-group by employees, name ascending on
// ties for determinism.
func (g *group) topSubGroup() string {
	top, topEmployees := "", -1
	names := make([]string, 0, len(g.subGroups))
	for name := range g.subGroups {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if g.subGroups[name] > topEmployees {
			top, topEmployees = name, g.subGroups[name]
		}
	}
	return top
}

// rollup buckets one-row-per-company data by the key returned from keyFn.
func rollup(rows []domain.ReportRow, keyFn func(*domain.ReportRow) (key, subKey string)) map[string]*group {
	groups := make(map[string]*group)
	for i := range rows {
		row := &rows[i]
		key, subKey := keyFn(row)
		g, ok := groups[key]
		if !ok {
			g = &group{key: key, subGroups: make(map[string]int)}
			groups[key] = g
		}
		g.companyCount++
		g.employees += row.EmployeesTotal
		g.shortage += row.ShortageTotal
		g.resigned += row.ResignedTotal
		g.subGroups[subKey] += row.EmployeesTotal
	}
	return groups
}

func stripMonth(filter domain.StatsFilter) domain.StatsFilter {
	filter.Month = ""
	return filter
}

func monthsDescending(rows []domain.ReportRow) []domain.MonthKey {
	seen := make(map[domain.MonthKey]struct{})
	months := make([]domain.MonthKey, 0)
	for i := range rows {
		if _, ok := seen[rows[i].ReportMonth]; !ok {
			seen[rows[i].ReportMonth] = struct{}{}
			months = append(months, rows[i].ReportMonth)
		}
	}
	sort.Slice(months, func(i, j int) bool { return months[j].Before(months[i]) })
	return months
}

func countFiled(rows []domain.ReportRow, month domain.MonthKey) int {
	count := 0
	for i := range rows {
		if rows[i].ReportMonth == month {
			count++
		}
	}
	return count
}
