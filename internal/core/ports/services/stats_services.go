package services

import (
	"context"

	"github.com/tmzhouw/labor-report-backend/internal/core/domain"
)

// StatsSvcFacade is the aggregation engine: pure read-only derivations over
// the filtered report population. No method raises for "no data"; empty or
// zeroed structures come back instead.
type StatsSvcFacade interface {
	// Summarize computes the dashboard headline for the reference month,
	// falling back to the most recent complete month when the latest month's
	// filing completion is below the configured cutoff.
	Summarize(ctx context.Context, filter domain.StatsFilter) (*domain.Summary, error)

	// ByIndustry groups the population by industry.
	ByIndustry(ctx context.Context, filter domain.StatsFilter) ([]domain.IndustryStat, error)

	// ByTown groups the population by town.
	ByTown(ctx context.Context, filter domain.StatsFilter) ([]domain.TownStat, error)

	// Trend returns one point per calendar month, chronologically.
	Trend(ctx context.Context, filter domain.StatsFilter) ([]domain.TrendPoint, error)

	// TopN ranks companies by metric, ties broken by company id ascending.
	TopN(ctx context.Context, metric domain.RankMetric, n int, filter domain.StatsFilter) ([]domain.CompanyRanking, error)
}
