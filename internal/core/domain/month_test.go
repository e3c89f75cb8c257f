package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmzhouw/labor-report-backend/internal/core/domain"
)

func TestParseMonthKey_Valid(t *testing.T) {
	m, err := domain.ParseMonthKey("2025-07-01")
	require.NoError(t, err)
	assert.Equal(t, domain.MonthKey("2025-07-01"), m)
}

func TestParseMonthKey_RejectsNonFirstDay(t *testing.T) {
	_, err := domain.ParseMonthKey("2025-07-15")
	assert.Error(t, err)
}

func TestParseMonthKey_RejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "2025-07", "July 2025", "2025-13-01", "2025/07/01"} {
		_, err := domain.ParseMonthKey(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestMonthKeyOf_Normalizes(t *testing.T) {
	m := domain.MonthKeyOf(time.Date(2025, 7, 23, 14, 5, 0, 0, time.UTC))
	assert.Equal(t, domain.MonthKey("2025-07-01"), m)
}

func TestMonthKey_PrevNextAcrossYear(t *testing.T) {
	jan := domain.MonthKey("2025-01-01")
	assert.Equal(t, domain.MonthKey("2024-12-01"), jan.Prev())

	dec := domain.MonthKey("2024-12-01")
	assert.Equal(t, jan, dec.Next())
}

func TestMonthKey_Ordering(t *testing.T) {
	assert.True(t, domain.MonthKey("2025-06-01").Before("2025-07-01"))
	assert.False(t, domain.MonthKey("2025-07-01").Before("2025-07-01"))
	assert.False(t, domain.MonthKey("2025-07-01").Before("2025-06-01"))
}

func TestMonthKey_Year(t *testing.T) {
	assert.Equal(t, 2025, domain.MonthKey("2025-07-01").Year())
}
