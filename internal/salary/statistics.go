package salary

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

const (
	recentPaymentsLimit = 10
	trailingMonths      = 6
)

type yearMonth struct {
	year  int
	month time.Month
}

// monthOf reads the calendar month of a stored payment date without
// converting time zones.
func monthOf(t time.Time) yearMonth {
	return yearMonth{year: t.Year(), month: t.Month()}
}

// minus steps back n calendar months, wrapping across years.
func (ym yearMonth) minus(n int) yearMonth {
	idx := ym.year*12 + int(ym.month) - 1 - n
	return yearMonth{year: idx / 12, month: time.Month(idx%12 + 1)}
}

// computeStatistics summarizes every salary row relative to the calendar
// month of now.
func computeStatistics(rows []Salary, now time.Time) Statistics {
	current := monthOf(now)
	previous := current.minus(1)

	byMonth := make(map[yearMonth]decimal.Decimal)
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Amount)
		ym := monthOf(r.DatePaid)
		byMonth[ym] = byMonth[ym].Add(r.Amount)
	}

	recent := make([]Salary, len(rows))
	copy(recent, rows)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].DatePaid.After(recent[j].DatePaid)
	})
	if len(recent) > recentPaymentsLimit {
		recent = recent[:recentPaymentsLimit]
	}

	monthly := make([]MonthlyAmount, 0, trailingMonths)
	for i := trailingMonths - 1; i >= 0; i-- {
		ym := current.minus(i)
		monthly = append(monthly, MonthlyAmount{
			Name:   ym.month.String()[:3],
			Amount: byMonth[ym],
		})
	}

	return Statistics{
		TotalPaid:      total,
		ThisMonth:      byMonth[current],
		LastMonth:      byMonth[previous],
		RecentPayments: mapToListResponse(recent),
		MonthlyData:    monthly,
	}
}
