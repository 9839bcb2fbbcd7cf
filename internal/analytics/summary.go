// Package analytics computes derived summaries from a ledger snapshot:
// monthly totals, category totals, and the current-month KPI block. Nothing
// here is persisted or cached; every call recomputes from the snapshot.
package analytics

import (
	"fmt"
	"sort"

	"tally/internal/core"
)

// Sentinel shown for text KPIs when the current month has no expenses.
const NoData = "n/a"

type (
	// MonthTotal is the summed amount for one calendar month, keyed by its
	// first day.
	MonthTotal struct {
		Month core.Date
		Total core.Money
	}

	CategoryTotal struct {
		Category string
		Total    core.Money
	}

	// KPISnapshot describes the current month up to today.
	KPISnapshot struct {
		Total            core.Money
		TransactionCount int
		AvgDaily         core.Money
		TopCategory      string
		LargestExpense   string
	}
)

// ByMonth groups by the first day of each expense's month and sums amounts.
// Rows with a zero date or non-positive amount are dropped rather than
// failing the call. Months come back ascending.
func ByMonth(snapshot []core.Expense) []MonthTotal {
	totals := make(map[string]*MonthTotal)
	for _, e := range snapshot {
		if e.Date.IsZero() || e.Amount.Cents <= 0 {
			continue
		}
		month := e.Date.MonthStart()
		key := month.String()
		if t, ok := totals[key]; ok {
			t.Total = t.Total.Add(e.Amount)
		} else {
			totals[key] = &MonthTotal{Month: month, Total: e.Amount}
		}
	}

	out := make([]MonthTotal, 0, len(totals))
	for _, t := range totals {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month.Before(out[j].Month.Time) })
	return out
}

// ByCategory sums amounts per category name, sorted by total descending,
// ties broken by name ascending.
func ByCategory(snapshot []core.Expense) []CategoryTotal {
	totals := make(map[string]int64)
	for _, e := range snapshot {
		if e.Date.IsZero() || e.Amount.Cents <= 0 {
			continue
		}
		totals[e.Category] += e.Amount.Cents
	}

	out := make([]CategoryTotal, 0, len(totals))
	for name, cents := range totals {
		out = append(out, CategoryTotal{Category: name, Total: core.Money{Cents: cents}})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total.Cents != out[j].Total.Cents {
			return out[i].Total.Cents > out[j].Total.Cents
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// CurrentMonthKPIs summarizes [first of today's month, today] inclusive.
// The average daily spend is the mean of per-day sums over the distinct
// days with activity, not the mean of individual transactions.
func CurrentMonthKPIs(snapshot []core.Expense, today core.Date) KPISnapshot {
	start := today.MonthStart()

	var inMonth []core.Expense
	for _, e := range snapshot {
		if e.Date.IsZero() || e.Amount.Cents <= 0 {
			continue
		}
		if e.Date.Before(start.Time) || e.Date.After(today.Time) {
			continue
		}
		inMonth = append(inMonth, e)
	}

	if len(inMonth) == 0 {
		return KPISnapshot{TopCategory: NoData, LargestExpense: NoData}
	}

	var total int64
	perDay := make(map[string]int64)
	largest := inMonth[0]
	for _, e := range inMonth {
		total += e.Amount.Cents
		perDay[e.Date.String()] += e.Amount.Cents
		if e.Amount.Cents > largest.Amount.Cents {
			largest = e
		}
	}

	var daySum int64
	for _, cents := range perDay {
		daySum += cents
	}
	days := int64(len(perDay))
	avgDaily := (daySum + days/2) / days

	top := ByCategory(inMonth)[0]

	return KPISnapshot{
		Total:            core.Money{Cents: total},
		TransactionCount: len(inMonth),
		AvgDaily:         core.Money{Cents: avgDaily},
		TopCategory:      fmt.Sprintf("%s — %s", top.Category, top.Total),
		LargestExpense:   fmt.Sprintf("%s — %s on %s", largest.Category, largest.Amount, largest.Date),
	}
}
