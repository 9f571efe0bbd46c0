package models

import "time"

// Earnings history maintenance. Buckets are rolled by elapsed calendar
// periods since the newest bucket, not by wall-clock triggers, so gaps where
// the system was idle across period boundaries are backfilled with
// zero-valued buckets before any amount is recorded.

func nextDay(p string) string {
	t, _ := time.Parse(DateLayout, p)
	return t.AddDate(0, 0, 1).Format(DateLayout)
}

func nextMonth(p string) string {
	t, _ := time.Parse("2006-01", p)
	return t.AddDate(0, 1, 0).Format("2006-01")
}

func nextYear(p string) string {
	t, _ := time.Parse("2006", p)
	return t.AddDate(1, 0, 0).Format("2006")
}

// rollSeries advances buckets to the current period, appending a zero bucket
// per skipped period and dropping the oldest beyond max (FIFO).
func rollSeries(buckets []EarningsBucket, current string, max int, next func(string) string) []EarningsBucket {
	if len(buckets) == 0 {
		return []EarningsBucket{{Period: current}}
	}
	last := buckets[len(buckets)-1].Period
	for last < current {
		last = next(last)
		buckets = append(buckets, EarningsBucket{Period: last})
	}
	if len(buckets) > max {
		buckets = buckets[len(buckets)-max:]
	}
	return buckets
}

// RollEarnings advances all three rolling windows to the given calendar day.
func RollEarnings(b *Balance, today string) {
	b.Daily = rollSeries(b.Daily, today, DailyBuckets, nextDay)
	b.Monthly = rollSeries(b.Monthly, today[:7], MonthlyBuckets, nextMonth)
	b.Yearly = rollSeries(b.Yearly, today[:4], YearlyBuckets, nextYear)
}

// ApplyEarnings converts amount of pending balance into realized earnings,
// rolling the history windows first so the amount lands in today's buckets.
func ApplyEarnings(b *Balance, amount float64, today string) {
	RollEarnings(b, today)
	b.Daily[len(b.Daily)-1].Amount += amount
	b.Monthly[len(b.Monthly)-1].Amount += amount
	b.Yearly[len(b.Yearly)-1].Amount += amount
	b.PendingBalance -= amount
	b.AvailableBalance += amount
	b.TotalEarnings += amount
}
