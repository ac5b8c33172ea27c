package domain

import (
	"encoding/json"
	"sort"
)

const DaysInWeek = 7

var WeekdayLabels = [DaysInWeek]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// WeekdayBuckets holds presence durations in seconds, indexed Monday=0..Sunday=6.
type WeekdayBuckets [DaysInWeek][]int

type WeekdayValue struct {
	Label string
	Value float64
}

func (v WeekdayValue) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{v.Label, v.Value})
}

type WeekdayReport []WeekdayValue

// PresenceReport is a weekday report rendered with a leading header row.
type PresenceReport WeekdayReport

var presenceHeader = []string{"Weekday", "Presence (s)"}

func (r PresenceReport) MarshalJSON() ([]byte, error) {
	rows := make([]any, 0, len(r)+1)
	rows = append(rows, presenceHeader)
	for _, v := range r {
		rows = append(rows, v)
	}
	return json.Marshal(rows)
}

type StartEndValue struct {
	Label string
	Start float64
	End   float64
}

func (v StartEndValue) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{v.Label, v.Start, v.End})
}

type StartEndReport []StartEndValue

func SecondsSinceMidnight(c Clock) int {
	return c.Hour*3600 + c.Minute*60 + c.Second
}

// IntervalSeconds returns end minus start in seconds. The result is negative
// when end is earlier than start.
func IntervalSeconds(start, end Clock) int {
	return SecondsSinceMidnight(end) - SecondsSinceMidnight(start)
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func MeanInts(values []int) float64 {
	floats := make([]float64, len(values))
	for i, v := range values {
		floats[i] = float64(v)
	}
	return Mean(floats)
}

func sortedDates(records map[Date]Interval) []Date {
	dates := make([]Date, 0, len(records))
	for d := range records {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})
	return dates
}

// GroupByWeekday buckets each day's presence duration by weekday. Days are
// visited in ascending date order.
func GroupByWeekday(records map[Date]Interval) WeekdayBuckets {
	var buckets WeekdayBuckets
	for i := range buckets {
		buckets[i] = []int{}
	}

	for _, d := range sortedDates(records) {
		iv := records[d]
		wd := d.Weekday()
		buckets[wd] = append(buckets[wd], IntervalSeconds(iv.Start, iv.End))
	}
	return buckets
}

func MeanTimeByWeekday(records map[Date]Interval) WeekdayReport {
	buckets := GroupByWeekday(records)

	report := make(WeekdayReport, 0, DaysInWeek)
	for i, durations := range buckets {
		report = append(report, WeekdayValue{Label: WeekdayLabels[i], Value: MeanInts(durations)})
	}
	return report
}

func PresenceByWeekday(records map[Date]Interval) PresenceReport {
	buckets := GroupByWeekday(records)

	report := make(PresenceReport, 0, DaysInWeek)
	for i, durations := range buckets {
		total := 0
		for _, d := range durations {
			total += d
		}
		report = append(report, WeekdayValue{Label: WeekdayLabels[i], Value: float64(total)})
	}
	return report
}

// StartEndByWeekday reports the mean arrival and departure time per weekday,
// both as seconds since midnight.
func StartEndByWeekday(records map[Date]Interval) StartEndReport {
	var starts, ends [DaysInWeek][]int
	for _, d := range sortedDates(records) {
		iv := records[d]
		wd := d.Weekday()
		starts[wd] = append(starts[wd], SecondsSinceMidnight(iv.Start))
		ends[wd] = append(ends[wd], SecondsSinceMidnight(iv.End))
	}

	report := make(StartEndReport, 0, DaysInWeek)
	for i := 0; i < DaysInWeek; i++ {
		report = append(report, StartEndValue{
			Label: WeekdayLabels[i],
			Start: MeanInts(starts[i]),
			End:   MeanInts(ends[i]),
		})
	}
	return report
}
