package completions

import "time"

// FrequencyBucket counts completions whose day-of-month falls in the
// labeled range.
type FrequencyBucket struct {
	Label string `json:"label"`
	Count int    `json:"valor"`
}

var bucketLabels = []string{"1-7", "8-15", "16-23", "24-31"}

// bucketIndex maps a day of month to its fixed range. The bucketing is by
// day-of-month only: day 3 of January and day 3 of June land in the same
// bucket. Month boundaries matter only as a grouping key.
func bucketIndex(day int) int {
	switch {
	case day <= 7:
		return 0
	case day <= 15:
		return 1
	case day <= 23:
		return 2
	default:
		return 3
	}
}

func emptyBuckets() []FrequencyBucket {
	buckets := make([]FrequencyBucket, len(bucketLabels))
	for i, label := range bucketLabels {
		buckets[i] = FrequencyBucket{Label: label}
	}
	return buckets
}

// Frequency buckets all completion timestamps into the four fixed
// day-of-month ranges.
func Frequency(completedAts []time.Time) []FrequencyBucket {
	buckets := emptyBuckets()
	for _, completedAt := range completedAts {
		buckets[bucketIndex(completedAt.Day())].Count++
	}
	return buckets
}

// FrequencyByMonth produces one bucket set per calendar month observed
// among the completions, keyed "YYYY-MM".
func FrequencyByMonth(completedAts []time.Time) map[string][]FrequencyBucket {
	byMonth := make(map[string][]FrequencyBucket)
	for _, completedAt := range completedAts {
		monthKey := completedAt.Format("2006-01")
		buckets, ok := byMonth[monthKey]
		if !ok {
			buckets = emptyBuckets()
		}
		buckets[bucketIndex(completedAt.Day())].Count++
		byMonth[monthKey] = buckets
	}
	return byMonth
}
