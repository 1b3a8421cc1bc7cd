package completions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dayOfMonth(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

func TestFrequency_BucketBoundaries(t *testing.T) {
	// every boundary day lands in exactly one bucket
	for day, wantLabel := range map[int]string{
		1:  "1-7",
		7:  "1-7",
		8:  "8-15",
		15: "8-15",
		16: "16-23",
		23: "16-23",
		24: "24-31",
		31: "24-31",
	} {
		buckets := Frequency([]time.Time{dayOfMonth(2025, time.January, day)})

		total := 0
		for _, bucket := range buckets {
			total += bucket.Count
			if bucket.Label == wantLabel {
				assert.Equal(t, 1, bucket.Count, "day %d should be in bucket %s", day, wantLabel)
			} else {
				assert.Zero(t, bucket.Count, "day %d leaked into bucket %s", day, bucket.Label)
			}
		}
		assert.Equal(t, 1, total)
	}
}

func TestFrequency_IgnoresMonth(t *testing.T) {
	// day-of-month only: the same day in different months shares a bucket
	buckets := Frequency([]time.Time{
		dayOfMonth(2025, time.January, 10),
		dayOfMonth(2025, time.June, 10),
		dayOfMonth(2024, time.December, 10),
	})

	require.Len(t, buckets, 4)
	assert.Equal(t, FrequencyBucket{Label: "1-7", Count: 0}, buckets[0])
	assert.Equal(t, FrequencyBucket{Label: "8-15", Count: 3}, buckets[1])
	assert.Equal(t, FrequencyBucket{Label: "16-23", Count: 0}, buckets[2])
	assert.Equal(t, FrequencyBucket{Label: "24-31", Count: 0}, buckets[3])
}

func TestFrequency_Empty(t *testing.T) {
	buckets := Frequency(nil)
	require.Len(t, buckets, 4)
	for i, label := range []string{"1-7", "8-15", "16-23", "24-31"} {
		assert.Equal(t, label, buckets[i].Label)
		assert.Zero(t, buckets[i].Count)
	}
}

func TestFrequencyByMonth(t *testing.T) {
	byMonth := FrequencyByMonth([]time.Time{
		dayOfMonth(2025, time.January, 3),
		dayOfMonth(2025, time.January, 20),
		dayOfMonth(2025, time.January, 21),
		dayOfMonth(2025, time.February, 28),
	})

	require.Len(t, byMonth, 2)

	january := byMonth["2025-01"]
	require.Len(t, january, 4)
	assert.Equal(t, 1, january[0].Count) // 1-7
	assert.Equal(t, 0, january[1].Count) // 8-15
	assert.Equal(t, 2, january[2].Count) // 16-23
	assert.Equal(t, 0, january[3].Count) // 24-31

	february := byMonth["2025-02"]
	require.Len(t, february, 4)
	assert.Equal(t, 1, february[3].Count)
}

func TestFrequencyByMonth_Empty(t *testing.T) {
	assert.Empty(t, FrequencyByMonth(nil))
}
