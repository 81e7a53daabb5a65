package timeline

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duebook-dev/duebook/internal/model"
)

func TestGroupByMonth_WindowShape(t *testing.T) {
	now := date(2025, 6, 10)
	buckets := GroupByMonth(nil, now, 2, 3)
	require.Len(t, buckets, 6, "2 back + current + 3 ahead")

	assert.Equal(t, time.April, buckets[0].Month)
	assert.Equal(t, time.September, buckets[5].Month)
	for _, b := range buckets {
		assert.Empty(t, b.Occurrences, "%d-%02d", b.Year, b.Month)
	}

	assert.True(t, buckets[0].PastMonth)
	assert.True(t, buckets[1].PastMonth)
	assert.True(t, buckets[2].CurrentMonth)
	assert.False(t, buckets[2].PastMonth)
	assert.False(t, buckets[3].PastMonth)
}

func TestGroupByMonth_CrossesYearBoundary(t *testing.T) {
	buckets := GroupByMonth(nil, date(2025, 1, 15), 2, 1)
	require.Len(t, buckets, 4)
	assert.Equal(t, 2024, buckets[0].Year)
	assert.Equal(t, time.November, buckets[0].Month)
	assert.Equal(t, 2025, buckets[3].Year)
	assert.Equal(t, time.February, buckets[3].Month)
}

func TestGroupByMonth_AssignsAndSorts(t *testing.T) {
	now := date(2025, 6, 10)
	occs := []model.Occurrence{
		occ(date(2025, 6, 25), false, false),
		occ(date(2025, 6, 3), true, false),
		occ(date(2025, 7, 1), false, false),
		occ(date(2025, 6, 15), false, false),
	}
	buckets := GroupByMonth(occs, now, 0, 1)
	require.Len(t, buckets, 2)

	june := buckets[0]
	require.Len(t, june.Occurrences, 3)
	assert.Equal(t, date(2025, 6, 3), june.Occurrences[0].ScheduledDate)
	assert.Equal(t, date(2025, 6, 15), june.Occurrences[1].ScheduledDate)
	assert.Equal(t, date(2025, 6, 25), june.Occurrences[2].ScheduledDate)

	require.Len(t, buckets[1].Occurrences, 1)
}

func TestGroupByMonth_DropsOccurrencesOutsideWindow(t *testing.T) {
	now := date(2025, 6, 10)
	occs := []model.Occurrence{
		occ(date(2025, 3, 1), true, false),   // before window
		occ(date(2025, 12, 1), false, false), // after window
		occ(date(2025, 6, 20), false, false),
	}
	buckets := GroupByMonth(occs, now, 1, 1)
	total := 0
	for _, b := range buckets {
		total += len(b.Occurrences)
	}
	assert.Equal(t, 1, total)
}

func TestGroupByMonth_BucketsByScheduledDate(t *testing.T) {
	// A relocated occurrence lands in the bucket of its visible date,
	// not its original date.
	now := date(2025, 6, 10)
	moved := occ(date(2025, 7, 2), false, false)
	moved.OriginalDate = date(2025, 6, 30)

	buckets := GroupByMonth([]model.Occurrence{moved}, now, 0, 1)
	require.Len(t, buckets, 2)
	assert.Empty(t, buckets[0].Occurrences)
	require.Len(t, buckets[1].Occurrences, 1)
}

func TestWriteReadOccurrences_RoundTrip(t *testing.T) {
	now := date(2025, 6, 10)
	occs := []model.Occurrence{
		occ(date(2025, 6, 1), true, false),
		occ(date(2025, 7, 15), false, false),
	}
	occs[0].TransactionID = "txn-9"

	var buf bytes.Buffer
	require.NoError(t, WriteOccurrences(&buf, occs, now))
	assert.Contains(t, buf.String(), "overdue")

	got, err := ReadOccurrences(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "txn-9", got[0].TransactionID)
	assert.True(t, got[0].ScheduledDate.Equal(occs[0].ScheduledDate))
	assert.True(t, got[1].Amount.Equal(occs[1].Amount))
}

func TestReadOccurrences_Empty(t *testing.T) {
	got, err := ReadOccurrences(bytes.NewReader([]byte(Header + "\n")))
	require.NoError(t, err)
	assert.Nil(t, got)
}
