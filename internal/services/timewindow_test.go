package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeRangeUTC_OffsetWindow(t *testing.T) {
	t.Parallel()

	q := TimeRangeQuery{
		Date:      "2024-01-10",
		TzOffset:  3,
		StartTime: "09:00",
		EndTime:   "18:00",
	}
	start, end, err := TimeRangeUTC(q, time.Now())
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 1, 10, 6, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 1, 10, 15, 0, 0, 0, time.UTC), end)
}

func TestTimeRangeUTC_Defaults(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 5, 13, 45, 0, 0, time.UTC)
	start, end, err := TimeRangeUTC(TimeRangeQuery{}, now)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), start, "дата по умолчанию - текущая по UTC")
	assert.Equal(t, time.Date(2024, 3, 5, 23, 59, 0, 0, time.UTC), end)
}

func TestTimeRangeUTC_NegativeOffset(t *testing.T) {
	t.Parallel()

	q := TimeRangeQuery{Date: "2024-01-10", TzOffset: -5}
	start, end, err := TimeRangeUTC(q, time.Now())
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 1, 10, 5, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 1, 11, 4, 59, 0, 0, time.UTC), end)
}

func TestTimeRangeUTC_BadInput(t *testing.T) {
	t.Parallel()

	_, _, err := TimeRangeUTC(TimeRangeQuery{Date: "10.01.2024"}, time.Now())
	assert.Error(t, err)

	_, _, err = TimeRangeUTC(TimeRangeQuery{StartTime: "9am"}, time.Now())
	assert.Error(t, err)
}
