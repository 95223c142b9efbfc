package services

import (
	"fmt"
	"time"
)

// TimeRangeQuery - параметры окна выборки из query string.
// tz_offset в часах; окно задается локальными временами и переводится в UTC.
type TimeRangeQuery struct {
	Date      string `form:"date"`
	TzOffset  int    `form:"tz_offset"`
	StartTime string `form:"start_time"`
	EndTime   string `form:"end_time"`
}

// TimeRangeUTC вычисляет включительное UTC-окно запроса:
// localStart = date+start_time, localEnd = date+end_time,
// utc = local - tz_offset часов. Значения по умолчанию: сегодняшняя дата
// по UTC, смещение 0, 00:00-23:59.
func TimeRangeUTC(q TimeRangeQuery, now time.Time) (time.Time, time.Time, error) {
	date := now.UTC().Truncate(24 * time.Hour)
	if q.Date != "" {
		parsed, err := time.Parse("2006-01-02", q.Date)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("bad date %q: %w", q.Date, err)
		}
		date = parsed
	}

	startClock, err := parseClock(q.StartTime, "00:00")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endClock, err := parseClock(q.EndTime, "23:59")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	offset := time.Duration(q.TzOffset) * time.Hour
	start := date.Add(startClock).Add(-offset)
	end := date.Add(endClock).Add(-offset)
	return start, end, nil
}

func parseClock(s, fallback string) (time.Duration, error) {
	if s == "" {
		s = fallback
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("bad time %q: %w", s, err)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}
