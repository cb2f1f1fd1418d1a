// Package daterange 把列表过滤关键字换算成具体时间窗口。
package daterange

import "time"

const DefaultFilter = "week"

// Range 闭区间 [Start, End]，与仓储层 createdAt >= start AND createdAt <= end 对应
type Range struct {
	Start time.Time
	End   time.Time
}

// Resolve 支持 day / week / month，未识别的关键字回落到默认窗口而不是报错
func Resolve(filter string, now time.Time) Range {
	switch filter {
	case "day":
		start := startOfDay(now)
		return Range{Start: start, End: start.AddDate(0, 0, 1).Add(-time.Nanosecond)}
	case "month":
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return Range{Start: start, End: start.AddDate(0, 1, 0).Add(-time.Nanosecond)}
	default: // "week" 及未知关键字
		start := startOfWeek(now)
		return Range{Start: start, End: start.AddDate(0, 0, 7).Add(-time.Nanosecond)}
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// 周一作为一周的开始
func startOfWeek(t time.Time) time.Time {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	return startOfDay(t).AddDate(0, 0, -(wd - 1))
}
