package service

import (
	"errors"
	"strconv"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
)

// ErrInvalidICS ICS 日历内容无法解析或不含任何可用事件
var ErrInvalidICS = errors.New("ICS 日历内容不合法")

// icsTemplateSpec 从单个日历事件提炼出的模板参数
type icsTemplateSpec struct {
	Weekday       int
	StartHour     int
	DurationHours int
	TargetCount   int
}

// parseShiftTemplatesICS 把 ICS 日历事件解析为周期班次模板参数。
// 事件的 DTSTART 决定星期与起始小时，DTEND-DTSTART 决定时长（不足一小时向上取整），
// SUMMARY 末尾的 "xN" 解析为配额，缺省用 defaultTarget
func parseShiftTemplatesICS(raw string, defaultTarget int) ([]icsTemplateSpec, error) {
	cal, err := ics.ParseCalendar(strings.NewReader(raw))
	if err != nil {
		return nil, ErrInvalidICS
	}

	var specs []icsTemplateSpec
	for _, ev := range cal.Events() {
		start, err := ev.GetStartAt()
		if err != nil {
			continue
		}
		end, err := ev.GetEndAt()
		if err != nil || !end.After(start) {
			continue
		}

		duration := end.Sub(start)
		hours := int(duration.Hours())
		if duration%time.Hour != 0 {
			hours++
		}
		if hours < 1 {
			hours = 1
		}
		if hours > 24 {
			hours = 24
		}

		specs = append(specs, icsTemplateSpec{
			Weekday:       int(start.Weekday()),
			StartHour:     start.Hour(),
			DurationHours: hours,
			TargetCount:   parseTargetFromSummary(summaryOf(ev), defaultTarget),
		})
	}

	if len(specs) == 0 {
		return nil, ErrInvalidICS
	}
	return specs, nil
}

func summaryOf(ev *ics.VEvent) string {
	prop := ev.GetProperty(ics.ComponentPropertySummary)
	if prop == nil {
		return ""
	}
	return prop.Value
}

// parseTargetFromSummary 取 SUMMARY 末段的 "xN" 作为配额，如 "审核班 x8" → 8
func parseTargetFromSummary(summary string, defaultTarget int) int {
	fields := strings.Fields(summary)
	if len(fields) == 0 {
		return defaultTarget
	}
	last := fields[len(fields)-1]
	if len(last) < 2 || (last[0] != 'x' && last[0] != 'X') {
		return defaultTarget
	}
	n, err := strconv.Atoi(last[1:])
	if err != nil || n < 1 {
		return defaultTarget
	}
	return n
}

