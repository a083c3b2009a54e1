// Package clock 允许在领域服务中注入时间
package clock

import "time"

// Clock 时间来源
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// NewSystem 返回基于 time.Now 的时钟
func NewSystem() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

type fixedClock struct {
	now time.Time
}

// NewFixed 返回固定时刻的时钟（用于测试）
func NewFixed(t time.Time) Clock {
	return fixedClock{now: t}
}

func (f fixedClock) Now() time.Time {
	return f.now
}
