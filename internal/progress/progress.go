// Package progress provides the calculation delay: a fixed number of timer
// ticks reported as a percentage, cancellable through the context.
package progress

import (
	"context"
	"strings"
	"time"
)

// Status labels shown next to the bar.
const (
	StatusImporting  = "正在导入中"
	StatusProcessing = "正在处理中"
	StatusDone       = "计算完成"
	StatusCapacity   = "算力不足"
	StatusError      = "错误"
)

// Delay completes after Steps ticks of Interval each.
type Delay struct {
	Steps    int
	Interval time.Duration
}

// Default is ten steps of 100ms.
var Default = Delay{Steps: 10, Interval: 100 * time.Millisecond}

// Run calls tick with the completed percentage after every step and
// returns nil once 100% is reached, or ctx.Err() if cancelled first.
// A Delay with no steps or no interval reports 100 and returns at once.
func (d Delay) Run(ctx context.Context, tick func(percent int)) error {
	if tick == nil {
		tick = func(int) {}
	}
	if d.Steps <= 0 || d.Interval <= 0 {
		tick(100)
		return nil
	}

	t := time.NewTicker(d.Interval)
	defer t.Stop()

	for step := 1; step <= d.Steps; step++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			tick(step * 100 / d.Steps)
		}
	}
	return nil
}

// Bar renders percent as a fixed-width text bar.
func Bar(percent, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * width / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}
