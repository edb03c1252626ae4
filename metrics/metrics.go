// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metrics 执行器以及游戏程序的计数
package metrics

import (
	"sync/atomic"
	"time"

	log "github.com/33cn/roulette/common/log"
	go_metrics "github.com/rcrowley/go-metrics"
)

var mlog = log.New("module", "metrics")

// 指标名称
const (
	TxOk     = "executor/tx/ok"
	TxFailed = "executor/tx/failed"
	TxTime   = "executor/tx/time"

	RouletteWagered  = "roulette/wagered"
	RoulettePaid     = "roulette/paid"
	RouletteRefunded = "roulette/refunded"
	RouletteSpins    = "roulette/spins"
)

// Registry 所有指标都注册在这里
var Registry = go_metrics.NewRegistry()

var enabled int32

// Enable 打开或者关闭统计, 关闭时所有更新都被忽略
func Enable(on bool) {
	if on {
		atomic.StoreInt32(&enabled, 1)
	} else {
		atomic.StoreInt32(&enabled, 0)
	}
	mlog.Debug("Enable", "on", on)
}

// Enabled 是否打开
func Enabled() bool {
	return atomic.LoadInt32(&enabled) == 1
}

// Mark meter 计数
func Mark(name string, n int64) {
	if !Enabled() {
		return
	}
	go_metrics.GetOrRegisterMeter(name, Registry).Mark(n)
}

// Inc counter 增加
func Inc(name string, n int64) {
	if !Enabled() {
		return
	}
	go_metrics.GetOrRegisterCounter(name, Registry).Inc(n)
}

// UpdateSince 记录从 start 开始的耗时
func UpdateSince(name string, start time.Time) {
	if !Enabled() {
		return
	}
	go_metrics.GetOrRegisterTimer(name, Registry).UpdateSince(start)
}

// Snapshot 当前值, counter 和 meter 返回计数, timer 返回次数和平均耗时
func Snapshot() map[string]interface{} {
	out := make(map[string]interface{})
	Registry.Each(func(name string, i interface{}) {
		switch m := i.(type) {
		case go_metrics.Counter:
			out[name] = m.Count()
		case go_metrics.Meter:
			out[name] = m.Snapshot().Count()
		case go_metrics.Timer:
			t := m.Snapshot()
			out[name] = map[string]interface{}{
				"count": t.Count(),
				"mean":  time.Duration(int64(t.Mean())).String(),
			}
		}
	})
	return out
}

// Reset 清空所有指标, 测试使用
func Reset() {
	Registry.UnregisterAll()
}
