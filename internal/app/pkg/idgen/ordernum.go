package idgen

import (
	"fmt"
	"sync"
	"time"
)

// OrderNumberGenerator 订单号生成器
// 订单号格式: TT + 时间戳(10位) + 机器ID(2位) + 序列号(3位)
// 时间分量单调递增，并发下依赖序列号去重，数据库唯一索引兜底
type OrderNumberGenerator struct {
	mu        sync.Mutex
	epoch     int64 // 起始时间戳 (2024-01-01 00:00:00)
	machineID int64 // 机器ID (0-99)
	sequence  int64 // 序列号 (0-999)
	lastTime  int64 // 上次生成的时间戳
}

const (
	maxMachineID = 99  // 最大机器ID
	maxSequence  = 999 // 最大序列号，每秒支持1000个订单号
)

// NewOrderNumberGenerator 创建订单号生成器
// machineID: 机器ID，范围 0-99
func NewOrderNumberGenerator(machineID int64) *OrderNumberGenerator {
	if machineID < 0 || machineID > maxMachineID {
		machineID = 0
	}

	epoch := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Unix()

	return &OrderNumberGenerator{
		epoch:     epoch,
		machineID: machineID,
	}
}

// Next 生成下一个订单号
func (g *OrderNumberGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now().Unix()

	if now == g.lastTime {
		// 同一秒内，序列号递增
		g.sequence = (g.sequence + 1) % (maxSequence + 1)
		if g.sequence == 0 {
			// 序列号用尽，等待下一秒
			for now <= g.lastTime {
				now = time.Now().Unix()
			}
		}
	} else {
		g.sequence = 0
	}

	g.lastTime = now

	timestamp := now - g.epoch

	// 组合: 时间戳(10位) * 100000 + 机器ID(2位) * 1000 + 序列号(3位)
	id := timestamp*100000 + g.machineID*1000 + g.sequence

	return fmt.Sprintf("TT%015d", id)
}
