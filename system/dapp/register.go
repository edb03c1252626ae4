// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dapp

import (
	"sort"
	"sync"

	"github.com/33cn/roulette/common/address"
	log "github.com/33cn/roulette/common/log"
	"github.com/33cn/roulette/types"
)

var elog = log.New("module", "execs")

// DriverCreate defines a drivercreate function
type DriverCreate func() Driver

var (
	mu                 sync.RWMutex
	registedExecDriver = make(map[string]DriverCreate)
	execDrivers        = make(map[string]string)
)

// Register 注册驱动, 同时按程序地址索引
func Register(name string, create DriverCreate) {
	if create == nil {
		panic("Execute: Register driver is nil")
	}
	mu.Lock()
	defer mu.Unlock()
	if _, dup := registedExecDriver[name]; dup {
		panic("Execute: Register called twice for driver " + name)
	}
	registedExecDriver[name] = create
	execDrivers[ExecAddress(name)] = name
}

// LoadDriver 按名称创建驱动
func LoadDriver(name string) (Driver, error) {
	mu.RLock()
	c, ok := registedExecDriver[name]
	mu.RUnlock()
	if !ok {
		elog.Debug("LoadDriver", "driver", name)
		return nil, types.ErrUnknownProgram
	}
	return c(), nil
}

// LoadDriverByAddress 按程序地址创建驱动
func LoadDriverByAddress(addr string) (Driver, error) {
	mu.RLock()
	name, ok := execDrivers[addr]
	mu.RUnlock()
	if !ok {
		return nil, types.ErrUnknownProgram
	}
	return LoadDriver(name)
}

// IsDriverAddress 是否是已注册程序的地址
func IsDriverAddress(addr string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := execDrivers[addr]
	return ok
}

// ExecAddress return exec address
func ExecAddress(name string) string {
	return address.ExecAddress(name)
}

// DriverNames 已注册的驱动名称
func DriverNames() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registedExecDriver))
	for name := range registedExecDriver {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
