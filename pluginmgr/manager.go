// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pluginmgr 程序插件的注册与初始化
package pluginmgr

import (
	"sort"
	"sync"

	"github.com/spf13/cobra"
)

var (
	pluginItems = make(map[string]Plugin)
	mu          sync.Mutex
	once        = &sync.Once{}
)

// InitExec 注册所有插件的执行器, 只执行一次
func InitExec() {
	once.Do(func() {
		for _, item := range sortedItems() {
			item.InitExec()
		}
	})
}

// HasExec 是否有插件提供该执行器
func HasExec(name string) bool {
	mu.Lock()
	defer mu.Unlock()
	for _, item := range pluginItems {
		if item.GetExecutorName() == name {
			return true
		}
	}
	return false
}

// Register 注册插件, 重名 panic
func Register(p Plugin) {
	if p == nil {
		panic("plugin param is nil")
	}
	packageName := p.GetName()
	if len(packageName) == 0 {
		panic("plugin package name is empty")
	}
	mu.Lock()
	defer mu.Unlock()
	if _, ok := pluginItems[packageName]; ok {
		panic("execute plugin item is existed. name = " + packageName)
	}
	pluginItems[packageName] = p
}

// AddCmd 把所有插件的命令加入 rootCmd, 按插件名排序
func AddCmd(rootCmd *cobra.Command) {
	for _, item := range sortedItems() {
		item.AddCmd(rootCmd)
	}
}

// Names 已注册的插件名
func Names() []string {
	var names []string
	for _, item := range sortedItems() {
		names = append(names, item.GetName())
	}
	return names
}

func sortedItems() []Plugin {
	mu.Lock()
	defer mu.Unlock()
	items := make([]Plugin, 0, len(pluginItems))
	for _, item := range pluginItems {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].GetName() < items[j].GetName() })
	return items
}
