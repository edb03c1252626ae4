// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package roulette

import (
	"github.com/33cn/roulette/pluginmgr"
	"github.com/33cn/roulette/system/dapp/roulette/commands"
	"github.com/33cn/roulette/system/dapp/roulette/executor"
	rty "github.com/33cn/roulette/system/dapp/roulette/types"
)

func init() {
	pluginmgr.Register(&pluginmgr.PluginBase{
		Name:     rty.RouletteX,
		ExecName: executor.GetName(),
		Exec:     executor.Init,
		Cmd:      commands.RouletteCmd,
	})
}
