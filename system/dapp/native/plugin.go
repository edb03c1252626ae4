// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package native

import (
	"github.com/33cn/roulette/pluginmgr"
	"github.com/33cn/roulette/system/dapp/native/commands"
	"github.com/33cn/roulette/system/dapp/native/executor"
	nty "github.com/33cn/roulette/system/dapp/native/types"
)

func init() {
	pluginmgr.Register(&pluginmgr.PluginBase{
		Name:     nty.NativeX,
		ExecName: executor.GetName(),
		Exec:     executor.Init,
		Cmd:      commands.NativeCmd,
	})
}
