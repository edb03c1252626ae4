// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package token

import (
	"github.com/33cn/roulette/pluginmgr"
	"github.com/33cn/roulette/system/dapp/token/commands"
	"github.com/33cn/roulette/system/dapp/token/executor"
	tokenty "github.com/33cn/roulette/system/dapp/token/types"
)

func init() {
	pluginmgr.Register(&pluginmgr.PluginBase{
		Name:     tokenty.TokenX,
		ExecName: executor.GetName(),
		Exec:     executor.Init,
		Cmd:      commands.TokenCmd,
	})
}
