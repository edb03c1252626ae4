// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oracle

import (
	"github.com/33cn/roulette/pluginmgr"
	"github.com/33cn/roulette/system/dapp/oracle/commands"
	"github.com/33cn/roulette/system/dapp/oracle/executor"
	oty "github.com/33cn/roulette/system/dapp/oracle/types"
)

func init() {
	pluginmgr.Register(&pluginmgr.PluginBase{
		Name:     oty.OracleX,
		ExecName: executor.GetName(),
		Exec:     executor.Init,
		Cmd:      commands.OracleCmd,
	})
}
