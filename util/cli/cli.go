// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cli roulette-cli 的根命令, 各个程序的子命令由插件注册
package cli

import (
	"fmt"
	"os"

	"github.com/33cn/roulette/common/log"
	"github.com/33cn/roulette/pluginmgr"
	"github.com/33cn/roulette/system/dapp/commands"
	"github.com/33cn/roulette/types"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "roulette-cli",
	Short: "roulette client tools over a local ledger",
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Get version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(types.GetVersion())
	},
}

func init() {
	rootCmd.AddCommand(
		commands.KeyCmd(),
		commands.ChainCmd(),
		commands.MetricsCmd(),
		versionCmd,
	)
}

// Run 执行命令行, 程序的子命令需要事先通过 system 包注册
func Run() {
	pluginmgr.AddCmd(rootCmd)
	commands.AddNodeFlags(rootCmd)
	log.SetLogLevel("error")
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
