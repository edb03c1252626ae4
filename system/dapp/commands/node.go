// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package commands 各个程序的命令行共用的部分: 本地账本, keystore, 输出
package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/33cn/roulette/common/crypto"
	dbm "github.com/33cn/roulette/common/db"
	log "github.com/33cn/roulette/common/log"
	"github.com/33cn/roulette/metrics"
	"github.com/33cn/roulette/types"
	"github.com/33cn/roulette/util"
	"github.com/33cn/roulette/util/testnode"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var clog = log.New("module", "cli")

const (
	keystoreFile = "keystore.json"
	metricsFile  = "metrics.json"
)

// Node 命令行打开的本地账本
type Node struct {
	*testnode.RouletteMock
	Keys    *Keystore
	datadir string
}

// AddNodeFlags 根命令的公共参数
func AddNodeFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("conf", "", "config file, default goleveldb under datadir")
	cmd.PersistentFlags().String("datadir", "~/.roulette", "data dir of ledger and keystore")
}

// OpenNode 按 --conf 和 --datadir 打开本地账本
func OpenNode(cmd *cobra.Command) (*Node, error) {
	confPath, _ := cmd.Flags().GetString("conf")
	datadir, _ := cmd.Flags().GetString("datadir")
	var cfg *types.Config
	if confPath != "" {
		var err error
		cfg, err = types.InitCfg(confPath)
		if err != nil {
			return nil, err
		}
	} else {
		cfg = types.DefaultConfig()
		cfg.Store.Driver = dbm.GoLevelDBBackendStr
	}
	datadir = util.ResetDatadir(cfg, datadir)
	if cfg.Log.LogFile != "" {
		log.SetFileLog(cfg.Log)
	}
	keys, err := LoadKeystore(filepath.Join(datadir, keystoreFile))
	if err != nil {
		return nil, err
	}
	mock, err := testnode.NewWithConfig(cfg)
	if err != nil {
		return nil, err
	}
	return &Node{RouletteMock: mock, Keys: keys, datadir: datadir}, nil
}

// Close 累加本次进程的统计, 然后关闭数据库
func (n *Node) Close() {
	if err := n.saveMetrics(); err != nil {
		clog.Error("Close", "err", err)
	}
	n.RouletteMock.Close()
}

// Signer keystore 中的私钥
func (n *Node) Signer(name string) (crypto.PrivKey, error) {
	return n.Keys.Get(name)
}

// Signers 多个私钥
func (n *Node) Signers(names ...string) ([]crypto.PrivKey, error) {
	out := make([]crypto.PrivKey, 0, len(names))
	for _, name := range names {
		priv, err := n.Signer(name)
		if err != nil {
			return nil, err
		}
		out = append(out, priv)
	}
	return out, nil
}

// Addr keystore 中的名字换成地址, 其他的原样返回
func (n *Node) Addr(name string) string {
	return n.Keys.Resolve(name)
}

// LoadMetrics 之前所有命令累计的统计
func (n *Node) LoadMetrics() (map[string]int64, error) {
	out := make(map[string]int64)
	path := filepath.Join(n.datadir, metricsFile)
	if !util.CheckFileIsExist(path) {
		return out, nil
	}
	data, err := util.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, errors.Wrap(err, "decode metrics")
	}
	return out, nil
}

func (n *Node) saveMetrics() error {
	total, err := n.LoadMetrics()
	if err != nil {
		return err
	}
	changed := false
	for name, v := range metrics.Snapshot() {
		if count, ok := v.(int64); ok && count != 0 {
			total[name] += count
			changed = true
		}
	}
	if !changed {
		return nil
	}
	data, err := json.MarshalIndent(total, "", "  ")
	if err != nil {
		return err
	}
	return util.WriteFile(filepath.Join(n.datadir, metricsFile), data, 0644)
}

// Run 打开账本执行 fn, 错误输出到 stderr
func Run(fn func(cmd *cobra.Command, node *Node, args []string) error) func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		node, err := OpenNode(cmd)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		defer node.Close()
		if err := fn(cmd, node, args); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

// SendTx 签名执行并输出程序日志
func SendTx(node *Node, signers []string, ixs ...*types.Instruction) error {
	privs, err := node.Signers(signers...)
	if err != nil {
		return err
	}
	receipt, err := node.SendTx(privs, ixs...)
	if receipt != nil {
		for _, line := range receipt.ProgramLogs() {
			fmt.Println("Program log:", line)
		}
		if family, code, ok := receipt.ErrorCode(); ok {
			fmt.Printf("Program error: family %d, code %d\n", family, code)
		}
	}
	if err != nil {
		return errors.Wrapf(err, "height %d", node.Height())
	}
	fmt.Println("ok, height", node.Height())
	return nil
}

// PrintJSON 缩进输出
func PrintJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	fmt.Println(string(data))
}
