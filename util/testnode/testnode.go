// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package testnode 提供一个进程内的账本节点, 用于单元测试, 集成测试以及命令行
package testnode

import (
	"context"
	"time"

	"github.com/33cn/roulette/common/crypto"
	"github.com/33cn/roulette/common/crypto/secp256k1"
	dbm "github.com/33cn/roulette/common/db"
	log "github.com/33cn/roulette/common/log"
	"github.com/33cn/roulette/executor"
	nty "github.com/33cn/roulette/system/dapp/native/types"
	oty "github.com/33cn/roulette/system/dapp/oracle/types"
	tokenty "github.com/33cn/roulette/system/dapp/token/types"
	"github.com/33cn/roulette/types"
	"github.com/33cn/roulette/util"
	"github.com/pkg/errors"
)

var nodelog = log.New("module", "testnode")

// DefaultFunds NewFundedKey 默认空投的 lamports
const DefaultFunds = 1000000000

// RouletteMock 进程内节点: 一个数据库加一个执行器, 步数由调用方推进
type RouletteMock struct {
	cfg  *types.Config
	db   dbm.DB
	exec *executor.Executor
}

// GetDefaultConfig 内存数据库的默认配置
func GetDefaultConfig() *types.Config {
	return types.DefaultConfig()
}

// New cfgpath 为空时使用默认配置
func New(cfgpath string) *RouletteMock {
	cfg := GetDefaultConfig()
	if cfgpath != "" {
		var err error
		cfg, err = types.InitCfg(cfgpath)
		if err != nil {
			panic(err)
		}
	}
	mock, err := NewWithConfig(cfg)
	if err != nil {
		panic(err)
	}
	return mock
}

// NewWithConfig 按配置打开数据库和执行器
func NewWithConfig(cfg *types.Config) (*RouletteMock, error) {
	db, err := dbm.NewDB("ledger", cfg.Store.Driver, cfg.Store.DbPath, int(cfg.Store.DbCache))
	if err != nil {
		return nil, errors.Wrap(err, "open db")
	}
	exec, err := executor.New(cfg, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	nodelog.Debug("NewWithConfig", "driver", cfg.Store.Driver, "height", exec.Height())
	return &RouletteMock{cfg: cfg, db: db, exec: exec}, nil
}

// GetCfg 配置
func (mock *RouletteMock) GetCfg() *types.Config {
	return mock.cfg
}

// GetExec 执行器
func (mock *RouletteMock) GetExec() *executor.Executor {
	return mock.exec
}

// GetDB 数据库
func (mock *RouletteMock) GetDB() dbm.DB {
	return mock.db
}

// Close 关闭数据库
func (mock *RouletteMock) Close() {
	mock.db.Close()
}

// Height 当前步数
func (mock *RouletteMock) Height() int64 {
	return mock.exec.Height()
}

// Advance 步数增加 n, 时间每步增加一秒
func (mock *RouletteMock) Advance(n int64) error {
	blocktime := mock.exec.BlockTime()
	if blocktime == 0 {
		blocktime = time.Now().Unix()
	}
	return mock.exec.SetEnv(mock.exec.Height()+n, blocktime+n)
}

// Rent 当前租金参数
func (mock *RouletteMock) Rent() *types.Rent {
	return &types.Rent{LamportsPerByte: mock.cfg.Exec.LamportsPerByte}
}

// Genaddress 生成新的私钥, 不空投
func (mock *RouletteMock) Genaddress() (string, crypto.PrivKey) {
	return util.Genaddress()
}

// Airdrop 给地址增加 lamports
func (mock *RouletteMock) Airdrop(addr string, lamports uint64) error {
	_, err := mock.exec.Airdrop(addr, lamports)
	return err
}

// NewFundedKey 生成新的私钥并空投 DefaultFunds
func (mock *RouletteMock) NewFundedKey() (string, crypto.PrivKey, error) {
	addr, priv := mock.Genaddress()
	if err := mock.Airdrop(addr, DefaultFunds); err != nil {
		return "", nil, err
	}
	return addr, priv, nil
}

// SendTx 用 signers 签名并执行
func (mock *RouletteMock) SendTx(signers []crypto.PrivKey, ixs ...*types.Instruction) (*types.Receipt, error) {
	tx := types.NewTransaction(ixs...)
	for _, priv := range signers {
		tx.Sign(priv)
	}
	return mock.exec.ExecTx(context.Background(), tx)
}

// Account 已提交的账户
func (mock *RouletteMock) Account(addr string) *types.Account {
	return mock.exec.LoadAccount(addr)
}

// Query 只读查询
func (mock *RouletteMock) Query(name string, funcName string, params []byte) (interface{}, error) {
	return mock.exec.Query(name, funcName, params)
}

// Addr 私钥对应的地址
func Addr(priv crypto.PrivKey) string {
	return secp256k1.PubKeyToAddress(priv.PubKey())
}

// CreateMint 新建一种资产, authority 支付租金并拥有增发权限
func (mock *RouletteMock) CreateMint(authority crypto.PrivKey, decimals uint8) (string, error) {
	mint, mintKey := mock.Genaddress()
	payer := Addr(authority)
	lamports := mock.Rent().MinimumBalance(tokenty.MintLen)
	_, err := mock.SendTx([]crypto.PrivKey{authority, mintKey},
		nty.NewCreateAccount(payer, mint, lamports, tokenty.MintLen, types.TokenProgramID),
		tokenty.NewInitializeMint(mint, payer, decimals))
	if err != nil {
		return "", errors.Wrap(err, "create mint")
	}
	return mint, nil
}

// CreateATA 创建 owner 持有 mint 的关联账户
func (mock *RouletteMock) CreateATA(payer crypto.PrivKey, owner, mint string) (string, error) {
	_, err := mock.SendTx([]crypto.PrivKey{payer}, tokenty.NewInitializeAssociatedAccount(Addr(payer), owner, mint))
	if err != nil {
		return "", errors.Wrap(err, "create associated account")
	}
	return tokenty.AssociatedAddress(owner, mint), nil
}

// MintTo 增发到 to
func (mock *RouletteMock) MintTo(authority crypto.PrivKey, mint, to string, amount uint64) error {
	_, err := mock.SendTx([]crypto.PrivKey{authority}, tokenty.NewMintTo(mint, to, Addr(authority), amount))
	return errors.Wrap(err, "mint to")
}

// TokenTransfer owner 从自己的 source 转出
func (mock *RouletteMock) TokenTransfer(owner crypto.PrivKey, source, destination string, amount uint64) error {
	_, err := mock.SendTx([]crypto.PrivKey{owner}, tokenty.NewTransfer(source, destination, Addr(owner), amount))
	return errors.Wrap(err, "token transfer")
}

// TokenAccount 读取 token 持有账户
func (mock *RouletteMock) TokenAccount(addr string) (*tokenty.Account, error) {
	acc := mock.Account(addr)
	if acc.Owner != types.TokenProgramID {
		return nil, types.ErrIncorrectOwner
	}
	return tokenty.DecodeAccount(acc.Data)
}

// TokenBalance token 持有账户的余额
func (mock *RouletteMock) TokenBalance(addr string) (uint64, error) {
	acc, err := mock.TokenAccount(addr)
	if err != nil {
		return 0, err
	}
	return acc.Amount, nil
}

// CreateFeed 新建一个随机源, authority 支付租金并负责更新
func (mock *RouletteMock) CreateFeed(authority crypto.PrivKey) (string, error) {
	feed, feedKey := mock.Genaddress()
	payer := Addr(authority)
	lamports := mock.Rent().MinimumBalance(oty.FeedLen)
	_, err := mock.SendTx([]crypto.PrivKey{authority, feedKey},
		nty.NewCreateAccount(payer, feed, lamports, oty.FeedLen, types.OracleProgramID),
		oty.NewCreateFeed(feed, payer))
	if err != nil {
		return "", errors.Wrap(err, "create feed")
	}
	return feed, nil
}

// UpdateFeed 在当前步数写入新的随机值
func (mock *RouletteMock) UpdateFeed(authority crypto.PrivKey, feed string, value uint64) error {
	_, err := mock.SendTx([]crypto.PrivKey{authority}, oty.NewUpdateFeed(feed, Addr(authority), value))
	return errors.Wrap(err, "update feed")
}
