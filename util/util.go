// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package util 测试和命令行共用的工具函数
package util

import (
	"os"
	"os/user"
	"path/filepath"

	"github.com/33cn/roulette/common/crypto"
	"github.com/33cn/roulette/common/crypto/secp256k1"
	"github.com/33cn/roulette/common/db"
	log "github.com/33cn/roulette/common/log"
	"github.com/33cn/roulette/types"
)

var ulog = log.New("module", "util")

// Genaddress 生成一个新的私钥以及对应的地址
func Genaddress() (string, crypto.PrivKey) {
	priv, err := secp256k1.Driver{}.GenKey()
	if err != nil {
		panic(err)
	}
	return secp256k1.PubKeyToAddress(priv.PubKey()), priv
}

// ResetDatadir 把配置中的相对路径放到 datadir 下, 支持 ~/ 和 $TEMP/ 前缀
func ResetDatadir(cfg *types.Config, datadir string) string {
	if len(datadir) >= 2 && datadir[:2] == "~/" {
		usr, err := user.Current()
		if err != nil {
			panic(err)
		}
		datadir = filepath.Join(usr.HomeDir, datadir[2:])
	}
	if len(datadir) >= 6 && datadir[:6] == "$TEMP/" {
		dir, err := os.MkdirTemp("", "roulettedatadir-")
		if err != nil {
			panic(err)
		}
		datadir = filepath.Join(dir, datadir[6:])
	}
	ulog.Info("current user data dir is ", "dir", datadir)
	if cfg.Log.LogFile != "" && !filepath.IsAbs(cfg.Log.LogFile) {
		cfg.Log.LogFile = filepath.Join(datadir, cfg.Log.LogFile)
	}
	if !filepath.IsAbs(cfg.Store.DbPath) {
		cfg.Store.DbPath = filepath.Join(datadir, cfg.Store.DbPath)
	}
	return datadir
}

// CreateTestDB 创建一个测试数据库
func CreateTestDB() (string, db.DB) {
	dir, err := os.MkdirTemp("", "goleveldb")
	if err != nil {
		panic(err)
	}
	leveldb, err := db.NewGoLevelDB("goleveldb", dir, 128)
	if err != nil {
		panic(err)
	}
	return dir, leveldb
}

// CloseTestDB 关闭并删除测试数据库
func CloseTestDB(dir string, dbm db.DB) {
	dbm.Close()
	err := os.RemoveAll(dir)
	if err != nil {
		ulog.Info("RemoveAll ", "dir", dir, "err", err)
	}
}
