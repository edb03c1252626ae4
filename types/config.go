// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"os"

	tml "github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config 配置文件
type Config struct {
	Title    string    `toml:"Title"`
	Log      *Log      `toml:"log"`
	Store    *Store    `toml:"store"`
	Exec     *Exec     `toml:"exec"`
	Roulette *Roulette `toml:"roulette"`
	Oracle   *Oracle   `toml:"oracle"`
}

// Log 日志配置
type Log struct {
	Loglevel        string `toml:"loglevel"`
	LogConsoleLevel string `toml:"logConsoleLevel"`
	LogFile         string `toml:"logFile"`
	MaxFileSize     uint32 `toml:"maxFileSize"`
	MaxBackups      uint32 `toml:"maxBackups"`
	MaxAge          uint32 `toml:"maxAge"`
	LocalTime       bool   `toml:"localTime"`
	Compress        bool   `toml:"compress"`
	CallerFile      bool   `toml:"callerFile"`
	CallerFunction  bool   `toml:"callerFunction"`
}

// Store 存储配置
type Store struct {
	Driver  string `toml:"driver"`
	DbPath  string `toml:"dbPath"`
	DbCache int32  `toml:"dbCache"`
}

// Exec 执行器配置
type Exec struct {
	LamportsPerByte uint64 `toml:"lamportsPerByte"`
	EnableMetrics   bool   `toml:"enableMetrics"`
}

// Roulette 轮盘程序配置
type Roulette struct {
	// StrictBundleGuard 为 true 时 Spin 必须是交易中唯一的指令
	StrictBundleGuard bool `toml:"strictBundleGuard"`
}

// Oracle 随机数程序配置
type Oracle struct {
	MaxFeeds int `toml:"maxFeeds"`
}

// 默认值
const (
	DefaultLamportsPerByte = 10
	DefaultMaxFeeds        = 8
)

// DefaultConfig 内存数据库, 用于测试
func DefaultConfig() *Config {
	cfg := &Config{Title: "local", Exec: &Exec{EnableMetrics: true}}
	cfg.fillDefault()
	return cfg
}

func (cfg *Config) fillDefault() {
	if cfg.Title == "" {
		cfg.Title = "local"
	}
	if cfg.Log == nil {
		cfg.Log = &Log{}
	}
	if cfg.Store == nil {
		cfg.Store = &Store{}
	}
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = "memdb"
	}
	if cfg.Store.DbPath == "" {
		cfg.Store.DbPath = "datadir"
	}
	if cfg.Store.DbCache == 0 {
		cfg.Store.DbCache = 64
	}
	if cfg.Exec == nil {
		cfg.Exec = &Exec{}
	}
	if cfg.Exec.LamportsPerByte == 0 {
		cfg.Exec.LamportsPerByte = DefaultLamportsPerByte
	}
	if cfg.Roulette == nil {
		cfg.Roulette = &Roulette{}
	}
	if cfg.Oracle == nil {
		cfg.Oracle = &Oracle{}
	}
	if cfg.Oracle.MaxFeeds <= 0 {
		cfg.Oracle.MaxFeeds = DefaultMaxFeeds
	}
}

// InitCfg 读取配置文件
func InitCfg(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	return InitCfgString(string(data))
}

// InitCfgString 解析配置并填充默认值
func InitCfgString(cfgstring string) (*Config, error) {
	var cfg Config
	if _, err := tml.Decode(cfgstring, &cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	cfg.fillDefault()
	return &cfg, nil
}
