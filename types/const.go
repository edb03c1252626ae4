// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import "github.com/33cn/roulette/common/address"

// 内置程序名称
const (
	NativeX   = "native"
	TokenX    = "token"
	OracleX   = "oracle"
	RouletteX = "roulette"
)

// 程序地址以及 sysvar 地址
var (
	NativeProgramID   = address.ExecAddress(NativeX)
	TokenProgramID    = address.ExecAddress(TokenX)
	OracleProgramID   = address.ExecAddress(OracleX)
	RouletteProgramID = address.ExecAddress(RouletteX)

	SysvarClockID        = address.ExecAddress("sysvar.clock")
	SysvarRentID         = address.ExecAddress("sysvar.rent")
	SysvarInstructionsID = address.ExecAddress("sysvar.instructions")
)

// 数据库 key 前缀
var (
	// KeyHeight 当前步数和时间
	KeyHeight = []byte("ledger-height")
)

// MaxAccountDataSize 单个账户数据上限
const MaxAccountDataSize = 10 * 1024 * 1024

// MaxCallDepth 跨程序调用的最大深度
const MaxCallDepth = 4

// version 发布版本, 编译时可以用 -ldflags "-X" 覆盖
var version = "1.0.0"

// GetVersion 当前版本
func GetVersion() string {
	return version
}
