// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package system 注册内置程序
package system

import (
	_ "github.com/33cn/roulette/system/dapp/native"   //register native
	_ "github.com/33cn/roulette/system/dapp/oracle"   //register oracle
	_ "github.com/33cn/roulette/system/dapp/roulette" //register roulette
	_ "github.com/33cn/roulette/system/dapp/token"    //register token
)
