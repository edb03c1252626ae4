// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"github.com/33cn/roulette/common/address"
	"github.com/33cn/roulette/types"
)

// Query_GetAccount params 是账户地址
func (n *Native) Query_GetAccount(params []byte) (interface{}, error) {
	addr := string(params)
	if err := address.CheckAddress(addr); err != nil {
		return nil, types.ErrInvalidArgument
	}
	return n.GetAccountDB().LoadAccount(addr), nil
}
