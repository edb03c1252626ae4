// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package util

import (
	"math"
	"math/big"

	"github.com/33cn/roulette/types"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// FormatAmount 把最小单位的数量按 decimals 位小数显示
func FormatAmount(amount uint64, decimals uint8) string {
	d := decimal.NewFromBigInt(new(big.Int).SetUint64(amount), -int32(decimals))
	return d.StringFixed(int32(decimals))
}

// ParseAmount FormatAmount 的逆操作, 小数位超过 decimals 或者超出 uint64 时报错
func ParseAmount(s string, decimals uint8) (uint64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, errors.Wrapf(types.ErrInvalidArgument, "parse amount %s", s)
	}
	if d.Sign() < 0 {
		return 0, errors.Wrapf(types.ErrInvalidArgument, "negative amount %s", s)
	}
	units := d.Shift(int32(decimals))
	if !units.Equal(units.Truncate(0)) {
		return 0, errors.Wrapf(types.ErrInvalidArgument, "too many decimals %s", s)
	}
	if units.GreaterThan(decimal.NewFromBigInt(new(big.Int).SetUint64(math.MaxUint64), 0)) {
		return 0, errors.Wrapf(types.ErrNumericalOverflow, "amount %s", s)
	}
	return units.BigInt().Uint64(), nil
}
