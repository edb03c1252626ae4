// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"fmt"
	"math/bits"

	"github.com/33cn/roulette/types"
)

var redNumbers = map[uint64]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true, 14: true, 16: true, 18: true,
	19: true, 21: true, 23: true, 25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

// IsRed 红色数字
func IsRed(outcome uint64) bool {
	return redNumbers[outcome]
}

// rule 一种押注的中奖条件和倍数
type rule struct {
	wins       func(outcome uint64) bool
	multiplier uint64
}

func pocket(p uint64) rule {
	return rule{wins: func(o uint64) bool { return o == p }, multiplier: 36}
}

func between(low, high uint64, multiplier uint64) rule {
	return rule{wins: func(o uint64) bool { return o > low && o < high }, multiplier: multiplier}
}

// 外围押注. 列和奇偶的边界条件保持和链上已有数据一致, 0 和 00 的处理并不对称
var outsideRules = map[Guess]rule{
	GuessRed:    {wins: func(o uint64) bool { return o != 0 && o != DoubleZeroPocket && IsRed(o) }, multiplier: 2},
	GuessBlack:  {wins: func(o uint64) bool { return o != 0 && o != DoubleZeroPocket && !IsRed(o) }, multiplier: 2},
	GuessEven:   {wins: func(o uint64) bool { return o != 0 && o%2 == 0 }, multiplier: 2},
	GuessOdd:    {wins: func(o uint64) bool { return o != DoubleZeroPocket && o%2 == 1 }, multiplier: 2},
	GuessCol1:   {wins: func(o uint64) bool { return o != DoubleZeroPocket && o%3 == 1 }, multiplier: 3},
	GuessCol2:   {wins: func(o uint64) bool { return o%3 == 2 }, multiplier: 3},
	GuessCol3:   {wins: func(o uint64) bool { return o != 0 && o%3 == 0 }, multiplier: 3},
	GuessDozen1: between(0, 13, 3),
	GuessDozen2: between(12, 25, 3),
	GuessDozen3: between(24, 37, 3),
	GuessLow:    between(0, 19, 2),
	GuessHigh:   between(18, 37, 2),
}

var payoutTable [NumGuesses]rule

func init() {
	payoutTable[GuessZero] = pocket(0)
	payoutTable[GuessDoubleZero] = pocket(DoubleZeroPocket)
	for n := 1; n <= 36; n++ {
		g, _ := GuessNumber(n)
		payoutTable[g] = pocket(uint64(n))
	}
	for g, r := range outsideRules {
		payoutTable[g] = r
	}
	for i, r := range payoutTable {
		if r.wins == nil || r.multiplier == 0 {
			panic(fmt.Sprintf("roulette payout table: guess %d has no rule", i))
		}
	}
}

// Multiplier 押注类型的赔付倍数, 无效的类型返回 0
func Multiplier(g Guess) uint64 {
	if int(g) >= NumGuesses {
		return 0
	}
	return payoutTable[g].multiplier
}

// Payout 押注 amount 在开奖结果 outcome 下的赔付, 未中奖返回 0.
// amount*multiplier 溢出返回 ErrNumericalOverflow
func Payout(g Guess, amount uint64, outcome uint64) (uint64, error) {
	if int(g) >= NumGuesses {
		return 0, types.ErrInvalidArgument
	}
	r := payoutTable[g]
	if !r.wins(outcome) {
		return 0, nil
	}
	hi, lo := bits.Mul64(amount, r.multiplier)
	if hi != 0 {
		return 0, types.ErrNumericalOverflow
	}
	return lo, nil
}
