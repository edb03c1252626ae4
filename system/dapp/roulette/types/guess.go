// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/33cn/roulette/types"
)

// Guess 押注类型. 0 号格押 0, 1 号格押 00, 2..37 号格押 1..36
type Guess uint8

// 押注类型
const (
	GuessZero       Guess = 0
	GuessDoubleZero Guess = 1
	GuessRed        Guess = iota + 36
	GuessBlack
	GuessEven
	GuessOdd
	GuessCol1
	GuessCol2
	GuessCol3
	GuessDozen1
	GuessDozen2
	GuessDozen3
	GuessLow
	GuessHigh
)

// NumGuesses 押注类型个数
const NumGuesses = int(GuessHigh) + 1

// DoubleZeroPocket 00 对应的开奖结果
const DoubleZeroPocket = 37

// NumPockets 开奖结果 0..37
const NumPockets = 38

// GuessNumber 押单个数字 1..36
func GuessNumber(n int) (Guess, error) {
	if n < 1 || n > 36 {
		return 0, types.ErrInvalidArgument
	}
	return Guess(n + 1), nil
}

var outsideNames = map[Guess]string{
	GuessRed:    "red",
	GuessBlack:  "black",
	GuessEven:   "even",
	GuessOdd:    "odd",
	GuessCol1:   "col1",
	GuessCol2:   "col2",
	GuessCol3:   "col3",
	GuessDozen1: "dozen1",
	GuessDozen2: "dozen2",
	GuessDozen3: "dozen3",
	GuessLow:    "low",
	GuessHigh:   "high",
}

// String 0, 00, 1..36 或者外围押注的名称
func (g Guess) String() string {
	switch {
	case g == GuessZero:
		return "0"
	case g == GuessDoubleZero:
		return "00"
	case g < GuessRed:
		return strconv.Itoa(int(g) - 1)
	}
	if name, ok := outsideNames[g]; ok {
		return name
	}
	return fmt.Sprintf("Guess(%d)", uint8(g))
}

// ParseGuess String 的逆操作, 不区分大小写
func ParseGuess(s string) (Guess, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "0":
		return GuessZero, nil
	case "00":
		return GuessDoubleZero, nil
	}
	for g, name := range outsideNames {
		if name == s {
			return g, nil
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, types.ErrInvalidArgument
	}
	return GuessNumber(n)
}

// RouletteGuess 一笔押注, Amount 以 tick 为单位
type RouletteGuess struct {
	Guess  Guess
	Amount uint64
}
