// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"testing"

	rty "github.com/33cn/roulette/system/dapp/roulette/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBets(t *testing.T) {
	guesses, err := ParseBets([]string{"red:10", "00:2", " 17 : 1", "Dozen3:5"})
	require.Nil(t, err)
	require.Len(t, guesses, 4)
	assert.Equal(t, rty.RouletteGuess{Guess: rty.GuessRed, Amount: 10}, guesses[0])
	assert.Equal(t, rty.RouletteGuess{Guess: rty.GuessDoubleZero, Amount: 2}, guesses[1])
	assert.Equal(t, rty.RouletteGuess{Guess: rty.Guess(18), Amount: 1}, guesses[2])
	assert.Equal(t, rty.RouletteGuess{Guess: rty.GuessDozen3, Amount: 5}, guesses[3])

	for _, bad := range []string{"red", "red:x", "blue:1", "red:-1", "37:1"} {
		_, err := ParseBets([]string{bad})
		assert.NotNil(t, err, bad)
	}
}
