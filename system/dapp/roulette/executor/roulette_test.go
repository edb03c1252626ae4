// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor_test

import (
	"math"
	"sync"
	"testing"

	"github.com/33cn/roulette/common/crypto"
	"github.com/33cn/roulette/metrics"
	_ "github.com/33cn/roulette/system"
	oty "github.com/33cn/roulette/system/dapp/oracle/types"
	rty "github.com/33cn/roulette/system/dapp/roulette/types"
	"github.com/33cn/roulette/types"
	"github.com/33cn/roulette/util/testnode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 5

type rouletteSuite struct {
	t    *testing.T
	mock *testnode.RouletteMock

	house       crypto.PrivKey
	houseAddr   string
	gambler     crypto.PrivKey
	gamblerAddr string

	mint       string
	key        *rty.PoolKey
	honeypot   string
	vault      string
	guess      string
	rng        string
	feed       string
	houseATA   string
	gamblerATA string
}

// newSuite tick 1, 单次上限 1000, 最低余额 10, 玩家持有 1000
func newSuite(t *testing.T, cfg *types.Config, bank uint64) *rouletteSuite {
	return newPoolSuite(t, cfg, 1, 1000, 10, bank)
}

func newPoolSuite(t *testing.T, cfg *types.Config, tick, maxAmount, minBank, bank uint64) *rouletteSuite {
	if cfg == nil {
		cfg = testnode.GetDefaultConfig()
	}
	mock, err := testnode.NewWithConfig(cfg)
	require.Nil(t, err)
	t.Cleanup(mock.Close)
	require.Nil(t, mock.Advance(1))

	s := &rouletteSuite{t: t, mock: mock}
	s.houseAddr, s.house, err = mock.NewFundedKey()
	require.Nil(t, err)
	s.gamblerAddr, s.gambler, err = mock.NewFundedKey()
	require.Nil(t, err)

	s.mint, err = mock.CreateMint(s.house, 0)
	require.Nil(t, err)
	s.houseATA, err = mock.CreateATA(s.house, s.houseAddr, s.mint)
	require.Nil(t, err)
	s.gamblerATA, err = mock.CreateATA(s.gambler, s.gamblerAddr, s.mint)
	require.Nil(t, err)
	require.Nil(t, mock.MintTo(s.house, s.mint, s.gamblerATA, 1000))

	s.feed, err = mock.CreateFeed(s.house)
	require.Nil(t, err)

	ix, err := rty.NewInitialize(s.gamblerAddr)
	require.Nil(t, err)
	_, err = mock.SendTx([]crypto.PrivKey{s.gambler}, ix)
	require.Nil(t, err)
	s.rng, _, err = rty.FindRandomAddress(s.gamblerAddr)
	require.Nil(t, err)

	s.key = &rty.PoolKey{Mint: s.mint, TickSize: tick, MaxAmount: maxAmount, MinimumBankSize: minBank}
	s.honeypot, s.vault, s.guess = s.openPool(s.key, bank)
	return s
}

// openPool 建奖池, 向 vault 存入 bank, 再建玩家的押注记录
func (s *rouletteSuite) openPool(key *rty.PoolKey, bank uint64) (honeypot, vault, guess string) {
	ix, err := rty.NewInitializeHoneypot(s.houseAddr, key)
	require.Nil(s.t, err)
	_, err = s.mock.SendTx([]crypto.PrivKey{s.house}, ix)
	require.Nil(s.t, err)
	honeypot, vault, err = key.Addresses()
	require.Nil(s.t, err)
	if bank > 0 {
		require.Nil(s.t, s.mock.MintTo(s.house, s.mint, vault, bank))
	}

	ix, err = rty.NewInitializeGuessAccount(s.gamblerAddr, key)
	require.Nil(s.t, err)
	_, err = s.mock.SendTx([]crypto.PrivKey{s.gambler}, ix)
	require.Nil(s.t, err)
	guess, err = key.GuessAccount(s.gamblerAddr)
	require.Nil(s.t, err)
	return honeypot, vault, guess
}

func (s *rouletteSuite) balance(addr string) uint64 {
	amount, err := s.mock.TokenBalance(addr)
	require.Nil(s.t, err)
	return amount
}

func (s *rouletteSuite) locked() *rty.LockedGuess {
	return s.lockedAt(s.guess)
}

func (s *rouletteSuite) lockedAt(guess string) *rty.LockedGuess {
	v, err := s.mock.Query(rty.RouletteX, "GetGuessAccount", []byte(guess))
	require.Nil(s.t, err)
	return v.(*rty.LockedGuess)
}

func (s *rouletteSuite) place(guesses ...rty.RouletteGuess) error {
	return s.placeOn(s.key, guesses...)
}

func (s *rouletteSuite) placeOn(key *rty.PoolKey, guesses ...rty.RouletteGuess) error {
	ix, err := rty.NewPlaceGuesses(s.gamblerAddr, key, guesses)
	require.Nil(s.t, err)
	_, err = s.mock.SendTx([]crypto.PrivKey{s.gambler}, ix)
	return err
}

func (s *rouletteSuite) spinIx(extra ...*types.Instruction) []*types.Instruction {
	ix, err := rty.NewSpin(s.rng, s.gamblerAddr, s.key, tolerance, s.feed)
	require.Nil(s.t, err)
	return append(extra, ix)
}

// spin 推进一步, 写入让结果等于 outcome 的随机值, 然后开奖
func (s *rouletteSuite) spin(outcome uint64) error {
	require.Nil(s.t, s.mock.Advance(1))
	s.feedOutcome(outcome)
	_, err := s.mock.SendTx(nil, s.spinIx()...)
	return err
}

func (s *rouletteSuite) feedOutcome(outcome uint64) {
	step := uint64(s.mock.Height())
	v := feedValueFor(s.t, step, outcome)
	require.Nil(s.t, s.mock.UpdateFeed(s.house, s.feed, v))
}

func (s *rouletteSuite) cancel() error {
	ix, err := rty.NewTryCancel(s.gamblerAddr, s.key)
	require.Nil(s.t, err)
	_, err = s.mock.SendTx(nil, ix)
	return err
}

// feedValueFor 在 step 更新的单个 feed 取什么值时, 开奖结果是 outcome
func feedValueFor(t *testing.T, step uint64, outcome uint64) uint64 {
	clock := &types.AccountInfo{Account: &types.Account{
		Addr: types.SysvarClockID,
		Data: (&types.Clock{Slot: step}).Encode(),
	}}
	feed := &oty.Feed{IsInitialized: true, Slot: step}
	for v := uint64(0); v < 100000; v++ {
		feed.Value = v
		info := &types.AccountInfo{Account: &types.Account{Owner: types.OracleProgramID, Data: feed.Encode()}}
		value, _, err := oty.Sample([]*types.AccountInfo{clock, info}, 0, 0)
		require.Nil(t, err)
		if value%rty.NumPockets == outcome {
			return v
		}
	}
	t.Fatalf("no feed value for outcome %d", outcome)
	return 0
}

func counter(name string) int64 {
	v, ok := metrics.Snapshot()[name].(int64)
	if !ok {
		return 0
	}
	return v
}

func TestSetup(t *testing.T) {
	s := newSuite(t, nil, 500)
	v, err := s.mock.Query(rty.RouletteX, "GetHoneypot", []byte(s.honeypot))
	require.Nil(t, err)
	h := v.(*rty.Honeypot)
	assert.Equal(t, rty.VersionHoneypotV1, h.Version)
	assert.Equal(t, s.houseAddr, h.Owner)
	assert.Equal(t, s.mint, h.Mint)
	assert.Equal(t, uint64(1000), h.MaxAmount)

	g := s.locked()
	assert.Equal(t, rty.VersionLockedGuessV1, g.Version)
	assert.Equal(t, s.gamblerAddr, g.Owner)
	assert.Equal(t, s.vault, g.Vault)
	assert.False(t, g.Active)

	assert.Equal(t, uint64(500), s.balance(s.vault))
	assert.Equal(t, uint64(1000), s.balance(s.gamblerATA))
	vaultAcc, err := s.mock.TokenAccount(s.vault)
	require.Nil(t, err)
	assert.Equal(t, s.honeypot, vaultAcc.Owner)
}

func TestInitializeTwice(t *testing.T) {
	s := newSuite(t, nil, 500)
	ix, err := rty.NewInitialize(s.gamblerAddr)
	require.Nil(t, err)
	_, err = s.mock.SendTx([]crypto.PrivKey{s.gambler}, ix)
	assert.Equal(t, types.ErrAccountAlreadyInitialized, err)

	ix, err = rty.NewInitializeHoneypot(s.houseAddr, s.key)
	require.Nil(t, err)
	_, err = s.mock.SendTx([]crypto.PrivKey{s.house}, ix)
	assert.NotNil(t, err)
}

func TestSample(t *testing.T) {
	s := newSuite(t, nil, 500)
	s.feedOutcome(7)
	_, err := s.mock.SendTx(nil, rty.NewSample(s.rng, tolerance, s.feed))
	require.Nil(t, err)
	v, err := s.mock.Query(rty.RouletteX, "GetRNG", []byte(s.rng))
	require.Nil(t, err)
	rng := v.(*rty.RNG)
	assert.Equal(t, rty.VersionRNGV1, rng.Version)
	assert.Equal(t, uint64(s.mock.Height()), rng.Slot)
	assert.Equal(t, uint64(7), rng.Value%rty.NumPockets)

	_, err = s.mock.SendTx(nil, rty.NewSample(s.rng, tolerance))
	assert.Equal(t, oty.ErrNoEntropy, err)
}

func TestCommitAndWin(t *testing.T) {
	s := newSuite(t, nil, 500)
	wagered, paid, spins := counter(metrics.RouletteWagered), counter(metrics.RoulettePaid), counter(metrics.RouletteSpins)

	require.Nil(t, s.place(rty.RouletteGuess{Guess: rty.GuessRed, Amount: 100}))
	g := s.locked()
	assert.True(t, g.Active)
	assert.Equal(t, uint64(100), g.ActiveSize)
	assert.Equal(t, uint64(s.mock.Height()), g.Slot)
	assert.Equal(t, uint64(100), g.Guesses[rty.GuessRed])
	assert.Equal(t, uint64(900), s.balance(s.gamblerATA))
	assert.Equal(t, uint64(600), s.balance(s.vault))

	require.Nil(t, s.spin(5))
	assert.Equal(t, uint64(1100), s.balance(s.gamblerATA))
	assert.Equal(t, uint64(400), s.balance(s.vault))
	g = s.locked()
	assert.False(t, g.Active)
	assert.Equal(t, uint64(0), g.ActiveSize)
	assert.Equal(t, [rty.NumGuessSlots]uint64{}, g.Guesses)

	v, err := s.mock.Query(rty.RouletteX, "GetSpinHistory", []byte(s.gamblerAddr))
	require.Nil(t, err)
	history := v.([]*rty.ReceiptSpin)
	require.Len(t, history, 1)
	assert.Equal(t, uint64(5), history[0].Outcome)
	assert.Equal(t, uint64(200), history[0].Reward)
	assert.Equal(t, uint64(100), history[0].ActiveSize)
	assert.Equal(t, s.vault, history[0].Vault)

	assert.Equal(t, int64(100), counter(metrics.RouletteWagered)-wagered)
	assert.Equal(t, int64(200), counter(metrics.RoulettePaid)-paid)
	assert.Equal(t, int64(1), counter(metrics.RouletteSpins)-spins)
}

func TestCommitAndLose(t *testing.T) {
	s := newSuite(t, nil, 500)
	require.Nil(t, s.place(rty.RouletteGuess{Guess: rty.GuessRed, Amount: 100}))
	require.Nil(t, s.spin(0))
	assert.Equal(t, uint64(900), s.balance(s.gamblerATA))
	assert.Equal(t, uint64(600), s.balance(s.vault))
	assert.False(t, s.locked().Active)

	// 可以再次下注
	require.Nil(t, s.mock.Advance(1))
	require.Nil(t, s.place(rty.RouletteGuess{Guess: rty.GuessDoubleZero, Amount: 10}))
	require.Nil(t, s.spin(rty.DoubleZeroPocket))
	assert.Equal(t, uint64(890+360), s.balance(s.gamblerATA))
}

func TestSplitBets(t *testing.T) {
	s := newSuite(t, nil, 500)
	// 同一个 guess 的押注累加
	require.Nil(t, s.place(
		rty.RouletteGuess{Guess: rty.GuessOdd, Amount: 20},
		rty.RouletteGuess{Guess: rty.GuessOdd, Amount: 30},
		rty.RouletteGuess{Guess: rty.GuessDozen1, Amount: 10},
		rty.RouletteGuess{Guess: rty.GuessBlack, Amount: 10},
	))
	g := s.locked()
	assert.Equal(t, uint64(50), g.Guesses[rty.GuessOdd])
	assert.Equal(t, uint64(70), g.ActiveSize)
	require.Nil(t, s.spin(5))
	// 5 是红色奇数, 在第一打
	assert.Equal(t, uint64(930+100+30), s.balance(s.gamblerATA))
}

func TestAmountTooLarge(t *testing.T) {
	s := newSuite(t, nil, 500)
	err := s.place(
		rty.RouletteGuess{Guess: rty.GuessRed, Amount: 600},
		rty.RouletteGuess{Guess: rty.GuessBlack, Amount: 600},
	)
	assert.Equal(t, types.ErrAmountTooLarge, err)
	assert.Equal(t, uint64(1000), s.balance(s.gamblerATA))
	assert.Equal(t, uint64(500), s.balance(s.vault))
	assert.False(t, s.locked().Active)
}

func TestEmptyStake(t *testing.T) {
	s := newSuite(t, nil, 500)
	assert.Equal(t, types.ErrStatementFalse, s.place())
	assert.Equal(t, types.ErrStatementFalse, s.place(rty.RouletteGuess{Guess: rty.GuessRed, Amount: 0}))
}

func TestVaultDrained(t *testing.T) {
	s := newSuite(t, nil, 10)
	err := s.place(rty.RouletteGuess{Guess: rty.GuessRed, Amount: 100})
	assert.Equal(t, types.ErrInsufficientFunds, err)
	assert.Equal(t, uint64(1000), s.balance(s.gamblerATA))
}

func TestActiveSpin(t *testing.T) {
	s := newSuite(t, nil, 500)
	require.Nil(t, s.place(rty.RouletteGuess{Guess: rty.GuessRed, Amount: 100}))
	err := s.place(rty.RouletteGuess{Guess: rty.GuessBlack, Amount: 100})
	assert.Equal(t, types.ErrActiveSpin, err)
	assert.Equal(t, uint64(900), s.balance(s.gamblerATA))
}

func TestSpinWindow(t *testing.T) {
	s := newSuite(t, nil, 500)
	require.Nil(t, s.place(rty.RouletteGuess{Guess: rty.GuessRed, Amount: 100}))

	// 同一步不能开奖
	s.feedOutcome(5)
	_, err := s.mock.SendTx(nil, s.spinIx()...)
	assert.Equal(t, types.ErrInvalidSlot, err)

	require.Nil(t, s.mock.Advance(tolerance+1))
	s.feedOutcome(5)
	_, err = s.mock.SendTx(nil, s.spinIx()...)
	assert.Equal(t, types.ErrInvalidSlot, err)
	assert.True(t, s.locked().Active)

	// 超时之后只能取消
	require.Nil(t, s.cancel())
	assert.Equal(t, uint64(1000), s.balance(s.gamblerATA))
	assert.Equal(t, uint64(500), s.balance(s.vault))
}

func TestStaleEntropy(t *testing.T) {
	s := newSuite(t, nil, 500)
	s.feedOutcome(5)
	require.Nil(t, s.place(rty.RouletteGuess{Guess: rty.GuessRed, Amount: 100}))
	require.Nil(t, s.mock.Advance(tolerance+1))
	_, err := s.mock.SendTx(nil, s.spinIx()...)
	assert.Equal(t, oty.ErrStaleEntropy, err)
}

func TestSpinInactive(t *testing.T) {
	s := newSuite(t, nil, 500)
	err := s.spin(5)
	assert.Equal(t, types.ErrInactive, err)
}

func TestBundleGuard(t *testing.T) {
	s := newSuite(t, nil, 500)
	require.Nil(t, s.place(rty.RouletteGuess{Guess: rty.GuessRed, Amount: 100}))
	require.Nil(t, s.mock.Advance(1))
	v := feedValueFor(t, uint64(s.mock.Height()), 0)
	update := oty.NewUpdateFeed(s.feed, s.houseAddr, v)
	// 默认只执行原有的判断, 两条指令的交易可以开奖
	_, err := s.mock.SendTx([]crypto.PrivKey{s.house}, s.spinIx(update)...)
	require.Nil(t, err)
	assert.False(t, s.locked().Active)

	cfg := testnode.GetDefaultConfig()
	cfg.Roulette.StrictBundleGuard = true
	strict := newSuite(t, cfg, 500)
	require.Nil(t, strict.place(rty.RouletteGuess{Guess: rty.GuessRed, Amount: 100}))
	require.Nil(t, strict.mock.Advance(1))
	v = feedValueFor(t, uint64(strict.mock.Height()), 0)
	update = oty.NewUpdateFeed(strict.feed, strict.houseAddr, v)
	_, err = strict.mock.SendTx([]crypto.PrivKey{strict.house}, strict.spinIx(update)...)
	assert.Equal(t, types.ErrSuspiciousTransaction, err)

	require.Nil(t, strict.mock.UpdateFeed(strict.house, strict.feed, v))
	_, err = strict.mock.SendTx(nil, strict.spinIx()...)
	require.Nil(t, err)
}

func TestTryCancel(t *testing.T) {
	s := newSuite(t, nil, 500)
	// 空闲时什么都不做
	require.Nil(t, s.cancel())
	assert.Equal(t, uint64(1000), s.balance(s.gamblerATA))

	refunded := counter(metrics.RouletteRefunded)
	require.Nil(t, s.place(rty.RouletteGuess{Guess: rty.GuessHigh, Amount: 250}))
	assert.Equal(t, uint64(750), s.balance(s.gamblerATA))
	// 不需要玩家签名
	require.Nil(t, s.cancel())
	assert.Equal(t, uint64(1000), s.balance(s.gamblerATA))
	assert.Equal(t, uint64(500), s.balance(s.vault))
	assert.False(t, s.locked().Active)
	assert.Equal(t, int64(250), counter(metrics.RouletteRefunded)-refunded)
}

func TestWithdraw(t *testing.T) {
	s := newSuite(t, nil, 500)
	ix, err := rty.NewWithdrawFromHoneypot(s.houseAddr, s.key, 200)
	require.Nil(t, err)
	_, err = s.mock.SendTx([]crypto.PrivKey{s.house}, ix)
	require.Nil(t, err)
	assert.Equal(t, uint64(300), s.balance(s.vault))
	assert.Equal(t, uint64(200), s.balance(s.houseATA))

	ix, err = rty.NewWithdrawFromHoneypot(s.gamblerAddr, s.key, 100)
	require.Nil(t, err)
	_, err = s.mock.SendTx([]crypto.PrivKey{s.gambler}, ix)
	assert.Equal(t, types.ErrPublicKeyMismatch, err)
	assert.Equal(t, uint64(300), s.balance(s.vault))
}

func TestQueryErrors(t *testing.T) {
	s := newSuite(t, nil, 500)
	_, err := s.mock.Query(rty.RouletteX, "GetHoneypot", []byte("bad"))
	assert.Equal(t, types.ErrInvalidArgument, err)
	_, err = s.mock.Query(rty.RouletteX, "GetHoneypot", []byte(s.feed))
	assert.Equal(t, types.ErrNotFound, err)

	v, err := s.mock.Query(rty.RouletteX, "GetSpinHistory", []byte(s.houseAddr))
	require.Nil(t, err)
	assert.Len(t, v.([]*rty.ReceiptSpin), 0)
}

// replaceAccount 把指令中的 from 账户换成 to
func replaceAccount(ix *types.Instruction, from, to string) *types.Instruction {
	for i := range ix.Accounts {
		if ix.Accounts[i].Addr == from {
			ix.Accounts[i].Addr = to
		}
	}
	return ix
}

func TestStakeOverflow(t *testing.T) {
	s := newSuite(t, nil, 500)
	err := s.place(
		rty.RouletteGuess{Guess: rty.GuessRed, Amount: math.MaxUint64},
		rty.RouletteGuess{Guess: rty.GuessBlack, Amount: 1},
	)
	assert.Equal(t, types.ErrNumericalOverflow, err)
	// 同一个 guess 累加溢出
	err = s.place(
		rty.RouletteGuess{Guess: rty.GuessRed, Amount: math.MaxUint64},
		rty.RouletteGuess{Guess: rty.GuessRed, Amount: 1},
	)
	assert.Equal(t, types.ErrNumericalOverflow, err)

	assert.Equal(t, uint64(1000), s.balance(s.gamblerATA))
	assert.Equal(t, uint64(500), s.balance(s.vault))
	g := s.locked()
	assert.False(t, g.Active)
	assert.Equal(t, [rty.NumGuessSlots]uint64{}, g.Guesses)
}

func TestStakeTickOverflow(t *testing.T) {
	s := newPoolSuite(t, nil, 2, 1000, 10, 500)
	err := s.place(rty.RouletteGuess{Guess: rty.GuessRed, Amount: 1 << 63})
	assert.Equal(t, types.ErrNumericalOverflow, err)
	assert.Equal(t, uint64(1000), s.balance(s.gamblerATA))
	assert.Equal(t, uint64(500), s.balance(s.vault))
	assert.False(t, s.locked().Active)

	require.Nil(t, s.place(rty.RouletteGuess{Guess: rty.GuessRed, Amount: 50}))
	assert.Equal(t, uint64(100), s.locked().ActiveSize)
	assert.Equal(t, uint64(900), s.balance(s.gamblerATA))
}

func TestRewardOverflow(t *testing.T) {
	s := newPoolSuite(t, nil, 1, math.MaxUint64, 10, 500)
	require.Nil(t, s.mock.MintTo(s.house, s.mint, s.gamblerATA, 1<<63))
	// 5 是红色奇数, 两个赔付各 2^63, 总和溢出
	require.Nil(t, s.place(
		rty.RouletteGuess{Guess: rty.GuessRed, Amount: 1 << 62},
		rty.RouletteGuess{Guess: rty.GuessOdd, Amount: 1 << 62},
	))
	gambler, vault := s.balance(s.gamblerATA), s.balance(s.vault)
	assert.Equal(t, uint64(1000), gambler)
	assert.Equal(t, uint64(500+1<<63), vault)

	assert.Equal(t, types.ErrNumericalOverflow, s.spin(5))
	assert.Equal(t, gambler, s.balance(s.gamblerATA))
	assert.Equal(t, vault, s.balance(s.vault))
	g := s.locked()
	assert.True(t, g.Active)
	assert.Equal(t, uint64(1<<62), g.Guesses[rty.GuessRed])

	require.Nil(t, s.cancel())
	assert.Equal(t, uint64(1000+1<<63), s.balance(s.gamblerATA))
	assert.Equal(t, uint64(500), s.balance(s.vault))
}

func TestForgedAccounts(t *testing.T) {
	s := newSuite(t, nil, 500)
	other := &rty.PoolKey{Mint: s.mint, TickSize: 2, MaxAmount: 1000, MinimumBankSize: 10}
	otherHoneypot, otherVault, otherGuess := s.openPool(other, 500)
	require.Nil(t, s.placeOn(other, rty.RouletteGuess{Guess: rty.GuessBlack, Amount: 50}))
	require.Nil(t, s.place(rty.RouletteGuess{Guess: rty.GuessRed, Amount: 100}))

	forgeries := []struct {
		name     string
		from, to string
	}{
		{"vault", s.vault, otherVault},
		{"honeypot", s.honeypot, otherHoneypot},
		{"guess", s.guess, otherGuess},
	}
	check := func(ix *types.Instruction, signers ...crypto.PrivKey) {
		for _, f := range forgeries {
			forged := &types.Instruction{ProgramID: ix.ProgramID, Data: ix.Data}
			forged.Accounts = append([]types.AccountMeta(nil), ix.Accounts...)
			receipt, err := s.mock.SendTx(signers, replaceAccount(forged, f.from, f.to))
			assert.Equal(t, types.ErrPublicKeyMismatch, err, f.name)
			require.NotNil(t, receipt, f.name)
			family, code, ok := receipt.ErrorCode()
			assert.True(t, ok, f.name)
			assert.Equal(t, types.ErrorFamilyUtil, family, f.name)
			assert.Equal(t, 0, code, f.name)

			assert.Equal(t, uint64(800), s.balance(s.gamblerATA), f.name)
			assert.Equal(t, uint64(600), s.balance(s.vault), f.name)
			assert.Equal(t, uint64(600), s.balance(otherVault), f.name)
			assert.True(t, s.locked().Active, f.name)
			assert.True(t, s.lockedAt(otherGuess).Active, f.name)
		}
	}

	place, err := rty.NewPlaceGuesses(s.gamblerAddr, s.key, []rty.RouletteGuess{{Guess: rty.GuessRed, Amount: 1}})
	require.Nil(t, err)
	check(place, s.gambler)
	cancel, err := rty.NewTryCancel(s.gamblerAddr, s.key)
	require.Nil(t, err)
	check(cancel)

	require.Nil(t, s.mock.Advance(1))
	s.feedOutcome(5)
	check(s.spinIx()[0])
	_, err = s.mock.SendTx(nil, s.spinIx()...)
	require.Nil(t, err)
	assert.Equal(t, uint64(1000), s.balance(s.gamblerATA))
	assert.True(t, s.lockedAt(otherGuess).Active)
}

func TestConcurrentCancel(t *testing.T) {
	s := newSuite(t, nil, 500)
	require.Nil(t, s.place(rty.RouletteGuess{Guess: rty.GuessRed, Amount: 100}))
	refunded := counter(metrics.RouletteRefunded)

	errs := make([]error, 8)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ix, err := rty.NewTryCancel(s.gamblerAddr, s.key)
			if err != nil {
				errs[i] = err
				return
			}
			_, errs[i] = s.mock.SendTx(nil, ix)
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		assert.Nil(t, err)
	}
	assert.Equal(t, uint64(1000), s.balance(s.gamblerATA))
	assert.Equal(t, uint64(500), s.balance(s.vault))
	assert.False(t, s.locked().Active)
	assert.Equal(t, int64(100), counter(metrics.RouletteRefunded)-refunded)
}
