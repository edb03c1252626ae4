// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package address

import (
	"encoding/binary"
	"errors"

	"github.com/33cn/roulette/common"
	"github.com/btcsuite/btcd/btcec/v2"
	lru "github.com/hashicorp/golang-lru"
)

// 程序派生地址: 由程序地址和一组种子计算出来, 不在 secp256k1 曲线上, 所以没有对应的私钥.
// 只有持有同样种子的程序才能以这个地址的名义签名.
const (
	MaxSeeds      = 16
	MaxSeedLength = 32
)

var (
	// ErrMaxSeedLengthExceeded a seed is longer than MaxSeedLength or there are too many seeds
	ErrMaxSeedLengthExceeded = errors.New("ErrMaxSeedLengthExceeded")
	// ErrInvalidSeeds the seeds hash to a valid curve point
	ErrInvalidSeeds = errors.New("ErrInvalidSeeds")
	// ErrNoViableBump no nonce in [0,255] yields an off-curve address
	ErrNoViableBump = errors.New("ErrNoViableBump")
)

var pdaMarker = []byte("ProgramDerivedAddress")

var programAddressCache, _ = lru.New(10240)

type derived struct {
	addr string
	err  error
}

// IsOnCurve reports whether b is the x coordinate of a secp256k1 point, i.e.
// whether somebody could hold a private key for it.
func IsOnCurve(b []byte) bool {
	if len(b) != 32 {
		return false
	}
	var compressed [33]byte
	compressed[0] = 0x02
	copy(compressed[1:], b)
	_, err := btcec.ParsePubKey(compressed[:])
	return err == nil
}

func cacheKey(seeds [][]byte, program []byte) string {
	var buf []byte
	var l [2]byte
	for _, seed := range seeds {
		binary.LittleEndian.PutUint16(l[:], uint16(len(seed)))
		buf = append(buf, l[:]...)
		buf = append(buf, seed...)
	}
	buf = append(buf, program...)
	return string(buf)
}

// CreateProgramAddress derives the address for seeds under programID. The
// seeds must already include the bump nonce if one is used.
func CreateProgramAddress(seeds [][]byte, programID string) (string, error) {
	if len(seeds) > MaxSeeds {
		return "", ErrMaxSeedLengthExceeded
	}
	for _, seed := range seeds {
		if len(seed) > MaxSeedLength {
			return "", ErrMaxSeedLengthExceeded
		}
	}
	program, err := ToBytes(programID)
	if err != nil {
		return "", err
	}
	key := cacheKey(seeds, program)
	if value, ok := programAddressCache.Get(key); ok {
		d := value.(derived)
		return d.addr, d.err
	}
	parts := make([][]byte, 0, len(seeds)+2)
	parts = append(parts, seeds...)
	parts = append(parts, program, pdaMarker)
	hash := common.Sha256Concat(parts...)
	d := derived{}
	if IsOnCurve(hash[:]) {
		d.err = ErrInvalidSeeds
	} else {
		d.addr = PubKeyToAddress(hash[:]).String()
	}
	programAddressCache.Add(key, d)
	return d.addr, d.err
}

// FindProgramAddress searches the bump nonce from 255 downwards and returns
// the first off-curve address together with the bump that produced it.
func FindProgramAddress(seeds [][]byte, programID string) (string, uint8, error) {
	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)
	for bump := 255; bump >= 0; bump-- {
		withBump[len(seeds)] = []byte{uint8(bump)}
		addr, err := CreateProgramAddress(withBump, programID)
		if err == nil {
			return addr, uint8(bump), nil
		}
		if err != ErrInvalidSeeds {
			return "", 0, err
		}
	}
	return "", 0, ErrNoViableBump
}

// VerifyProgramAddress re-derives the address from seeds and compares it
// with the claimed one.
func VerifyProgramAddress(seeds [][]byte, programID string, claimed string) bool {
	addr, err := CreateProgramAddress(seeds, programID)
	if err != nil {
		return false
	}
	return addr == claimed
}
