// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

// AccountStorageOverhead 计算租金时每个账户额外计入的字节数
const AccountStorageOverhead = 128

// Clock 当前步数和时间
type Clock struct {
	Slot          uint64
	UnixTimestamp int64
}

// Encode 16 字节
func (c *Clock) Encode() []byte {
	enc := NewEncoder(16)
	enc.U64(c.Slot)
	enc.I64(c.UnixTimestamp)
	return enc.Result()
}

// DecodeClock decode
func DecodeClock(b []byte) (*Clock, error) {
	dec := NewDecoder(b)
	c := &Clock{Slot: dec.U64(), UnixTimestamp: dec.I64()}
	if dec.Err() != nil {
		return nil, ErrInvalidAccountData
	}
	return c, nil
}

// Rent 租金参数
type Rent struct {
	LamportsPerByte uint64
}

// MinimumBalance 数据长度为 space 的账户免租所需的最小余额
func (r *Rent) MinimumBalance(space uint64) uint64 {
	return (AccountStorageOverhead + space) * r.LamportsPerByte
}

// IsExempt 是否免租
func (r *Rent) IsExempt(lamports uint64, space uint64) bool {
	return lamports >= r.MinimumBalance(space)
}

// Encode 8 字节
func (r *Rent) Encode() []byte {
	enc := NewEncoder(8)
	enc.U64(r.LamportsPerByte)
	return enc.Result()
}

// DecodeRent decode
func DecodeRent(b []byte) (*Rent, error) {
	dec := NewDecoder(b)
	r := &Rent{LamportsPerByte: dec.U64()}
	if dec.Err() != nil {
		return nil, ErrInvalidAccountData
	}
	return r, nil
}

// EncodeInstructionsSysvar u16 指令数, 每条指令的程序地址, 最后是 u16 当前指令序号
func EncodeInstructionsSysvar(ixs []*Instruction, current uint16) []byte {
	enc := NewEncoder(2 + 25*len(ixs) + 2)
	enc.U16(uint16(len(ixs)))
	for _, ix := range ixs {
		enc.Address(ix.ProgramID)
	}
	enc.U16(current)
	return enc.Result()
}

// InstructionsSysvar 解码后的指令 sysvar
type InstructionsSysvar struct {
	Programs []string
	Current  uint16
}

// Len 指令条数
func (s *InstructionsSysvar) Len() uint16 {
	return uint16(len(s.Programs))
}

// DecodeInstructionsSysvar decode
func DecodeInstructionsSysvar(b []byte) (*InstructionsSysvar, error) {
	dec := NewDecoder(b)
	n := dec.U16()
	s := &InstructionsSysvar{}
	for i := 0; i < int(n) && dec.Err() == nil; i++ {
		s.Programs = append(s.Programs, dec.Address())
	}
	s.Current = dec.U16()
	if dec.Err() != nil {
		return nil, ErrInvalidAccountData
	}
	return s, nil
}
