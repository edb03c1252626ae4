// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"encoding/binary"

	"github.com/33cn/roulette/common/address"
)

// Encoder 定长小端编码, 第一个错误之后的写入都会被忽略
type Encoder struct {
	buf []byte
	err error
}

// NewEncoder size 只是预分配的容量
func NewEncoder(size int) *Encoder {
	return &Encoder{buf: make([]byte, 0, size)}
}

// U8 u8
func (e *Encoder) U8(v uint8) {
	e.buf = append(e.buf, v)
}

// Bool 0 或 1
func (e *Encoder) Bool(v bool) {
	if v {
		e.U8(1)
	} else {
		e.U8(0)
	}
}

// U16 u16
func (e *Encoder) U16(v uint16) {
	e.buf = binary.LittleEndian.AppendUint16(e.buf, v)
}

// U32 u32
func (e *Encoder) U32(v uint32) {
	e.buf = binary.LittleEndian.AppendUint32(e.buf, v)
}

// U64 u64
func (e *Encoder) U64(v uint64) {
	e.buf = binary.LittleEndian.AppendUint64(e.buf, v)
}

// I64 i64
func (e *Encoder) I64(v int64) {
	e.U64(uint64(v))
}

// Fixed 原样写入, 不带长度
func (e *Encoder) Fixed(b []byte) {
	e.buf = append(e.buf, b...)
}

// Bytes u32 长度前缀
func (e *Encoder) Bytes(b []byte) {
	e.U32(uint32(len(b)))
	e.Fixed(b)
}

// Address 25 字节地址, 空字符串写全 0
func (e *Encoder) Address(addr string) {
	b, err := address.ToBytes(addr)
	if err != nil {
		if e.err == nil {
			e.err = err
		}
		b = make([]byte, address.Size)
	}
	e.Fixed(b)
}

// Err 第一个错误
func (e *Encoder) Err() error {
	return e.err
}

// Result 编码结果
func (e *Encoder) Result() []byte {
	return e.buf
}

// Decoder 与 Encoder 对应, 数据不足时记录 ErrDecode
type Decoder struct {
	buf []byte
	off int
	err error
}

// NewDecoder new
func NewDecoder(b []byte) *Decoder {
	return &Decoder{buf: b}
}

func (d *Decoder) next(n int) []byte {
	if d.err != nil {
		return make([]byte, n)
	}
	if n < 0 || len(d.buf)-d.off < n {
		d.err = ErrDecode
		return make([]byte, n)
	}
	b := d.buf[d.off : d.off+n]
	d.off += n
	return b
}

// U8 u8
func (d *Decoder) U8() uint8 {
	return d.next(1)[0]
}

// Bool 只接受 0 或 1
func (d *Decoder) Bool() bool {
	v := d.U8()
	if v > 1 && d.err == nil {
		d.err = ErrDecode
	}
	return v == 1
}

// U16 u16
func (d *Decoder) U16() uint16 {
	return binary.LittleEndian.Uint16(d.next(2))
}

// U32 u32
func (d *Decoder) U32() uint32 {
	return binary.LittleEndian.Uint32(d.next(4))
}

// U64 u64
func (d *Decoder) U64() uint64 {
	return binary.LittleEndian.Uint64(d.next(8))
}

// I64 i64
func (d *Decoder) I64() int64 {
	return int64(d.U64())
}

// Fixed 读取 n 字节的拷贝
func (d *Decoder) Fixed(n int) []byte {
	b := make([]byte, n)
	copy(b, d.next(n))
	return b
}

// Bytes u32 长度前缀, 长度为 0 时返回 nil
func (d *Decoder) Bytes() []byte {
	n := d.U32()
	if d.err != nil {
		return nil
	}
	if int(n) > len(d.buf)-d.off {
		d.err = ErrDecode
		return nil
	}
	if n == 0 {
		return nil
	}
	return d.Fixed(int(n))
}

// Address 25 字节地址
func (d *Decoder) Address() string {
	b := d.next(address.Size)
	if d.err != nil {
		return ""
	}
	addr, err := address.FromBytes(b)
	if err != nil {
		d.err = ErrDecode
		return ""
	}
	return addr
}

// Remaining 剩余未读字节数
func (d *Decoder) Remaining() int {
	return len(d.buf) - d.off
}

// Err 第一个错误
func (d *Decoder) Err() error {
	return d.err
}
