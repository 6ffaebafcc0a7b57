package tracker

import (
	"encoding/binary"
	"fmt"
)

// Stream gives random access to an instruction stream. Addresses are 16-bit,
// so a stream holds at most 64KiB.
type Stream interface {
	Len() int
	Byte(addr uint16) uint8
	Word(addr uint16) uint16
}

// MaxStreamSize is the size of the address space of the stream cursor.
const MaxStreamSize = 1 << 16

// Program is an in-memory instruction stream.
type Program struct {
	data  []byte
	order binary.ByteOrder
}

// NewProgram wraps data into a Program reading words in the given byte order
// (big endian if nil).
func NewProgram(data []byte, order binary.ByteOrder) (*Program, error) {
	if len(data) > MaxStreamSize {
		return nil, fmt.Errorf("stream too large: %d bytes, max %d", len(data), MaxStreamSize)
	}
	if order == nil {
		order = binary.BigEndian
	}
	return &Program{data: data, order: order}, nil
}

// MustProgram is like NewProgram but panics on error.
func MustProgram(data []byte, order binary.ByteOrder) *Program {
	p, err := NewProgram(data, order)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Program) Len() int { return len(p.data) }

// Byte returns the byte at addr, or 0 past the end of the stream.
func (p *Program) Byte(addr uint16) uint8 {
	if int(addr) >= len(p.data) {
		return 0
	}
	return p.data[addr]
}

// Word returns the 16-bit word at addr. Bytes past the end of the stream
// read as 0.
func (p *Program) Word(addr uint16) uint16 {
	var buf [2]byte
	buf[0] = p.Byte(addr)
	buf[1] = p.Byte(addr + 1)
	return p.order.Uint16(buf[:])
}

// Bytes returns the underlying stream data.
func (p *Program) Bytes() []byte { return p.data }

// ByteOrder parses a word order name, "big" or "little".
func ByteOrder(name string) (binary.ByteOrder, error) {
	switch name {
	case "big", "":
		return binary.BigEndian, nil
	case "little":
		return binary.LittleEndian, nil
	}
	return nil, fmt.Errorf("unknown word order %q", name)
}
