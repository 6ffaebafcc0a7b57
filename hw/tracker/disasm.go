package tracker

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/go-faster/jx"
)

// A Styler decorates the columns of a disassembly listing.
type Styler interface {
	Addr(s string) string
	Bytes(s string) string
	Instr(s string) string
	Error(s string) string
}

// PlainStyle is a Styler leaving text untouched.
type PlainStyle struct{}

func (PlainStyle) Addr(s string) string  { return s }
func (PlainStyle) Bytes(s string) string { return s }
func (PlainStyle) Instr(s string) string { return s }
func (PlainStyle) Error(s string) string { return s }

func hexEncode(dst []byte, v byte) {
	const hextable = "0123456789ABCDEF"
	dst[0] = hextable[v>>4]
	dst[1] = hextable[v&0x0f]
}

// rawBytes formats the n bytes at addr in hex, padded to fit the longest
// instruction.
func rawBytes(s Stream, addr uint16, n int) string {
	const width = 3 * 8
	buf := bytes.Repeat([]byte{' '}, width)
	for i := range min(n, 8) {
		hexEncode(buf[i*3:], s.Byte(addr+uint16(i)))
	}
	return string(buf)
}

// Disassemble writes a listing of the whole stream to w, one instruction per
// line. Decoding stops at the first truncated instruction, which is reported
// on the last line.
func Disassemble(s Stream, w io.Writer, style Styler) error {
	if style == nil {
		style = PlainStyle{}
	}

	var bb bytes.Buffer
	for addr := 0; addr < s.Len(); {
		in, err := Decode(s, uint16(addr))
		if err != nil {
			fmt.Fprintf(&bb, "%s  %s  %s\n",
				style.Addr(fmt.Sprintf("$%04X", addr)),
				style.Bytes(rawBytes(s, uint16(addr), s.Len()-addr)),
				style.Error(err.Error()))
			break
		}

		size := Size(in)
		fmt.Fprintf(&bb, "%s  %s  %s\n",
			style.Addr(fmt.Sprintf("$%04X", addr)),
			style.Bytes(rawBytes(s, uint16(addr), size)),
			style.Instr(Format(in)))
		addr += size

		if bb.Len() > 32*1024 {
			if _, err := bb.WriteTo(w); err != nil {
				return err
			}
		}
	}

	_, err := bb.WriteTo(w)
	return err
}

// DisassembleJSON writes the stream as JSON lines, one object per
// instruction. A truncated instruction is written as an object with an
// "error" field.
func DisassembleJSON(s Stream, w io.Writer) error {
	var e jx.Encoder
	for addr := 0; addr < s.Len(); {
		e.Reset()
		in, err := Decode(s, uint16(addr))
		if err != nil {
			e.Obj(func(e *jx.Encoder) {
				e.Field("addr", func(e *jx.Encoder) { e.Int(addr) })
				e.Field("error", func(e *jx.Encoder) { e.Str(err.Error()) })
			})
			_, err := w.Write(append(e.Bytes(), '\n'))
			return err
		}

		e.Obj(func(e *jx.Encoder) {
			e.Field("addr", func(e *jx.Encoder) { e.Int(addr) })
			encodeInstr(e, in)
		})
		if _, err := w.Write(append(e.Bytes(), '\n')); err != nil {
			return err
		}
		addr += Size(in)
	}
	return nil
}

// Walk decodes the stream linearly from address 0, calling fn for each
// instruction. It stops at the end of the stream, at the first truncated
// instruction (returning ErrTruncated) or when fn returns false.
func Walk(s Stream, fn func(addr uint16, in Instr) bool) error {
	for addr := 0; addr < s.Len(); {
		in, err := Decode(s, uint16(addr))
		if err != nil {
			if errors.Is(err, ErrPastEnd) {
				return nil
			}
			return err
		}
		if !fn(uint16(addr), in) {
			return nil
		}
		addr += Size(in)
	}
	return nil
}
