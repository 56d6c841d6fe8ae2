// Package state owns the persisted-state block: a fixed region allocated once
// per session that outlives every module instance loaded into it.
//
// The region holds one versioned record:
//
//	magic "HLXS" | schema u16 | flags u16 | length u32 | crc32 u32 | payload
//
// All integers are little endian. The checksum covers the payload.
package state

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"unsafe"
)

// DefaultSize is the block size used when none is configured.
const DefaultSize = 1 << 20

// HeaderSize is the size of the record header in bytes.
const HeaderSize = 16

const magic = "HLXS"

// FlagForeign marks a payload written by a C-ABI module. Its bytes are opaque
// to the host, so length spans the whole payload area and the checksum is not
// maintained.
const FlagForeign uint16 = 1 << 0

var (
	ErrEmpty             = errors.New("state: block holds no record")
	ErrCorrupt           = errors.New("state: record checksum mismatch")
	ErrIncompatibleState = errors.New("state: incompatible record schema")
	ErrTooLarge          = errors.New("state: payload exceeds block size")
)

// Header describes the record currently stored in a block.
type Header struct {
	Schema uint16
	Flags  uint16
	Length uint32
	CRC    uint32
}

// Block is the persisted-state region. Its backing memory never moves for the
// lifetime of the block.
type Block struct {
	mem    []byte
	mapped bool
}

// New allocates a zeroed block of size bytes. On unix the memory is an
// anonymous mapping outside the Go heap.
func New(size int) (*Block, error) {
	if size <= HeaderSize {
		return nil, fmt.Errorf("state: block size %d too small", size)
	}
	mem, mapped, err := allocate(size)
	if err != nil {
		return nil, fmt.Errorf("state: allocate %d bytes: %w", size, err)
	}
	return &Block{mem: mem, mapped: mapped}, nil
}

// Close releases the backing memory. The block must not be used afterwards.
func (b *Block) Close() error {
	if b.mem == nil {
		return nil
	}
	mem := b.mem
	b.mem = nil
	if b.mapped {
		return release(mem)
	}
	return nil
}

// Size returns the total size of the block.
func (b *Block) Size() int { return len(b.mem) }

// Capacity returns the largest payload the block can hold.
func (b *Block) Capacity() int { return len(b.mem) - HeaderSize }

// Mapped reports whether the block lives outside the Go heap.
func (b *Block) Mapped() bool { return b.mapped }

// Addr returns the address of the block. It is stable across reloads.
func (b *Block) Addr() uintptr {
	return uintptr(unsafe.Pointer(&b.mem[0]))
}

// Payload returns the payload area, for modules that write raw bytes.
func (b *Block) Payload() []byte {
	return b.mem[HeaderSize:]
}

// HasRecord reports whether the block starts with a record header.
func (b *Block) HasRecord() bool {
	return string(b.mem[:4]) == magic
}

// Reset zeroes the whole block.
func (b *Block) Reset() {
	clear(b.mem)
}

// Header decodes the record header without validating the payload.
func (b *Block) Header() (Header, error) {
	if !b.HasRecord() {
		return Header{}, ErrEmpty
	}
	return Header{
		Schema: binary.LittleEndian.Uint16(b.mem[4:]),
		Flags:  binary.LittleEndian.Uint16(b.mem[6:]),
		Length: binary.LittleEndian.Uint32(b.mem[8:]),
		CRC:    binary.LittleEndian.Uint32(b.mem[12:]),
	}, nil
}

// Write stores payload as the current record with the given schema.
func (b *Block) Write(schema uint16, payload []byte) error {
	if len(payload) > b.Capacity() {
		return fmt.Errorf("%w: %d > %d", ErrTooLarge, len(payload), b.Capacity())
	}
	copy(b.mem[HeaderSize:], payload)
	b.putHeader(Header{
		Schema: schema,
		Length: uint32(len(payload)),
		CRC:    crc32.ChecksumIEEE(payload),
	})
	return nil
}

// MarkForeign stamps a header over a payload area written in place by a
// foreign module.
func (b *Block) MarkForeign(schema uint16) {
	b.putHeader(Header{
		Schema: schema,
		Flags:  FlagForeign,
		Length: uint32(b.Capacity()),
	})
}

func (b *Block) putHeader(h Header) {
	copy(b.mem[:4], magic)
	binary.LittleEndian.PutUint16(b.mem[4:], h.Schema)
	binary.LittleEndian.PutUint16(b.mem[6:], h.Flags)
	binary.LittleEndian.PutUint32(b.mem[8:], h.Length)
	binary.LittleEndian.PutUint32(b.mem[12:], h.CRC)
}

// Read returns the schema and payload of the current record. The payload
// aliases the block and is only valid until the next Write.
func (b *Block) Read() (uint16, []byte, error) {
	h, err := b.Header()
	if err != nil {
		return 0, nil, err
	}
	if int(h.Length) > b.Capacity() {
		return 0, nil, fmt.Errorf("%w: length %d exceeds capacity", ErrCorrupt, h.Length)
	}
	payload := b.mem[HeaderSize : HeaderSize+int(h.Length)]
	if h.Flags&FlagForeign == 0 && crc32.ChecksumIEEE(payload) != h.CRC {
		return 0, nil, ErrCorrupt
	}
	return h.Schema, payload, nil
}

// Record returns a copy of the header and payload bytes of the current
// record, suitable for comparing or persisting.
func (b *Block) Record() ([]byte, error) {
	h, err := b.Header()
	if err != nil {
		return nil, err
	}
	if int(h.Length) > b.Capacity() {
		return nil, fmt.Errorf("%w: length %d exceeds capacity", ErrCorrupt, h.Length)
	}
	out := make([]byte, HeaderSize+int(h.Length))
	copy(out, b.mem)
	return out, nil
}
