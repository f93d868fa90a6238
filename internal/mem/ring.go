package mem

import "fmt"

// DefaultRingSize provides a default for NewRing.
const DefaultRingSize = 30000

// Ring implements a fixed size byte memory whose addresses wrap around at
// both ends. Every address taken or returned by a Ring method is in
// [0, Size()); callers only ever move through it by Forward and Backward.
type Ring struct {
	buf []byte
}

// NewRing allocates a zeroed ring of the given size; a size of 0 uses
// DefaultRingSize.
func NewRing(size uint) *Ring {
	if size == 0 {
		size = DefaultRingSize
	}
	return &Ring{buf: make([]byte, size)}
}

// Size returns the number of addressable bytes.
func (r *Ring) Size() uint { return uint(len(r.buf)) }

// Forward returns the address n bytes past addr, wrapping past the end.
func (r *Ring) Forward(addr, n uint) uint {
	size := r.Size()
	addr += n % size
	if addr >= size {
		addr -= size
	}
	return addr
}

// Backward returns the address n bytes before addr, wrapping past the start.
func (r *Ring) Backward(addr, n uint) uint {
	size := r.Size()
	n %= size
	if n > addr {
		addr += size
	}
	return addr - n
}

// Load returns the byte at addr.
func (r *Ring) Load(addr uint) byte { return r.buf[addr] }

// Stor sets the byte at addr.
func (r *Ring) Stor(addr uint, b byte) { r.buf[addr] = b }

// LoadInto copies len(buf) bytes starting at addr, wrapping as needed.
func (r *Ring) LoadInto(addr uint, buf []byte) {
	for len(buf) > 0 {
		n := copy(buf, r.buf[addr:])
		buf = buf[n:]
		addr = 0
	}
}

// StorFrom copies values into the ring starting at addr, wrapping as needed.
func (r *Ring) StorFrom(addr uint, values ...byte) {
	for len(values) > 0 {
		n := copy(r.buf[addr:], values)
		values = values[n:]
		addr = 0
	}
}

// LoadUint reads a little-endian unsigned integer width bytes wide starting
// at addr. Width must be one of 1, 2, 4, or 8.
func (r *Ring) LoadUint(addr uint, width uint) (val uint64) {
	if err := checkWidth(width); err != nil {
		panic(err)
	}
	end := r.Forward(addr, width-1)
	for i := uint(0); i < width; i++ {
		val = val<<8 | uint64(r.buf[end])
		end = r.Backward(end, 1)
	}
	return val
}

// StorUint writes the low width bytes of val in little-endian order starting
// at addr; any higher bits are discarded.
func (r *Ring) StorUint(addr uint, width uint, val uint64) {
	if err := checkWidth(width); err != nil {
		panic(err)
	}
	for i := uint(0); i < width; i++ {
		r.buf[addr] = byte(val)
		val >>= 8
		addr = r.Forward(addr, 1)
	}
}

// WidthError indicates an unsupported multi-byte value width.
type WidthError uint

func (w WidthError) Error() string {
	return fmt.Sprintf("invalid value width %v", uint(w))
}

func checkWidth(width uint) error {
	switch width {
	case 1, 2, 4, 8:
		return nil
	}
	return WidthError(width)
}
