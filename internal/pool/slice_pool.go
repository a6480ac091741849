package pool

import "sync"

// Slice pools for reuse of latent-variable scratch buffers. No package in
// this module calls them: the chunk compressor and decompressor allocate
// their per-page scratch slices directly.
var (
	uint16SlicePool = sync.Pool{
		New: func() any { return &[]uint16{} },
	}
	uint32SlicePool = sync.Pool{
		New: func() any { return &[]uint32{} },
	}
	uint64SlicePool = sync.Pool{
		New: func() any { return &[]uint64{} },
	}
)

// GetUint16Slice retrieves and resizes a uint16 scratch slice from the pool.
//
// The returned slice will have the exact length specified by the size
// parameter. The caller must call the returned cleanup function (typically
// with defer) to return the slice to the pool.
func GetUint16Slice(size int) ([]uint16, func()) {
	ptr, _ := uint16SlicePool.Get().(*[]uint16)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]uint16, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() { uint16SlicePool.Put(ptr) }
}

// GetUint32Slice is GetUint16Slice's 32-bit counterpart.
func GetUint32Slice(size int) ([]uint32, func()) {
	ptr, _ := uint32SlicePool.Get().(*[]uint32)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]uint32, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() { uint32SlicePool.Put(ptr) }
}

// GetUint64Slice is GetUint16Slice's 64-bit counterpart.
func GetUint64Slice(size int) ([]uint64, func()) {
	ptr, _ := uint64SlicePool.Get().(*[]uint64)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]uint64, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() { uint64SlicePool.Put(ptr) }
}
