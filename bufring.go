//go:build linux

/*
	Copyright 2023 Loophole Labs

	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at

		   http://www.apache.org/licenses/LICENSE-2.0

	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

package uring

import (
	"sync/atomic"
	"syscall"
	"unsafe"
)

var bufferAndRingSize = uintptr(unsafe.Sizeof(BufferAndRing{}))

// BufferAndRing is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing/io_uring.h#L560
//
// It is both a single descriptor in a provided-buffer ring and, through
// the first entry, the ring head itself: the Tail field of entry zero is
// the ring tail the kernel reads. Add never touches the Tail field of the
// slot it writes, so descriptors and the tail can share the mapping.
type BufferAndRing struct {
	Address uint64
	Length  uint32
	BID     uint16
	Tail    uint16
}

// BufReg is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing/io_uring.h#L609
type BufReg struct {
	RingAddress uint64
	RingEntries uint32
	BGID        uint16
	_Pad        uint16
	_Resv       [3]uint64
}

// Init is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L1138
func (br *BufferAndRing) Init() {
	br.Tail = 0
}

// Add is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L1147
//
// Stages the buffer at (tail + offset) & mask. The kernel does not see it
// until a matching Advance publishes the tail.
func (br *BufferAndRing) Add(addressPointer uintptr, length uint32, bid uint16, mask uint16, offset uint16) {
	buf := (*BufferAndRing)(unsafe.Pointer(uintptr(unsafe.Pointer(br)) +
		uintptr((br.Tail+offset)&mask)*bufferAndRingSize))
	buf.Address = uint64(addressPointer)
	buf.Length = length
	buf.BID = bid
}

// Advance is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L1166
//
// Publishes count staged buffers to the kernel. The tail shares a 32-bit
// word with the BID of entry zero, so both are stored together with
// release semantics. The packing below puts the tail in the upper half,
// which only lines up with the Tail field on little-endian targets (the
// only ones io_uring runs on in practice).
func (br *BufferAndRing) Advance(count uint16) {
	newTail := br.Tail + count
	bidAndTail := (*uint32)(unsafe.Pointer(&br.BID))
	atomic.StoreUint32(bidAndTail, uint32(newTail)<<16|uint32(br.BID))
}

// BufRingCQAdvance is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L1178
//
// Returns count buffers to the ring and consumes count completions in one
// step, for the common case of one buffer per completion.
func (r *Ring) BufRingCQAdvance(br *BufferAndRing, count uint16) {
	br.Advance(count)
	r.CQAdvance(uint32(count))
}

// BufferRingMask is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L1133
func BufferRingMask(entries uint32) uint16 {
	return uint16(entries - 1)
}

// SetupBufRing is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/setup.c#L576
//
// entries must be a power of two. The returned ring is registered under
// bufferGroupID and must be released with FreeBufRing.
func (r *Ring) SetupBufRing(entries uint32, bufferGroupID uint16) (*BufferAndRing, error) {
	ringSize := uintptr(entries) * bufferAndRingSize
	address, err := mmap(0, ringSize, syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_ANONYMOUS|syscall.MAP_PRIVATE, -1, 0)
	if err != nil {
		return nil, err
	}
	br := (*BufferAndRing)(unsafe.Pointer(address))

	reg := &BufReg{
		RingAddress: uint64(address),
		RingEntries: entries,
		BGID:        bufferGroupID,
	}
	_, err = r.RegisterBufferRing(reg)
	if err != nil {
		_ = munmap(address, ringSize)
		return nil, err
	}

	br.Init()
	return br, nil
}

// FreeBufRing is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/setup.c#L607
func (r *Ring) FreeBufRing(br *BufferAndRing, entries uint32, bufferGroupID uint16) error {
	_, err := r.UnregisterBufferRing(int(bufferGroupID))
	if unmapErr := munmap(uintptr(unsafe.Pointer(br)), uintptr(entries)*bufferAndRingSize); err == nil {
		err = unmapErr
	}
	return err
}
