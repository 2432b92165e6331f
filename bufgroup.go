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
	"syscall"

	"github.com/loopholelabs/uring/pkg/buffer"
)

// BufferGroup owns a provided-buffer ring together with the fixed-size
// buffers behind it. Operations submitted with SQEFlagBufferSelect and
// the group's id let the kernel pick a free buffer at completion time;
// the completion's BufferID names the buffer that was used, and Recycle
// hands it back to the kernel.
//
// When every buffer is out on loan, further selecting operations fail
// with -ENOBUFS until one is recycled.
type BufferGroup struct {
	ring    *Ring
	br      *BufferAndRing
	buffers []*buffer.Fixed
	entries uint32
	mask    uint16
	bgid    uint16
}

// SetupBufferGroup allocates entries buffers of bufferSize bytes each and
// registers them as provided-buffer group bufferGroupID. entries must be
// a power of two.
func (r *Ring) SetupBufferGroup(entries uint32, bufferSize int64, bufferGroupID uint16) (*BufferGroup, error) {
	if entries == 0 || entries&(entries-1) != 0 {
		return nil, syscall.EINVAL
	}

	br, err := r.SetupBufRing(entries, bufferGroupID)
	if err != nil {
		return nil, err
	}

	g := &BufferGroup{
		ring:    r,
		br:      br,
		buffers: make([]*buffer.Fixed, entries),
		entries: entries,
		mask:    BufferRingMask(entries),
		bgid:    bufferGroupID,
	}

	for i := uint32(0); i < entries; i++ {
		buf, err := buffer.NewFixed(bufferSize)
		if err != nil {
			_ = g.Close()
			return nil, err
		}
		g.buffers[i] = buf
		br.Add(buf.AddressPointer(), uint32(buf.Cap()), uint16(i), g.mask, uint16(i))
	}
	br.Advance(uint16(entries))

	return g, nil
}

// BGID returns the group id to set on entries via SetBufferGroup.
func (g *BufferGroup) BGID() uint16 {
	return g.bgid
}

// Buffer returns the full backing slice of the given buffer id. For a
// completed operation, slice it to the completion's Res.
func (g *BufferGroup) Buffer(bid uint16) []byte {
	buf := *g.buffers[bid]
	return buf[:cap(buf)]
}

// Recycle returns a loaned buffer to the kernel. Buffers go back in
// recycle order, not id order.
func (g *BufferGroup) Recycle(bid uint16) {
	buf := g.buffers[bid]
	g.br.Add(buf.AddressPointer(), uint32(buf.Cap()), bid, g.mask, 0)
	g.br.Advance(1)
}

// Close unregisters the buffer ring and releases the backing buffers.
func (g *BufferGroup) Close() error {
	err := g.ring.FreeBufRing(g.br, g.entries, g.bgid)
	for _, buf := range g.buffers {
		if buf == nil {
			continue
		}
		if closeErr := buf.Close(); err == nil {
			err = closeErr
		}
	}
	g.buffers = nil
	return err
}
