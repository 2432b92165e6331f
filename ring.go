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

var (
	emptyCQEvent CQEvent
	emptySQEntry SQEntry

	cqEventSize = unsafe.Sizeof(emptyCQEvent)
	sqEntrySize = unsafe.Sizeof(emptySQEntry)
	uint32Size  = unsafe.Sizeof(uint32(0))
)

// Ring is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L128
type Ring struct {
	SQ          SubmissionQueue
	CQ          CompletionQueue
	Flags       uint32
	FD          int
	Features    uint32
	EnterRingFd int
	IntFlags    uint8
	_Pad        [3]uint8
	_Pad2       uint32
}

func NewRing() (*Ring, error) {
	if !IsAvailable() {
		return nil, ErrNotAvailable
	}
	return new(Ring), nil
}

// GetSQEntry is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L1320
//
// It returns nil when the submission queue is full; the caller is
// expected to flush (Submit) and retry.
func (r *Ring) GetSQEntry() *SQEntry {
	head := atomic.LoadUint32(r.SQ.KHead)
	next := r.SQ.SQETail + 1
	if next-head <= r.SQ.RingEntries {
		sqe := (*SQEntry)(unsafe.Add(unsafe.Pointer(r.SQ.SQEs), uintptr(r.SQ.SQETail&r.SQ.RingMask)*sqEntrySize))
		r.SQ.SQETail = next
		return sqe
	}
	return nil
}

// SQReady is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L1122
func (r *Ring) SQReady() uint32 {
	head := *r.SQ.KHead
	if r.Flags&uint32(SetupSQPoll) != 0 {
		head = atomic.LoadUint32(r.SQ.KHead)
	}
	return r.SQ.SQETail - head
}

// SQSpaceLeft is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L1139
func (r *Ring) SQSpaceLeft() uint32 {
	return r.SQ.RingEntries - r.SQReady()
}

// SQDropped reports how many invalid submission entries the kernel has
// encountered and skipped.
func (r *Ring) SQDropped() uint32 {
	return atomic.LoadUint32(r.SQ.KDropped)
}

// CQReady is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L1165
func (r *Ring) CQReady() uint32 {
	return atomic.LoadUint32(r.CQ.KTail) - *r.CQ.KHead
}

// CQOverflow reports how many completions the kernel has dropped because
// the completion queue was full. On kernels with FeatureNoDrop the
// overflowed entries are replayed once the queue is drained and the next
// enter call is made.
func (r *Ring) CQOverflow() uint32 {
	return atomic.LoadUint32(r.CQ.KOverflow)
}

// WaitCQEvent is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L1304
func (r *Ring) WaitCQEvent() (*CQEvent, error) {
	cqe, err := r._PeekCQEvent(nil)
	if err == nil && cqe != nil {
		return cqe, nil
	}

	return r.WaitCQEventNR(1)
}

// WaitCQEventNR is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L1233
func (r *Ring) WaitCQEventNR(waitNR uint32) (*CQEvent, error) {
	return r.GetCQEvent(0, waitNR, nil)
}

// _PeekCQEvent is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L1245
func (r *Ring) _PeekCQEvent(nrAvailable *uint32) (cqe *CQEvent, err error) {
	mask := r.CQ.RingMask
	available := uint32(0)
	for {
		tail := atomic.LoadUint32(r.CQ.KTail)
		head := *r.CQ.KHead

		cqe = nil
		available = tail - head
		if available == 0 {
			break
		}

		cqe = (*CQEvent)(
			unsafe.Add(unsafe.Pointer(r.CQ.CQEs), uintptr(head&mask)*cqEventSize),
		)

		if r.Features&uint32(FeatureExtArg) == 0 && cqe.UserData == LIBURING_UDATA_TIMEOUT {
			if cqe.Res < 0 {
				err = syscall.Errno(uintptr(-cqe.Res))
			}
			r.CQAdvance(1)
			if err == nil {
				continue
			}
			cqe = nil
		}

		break
	}

	if nrAvailable != nil {
		*nrAvailable = available
	}

	return
}

// PeekCQEvent is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L1291
func (r *Ring) PeekCQEvent() (cqe *CQEvent, err error) {
	cqe, err = r._PeekCQEvent(nil)
	if err == nil && cqe != nil {
		return cqe, nil
	}

	return r.WaitCQEventNR(0)
}

// PeekBatchCQEvents is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/queue.c#L129
func (r *Ring) PeekBatchCQEvents(cqes []*CQEvent) uint32 {
	var overflowChecked bool
	count := uint32(len(cqes))

again:
	if ready := r.CQReady(); ready != 0 {
		if count > ready {
			count = ready
		}
		head := *r.CQ.KHead
		mask := r.CQ.RingMask
		for i := uint32(0); i < count; i, head = i+1, head+1 {
			cqes[i] = (*CQEvent)(unsafe.Add(unsafe.Pointer(r.CQ.CQEs), uintptr(head&mask)*cqEventSize))
		}
		return count
	}

	if overflowChecked {
		return 0
	}

	if r.CQNeedsFlush() {
		_, _ = r.GetEvents()
		overflowChecked = true
		goto again
	}

	return 0
}

// CQESeen is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L319
func (r *Ring) CQESeen(cqe *CQEvent) {
	if cqe != nil {
		r.CQAdvance(1)
	}
}

// CQAdvance is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L302
func (r *Ring) CQAdvance(numCQEs uint32) {
	if numCQEs > 0 {
		atomic.StoreUint32(r.CQ.KHead, *r.CQ.KHead+numCQEs)
	}
}

func (r *Ring) Close() error {
	if r.IntFlags&uint8(IntFlagRegRing) != 0 {
		_, _ = r.UnregisterRingFD()
	}

	MUnmap(&r.SQ, &r.CQ)

	logger.Debug().Int("fd", r.FD).Msg("ring closed")

	return syscall.Close(r.FD)
}
