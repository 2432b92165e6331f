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
)

// CancelBuilder describes which in-flight operations a cancellation
// request should match: a user data value, a file descriptor (direct or
// fixed), or any operation on the ring. By default only the first match
// is canceled; All widens it to every match.
type CancelBuilder struct {
	flags    CancelFlag
	userData uint64
	fd       int32
}

// CancelUserData matches operations whose SQEntry carried the given
// user data.
func CancelUserData(userData uint64) *CancelBuilder {
	return &CancelBuilder{userData: userData}
}

// CancelFD matches operations on the given file descriptor.
func CancelFD(fd int) *CancelBuilder {
	return &CancelBuilder{flags: CancelFlagFD, fd: int32(fd)}
}

// CancelFixedFD matches operations on the given registered file index.
func CancelFixedFD(fileIndex uint32) *CancelBuilder {
	return &CancelBuilder{flags: CancelFlagFD | CancelFlagFDFixed, fd: int32(fileIndex)}
}

// CancelAny matches every in-flight operation on the ring.
func CancelAny() *CancelBuilder {
	return &CancelBuilder{flags: CancelFlagAny}
}

// All widens the match from the first matching operation to every
// matching operation. The completion's Res reports how many were
// canceled.
func (b *CancelBuilder) All() *CancelBuilder {
	b.flags |= CancelFlagAll
	return b
}

// PrepareCancel is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L686
//
// The canceled operations complete with -ECANCELED; this entry's own
// completion reports the match count (or -ENOENT when nothing matched).
func (e *SQEntry) PrepareCancel(builder *CancelBuilder) {
	e.PrepareAsyncCancel(builder.userData, uint32(builder.flags))
	e.FD = builder.fd
}

// SyncCancel is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/register.c#L244
//
// Cancels matching operations without consuming a submission queue entry,
// waiting up to timeout (nil waits indefinitely) for them to complete.
// Returns syscall.ENOENT when nothing matched.
func (r *Ring) SyncCancel(builder *CancelBuilder, timeout *syscall.Timespec) error {
	reg := &SyncCancelRegister{
		Address: builder.userData,
		FD:      builder.fd,
		Flags:   uint32(builder.flags),
		Timeout: syscall.Timespec{Sec: -1, Nsec: -1},
	}
	if timeout != nil {
		reg.Timeout = *timeout
	}
	_, err := r.RegisterSyncCancel(reg)
	return err
}
