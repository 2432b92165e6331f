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
	"unsafe"
)

// DoRegister is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/register.c#L11
func (r *Ring) DoRegister(opCode RegisterOpCode, arg unsafe.Pointer, NRArgs uint32) (uint, error) {
	if r.IntFlags&uint8(IntFlagRegRegRing) != 0 {
		opCode |= RegisterOpCodeRegisterUseRegisteredRing
	}

	return r._Register(uint32(opCode), arg, NRArgs)
}

// RegisterBuffers is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/register.c#L59
func (r *Ring) RegisterBuffers(iovecs []syscall.Iovec) (uint, error) {
	return r.DoRegister(RegisterOpCodeRegisterBuffers, unsafe.Pointer(&iovecs[0]), uint32(len(iovecs)))
}

// RegisterBuffersTags is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/register.c#L28
func (r *Ring) RegisterBuffersTags(iovecs []syscall.Iovec, tags []uint64) (uint, error) {
	reg := &RsrcRegister{
		NR:   uint32(len(iovecs)),
		Data: uint64(uintptr(unsafe.Pointer(&iovecs[0]))),
		Tags: uint64(uintptr(unsafe.Pointer(&tags[0]))),
	}
	return r.DoRegister(RegisterOpCodeRegisterBuffers2, unsafe.Pointer(reg), uint32(unsafe.Sizeof(*reg)))
}

// RegisterBuffersSparse is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/register.c#L38
func (r *Ring) RegisterBuffersSparse(numBuffers uint32) (uint, error) {
	reg := &RsrcRegister{
		NR:    numBuffers,
		Flags: RsrcRegisterSparse,
	}
	return r.DoRegister(RegisterOpCodeRegisterBuffers2, unsafe.Pointer(reg), uint32(unsafe.Sizeof(*reg)))
}

// RegisterBuffersUpdateTag is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/register.c#L17
func (r *Ring) RegisterBuffersUpdateTag(offset uint32, iovecs []syscall.Iovec, tags []uint64) (uint, error) {
	update := &RsrcUpdate2{
		Offset: offset,
		Data:   uint64(uintptr(unsafe.Pointer(&iovecs[0]))),
		Tags:   uint64(uintptr(unsafe.Pointer(&tags[0]))),
		NR:     uint32(len(iovecs)),
	}
	return r.DoRegister(RegisterOpCodeRegisterBuffersUpdate, unsafe.Pointer(update), uint32(unsafe.Sizeof(*update)))
}

// UnregisterBuffers is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/register.c#L67
func (r *Ring) UnregisterBuffers() (uint, error) {
	return r.DoRegister(RegisterOpCodeUnregisterBuffers, nil, 0)
}

// RegisterFiles is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/register.c#L125
func (r *Ring) RegisterFiles(fds []int32) (uint, error) {
	return r.DoRegister(RegisterOpCodeRegisterFiles, unsafe.Pointer(&fds[0]), uint32(len(fds)))
}

// RegisterFilesTags is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/register.c#L103
func (r *Ring) RegisterFilesTags(fds []int32, tags []uint64) (uint, error) {
	reg := &RsrcRegister{
		NR:   uint32(len(fds)),
		Data: uint64(uintptr(unsafe.Pointer(&fds[0]))),
		Tags: uint64(uintptr(unsafe.Pointer(&tags[0]))),
	}
	return r.DoRegister(RegisterOpCodeRegisterFiles2, unsafe.Pointer(reg), uint32(unsafe.Sizeof(*reg)))
}

// RegisterFilesSparse is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/register.c#L113
func (r *Ring) RegisterFilesSparse(numFiles uint32) (uint, error) {
	reg := &RsrcRegister{
		NR:    numFiles,
		Flags: RsrcRegisterSparse,
	}
	return r.DoRegister(RegisterOpCodeRegisterFiles2, unsafe.Pointer(reg), uint32(unsafe.Sizeof(*reg)))
}

// RegisterFilesUpdate is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/register.c#L91
//
// The returned count is the number of slots actually updated. An entry of
// RegisterFilesSkip leaves its slot untouched and an entry of -1 clears it.
func (r *Ring) RegisterFilesUpdate(offset uint32, fds []int32) (uint, error) {
	update := &FilesUpdate{
		Offset: offset,
		FDs:    uint64(uintptr(unsafe.Pointer(&fds[0]))),
	}
	return r.DoRegister(RegisterOpCodeRegisterFilesUpdate, unsafe.Pointer(update), uint32(len(fds)))
}

// RegisterFilesUpdateTag is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/register.c#L75
func (r *Ring) RegisterFilesUpdateTag(offset uint32, fds []int32, tags []uint64) (uint, error) {
	update := &RsrcUpdate2{
		Offset: offset,
		Data:   uint64(uintptr(unsafe.Pointer(&fds[0]))),
		Tags:   uint64(uintptr(unsafe.Pointer(&tags[0]))),
		NR:     uint32(len(fds)),
	}
	return r.DoRegister(RegisterOpCodeRegisterFilesUpdate2, unsafe.Pointer(update), uint32(unsafe.Sizeof(*update)))
}

// UnregisterFiles is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/register.c#L133
func (r *Ring) UnregisterFiles() (uint, error) {
	return r.DoRegister(RegisterOpCodeUnregisterFiles, nil, 0)
}

// RegisterEventFD is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/register.c#L141
func (r *Ring) RegisterEventFD(fd int) (uint, error) {
	eventFD := int32(fd)
	return r.DoRegister(RegisterOpCodeRegisterEventFD, unsafe.Pointer(&eventFD), 1)
}

// RegisterEventFDAsync is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/register.c#L157
//
// Like RegisterEventFD, but only ticks the eventfd for events that
// completed out of line.
func (r *Ring) RegisterEventFDAsync(fd int) (uint, error) {
	eventFD := int32(fd)
	return r.DoRegister(RegisterOpCodeRegisterEventFDAsync, unsafe.Pointer(&eventFD), 1)
}

// UnregisterEventFD is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/register.c#L149
func (r *Ring) UnregisterEventFD() (uint, error) {
	return r.DoRegister(RegisterOpCodeUnregisterEventFD, nil, 0)
}

// RegisterProbe is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/register.c#L165
func (r *Ring) RegisterProbe(probe *Probe, numOps uint32) (uint, error) {
	return r.DoRegister(RegisterOpCodeRegisterProbe, unsafe.Pointer(probe), numOps)
}

// RegisterPersonality is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/register.c#L172
//
// The returned value is the personality id to set on entries via
// SetPersonality.
func (r *Ring) RegisterPersonality() (uint, error) {
	return r.DoRegister(RegisterOpCodeRegisterPersonality, nil, 0)
}

// UnregisterPersonality is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/register.c#L178
func (r *Ring) UnregisterPersonality(id uint) (uint, error) {
	return r.DoRegister(RegisterOpCodeUnregisterPersonality, nil, uint32(id))
}

// RegisterRestrictions is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/register.c#L184
//
// Only valid on a ring created with SetupRDisabled, before
// RegisterEnableRings.
func (r *Ring) RegisterRestrictions(restrictions []Restriction) (uint, error) {
	return r.DoRegister(RegisterOpCodeRegisterRestrictions, unsafe.Pointer(&restrictions[0]), uint32(len(restrictions)))
}

// RegisterEnableRings is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/register.c#L191
func (r *Ring) RegisterEnableRings() (uint, error) {
	return r.DoRegister(RegisterOpCodeRegisterEnableRings, nil, 0)
}

// RegisterIOWQMaxWorkers is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/register.c#L204
//
// values holds {bounded, unbounded} limits and is overwritten with the
// previous limits on return.
func (r *Ring) RegisterIOWQMaxWorkers(values *[2]uint32) (uint, error) {
	return r.DoRegister(RegisterOpCodeRegisterIOWQMaxWorkers, unsafe.Pointer(&values[0]), 2)
}

// RegisterBufferRing is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/register.c#L229
func (r *Ring) RegisterBufferRing(reg *BufReg) (uint, error) {
	return r.DoRegister(RegisterOpCodeRegisterPBufRing, unsafe.Pointer(reg), 1)
}

// UnregisterBufferRing is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/register.c#L236
func (r *Ring) UnregisterBufferRing(bufferGroupID int) (uint, error) {
	reg := &BufReg{
		BGID: uint16(bufferGroupID),
	}
	return r.DoRegister(RegisterOpCodeUnregisterPBufRing, unsafe.Pointer(reg), 1)
}

// RegisterSyncCancel is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/register.c#L244
//
// Cancels matching requests synchronously, without consuming a submission
// queue entry. Returns syscall.ENOENT when nothing matched.
func (r *Ring) RegisterSyncCancel(reg *SyncCancelRegister) (uint, error) {
	return r.DoRegister(RegisterOpCodeRegisterSyncCancel, unsafe.Pointer(reg), 1)
}

// RegisterFileAllocRange is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/register.c#L251
func (r *Ring) RegisterFileAllocRange(offset uint32, length uint32) (uint, error) {
	fileRange := &FileIndexRange{
		Offset: offset,
		Length: length,
	}
	return r.DoRegister(RegisterOpCodeRegisterFileAllocRange, unsafe.Pointer(fileRange), 0)
}

// RegisterRingFD is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/register.c#L262
//
// Registers the ring's own file descriptor so subsequent enter calls skip
// the fd lookup. The ring must only be used from the registering task
// afterwards.
func (r *Ring) RegisterRingFD() (uint, error) {
	if r.IntFlags&uint8(IntFlagRegRing) != 0 {
		return 0, syscall.EEXIST
	}

	update := &RsrcUpdate{
		Offset: ^uint32(0),
		Data:   uint64(r.FD),
	}

	res, err := r.DoRegister(RegisterOpCodeRegisterRingFDs, unsafe.Pointer(update), 1)
	if err != nil {
		return res, err
	}
	if res == 1 {
		r.EnterRingFd = int(update.Offset)
		r.IntFlags |= uint8(IntFlagRegRing)
		if r.Features&uint32(FeatureRegRegRing) != 0 {
			r.IntFlags |= uint8(IntFlagRegRegRing)
		}
		logger.Debug().Int("fd", r.FD).Int("registered-fd", r.EnterRingFd).Msg("ring fd registered")
	}
	return res, nil
}

// UnregisterRingFD is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/register.c#L287
func (r *Ring) UnregisterRingFD() (uint, error) {
	if r.IntFlags&uint8(IntFlagRegRing) == 0 {
		return 0, syscall.EINVAL
	}

	update := &RsrcUpdate{
		Offset: uint32(r.EnterRingFd),
	}

	res, err := r.DoRegister(RegisterOpCodeUnregisterRingFDs, unsafe.Pointer(update), 1)
	if err != nil {
		return res, err
	}
	if res == 1 {
		r.EnterRingFd = r.FD
		r.IntFlags &^= uint8(IntFlagRegRing | IntFlagRegRegRing)
	}
	return res, nil
}
