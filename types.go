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

// SQRingOffsets is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing/io_uring.h#L400
type SQRingOffsets struct {
	Head        uint32
	Tail        uint32
	RingMask    uint32
	RingEntries uint32
	Flags       uint32
	Dropped     uint32
	Array       uint32
	ResV1       uint32
	ResV2       uint64
}

// CQRingOffsets is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing/io_uring.h#L419
type CQRingOffsets struct {
	Head        uint32
	Tail        uint32
	RingMask    uint32
	RingEntries uint32
	Overflow    uint32
	CQEs        uint32
	Flags       uint32
	ResV1       uint32
	ResV2       uint64
}

// Params is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing/io_uring.h#L450
type Params struct {
	SQEntries    uint32
	CQEntries    uint32
	Flags        uint32
	SQThreadCPU  uint32
	SQThreadIdle uint32
	Features     uint32
	WQFD         uint32
	ResV         [3]uint32
	SQOffsets    SQRingOffsets
	CQOffsets    CQRingOffsets
}

// CQEvent is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing/io_uring.h#L357
type CQEvent struct {
	UserData uint64
	Res      int32
	Flags    uint32

	// BigCQE is only required when the ring is initialized with IORING_SETUP_CQE32.
	// Since we don't support IORING_SETUP_CQE32, we don't need to define BigCQE.
	//BigCQE   []uint64
}

// BufferID returns the provided buffer the kernel selected for this
// completion. Only meaningful when CQEFlagBuffer is set.
func (c *CQEvent) BufferID() uint16 {
	return uint16(c.Flags >> CQEBufferShift)
}

// More reports whether further completions from the same multishot
// submission are expected.
func (c *CQEvent) More() bool {
	return c.Flags&uint32(CQEFlagMore) != 0
}

// Err converts a negative Res into the matching errno, or nil.
func (c *CQEvent) Err() error {
	if c.Res < 0 {
		return syscall.Errno(uintptr(-c.Res))
	}
	return nil
}

// UnionAddress3 is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing/io_uring.h#L88
type UnionAddress3 struct {
	Address3 uint64
	_Pad2    [1]uint64
}

// SQEntry is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing/io_uring.h#L30
type SQEntry struct {
	OpCode                 uint8
	Flags                  uint8
	IOPriority             uint16
	FD                     int32
	UnionOffset            uint64
	UnionAddress           uint64
	Length                 uint32
	UnionRWFlags           uint32
	UserData               uint64
	UnionBufferIndexPacked uint16
	Personality            uint16
	UnionSplicedFDIn       int32
	UnionAddress3          UnionAddress3
}

// SubmissionQueue is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L84
type SubmissionQueue struct {
	KHead         *uint32
	KTail         *uint32
	_KRingMask    *uint32 // Deprecated: use `RingMask` instead of `*_KRingMask`
	_KRingEntries *uint32 // Deprecated: use `RingEntries` instead of `*_KRingEntries`
	KFlags        *uint32
	KDropped      *uint32
	Array         *uint32
	SQEs          *SQEntry
	SQEHead       uint32
	SQETail       uint32
	RingSize      uint
	RingPointer   unsafe.Pointer
	RingMask      uint32
	RingEntries   uint32
	_Pad          [2]uint32
}

// CompletionQueue is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L108
type CompletionQueue struct {
	KHead         *uint32
	KTail         *uint32
	_KRingMask    *uint32 // Deprecated: use `RingMask` instead of `*_KRingMask`
	_KRingEntries *uint32 // Deprecated: use `RingEntries` instead of `*_KRingEntries`
	KFlags        *uint32
	KOverflow     *uint32
	CQEs          *CQEvent
	RingSize      uint
	RingPointer   unsafe.Pointer
	RingMask      uint32
	RingEntries   uint32
	_Pad          [2]uint32
}

// GetData is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/queue.c#L54
type GetData struct {
	Submit   uint32
	WaitNR   uint32
	GetFlags uint32
	Size     int
	HasTS    uint8
	Arg      unsafe.Pointer
}

// GetEventsArg is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing/io_uring.h#L494
type GetEventsArg struct {
	SigMask     uint64
	SigMaskSize uint32
	_Pad        uint32
	TS          uint64
}

// OpCode is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing/io_uring.h#L176
type OpCode uint8

const (
	OpCodeNOP OpCode = iota
	OpCodeReadV
	OpCodeWriteV
	OpCodeFsync
	OpCodeReadFixed
	OpCodeWriteFixed
	OpCodePollAdd
	OpCodePollRemove
	OpCodeSyncFileRange
	OpCodeSendMsg
	OpCodeRecvMsg
	OpCodeTimeout
	OpCodeTimeoutRemove
	OpCodeAccept
	OpCodeAsyncCancel
	OpCodeLinkTimeout
	OpCodeConnect
	OpCodeFallocate
	OpCodeOpenat
	OpCodeClose
	OpCodeFilesUpdate
	OpCodeStatx
	OpCodeRead
	OpCodeWrite
	OpCodeFadvise
	OpCodeMadvise
	OpCodeSend
	OpCodeRecv
	OpCodeOpenat2
	OpCodeEpollCtl
	OpCodeSplice
	OpCodeProvideBuffers
	OpCodeRemoveBuffers
	OpCodeTee
	OpCodeShutdown
	OpCodeRenameat
	OpCodeUnlinkat
	OpCodeMkdirat
	OpCodeSymlinkat
	OpCodeLinkat
	OpCodeMsgRing
	OpCodeFsetxattr
	OpCodeSetxattr
	OpCodeFgetxattr
	OpCodeGetxattr
	OpCodeSocket
	OpCodeUringCmd
	OpCodeSendZC
	OpCodeSendMsgZC

	OpCodeLast
)

// SQEFlag is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing/io_uring.h#L98
type SQEFlag uint8

const (
	SQEFlagFixedFile SQEFlag = 1 << iota
	SQEFlagIODrain
	SQEFlagIOLink
	SQEFlagIOHardlink
	SQEFlagAsync
	SQEFlagBufferSelect
	SQEFlagCQESkipSuccess
)

// Setup is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing/io_uring.h#L140
type Setup uint32

const (
	SetupIOPoll Setup = 1 << iota
	SetupSQPoll
	SetupSQAff
	SetupCQSize
	SetupClamp
	SetupAttachWQ
	SetupRDisabled
	SetupSubmitAll
	SetupCoopTaskRun
	SetupTaskRunFlag
	SetupSQE128
	SetupCQE32
	SetupSingleIssuer
	SetupDeferTaskRun
	SetupNoMMap
	SetupRegisteredFDOnly
)

// SQStatus is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing/io_uring.h#L415
type SQStatus uint32

const (
	SQStatusNeedWakeup SQStatus = 1 << iota
	SQStatusCQOverflow
	SQStatusTaskRun
)

// CQStatus is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing/io_uring.h#L431
type CQStatus uint32

const (
	CQStatusEventFDDisabled CQStatus = 1 << iota
)

// CQEFlag is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing/io_uring.h#L373
type CQEFlag uint32

const (
	CQEFlagBuffer CQEFlag = 1 << iota
	CQEFlagMore
	CQEFlagSockNonempty
	CQEFlagNotification
)

const (
	CQEBufferShift = 16
)

// Enter is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing/io_uring.h#L441
type Enter uint32

const (
	EnterGetEvents Enter = 1 << iota
	EnterSQWakeup
	EnterSQWait
	EnterExtArg
	EnterRegisteredRing
)

// IntFlag is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/int_flags.h#L5
type IntFlag uint8

const (
	IntFlagRegRing    IntFlag = 1
	IntFlagRegRegRing IntFlag = 2
)

// Feature is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing/io_uring.h#L466
type Feature uint32

const (
	FeatureSingleMMap Feature = 1 << iota
	FeatureNoDrop
	FeatureSubmitStable
	FeatureRWCurPos
	FeatureCurPersonality
	FeatureFastPoll
	FeaturePoll32Bits
	FeatureSQPollNonfixed
	FeatureExtArg
	FeatureNativeWorkers
	FeatureRsrcTags
	FeatureCQESkip
	FeatureLinkedFile
	FeatureRegRegRing
)

// RegisterOpCode is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing/io_uring.h#L509
type RegisterOpCode uint32

const (
	RegisterOpCodeRegisterBuffers RegisterOpCode = iota
	RegisterOpCodeUnregisterBuffers
	RegisterOpCodeRegisterFiles
	RegisterOpCodeUnregisterFiles
	RegisterOpCodeRegisterEventFD
	RegisterOpCodeUnregisterEventFD
	RegisterOpCodeRegisterFilesUpdate
	RegisterOpCodeRegisterEventFDAsync
	RegisterOpCodeRegisterProbe
	RegisterOpCodeRegisterPersonality
	RegisterOpCodeUnregisterPersonality
	RegisterOpCodeRegisterRestrictions
	RegisterOpCodeRegisterEnableRings
	RegisterOpCodeRegisterFiles2
	RegisterOpCodeRegisterFilesUpdate2
	RegisterOpCodeRegisterBuffers2
	RegisterOpCodeRegisterBuffersUpdate
	RegisterOpCodeRegisterIOWQAff
	RegisterOpCodeUnregisterIOWQAff
	RegisterOpCodeRegisterIOWQMaxWorkers
	RegisterOpCodeRegisterRingFDs
	RegisterOpCodeUnregisterRingFDs
	RegisterOpCodeRegisterPBufRing
	RegisterOpCodeUnregisterPBufRing
	RegisterOpCodeRegisterSyncCancel
	RegisterOpCodeRegisterFileAllocRange

	RegisterOpCodeLast

	RegisterOpCodeRegisterUseRegisteredRing RegisterOpCode = 1 << 31
)

// RestrictionOpCode is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing/io_uring.h#L561
type RestrictionOpCode uint32

const (
	RestrictionOpCodeRegisterOp RestrictionOpCode = iota
	RestrictionOpCodeSQEOp
	RestrictionOpCodeSQEFlagsAllowed
	RestrictionOpCodeSQEFlagsRequired

	RestrictionOpCodeLast
)

// CancelFlag is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing/io_uring.h#L262
type CancelFlag uint32

const (
	CancelFlagAll CancelFlag = 1 << iota
	CancelFlagFD
	CancelFlagAny
	CancelFlagFDFixed
)

// TimeoutFlag is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing/io_uring.h#L244
type TimeoutFlag uint32

const (
	TimeoutFlagAbs TimeoutFlag = 1 << iota
	TimeoutFlagUpdate
	TimeoutFlagBoottime
	TimeoutFlagRealtime
	TimeoutFlagLinkUpdate
	TimeoutFlagETimeSuccess
)

// FsyncFlagDatasync is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing/io_uring.h#L230
const FsyncFlagDatasync uint32 = 1 << 0

// PollFlag is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing/io_uring.h#L280
type PollFlag uint32

const (
	PollFlagAddMulti PollFlag = 1 << iota
	PollFlagUpdateEvents
	PollFlagUpdateUserData
	PollFlagAddLevel
)

// SpliceFlagFDInFixed is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing/io_uring.h#L235
const SpliceFlagFDInFixed uint32 = 1 << 31

// RecvSendFlag is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing/io_uring.h#L296
type RecvSendFlag uint16

const (
	RecvSendFlagPollFirst RecvSendFlag = 1 << iota
	RecvSendFlagRecvMultishot
	RecvSendFlagFixedBuf
	RecvSendFlagZCReportUsage
)

// AcceptFlag is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing/io_uring.h#L292
type AcceptFlag uint16

const (
	AcceptFlagMultishot AcceptFlag = 1 << iota
)

// FileIndexAlloc is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing/io_uring.h#L63
const FileIndexAlloc uint32 = ^uint32(0)

// RegisterFilesSkip is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing/io_uring.h#L537
const RegisterFilesSkip int32 = -2

// FilesUpdate is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing/io_uring.h#L541
type FilesUpdate struct {
	Offset uint32
	ResV   uint32
	FDs    uint64
}

// RsrcRegisterSparse is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing/io_uring.h#L550
const RsrcRegisterSparse uint32 = 1 << 0

// RsrcRegister is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing/io_uring.h#L552
type RsrcRegister struct {
	NR    uint32
	Flags uint32
	ResV2 uint64
	Data  uint64
	Tags  uint64
}

// RsrcUpdate is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing/io_uring.h#L560
type RsrcUpdate struct {
	Offset uint32
	ResV   uint32
	Data   uint64
}

// RsrcUpdate2 is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing/io_uring.h#L566
type RsrcUpdate2 struct {
	Offset uint32
	ResV   uint32
	Data   uint64
	Tags   uint64
	NR     uint32
	ResV2  uint32
}

// Restriction is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing/io_uring.h#L575
type Restriction struct {
	OpCode  uint16
	OpFlags uint8
	ResV    uint8
	ResV2   [3]uint32
}

// SyncCancelRegister is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing/io_uring.h#L613
type SyncCancelRegister struct {
	Address uint64
	FD      int32
	Flags   uint32
	Timeout syscall.Timespec
	_Pad    [4]uint64
}

// FileIndexRange is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing/io_uring.h#L622
type FileIndexRange struct {
	Offset uint32
	Length uint32
	ResV   uint64
}

const (
	// LIBURING_UDATA_TIMEOUT is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L66
	LIBURING_UDATA_TIMEOUT = ^uint64(0)

	// _NSIG is defined here: https://github.com/torvalds/linux/blob/v6.5/include/uapi/asm-generic/signal.h#L7
	_NSIG = 64
)
