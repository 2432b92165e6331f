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
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestABISizes(t *testing.T) {
	require.Equal(t, uintptr(64), unsafe.Sizeof(SQEntry{}))
	require.Equal(t, uintptr(16), unsafe.Sizeof(CQEvent{}))
	require.Equal(t, uintptr(120), unsafe.Sizeof(Params{}))
	require.Equal(t, uintptr(16), unsafe.Sizeof(BufferAndRing{}))
	require.Equal(t, uintptr(24), unsafe.Sizeof(GetEventsArg{}))
	require.Equal(t, uintptr(64), unsafe.Sizeof(SyncCancelRegister{}))
}

func TestPrepareRWClearsPreviousState(t *testing.T) {
	e := &SQEntry{}
	e.PrepareAccept(7, 0xdead, 0xbeef, 1)
	e.SetUserData(42)
	e.SetFlags(SQEFlagIOLink)
	e.SetPersonality(3)

	e.PrepareNOP()

	require.Equal(t, uint8(OpCodeNOP), e.OpCode)
	require.Equal(t, int32(-1), e.FD)
	require.Equal(t, uint8(0), e.Flags)
	require.Equal(t, uint64(0), e.UserData)
	require.Equal(t, uint16(0), e.Personality)
	require.Equal(t, uint32(0), e.UnionRWFlags)
	require.Equal(t, uint64(0), e.UnionOffset)
	require.Equal(t, uint64(0), e.UnionAddress)
}

func TestPrepareRead(t *testing.T) {
	e := &SQEntry{}
	e.PrepareRead(3, 0x1000, 512, 4096)

	require.Equal(t, uint8(OpCodeRead), e.OpCode)
	require.Equal(t, int32(3), e.FD)
	require.Equal(t, uint64(0x1000), e.UnionAddress)
	require.Equal(t, uint32(512), e.Length)
	require.Equal(t, uint64(4096), e.UnionOffset)
}

func TestPrepareWriteFixed(t *testing.T) {
	e := &SQEntry{}
	e.PrepareWriteFixed(5, 0x2000, 128, 0, 9)

	require.Equal(t, uint8(OpCodeWriteFixed), e.OpCode)
	require.Equal(t, uint16(9), e.UnionBufferIndexPacked)
}

func TestPrepareSplice(t *testing.T) {
	e := &SQEntry{}
	e.PrepareSplice(4, -1, 5, 100, 4096, 0)

	require.Equal(t, uint8(OpCodeSplice), e.OpCode)
	require.Equal(t, int32(5), e.FD)
	require.Equal(t, int32(4), e.UnionSplicedFDIn)
	require.Equal(t, uint64(100), e.UnionOffset)
	require.Equal(t, uint64(0xffffffffffffffff), e.UnionAddress)
	require.Equal(t, uint32(4096), e.Length)
}

func TestPrepareTimeoutUpdate(t *testing.T) {
	e := &SQEntry{}
	e.PrepareTimeoutUpdate(0x3000, 77, 0)

	require.Equal(t, uint8(OpCodeTimeoutRemove), e.OpCode)
	require.Equal(t, uint64(0x3000), e.UnionOffset)
	require.Equal(t, uint64(77), e.UnionAddress)
	require.Equal(t, uint32(TimeoutFlagUpdate), e.UnionRWFlags)
}

func TestPrepareMultishotAccept(t *testing.T) {
	e := &SQEntry{}
	e.PrepareMultishotAccept(8, 0, 0, 0)

	require.Equal(t, uint8(OpCodeAccept), e.OpCode)
	require.Equal(t, uint16(AcceptFlagMultishot), e.IOPriority)
	require.Equal(t, int32(0), e.UnionSplicedFDIn)

	e.PrepareMultishotAcceptDirect(8, 0, 0, 0)
	require.Equal(t, int32(-1), e.UnionSplicedFDIn)
}

func TestPrepareRecvMultishot(t *testing.T) {
	e := &SQEntry{}
	e.PrepareRecvMultishot(6, 0x4000, 1024, 0)

	require.Equal(t, uint8(OpCodeRecv), e.OpCode)
	require.Equal(t, uint16(RecvSendFlagRecvMultishot), e.IOPriority)
}

func TestPrepareProvideBuffers(t *testing.T) {
	e := &SQEntry{}
	e.PrepareProvideBuffers(0x5000, 4096, 8, 3, 0)

	require.Equal(t, uint8(OpCodeProvideBuffers), e.OpCode)
	require.Equal(t, int32(8), e.FD)
	require.Equal(t, uint64(0x5000), e.UnionAddress)
	require.Equal(t, uint32(4096), e.Length)
	require.Equal(t, uint16(3), e.UnionBufferIndexPacked)
}

func TestPrepareCancel(t *testing.T) {
	e := &SQEntry{}
	e.PrepareCancel(CancelUserData(99))

	require.Equal(t, uint8(OpCodeAsyncCancel), e.OpCode)
	require.Equal(t, uint64(99), e.UnionAddress)
	require.Equal(t, uint32(0), e.UnionRWFlags)

	e.PrepareCancel(CancelFD(12).All())
	require.Equal(t, int32(12), e.FD)
	require.Equal(t, uint32(CancelFlagFD|CancelFlagAll), e.UnionRWFlags)

	e.PrepareCancel(CancelAny())
	require.Equal(t, uint32(CancelFlagAny), e.UnionRWFlags)
}

func TestPrepareSocketDirectAlloc(t *testing.T) {
	e := &SQEntry{}
	e.PrepareSocketDirectAlloc(2, 1, 0, 0)

	require.Equal(t, uint8(OpCodeSocket), e.OpCode)
	require.Equal(t, int32(2), e.FD)
	require.Equal(t, uint64(1), e.UnionOffset)
	require.Equal(t, uint32(0), e.Length)
	require.Equal(t, int32(-1), e.UnionSplicedFDIn)
}

func TestSetBufferGroup(t *testing.T) {
	e := &SQEntry{}
	e.PrepareRecv(4, 0, 1024, 0)
	e.SetFlags(SQEFlagBufferSelect)
	e.SetBufferGroup(7)

	require.Equal(t, uint8(SQEFlagBufferSelect), e.Flags)
	require.Equal(t, uint16(7), e.UnionBufferIndexPacked)
}
