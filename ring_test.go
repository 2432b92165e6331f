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
	"errors"
	"os"
	"syscall"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func newTestRing(t *testing.T, entries uint32, flags uint32) *Ring {
	t.Helper()

	if !IsAvailable() {
		t.Skip("io_uring is not available")
	}

	ring, err := NewRing()
	require.NoError(t, err)

	err = ring.QueueInit(entries, flags)
	if errors.Is(err, syscall.EPERM) {
		t.Skip("io_uring is not permitted")
	}
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = ring.Close()
	})

	return ring
}

func TestSetupRingSyscall(t *testing.T) {
	if !IsAvailable() {
		t.Skip("io_uring is not available")
	}

	params := new(Params)
	params.Flags = uint32(SetupClamp)

	fd, err := SetupRing(8, params)
	if errors.Is(err, syscall.EPERM) {
		t.Skip("io_uring is not permitted")
	}
	require.NoError(t, err)
	require.NoError(t, syscall.Close(fd))
}

func TestQueueInitRejectsCQE32(t *testing.T) {
	if !IsAvailable() {
		t.Skip("io_uring is not available")
	}

	ring, err := NewRing()
	require.NoError(t, err)

	err = ring.QueueInit(8, uint32(SetupCQE32))
	require.ErrorIs(t, err, syscall.EINVAL)
}

func TestNOPRoundtrip(t *testing.T) {
	ring := newTestRing(t, 8, 0)

	sqe := ring.GetSQEntry()
	require.NotNil(t, sqe)
	sqe.PrepareNOP()
	sqe.SetUserData(0xcafe)

	submitted, err := ring.SubmitAndWait(1)
	require.NoError(t, err)
	require.Equal(t, uint(1), submitted)

	cqe, err := ring.WaitCQEvent()
	require.NoError(t, err)
	require.Equal(t, uint64(0xcafe), cqe.UserData)
	require.Equal(t, int32(0), cqe.Res)
	require.NoError(t, cqe.Err())
	ring.CQESeen(cqe)

	require.Equal(t, uint32(0), ring.CQReady())
}

func TestGetSQEntryFullQueue(t *testing.T) {
	ring := newTestRing(t, 4, 0)

	for i := 0; i < 4; i++ {
		sqe := ring.GetSQEntry()
		require.NotNil(t, sqe)
		sqe.PrepareNOP()
		sqe.SetUserData(uint64(i))
	}
	require.Nil(t, ring.GetSQEntry())
	require.Equal(t, uint32(0), ring.SQSpaceLeft())

	submitted, err := ring.SubmitAndWait(4)
	require.NoError(t, err)
	require.Equal(t, uint(4), submitted)

	require.NotNil(t, ring.GetSQEntry())
}

func TestPeekBatchCQEvents(t *testing.T) {
	ring := newTestRing(t, 8, 0)

	for i := 0; i < 5; i++ {
		sqe := ring.GetSQEntry()
		require.NotNil(t, sqe)
		sqe.PrepareNOP()
		sqe.SetUserData(uint64(i))
	}

	_, err := ring.SubmitAndWait(5)
	require.NoError(t, err)

	cqes := make([]*CQEvent, 8)
	count := ring.PeekBatchCQEvents(cqes)
	require.Equal(t, uint32(5), count)
	for i := uint32(0); i < count; i++ {
		require.Equal(t, uint64(i), cqes[i].UserData)
	}
	ring.CQAdvance(count)

	require.Equal(t, uint32(0), ring.CQReady())
}

func TestLinkedWriteRead(t *testing.T) {
	ring := newTestRing(t, 8, 0)

	file, err := os.CreateTemp(t.TempDir(), "linked")
	require.NoError(t, err)
	defer func() {
		_ = file.Close()
	}()

	payload := []byte("hello io_uring")
	readBack := make([]byte, len(payload))

	sqe := ring.GetSQEntry()
	require.NotNil(t, sqe)
	sqe.PrepareWrite(int(file.Fd()), uintptr(unsafe.Pointer(&payload[0])), uint32(len(payload)), 0)
	sqe.SetUserData(1)
	sqe.SetFlags(SQEFlagIOLink)

	sqe = ring.GetSQEntry()
	require.NotNil(t, sqe)
	sqe.PrepareRead(int(file.Fd()), uintptr(unsafe.Pointer(&readBack[0])), uint32(len(readBack)), 0)
	sqe.SetUserData(2)

	_, err = ring.SubmitAndWait(2)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		cqe, err := ring.WaitCQEvent()
		require.NoError(t, err)
		require.NoError(t, cqe.Err())
		require.Equal(t, int32(len(payload)), cqe.Res)
		ring.CQESeen(cqe)
	}

	require.Equal(t, payload, readBack)
}

func TestLinkedChainCanceledOnFailure(t *testing.T) {
	ring := newTestRing(t, 8, 0)

	scratch := make([]byte, 8)

	sqe := ring.GetSQEntry()
	require.NotNil(t, sqe)
	sqe.PrepareRead(-1, uintptr(unsafe.Pointer(&scratch[0])), uint32(len(scratch)), 0)
	sqe.SetUserData(1)
	sqe.SetFlags(SQEFlagIOLink)

	sqe = ring.GetSQEntry()
	require.NotNil(t, sqe)
	sqe.PrepareNOP()
	sqe.SetUserData(2)

	_, err := ring.SubmitAndWait(2)
	require.NoError(t, err)

	results := make(map[uint64]int32, 2)
	for i := 0; i < 2; i++ {
		cqe, err := ring.WaitCQEvent()
		require.NoError(t, err)
		results[cqe.UserData] = cqe.Res
		ring.CQESeen(cqe)
	}

	require.Equal(t, -int32(syscall.EBADF), results[1])
	require.Equal(t, -int32(syscall.ECANCELED), results[2])
}

func TestReadV(t *testing.T) {
	ring := newTestRing(t, 8, 0)

	file, err := os.CreateTemp(t.TempDir(), "readv")
	require.NoError(t, err)
	defer func() {
		_ = file.Close()
	}()

	payload := []byte("scatter gather")
	_, err = file.WriteAt(payload, 0)
	require.NoError(t, err)

	first := make([]byte, 7)
	second := make([]byte, 7)
	iovecs := []syscall.Iovec{
		{Base: &first[0], Len: uint64(len(first))},
		{Base: &second[0], Len: uint64(len(second))},
	}

	sqe := ring.GetSQEntry()
	require.NotNil(t, sqe)
	sqe.PrepareReadV(int(file.Fd()), uintptr(unsafe.Pointer(&iovecs[0])), uint32(len(iovecs)), 0)

	_, err = ring.SubmitAndWait(1)
	require.NoError(t, err)

	cqe, err := ring.WaitCQEvent()
	require.NoError(t, err)
	require.Equal(t, int32(len(payload)), cqe.Res)
	ring.CQESeen(cqe)

	require.Equal(t, payload, append(append([]byte{}, first...), second...))
}

func TestDontFork(t *testing.T) {
	ring := newTestRing(t, 8, 0)
	require.NoError(t, ring.DontFork())
}

func TestWaitCQEventsTimeout(t *testing.T) {
	ring := newTestRing(t, 8, 0)

	if ring.Features&uint32(FeatureExtArg) == 0 {
		t.Skip("kernel does not support IORING_ENTER_EXT_ARG")
	}

	ts := syscall.NsecToTimespec(int64(10 * 1000 * 1000))
	_, err := ring.WaitCQEvents(1, &ts, nil)
	require.ErrorIs(t, err, syscall.ETIME)
}
