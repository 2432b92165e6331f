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
	"syscall"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func newTestPipe(t *testing.T) (int, int) {
	t.Helper()

	fds := make([]int, 2)
	require.NoError(t, syscall.Pipe(fds))
	t.Cleanup(func() {
		_ = syscall.Close(fds[0])
		_ = syscall.Close(fds[1])
	})
	return fds[0], fds[1]
}

func TestAsyncCancelByUserData(t *testing.T) {
	ring := newTestRing(t, 8, 0)
	readFD, _ := newTestPipe(t)

	// A read on an empty pipe blocks until canceled.
	buf := make([]byte, 8)
	sqe := ring.GetSQEntry()
	require.NotNil(t, sqe)
	sqe.PrepareRead(readFD, uintptr(unsafe.Pointer(&buf[0])), uint32(len(buf)), 0)
	sqe.SetUserData(100)

	_, err := ring.Submit()
	require.NoError(t, err)

	sqe = ring.GetSQEntry()
	require.NotNil(t, sqe)
	sqe.PrepareCancel(CancelUserData(100))
	sqe.SetUserData(200)

	_, err = ring.SubmitAndWait(2)
	require.NoError(t, err)

	var canceled, cancel CQEvent
	for i := 0; i < 2; i++ {
		cqe, err := ring.WaitCQEvent()
		require.NoError(t, err)
		switch cqe.UserData {
		case 100:
			canceled = *cqe
		case 200:
			cancel = *cqe
		}
		ring.CQESeen(cqe)
	}

	require.Equal(t, uint64(100), canceled.UserData)
	require.ErrorIs(t, canceled.Err(), syscall.ECANCELED)
	require.Equal(t, uint64(200), cancel.UserData)
	require.Equal(t, int32(0), cancel.Res)
}

func TestAsyncCancelByFD(t *testing.T) {
	ring := newTestRing(t, 8, 0)
	readFD, _ := newTestPipe(t)

	buf := make([]byte, 8)
	for i := uint64(1); i <= 2; i++ {
		sqe := ring.GetSQEntry()
		require.NotNil(t, sqe)
		sqe.PrepareRead(readFD, uintptr(unsafe.Pointer(&buf[0])), uint32(len(buf)), 0)
		sqe.SetUserData(i)
	}

	_, err := ring.Submit()
	require.NoError(t, err)

	sqe := ring.GetSQEntry()
	require.NotNil(t, sqe)
	sqe.PrepareCancel(CancelFD(readFD).All())
	sqe.SetUserData(99)

	_, err = ring.SubmitAndWait(1)
	require.NoError(t, err)

	matched := int32(-1)
	canceled := 0
	for matched == -1 || canceled < 2 {
		cqe, err := ring.WaitCQEvent()
		require.NoError(t, err)
		if cqe.UserData == 99 {
			matched = cqe.Res
			ring.CQESeen(cqe)
			if matched == -int32(syscall.EINVAL) {
				t.Skip("kernel does not support IORING_ASYNC_CANCEL_FD")
			}
			continue
		}
		require.ErrorIs(t, cqe.Err(), syscall.ECANCELED)
		canceled++
		ring.CQESeen(cqe)
	}

	// With CancelFlagAll the result is the number of canceled requests.
	require.Equal(t, int32(2), matched)
}

func TestAsyncCancelNoMatch(t *testing.T) {
	ring := newTestRing(t, 8, 0)

	sqe := ring.GetSQEntry()
	require.NotNil(t, sqe)
	sqe.PrepareCancel(CancelUserData(12345))
	sqe.SetUserData(1)

	_, err := ring.SubmitAndWait(1)
	require.NoError(t, err)

	cqe, err := ring.WaitCQEvent()
	require.NoError(t, err)
	require.ErrorIs(t, cqe.Err(), syscall.ENOENT)
	ring.CQESeen(cqe)
}

func TestSyncCancel(t *testing.T) {
	ring := newTestRing(t, 8, 0)

	err := ring.SyncCancel(CancelUserData(54321), nil)
	if errors.Is(err, syscall.EINVAL) {
		t.Skip("kernel does not support IORING_REGISTER_SYNC_CANCEL")
	}
	require.ErrorIs(t, err, syscall.ENOENT)

	readFD, _ := newTestPipe(t)
	buf := make([]byte, 8)
	sqe := ring.GetSQEntry()
	require.NotNil(t, sqe)
	sqe.PrepareRead(readFD, uintptr(unsafe.Pointer(&buf[0])), uint32(len(buf)), 0)
	sqe.SetUserData(300)

	_, err = ring.Submit()
	require.NoError(t, err)

	err = ring.SyncCancel(CancelUserData(300).All(), nil)
	require.NoError(t, err)

	cqe, err := ring.WaitCQEvent()
	require.NoError(t, err)
	require.Equal(t, uint64(300), cqe.UserData)
	require.ErrorIs(t, cqe.Err(), syscall.ECANCELED)
	ring.CQESeen(cqe)
}
