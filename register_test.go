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

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/loopholelabs/uring/pkg/buffer"
)

func TestRegisterBuffersLifecycle(t *testing.T) {
	ring := newTestRing(t, 8, 0)

	buf, err := buffer.NewFixed(4096)
	require.NoError(t, err)
	defer func() {
		_ = buf.Close()
	}()

	iovecs := []syscall.Iovec{buf.Iovec()}
	_, err = ring.RegisterBuffers(iovecs)
	require.NoError(t, err)

	// Registering again without unregistering fails.
	_, err = ring.RegisterBuffers(iovecs)
	require.ErrorIs(t, err, syscall.EBUSY)

	_, err = ring.UnregisterBuffers()
	require.NoError(t, err)

	_, err = ring.UnregisterBuffers()
	require.ErrorIs(t, err, syscall.ENXIO)
}

func TestRegisteredBufferReadWrite(t *testing.T) {
	ring := newTestRing(t, 8, 0)

	buf, err := buffer.NewFixed(4096)
	require.NoError(t, err)
	defer func() {
		_ = buf.Close()
	}()

	_, err = ring.RegisterBuffers([]syscall.Iovec{buf.Iovec()})
	require.NoError(t, err)

	payload := []byte("fixed buffer io")
	backing := buf.Bytes()[:cap(buf.Bytes())]
	copy(backing, payload)

	file, err := createTempFile(t)
	require.NoError(t, err)

	sqe := ring.GetSQEntry()
	require.NotNil(t, sqe)
	sqe.PrepareWriteFixed(file, buf.AddressPointer(), uint32(len(payload)), 0, 0)
	sqe.SetUserData(1)

	_, err = ring.SubmitAndWait(1)
	require.NoError(t, err)

	cqe, err := ring.WaitCQEvent()
	require.NoError(t, err)
	require.Equal(t, int32(len(payload)), cqe.Res)
	ring.CQESeen(cqe)

	readBack := make([]byte, len(payload))
	_, err = syscall.Pread(file, readBack, 0)
	require.NoError(t, err)
	require.Equal(t, payload, readBack)
}

func TestRegisterFilesSparseUpdate(t *testing.T) {
	ring := newTestRing(t, 8, 0)

	_, err := ring.RegisterFilesSparse(4)
	if errors.Is(err, syscall.EINVAL) {
		t.Skip("kernel does not support sparse file registration")
	}
	require.NoError(t, err)

	readFD, _ := newTestPipe(t)
	updated, err := ring.RegisterFilesUpdate(0, []int32{int32(readFD)})
	require.NoError(t, err)
	require.Equal(t, uint(1), updated)

	// RegisterFilesSkip leaves slot 0 in place while clearing slot 1.
	updated, err = ring.RegisterFilesUpdate(0, []int32{RegisterFilesSkip, -1})
	require.NoError(t, err)
	require.Equal(t, uint(2), updated)

	_, err = ring.UnregisterFiles()
	require.NoError(t, err)
}

func TestRegisterFilesTagged(t *testing.T) {
	ring := newTestRing(t, 8, 0)

	if ring.Features&uint32(FeatureRsrcTags) == 0 {
		t.Skip("kernel does not support resource tags")
	}

	readFD, writeFD := newTestPipe(t)
	fds := []int32{int32(readFD), int32(writeFD)}
	tags := []uint64{11, 22}

	_, err := ring.RegisterFilesTags(fds, tags)
	require.NoError(t, err)

	// Clearing a tagged slot posts a CQE carrying the tag.
	updated, err := ring.RegisterFilesUpdate(0, []int32{-1})
	require.NoError(t, err)
	require.Equal(t, uint(1), updated)

	cqe, err := ring.WaitCQEvent()
	require.NoError(t, err)
	require.Equal(t, uint64(11), cqe.UserData)
	ring.CQESeen(cqe)

	_, err = ring.UnregisterFiles()
	require.NoError(t, err)
}

func TestGetProbe(t *testing.T) {
	ring := newTestRing(t, 8, 0)

	probe, err := ring.GetProbe()
	if errors.Is(err, syscall.EINVAL) {
		t.Skip("kernel does not support IORING_REGISTER_PROBE")
	}
	require.NoError(t, err)

	require.True(t, probe.IsSupported(OpCodeNOP))
	require.True(t, probe.IsSupported(OpCodeRead))

	// Newer kernels report opcodes past this library's table, so probe an
	// opcode number no kernel can ever fill.
	require.False(t, probe.IsSupported(OpCode(len(probe.Ops)-1)))
	require.GreaterOrEqual(t, probe.LastOp, uint8(OpCodeRead))
}

func TestRegisterEventFD(t *testing.T) {
	ring := newTestRing(t, 8, 0)

	efd, err := unixEventFD()
	require.NoError(t, err)
	defer func() {
		_ = syscall.Close(efd)
	}()

	_, err = ring.RegisterEventFD(efd)
	require.NoError(t, err)

	sqe := ring.GetSQEntry()
	require.NotNil(t, sqe)
	sqe.PrepareNOP()

	_, err = ring.SubmitAndWait(1)
	require.NoError(t, err)

	cqe, err := ring.WaitCQEvent()
	require.NoError(t, err)
	ring.CQESeen(cqe)

	ticks := make([]byte, 8)
	_, err = syscall.Read(efd, ticks)
	require.NoError(t, err)

	_, err = ring.UnregisterEventFD()
	require.NoError(t, err)
}

func TestRegisterRingFD(t *testing.T) {
	ring := newTestRing(t, 8, 0)

	res, err := ring.RegisterRingFD()
	if errors.Is(err, syscall.EINVAL) {
		t.Skip("kernel does not support IORING_REGISTER_RING_FDS")
	}
	require.NoError(t, err)
	require.Equal(t, uint(1), res)
	require.NotEqual(t, ring.FD, ring.EnterRingFd)

	// Submissions keep working through the registered fd.
	sqe := ring.GetSQEntry()
	require.NotNil(t, sqe)
	sqe.PrepareNOP()
	sqe.SetUserData(7)

	_, err = ring.SubmitAndWait(1)
	require.NoError(t, err)

	cqe, err := ring.WaitCQEvent()
	require.NoError(t, err)
	require.Equal(t, uint64(7), cqe.UserData)
	ring.CQESeen(cqe)

	res, err = ring.UnregisterRingFD()
	require.NoError(t, err)
	require.Equal(t, uint(1), res)
	require.Equal(t, ring.FD, ring.EnterRingFd)
}

func TestRegisterIOWQMaxWorkers(t *testing.T) {
	ring := newTestRing(t, 8, 0)

	values := [2]uint32{4, 4}
	_, err := ring.RegisterIOWQMaxWorkers(&values)
	if errors.Is(err, syscall.EINVAL) {
		t.Skip("kernel does not support IORING_REGISTER_IOWQ_MAX_WORKERS")
	}
	require.NoError(t, err)
}

func TestRegisterRestrictions(t *testing.T) {
	if !IsAvailable() {
		t.Skip("io_uring is not available")
	}

	ring, err := NewRing()
	require.NoError(t, err)

	err = ring.QueueInit(8, uint32(SetupRDisabled))
	if errors.Is(err, syscall.EPERM) {
		t.Skip("io_uring is not permitted")
	}
	if errors.Is(err, syscall.EINVAL) {
		t.Skip("kernel does not support IORING_SETUP_R_DISABLED")
	}
	require.NoError(t, err)
	defer func() {
		_ = ring.Close()
	}()

	restrictions := []Restriction{
		{
			OpCode:  uint16(RestrictionOpCodeSQEOp),
			OpFlags: uint8(OpCodeNOP),
		},
	}
	_, err = ring.RegisterRestrictions(restrictions)
	require.NoError(t, err)

	_, err = ring.RegisterEnableRings()
	require.NoError(t, err)

	// NOP is allowed.
	sqe := ring.GetSQEntry()
	require.NotNil(t, sqe)
	sqe.PrepareNOP()
	sqe.SetUserData(1)

	_, err = ring.SubmitAndWait(1)
	require.NoError(t, err)

	cqe, err := ring.WaitCQEvent()
	require.NoError(t, err)
	require.Equal(t, int32(0), cqe.Res)
	ring.CQESeen(cqe)

	// Anything else is rejected with -EACCES.
	sqe = ring.GetSQEntry()
	require.NotNil(t, sqe)
	sqe.PrepareClose(-1)
	sqe.SetUserData(2)

	_, err = ring.SubmitAndWait(1)
	require.NoError(t, err)

	cqe, err = ring.WaitCQEvent()
	require.NoError(t, err)
	require.ErrorIs(t, cqe.Err(), syscall.EACCES)
	ring.CQESeen(cqe)
}

func createTempFile(t *testing.T) (int, error) {
	t.Helper()

	fd, err := syscall.Open(t.TempDir()+"/data", syscall.O_RDWR|syscall.O_CREAT, 0o600)
	if err == nil {
		t.Cleanup(func() {
			_ = syscall.Close(fd)
		})
	}
	return fd, err
}

func unixEventFD() (int, error) {
	return unix.Eventfd(0, 0)
}
