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
	"fmt"
	"net"
	"os"
	"runtime"
	"syscall"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/loopholelabs/uring/pkg/tcp"
)

var _ net.Listener = (*Listener)(nil)

const (
	AcceptEntries = 256
)

// Listener is a net.Listener that accepts connections through its own
// ring instead of the runtime's network poller. It demonstrates the
// accept path; connection I/O is handed back to the standard library via
// net.FileConn.
type Listener struct {
	ring *Ring
	fd   int
	addr net.Addr
}

func NewListener(addr string) (*Listener, error) {
	tcpAddr, err := net.ResolveTCPAddr("tcp4", addr)
	if err != nil {
		return nil, fmt.Errorf("error while resolving listen address: %w", err)
	}

	fd, err := syscall.Socket(syscall.AF_INET, syscall.SOCK_STREAM, 0)
	if err != nil {
		return nil, fmt.Errorf("error while opening listening socket: %w", err)
	}

	err = syscall.SetsockoptInt(fd, syscall.SOL_SOCKET, unix.SO_REUSEADDR, 1)
	if err != nil {
		_ = syscall.Close(fd)
		return nil, fmt.Errorf("error while setting SO_REUSEADDR on listening socket with fd %d: %w", fd, err)
	}

	err = syscall.SetsockoptInt(fd, syscall.SOL_SOCKET, unix.SO_REUSEPORT, 1)
	if err != nil {
		_ = syscall.Close(fd)
		return nil, fmt.Errorf("error while setting SO_REUSEPORT on listening socket with fd %d: %w", fd, err)
	}

	err = syscall.Bind(fd, &syscall.SockaddrInet4{
		Port: tcpAddr.Port,
		Addr: *(*[4]byte)(tcpAddr.IP.To4()),
	})
	if err != nil {
		_ = syscall.Close(fd)
		return nil, fmt.Errorf("error binding listening socket with fd %d to listen address %s: %w", fd, addr, err)
	}

	err = syscall.Listen(fd, AcceptEntries/2)
	if err != nil {
		_ = syscall.Close(fd)
		return nil, fmt.Errorf("error while starting to listen on socket with fd %d: %w", fd, err)
	}

	sa, err := syscall.Getsockname(fd)
	if err != nil {
		_ = syscall.Close(fd)
		return nil, fmt.Errorf("error while getting listen address of socket with fd %d: %w", fd, err)
	}
	inet4 := sa.(*syscall.SockaddrInet4)

	ring, err := NewRing()
	if err != nil {
		_ = syscall.Close(fd)
		return nil, fmt.Errorf("error while creating ring for listening socket with fd %d: %w", fd, err)
	}
	err = ring.QueueInit(AcceptEntries, 0)
	if err != nil {
		_ = syscall.Close(fd)
		return nil, fmt.Errorf("error while initializing ring for listening socket with fd %d: %w", fd, err)
	}

	return &Listener{
		ring: ring,
		fd:   fd,
		addr: &net.TCPAddr{IP: inet4.Addr[:], Port: inet4.Port},
	}, nil
}

// AcceptConnection accepts one connection through the ring and returns
// the raw file descriptor.
func (l *Listener) AcceptConnection() (tcp.Connection, error) {
	var clientAddr unix.RawSockaddrAny
	clientAddrLen := uint32(unix.SizeofSockaddrAny)

	sqe := l.ring.GetSQEntry()
	if sqe == nil {
		return tcp.Connection{FD: -1}, syscall.EBUSY
	}
	sqe.PrepareAccept(l.fd, uintptr(unsafe.Pointer(&clientAddr)), uint64(uintptr(unsafe.Pointer(&clientAddrLen))), 0)
	sqe.SetUserData(tcp.StateAccept.UserData())

	_, err := l.ring.SubmitAndWait(1)
	if err != nil {
		return tcp.Connection{FD: -1}, fmt.Errorf("error while submitting accept on listening socket with fd %d: %w", l.fd, err)
	}

	cqe, err := l.ring.WaitCQEvent()
	if err != nil {
		return tcp.Connection{FD: -1}, fmt.Errorf("error while waiting for accept on listening socket with fd %d: %w", l.fd, err)
	}
	res := cqe.Res
	l.ring.CQESeen(cqe)
	runtime.KeepAlive(&clientAddr)
	runtime.KeepAlive(&clientAddrLen)

	if res < 0 {
		return tcp.Connection{FD: -1}, fmt.Errorf("error while accepting on listening socket with fd %d: %w", l.fd, syscall.Errno(-res))
	}

	return tcp.Connection{FD: int(res)}, nil
}

func (l *Listener) Accept() (net.Conn, error) {
	connection, err := l.AcceptConnection()
	if err != nil {
		return nil, err
	}

	file := os.NewFile(uintptr(connection.FD), "connection")
	conn, err := net.FileConn(file)
	closeErr := file.Close()
	if err != nil {
		return nil, fmt.Errorf("error while wrapping connection with fd %d: %w", connection.FD, err)
	}
	if closeErr != nil {
		return nil, closeErr
	}
	return conn, nil
}

func (l *Listener) Close() error {
	err := l.ring.Close()
	if closeErr := syscall.Close(l.fd); err == nil {
		err = closeErr
	}
	return err
}

func (l *Listener) Addr() net.Addr {
	return l.addr
}
