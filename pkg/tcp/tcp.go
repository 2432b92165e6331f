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

// Package tcp carries the small amount of shared state between a
// ring-backed listener and the connections it accepts. The State of an
// in-flight operation is packed into its user data so completions can be
// routed without any per-operation allocation.
package tcp

import "syscall"

type State uint8

const (
	StateUnknown State = iota
	StateAccept
	StateRead
	StateWrite
	StateClose
)

func (s State) String() string {
	switch s {
	case StateAccept:
		return "accept"
	case StateRead:
		return "read"
	case StateWrite:
		return "write"
	case StateClose:
		return "close"
	case StateUnknown:
		fallthrough
	default:
		return "unknown"
	}
}

// UserData packs the state into the low byte of a user data value.
func (s State) UserData() uint64 {
	return uint64(s)
}

// StateOf recovers the state from a completion's user data.
func StateOf(userData uint64) State {
	if userData > uint64(StateClose) {
		return StateUnknown
	}
	return State(userData)
}

// Connection is an accepted connection's raw file descriptor.
type Connection struct {
	FD int
}

func (c Connection) Close() error {
	return syscall.Close(c.FD)
}
