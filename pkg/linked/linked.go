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

// Package linked wraps the raw memory-mapping syscalls so that mapped
// regions can be addressed by pointer instead of by slice.
package linked

import (
	"syscall"
)

// MMap wraps the mmap syscall and returns the mapped address directly.
func MMap(address uintptr, length uintptr, prot int, flags int, fd int, offset int64) (uintptr, error) {
	mappedAddress, _, err := syscall.Syscall6(
		syscall.SYS_MMAP,
		address,
		length,
		uintptr(prot),
		uintptr(flags),
		uintptr(fd),
		uintptr(offset),
	)

	if err > 0 {
		return 0, err
	}

	return mappedAddress, nil
}

// MUnmap wraps the munmap syscall for regions mapped with MMap.
func MUnmap(address uintptr, length uintptr) error {
	_, _, err := syscall.Syscall(
		syscall.SYS_MUNMAP,
		address,
		length,
		0,
	)

	if err > 0 {
		return err
	}

	return nil
}

// MAdvise wraps the madvise syscall for regions mapped with MMap.
func MAdvise(address uintptr, length uintptr, advice int) error {
	_, _, err := syscall.Syscall(
		syscall.SYS_MADVISE,
		address,
		length,
		uintptr(advice),
	)

	if err > 0 {
		return err
	}

	return nil
}
