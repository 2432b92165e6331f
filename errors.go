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

import "errors"

var (
	// ErrNotAvailable is returned when the running kernel does not
	// support io_uring.
	ErrNotAvailable = errors.New("io_uring is not available")

	// ErrRingShutdown is returned when an operation is attempted on a
	// ring whose file descriptor has already been closed.
	ErrRingShutdown = errors.New("ring is shut down")
)
