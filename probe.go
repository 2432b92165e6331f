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

// ProbeOpSupported is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing/io_uring.h#L540
const ProbeOpSupported uint16 = 1 << 0

// ProbeOp is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing/io_uring.h#L542
type ProbeOp struct {
	Op     uint8
	_Resv  uint8
	Flags  uint16
	_Resv2 uint32
}

// Probe is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing/io_uring.h#L549
type Probe struct {
	LastOp uint8
	OpsLen uint8
	_Resv  uint16
	_Resv2 [3]uint32
	Ops    [probeOpsSize]ProbeOp
}

const probeOpsSize = 256

// IsSupported reports whether the kernel that filled in the probe
// supports the given opcode.
func (p *Probe) IsSupported(opCode OpCode) bool {
	if uint8(opCode) > p.LastOp {
		return false
	}
	return p.Ops[opCode].Flags&ProbeOpSupported != 0
}

// GetProbe is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/setup.c#L341
func (r *Ring) GetProbe() (*Probe, error) {
	probe := &Probe{}
	_, err := r.RegisterProbe(probe, probeOpsSize)
	if err != nil {
		return nil, err
	}
	return probe, nil
}
