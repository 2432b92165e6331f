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

// PrepareRW is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L378
//
// Every other Prepare method goes through it, so no union field of a
// previous preparation can leak into the next one.
func (e *SQEntry) PrepareRW(opCode OpCode, fd int, addressPointer uintptr, length uint32, offset uint64) {
	e.OpCode = uint8(opCode)
	e.Flags = 0
	e.IOPriority = 0
	e.FD = int32(fd)
	e.UnionOffset = offset
	e.UnionAddress = uint64(addressPointer)
	e.Length = length
	e.UnionRWFlags = 0
	e.UserData = 0
	e.UnionBufferIndexPacked = 0
	e.Personality = 0
	e.UnionSplicedFDIn = 0
	e.UnionAddress3.Address3 = 0
	e.UnionAddress3._Pad2[0] = 0
}

// SetUserData sets the 64-bit correlation tag echoed back verbatim in the
// matching CQEvent.
func (e *SQEntry) SetUserData(userData uint64) {
	e.UserData = userData
}

// SetFlags ORs SQEFlag bits (link, drain, fixed file, buffer select, ...)
// into the entry.
func (e *SQEntry) SetFlags(flags SQEFlag) {
	e.Flags |= uint8(flags)
}

// SetPersonality selects credentials previously registered with
// RegisterPersonality.
func (e *SQEntry) SetPersonality(personality uint16) {
	e.Personality = personality
}

// SetBufferIndex selects a fixed buffer registered with RegisterBuffers.
func (e *SQEntry) SetBufferIndex(index uint16) {
	e.UnionBufferIndexPacked = index
}

// SetBufferGroup selects the provided-buffer group the kernel should pick
// a buffer from. Requires SQEFlagBufferSelect.
func (e *SQEntry) SetBufferGroup(bgid uint16) {
	e.UnionBufferIndexPacked = bgid
}

// setTargetFixedFile is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L584
func (e *SQEntry) setTargetFixedFile(fileIndex uint32) {
	// 0 means "no fixed file index" on the wire, so the value is
	// shifted up by one.
	e.UnionSplicedFDIn = int32(fileIndex + 1)
}

// PrepareNOP is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L816
func (e *SQEntry) PrepareNOP() {
	e.PrepareRW(OpCodeNOP, -1, 0, 0, 0)
}

// PrepareRead is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L903
func (e *SQEntry) PrepareRead(fd int, bufferPointer uintptr, length uint32, offset uint64) {
	e.PrepareRW(OpCodeRead, fd, bufferPointer, length, offset)
}

// PrepareWrite is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L909
func (e *SQEntry) PrepareWrite(fd int, bufferPointer uintptr, length uint32, offset uint64) {
	e.PrepareRW(OpCodeWrite, fd, bufferPointer, length, offset)
}

// PrepareReadV is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L415
func (e *SQEntry) PrepareReadV(fd int, iovecsPointer uintptr, numIOVecs uint32, offset uint64) {
	e.PrepareRW(OpCodeReadV, fd, iovecsPointer, numIOVecs, offset)
}

// PrepareReadV2 is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L422
func (e *SQEntry) PrepareReadV2(fd int, iovecsPointer uintptr, numIOVecs uint32, offset uint64, flags uint32) {
	e.PrepareReadV(fd, iovecsPointer, numIOVecs, offset)
	e.UnionRWFlags = flags
}

// PrepareWriteV is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L437
func (e *SQEntry) PrepareWriteV(fd int, iovecsPointer uintptr, numIOVecs uint32, offset uint64) {
	e.PrepareRW(OpCodeWriteV, fd, iovecsPointer, numIOVecs, offset)
}

// PrepareWriteV2 is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L444
func (e *SQEntry) PrepareWriteV2(fd int, iovecsPointer uintptr, numIOVecs uint32, offset uint64, flags uint32) {
	e.PrepareWriteV(fd, iovecsPointer, numIOVecs, offset)
	e.UnionRWFlags = flags
}

// PrepareReadFixed is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L429
func (e *SQEntry) PrepareReadFixed(fd int, bufferPointer uintptr, length uint32, offset uint64, bufferIndex uint16) {
	e.PrepareRW(OpCodeReadFixed, fd, bufferPointer, length, offset)
	e.UnionBufferIndexPacked = bufferIndex
}

// PrepareWriteFixed is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L451
func (e *SQEntry) PrepareWriteFixed(fd int, bufferPointer uintptr, length uint32, offset uint64, bufferIndex uint16) {
	e.PrepareRW(OpCodeWriteFixed, fd, bufferPointer, length, offset)
	e.UnionBufferIndexPacked = bufferIndex
}

// PrepareFsync is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L800
func (e *SQEntry) PrepareFsync(fd int, flags uint32) {
	e.PrepareRW(OpCodeFsync, fd, 0, 0, 0)
	e.UnionRWFlags = flags
}

// PrepareSyncFileRange is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L612
func (e *SQEntry) PrepareSyncFileRange(fd int, length uint32, offset uint64, flags uint32) {
	e.PrepareRW(OpCodeSyncFileRange, fd, 0, length, offset)
	e.UnionRWFlags = flags
}

// PreparePollAdd is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L770
func (e *SQEntry) PreparePollAdd(fd int, pollMask uint32) {
	e.PrepareRW(OpCodePollAdd, fd, 0, 0, 0)
	e.UnionRWFlags = pollMask
}

// PreparePollMultishot is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L777
func (e *SQEntry) PreparePollMultishot(fd int, pollMask uint32) {
	e.PreparePollAdd(fd, pollMask)
	e.Length = uint32(PollFlagAddMulti)
}

// PreparePollRemove is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L784
func (e *SQEntry) PreparePollRemove(userData uint64) {
	e.PrepareRW(OpCodePollRemove, -1, 0, 0, 0)
	e.UnionAddress = userData
}

// PreparePollUpdate is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L790
func (e *SQEntry) PreparePollUpdate(oldUserData uint64, newUserData uint64, pollMask uint32, flags uint32) {
	e.PrepareRW(OpCodePollRemove, -1, 0, flags, newUserData)
	e.UnionAddress = oldUserData
	e.UnionRWFlags = pollMask
}

// PrepareSendMsg is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L716
func (e *SQEntry) PrepareSendMsg(fd int, msgPointer uintptr, flags uint32) {
	e.PrepareRW(OpCodeSendMsg, fd, msgPointer, 1, 0)
	e.UnionRWFlags = flags
}

// PrepareSendMsgZC is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L723
func (e *SQEntry) PrepareSendMsgZC(fd int, msgPointer uintptr, flags uint32) {
	e.PrepareSendMsg(fd, msgPointer, flags)
	e.OpCode = uint8(OpCodeSendMsgZC)
}

// PrepareRecvMsg is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L600
func (e *SQEntry) PrepareRecvMsg(fd int, msgPointer uintptr, flags uint32) {
	e.PrepareRW(OpCodeRecvMsg, fd, msgPointer, 1, 0)
	e.UnionRWFlags = flags
}

// PrepareRecvMsgMultishot is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L606
func (e *SQEntry) PrepareRecvMsgMultishot(fd int, msgPointer uintptr, flags uint32) {
	e.PrepareRecvMsg(fd, msgPointer, flags)
	e.IOPriority |= uint16(RecvSendFlagRecvMultishot)
}

// PrepareTimeout is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L618
func (e *SQEntry) PrepareTimeout(timespecPointer uintptr, count uint32, flags uint32) {
	e.PrepareRW(OpCodeTimeout, -1, timespecPointer, 1, uint64(count))
	e.UnionRWFlags = flags
}

// PrepareTimeoutRemove is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L625
func (e *SQEntry) PrepareTimeoutRemove(userData uint64, flags uint32) {
	e.PrepareRW(OpCodeTimeoutRemove, -1, 0, 0, 0)
	e.UnionAddress = userData
	e.UnionRWFlags = flags
}

// PrepareTimeoutUpdate is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L632
func (e *SQEntry) PrepareTimeoutUpdate(timespecPointer uintptr, userData uint64, flags uint32) {
	e.PrepareRW(OpCodeTimeoutRemove, -1, 0, 0, uint64(timespecPointer))
	e.UnionAddress = userData
	e.UnionRWFlags = flags | uint32(TimeoutFlagUpdate)
}

// PrepareAccept is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L591
func (e *SQEntry) PrepareAccept(fd int, addressPointer uintptr, addressLength uint64, flags uint32) {
	e.PrepareRW(OpCodeAccept, fd, addressPointer, 0, addressLength)
	e.UnionRWFlags = flags
}

// PrepareAcceptDirect is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L653
func (e *SQEntry) PrepareAcceptDirect(fd int, addressPointer uintptr, addressLength uint64, flags uint32, fileIndex uint32) {
	e.PrepareAccept(fd, addressPointer, addressLength, flags)
	if fileIndex == FileIndexAlloc {
		fileIndex--
	}
	e.setTargetFixedFile(fileIndex)
}

// PrepareMultishotAccept is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L664
func (e *SQEntry) PrepareMultishotAccept(fd int, addressPointer uintptr, addressLength uint64, flags uint32) {
	e.PrepareAccept(fd, addressPointer, addressLength, flags)
	e.IOPriority |= uint16(AcceptFlagMultishot)
}

// PrepareMultishotAcceptDirect is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L672
func (e *SQEntry) PrepareMultishotAcceptDirect(fd int, addressPointer uintptr, addressLength uint64, flags uint32) {
	e.PrepareMultishotAccept(fd, addressPointer, addressLength, flags)
	e.setTargetFixedFile(FileIndexAlloc - 1)
}

// PrepareAsyncCancel is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L686
func (e *SQEntry) PrepareAsyncCancel(userData uint64, flags uint32) {
	e.PrepareRW(OpCodeAsyncCancel, -1, 0, 0, 0)
	e.UnionAddress = userData
	e.UnionRWFlags = flags
}

// PrepareAsyncCancelFD is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L693
func (e *SQEntry) PrepareAsyncCancelFD(fd int, flags uint32) {
	e.PrepareRW(OpCodeAsyncCancel, fd, 0, 0, 0)
	e.UnionRWFlags = flags | uint32(CancelFlagFD)
}

// PrepareLinkTimeout is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L701
func (e *SQEntry) PrepareLinkTimeout(timespecPointer uintptr, flags uint32) {
	e.PrepareRW(OpCodeLinkTimeout, -1, timespecPointer, 1, 0)
	e.UnionRWFlags = flags
}

// PrepareConnect is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L708
func (e *SQEntry) PrepareConnect(fd int, addressPointer uintptr, addressLength uint64) {
	e.PrepareRW(OpCodeConnect, fd, addressPointer, 0, addressLength)
}

// PrepareFallocate is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L829
func (e *SQEntry) PrepareFallocate(fd int, mode uint32, offset uint64, length uint64) {
	e.PrepareRW(OpCodeFallocate, fd, 0, mode, offset)
	e.UnionAddress = length
}

// PrepareOpenat is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L836
func (e *SQEntry) PrepareOpenat(dirFD int, pathPointer uintptr, flags uint32, mode uint32) {
	e.PrepareRW(OpCodeOpenat, dirFD, pathPointer, mode, 0)
	e.UnionRWFlags = flags
}

// PrepareOpenatDirect is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L843
func (e *SQEntry) PrepareOpenatDirect(dirFD int, pathPointer uintptr, flags uint32, mode uint32, fileIndex uint32) {
	e.PrepareOpenat(dirFD, pathPointer, flags, mode)
	if fileIndex == FileIndexAlloc {
		fileIndex--
	}
	e.setTargetFixedFile(fileIndex)
}

// PrepareOpenat2 is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L928
func (e *SQEntry) PrepareOpenat2(dirFD int, pathPointer uintptr, openHowPointer uintptr, openHowSize uint32) {
	e.PrepareRW(OpCodeOpenat2, dirFD, pathPointer, openHowSize, uint64(openHowPointer))
}

// PrepareClose is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L855
func (e *SQEntry) PrepareClose(fd int) {
	e.PrepareRW(OpCodeClose, fd, 0, 0, 0)
}

// PrepareCloseDirect is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L861
func (e *SQEntry) PrepareCloseDirect(fileIndex uint32) {
	e.PrepareClose(0)
	e.setTargetFixedFile(fileIndex)
}

// PrepareFilesUpdate is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L822
func (e *SQEntry) PrepareFilesUpdate(fdsPointer uintptr, numFDs uint32, offset int) {
	e.PrepareRW(OpCodeFilesUpdate, -1, fdsPointer, numFDs, uint64(uint32(offset)))
}

// PrepareStatx is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L868
func (e *SQEntry) PrepareStatx(dirFD int, pathPointer uintptr, flags uint32, mask uint32, statxPointer uintptr) {
	e.PrepareRW(OpCodeStatx, dirFD, pathPointer, mask, uint64(statxPointer))
	e.UnionRWFlags = flags
}

// PrepareFadvise is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L876
func (e *SQEntry) PrepareFadvise(fd int, offset uint64, length uint32, advice uint32) {
	e.PrepareRW(OpCodeFadvise, fd, 0, length, offset)
	e.UnionRWFlags = advice
}

// PrepareMadvise is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L883
func (e *SQEntry) PrepareMadvise(addressPointer uintptr, length uint32, advice uint32) {
	e.PrepareRW(OpCodeMadvise, -1, addressPointer, length, 0)
	e.UnionRWFlags = advice
}

// PrepareSend is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L890
func (e *SQEntry) PrepareSend(fd int, bufferPointer uintptr, length uint32, flags uint32) {
	e.PrepareRW(OpCodeSend, fd, bufferPointer, length, 0)
	e.UnionRWFlags = flags
}

// PrepareSendZC is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L730
func (e *SQEntry) PrepareSendZC(fd int, bufferPointer uintptr, length uint32, flags uint32, zcFlags uint16) {
	e.PrepareRW(OpCodeSendZC, fd, bufferPointer, length, 0)
	e.UnionRWFlags = flags
	e.IOPriority = zcFlags
}

// PrepareSendZCFixed is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L741
func (e *SQEntry) PrepareSendZCFixed(fd int, bufferPointer uintptr, length uint32, flags uint32, zcFlags uint16, bufferIndex uint16) {
	e.PrepareSendZC(fd, bufferPointer, length, flags, zcFlags)
	e.IOPriority |= uint16(RecvSendFlagFixedBuf)
	e.UnionBufferIndexPacked = bufferIndex
}

// PrepareRecv is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L896
func (e *SQEntry) PrepareRecv(fd int, bufferPointer uintptr, length uint32, flags uint32) {
	e.PrepareRW(OpCodeRecv, fd, bufferPointer, length, 0)
	e.UnionRWFlags = flags
}

// PrepareRecvMultishot is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L903
func (e *SQEntry) PrepareRecvMultishot(fd int, bufferPointer uintptr, length uint32, flags uint32) {
	e.PrepareRecv(fd, bufferPointer, length, flags)
	e.IOPriority |= uint16(RecvSendFlagRecvMultishot)
}

// PrepareEpollCtl is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L935
func (e *SQEntry) PrepareEpollCtl(epollFD int, fd int, op uint32, eventPointer uintptr) {
	e.PrepareRW(OpCodeEpollCtl, epollFD, eventPointer, op, uint64(uint32(fd)))
}

// PrepareSplice is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L386
func (e *SQEntry) PrepareSplice(fdIn int, offsetIn int64, fdOut int, offsetOut int64, length uint32, spliceFlags uint32) {
	e.PrepareRW(OpCodeSplice, fdOut, 0, length, uint64(offsetOut))
	e.UnionAddress = uint64(offsetIn)
	e.UnionSplicedFDIn = int32(fdIn)
	e.UnionRWFlags = spliceFlags
}

// PrepareTee is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L402
func (e *SQEntry) PrepareTee(fdIn int, fdOut int, length uint32, spliceFlags uint32) {
	e.PrepareRW(OpCodeTee, fdOut, 0, length, 0)
	e.UnionAddress = 0
	e.UnionSplicedFDIn = int32(fdIn)
	e.UnionRWFlags = spliceFlags
}

// PrepareProvideBuffers is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L942
func (e *SQEntry) PrepareProvideBuffers(addressPointer uintptr, length uint32, numBuffers int, bufferGroupID uint16, bufferID int) {
	e.PrepareRW(OpCodeProvideBuffers, numBuffers, addressPointer, length, uint64(uint32(bufferID)))
	e.UnionBufferIndexPacked = bufferGroupID
}

// PrepareRemoveBuffers is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L949
func (e *SQEntry) PrepareRemoveBuffers(numBuffers int, bufferGroupID uint16) {
	e.PrepareRW(OpCodeRemoveBuffers, numBuffers, 0, 0, 0)
	e.UnionBufferIndexPacked = bufferGroupID
}

// PrepareShutdown is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L955
func (e *SQEntry) PrepareShutdown(fd int, how int) {
	e.PrepareRW(OpCodeShutdown, fd, 0, uint32(how), 0)
}

// PrepareRenameat is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L975
func (e *SQEntry) PrepareRenameat(oldDirFD int, oldPathPointer uintptr, newDirFD int, newPathPointer uintptr, flags uint32) {
	e.PrepareRW(OpCodeRenameat, oldDirFD, oldPathPointer, uint32(newDirFD), uint64(newPathPointer))
	e.UnionRWFlags = flags
}

// PrepareUnlinkat is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L961
func (e *SQEntry) PrepareUnlinkat(dirFD int, pathPointer uintptr, flags uint32) {
	e.PrepareRW(OpCodeUnlinkat, dirFD, pathPointer, 0, 0)
	e.UnionRWFlags = flags
}

// PrepareMkdirat is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L993
func (e *SQEntry) PrepareMkdirat(dirFD int, pathPointer uintptr, mode uint32) {
	e.PrepareRW(OpCodeMkdirat, dirFD, pathPointer, mode, 0)
}

// PrepareSymlinkat is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L1005
func (e *SQEntry) PrepareSymlinkat(targetPointer uintptr, newDirFD int, linkPathPointer uintptr) {
	e.PrepareRW(OpCodeSymlinkat, newDirFD, targetPointer, 0, uint64(linkPathPointer))
}

// PrepareLinkat is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L1017
func (e *SQEntry) PrepareLinkat(oldDirFD int, oldPathPointer uintptr, newDirFD int, newPathPointer uintptr, flags uint32) {
	e.PrepareRW(OpCodeLinkat, oldDirFD, oldPathPointer, uint32(newDirFD), uint64(newPathPointer))
	e.UnionRWFlags = flags
}

// PrepareMsgRing is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L1030
func (e *SQEntry) PrepareMsgRing(ringFD int, length uint32, userData uint64, flags uint32) {
	e.PrepareRW(OpCodeMsgRing, ringFD, 0, length, userData)
	e.UnionRWFlags = flags
}

// PrepareSocket is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L1064
func (e *SQEntry) PrepareSocket(domain int, socketType int, protocol int, flags uint32) {
	e.PrepareRW(OpCodeSocket, domain, 0, uint32(protocol), uint64(socketType))
	e.UnionRWFlags = flags
}

// PrepareSocketDirect is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L1071
func (e *SQEntry) PrepareSocketDirect(domain int, socketType int, protocol int, fileIndex uint32, flags uint32) {
	e.PrepareSocket(domain, socketType, protocol, flags)
	if fileIndex == FileIndexAlloc {
		fileIndex--
	}
	e.setTargetFixedFile(fileIndex)
}

// PrepareSocketDirectAlloc is defined here: https://github.com/axboe/liburing/blob/liburing-2.4/src/include/liburing.h#L1081
func (e *SQEntry) PrepareSocketDirectAlloc(domain int, socketType int, protocol int, flags uint32) {
	e.PrepareSocket(domain, socketType, protocol, flags)
	e.setTargetFixedFile(FileIndexAlloc - 1)
}
