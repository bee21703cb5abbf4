//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package kernel

import (
	"go.uber.org/zap"
)

// Dispatch handles the syscall in frame on behalf of proc. It runs
// on the calling process's goroutine until the handler completes.
// Unknown syscall numbers are ignored and leave frame.Ret untouched.
// Handlers that terminate or replace the process do not return.
func (kern *Kernel) Dispatch(proc *Process, frame *Frame) {
	if kern.halted.Load() {
		panic(unwindHalt)
	}
	if proc.dying {
		panic(unwindExit)
	}

	proc.nsyscall.Inc()

	entry := lookupSyscall(frame.Num)
	if entry == nil {
		kern.log.Debug("unknown syscall",
			pidField(proc.pid), zap.Uint64("syscall", frame.Num))
		proc.ktraceUnknown(frame)
		return
	}
	proc.errno = 0
	proc.ktraceCall(entry, frame)

	ret := entry.fn(proc, frame)
	if entry.returns {
		frame.Ret = ret
	}
	proc.ktraceRet(entry, frame)
}

// fail records the error for the syscall trace and returns the error
// result value.
func (proc *Process) fail(err error) uint64 {
	proc.errno = mapError(err)
	return RetError
}

// boolResult converts err into the boolean result value.
func (proc *Process) boolResult(err error) uint64 {
	if err != nil {
		proc.errno = mapError(err)
		return RetFalse
	}
	return RetTrue
}
