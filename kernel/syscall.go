//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package kernel

import (
	"fmt"
)

// Syscall defines system calls.
type Syscall uint64

func (call Syscall) String() string {
	name, ok := syscallNames[call]
	if ok {
		return name
	}
	return fmt.Sprintf("{Syscall %d}", uint64(call))
}

// System calls.
const (
	SysHalt Syscall = iota
	SysExit
	SysFork
	SysExec
	SysWait
	SysCreate
	SysRemove
	SysOpen
	SysFilesize
	SysRead
	SysWrite
	SysSeek
	SysTell
	SysClose

	numSyscalls
)

var syscallNames = map[Syscall]string{
	SysHalt:     "halt",
	SysExit:     "exit",
	SysFork:     "fork",
	SysExec:     "exec",
	SysWait:     "wait",
	SysCreate:   "create",
	SysRemove:   "remove",
	SysOpen:     "open",
	SysFilesize: "filesize",
	SysRead:     "read",
	SysWrite:    "write",
	SysSeek:     "seek",
	SysTell:     "tell",
	SysClose:    "close",
}

// Frame holds the syscall number, its arguments, and the return
// value slot.
type Frame struct {
	Num  uint64
	Args [3]uint64
	Ret  uint64

	// Cont is the program the child of a fork runs. It is the
	// child's continuation from its fork returning 0.
	Cont Program
}

// Result values.
const (
	RetError = ^uint64(0)
	RetFalse = uint64(0)
	RetTrue  = uint64(1)
)

// argKind defines how a syscall argument is decoded and traced.
type argKind int

const (
	argInt argKind = iota
	argUint
	argPtr
	argStr
)

// syscallFn implements a syscall handler. Handlers that produce no
// result return 0.
type syscallFn func(proc *Process, frame *Frame) uint64

type syscallEntry struct {
	name    string
	args    []argKind
	returns bool
	fn      syscallFn
}

// Arity returns the number of syscall arguments.
func (e *syscallEntry) Arity() int {
	return len(e.args)
}

var syscallTable [numSyscalls]syscallEntry

func register(call Syscall, returns bool, fn syscallFn, args ...argKind) {
	syscallTable[call] = syscallEntry{
		name:    call.String(),
		args:    args,
		returns: returns,
		fn:      fn,
	}
}

func init() {
	register(SysHalt, false, sysHalt)
	register(SysExit, false, sysExit, argInt)
	register(SysFork, true, sysFork, argStr)
	register(SysExec, true, sysExec, argStr)
	register(SysWait, true, sysWait, argInt)
	register(SysCreate, true, sysCreate, argStr, argUint)
	register(SysRemove, true, sysRemove, argStr)
	register(SysOpen, true, sysOpen, argStr)
	register(SysFilesize, true, sysFilesize, argInt)
	register(SysRead, true, sysRead, argInt, argPtr, argUint)
	register(SysWrite, true, sysWrite, argInt, argPtr, argUint)
	register(SysSeek, false, sysSeek, argInt, argUint)
	register(SysTell, true, sysTell, argInt)
	register(SysClose, false, sysClose, argInt)
}

// lookupSyscall returns the table entry for the syscall number or
// nil if the number is unknown.
func lookupSyscall(num uint64) *syscallEntry {
	if num >= uint64(len(syscallTable)) {
		return nil
	}
	entry := &syscallTable[num]
	if entry.fn == nil {
		return nil
	}
	return entry
}

// Argument decoding follows the C calling convention: int and
// unsigned are 32 bits wide.

func intArg(v uint64) int {
	return int(int32(v))
}

func uintArg(v uint64) uint64 {
	return uint64(uint32(v))
}

func intRet(v int64) uint64 {
	return uint64(v)
}
