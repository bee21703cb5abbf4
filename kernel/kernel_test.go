//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package kernel

import (
	"testing"
)

func TestSyscall(t *testing.T) {
	if SysHalt != 0 {
		t.Errorf("SysHalt=%v, expected 0", uint64(SysHalt))
	}
	if SysExit != 1 {
		t.Errorf("SysExit=%v, expected 1", uint64(SysExit))
	}
	if SysClose != 13 {
		t.Errorf("SysClose=%v, expected 13", uint64(SysClose))
	}
	for call := SysHalt; call < numSyscalls; call++ {
		entry := lookupSyscall(uint64(call))
		if entry == nil {
			t.Errorf("%v: no handler", call)
			continue
		}
		if entry.name != call.String() {
			t.Errorf("%v: entry name %v", call, entry.name)
		}
	}
	if lookupSyscall(uint64(numSyscalls)) != nil {
		t.Errorf("syscall %d has a handler", uint64(numSyscalls))
	}
	if Syscall(99).String() != "{Syscall 99}" {
		t.Errorf("Syscall(99): got %v", Syscall(99))
	}
}

var arityTests = []struct {
	call    Syscall
	arity   int
	returns bool
}{
	{SysHalt, 0, false},
	{SysExit, 1, false},
	{SysFork, 1, true},
	{SysExec, 1, true},
	{SysWait, 1, true},
	{SysCreate, 2, true},
	{SysRemove, 1, true},
	{SysOpen, 1, true},
	{SysFilesize, 1, true},
	{SysRead, 3, true},
	{SysWrite, 3, true},
	{SysSeek, 2, false},
	{SysTell, 1, true},
	{SysClose, 1, false},
}

func TestArity(t *testing.T) {
	for _, test := range arityTests {
		entry := lookupSyscall(uint64(test.call))
		if entry.Arity() != test.arity {
			t.Errorf("%v: arity %v, expected %v",
				test.call, entry.Arity(), test.arity)
		}
		if entry.returns != test.returns {
			t.Errorf("%v: returns %v, expected %v",
				test.call, entry.returns, test.returns)
		}
	}
}

func TestArgs(t *testing.T) {
	if intArg(^uint64(0)) != -1 {
		t.Errorf("intArg(-1)=%v", intArg(^uint64(0)))
	}
	if intArg(0x100000005) != 5 {
		t.Errorf("intArg(0x100000005)=%v", intArg(0x100000005))
	}
	if uintArg(0x1ffffffff) != 0xffffffff {
		t.Errorf("uintArg(0x1ffffffff)=%#x", uintArg(0x1ffffffff))
	}
}

func TestNewDefaults(t *testing.T) {
	kern := New(nil)
	if kern.params.MaxProcesses != DefaultMaxProcesses {
		t.Errorf("MaxProcesses=%v, expected %v",
			kern.params.MaxProcesses, DefaultMaxProcesses)
	}
	if _, err := kern.Spawn("init"); err == nil {
		t.Errorf("Spawn succeeded without programs")
	}
	if _, err := kern.Spawn(""); mapError(err) != ENOEXEC {
		t.Errorf("Spawn(\"\"): got %v, expected %v", err, ENOEXEC)
	}
	select {
	case <-kern.Halted():
		t.Errorf("new kernel halted")
	default:
	}
}
