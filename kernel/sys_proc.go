//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package kernel

func sysHalt(proc *Process, frame *Frame) uint64 {
	proc.kern.Halt()
	panic(unwindHalt)
}

func sysExit(proc *Process, frame *Frame) uint64 {
	proc.exit(int32(frame.Args[0]))
	return 0
}

func sysFork(proc *Process, frame *Frame) uint64 {
	name := proc.userString(frame.Args[0])

	child, err := proc.kern.fork(proc, name, frame.Cont)
	if err != nil {
		return proc.fail(err)
	}
	return uint64(child.pid)
}

func sysExec(proc *Process, frame *Frame) uint64 {
	// The command line is copied into kernel memory before the
	// address space is replaced.
	cmdline := proc.userString(frame.Args[0])

	err := proc.kern.exec(proc, cmdline)
	if err != nil {
		return proc.fail(err)
	}
	panic(unwindExec)
}

func sysWait(proc *Process, frame *Frame) uint64 {
	status, err := proc.kern.wait(proc, PID(intArg(frame.Args[0])))
	if err != nil {
		return proc.fail(err)
	}
	return intRet(int64(status))
}
