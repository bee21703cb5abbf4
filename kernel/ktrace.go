//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package kernel

import (
	"fmt"
	"io"
	"strings"
)

func (proc *Process) ktracef(format string, a ...interface{}) {
	if !proc.kern.params.Trace {
		return
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%7d %-8s ", proc.pid, proc.Name())
	fmt.Fprintf(&sb, format, a...)
	sb.WriteByte('\n')

	proc.kern.traceM.Lock()
	io.WriteString(proc.kern.params.TraceOut, sb.String())
	proc.kern.traceM.Unlock()
}

func (proc *Process) ktraceCall(entry *syscallEntry, frame *Frame) {
	if !proc.kern.params.Trace {
		return
	}
	var sb strings.Builder
	sb.WriteString(entry.name)
	sb.WriteByte('(')
	for i := 0; i < entry.Arity(); i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		v := frame.Args[i]
		switch entry.args[i] {
		case argInt:
			fmt.Fprintf(&sb, "%d", intArg(v))
		case argUint:
			fmt.Fprintf(&sb, "%d", uintArg(v))
		case argPtr, argStr:
			fmt.Fprintf(&sb, "%#x", v)
		}
	}
	sb.WriteByte(')')

	proc.ktracef("CALL %s", sb.String())
}

func (proc *Process) ktraceRet(entry *syscallEntry, frame *Frame) {
	if !proc.kern.params.Trace {
		return
	}
	if !entry.returns {
		proc.ktracef("RET  %s", entry.name)
		return
	}
	if frame.Ret == RetError && proc.errno != 0 {
		proc.ktracef("RET  %s -1 %s", entry.name, proc.errno)
		return
	}
	if frame.Ret == RetFalse && proc.errno != 0 {
		proc.ktracef("RET  %s 0 %s", entry.name, proc.errno)
		return
	}
	proc.ktracef("RET  %s %d", entry.name, int64(frame.Ret))
}

func (proc *Process) ktraceUnknown(frame *Frame) {
	if !proc.kern.params.Trace {
		return
	}
	proc.ktracef("CALL %s ignored", Syscall(frame.Num))
}

func (proc *Process) ktraceExit(status int32) {
	if !proc.kern.params.Trace {
		return
	}
	proc.ktracef("EXIT %d", status)
}
