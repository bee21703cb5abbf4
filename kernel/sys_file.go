//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package kernel

import (
	"go.uber.org/zap"
)

func sysCreate(proc *Process, frame *Frame) uint64 {
	name := proc.userString(frame.Args[0])
	size := uintArg(frame.Args[1])

	var err error
	proc.kern.fslock.Do(func() {
		err = proc.kern.fs.Create(name, size)
	})
	return proc.boolResult(err)
}

func sysRemove(proc *Process, frame *Frame) uint64 {
	name := proc.userString(frame.Args[0])

	var err error
	proc.kern.fslock.Do(func() {
		err = proc.kern.fs.Remove(name)
	})
	return proc.boolResult(err)
}

func sysOpen(proc *Process, frame *Frame) uint64 {
	name := proc.userString(frame.Args[0])

	var fd int
	var err error
	proc.kern.fslock.Do(func() {
		var f File
		f, err = proc.kern.fs.Open(name)
		if err != nil {
			return
		}
		fd, err = proc.fds.Allocate(f)
		if err != nil {
			f.Close()
		}
	})
	if err != nil {
		return proc.fail(err)
	}
	return uint64(fd)
}

func sysFilesize(proc *Process, frame *Frame) uint64 {
	f, err := proc.fds.Lookup(intArg(frame.Args[0]))
	if err != nil {
		return proc.fail(err)
	}
	return f.Length()
}

func sysRead(proc *Process, frame *Frame) uint64 {
	fd := intArg(frame.Args[0])
	buf := frame.Args[1]
	size := uintArg(frame.Args[2])

	proc.validate(buf, size, true)

	if fd < 0 || fd >= MaxFDs {
		return proc.fail(EBADF)
	}
	if fd == StdinFD {
		data := make([]byte, 0, size)
		for uint64(len(data)) < size {
			c, ok := proc.kern.console.Getc()
			if !ok {
				break
			}
			data = append(data, c)
		}
		proc.copyOut(buf, data)
		return uint64(len(data))
	}
	f, err := proc.fds.Lookup(fd)
	if err != nil {
		return proc.fail(err)
	}
	data := make([]byte, size)
	n, err := f.Read(data)
	if err != nil {
		return proc.fail(err)
	}
	proc.copyOut(buf, data[:n])
	return uint64(n)
}

func sysWrite(proc *Process, frame *Frame) uint64 {
	fd := intArg(frame.Args[0])
	buf := frame.Args[1]
	size := uintArg(frame.Args[2])

	data := proc.copyIn(buf, size)

	if fd < 0 || fd >= MaxFDs {
		return proc.fail(EBADF)
	}
	if fd == StdoutFD {
		proc.kern.console.Putbuf(data)
		return size
	}

	var n int
	var err error
	proc.kern.fslock.Do(func() {
		var f File
		f, err = proc.fds.Lookup(fd)
		if err != nil {
			return
		}
		n, err = f.Write(data)
	})
	if err != nil {
		return proc.fail(err)
	}
	return uint64(n)
}

func sysSeek(proc *Process, frame *Frame) uint64 {
	f, err := proc.fds.Lookup(intArg(frame.Args[0]))
	if err != nil {
		proc.kill()
	}
	pos := uintArg(frame.Args[1])
	if pos > f.Length() {
		proc.kill()
	}
	f.Seek(pos)
	return 0
}

func sysTell(proc *Process, frame *Frame) uint64 {
	f, err := proc.fds.Lookup(intArg(frame.Args[0]))
	if err != nil {
		return proc.fail(err)
	}
	return f.Tell()
}

func sysClose(proc *Process, frame *Frame) uint64 {
	f, err := proc.fds.Release(intArg(frame.Args[0]))
	if err != nil {
		proc.kill()
	}
	proc.kern.fslock.Do(func() {
		err = f.Close()
	})
	if err != nil {
		proc.kern.log.Warn("close failed",
			pidField(proc.pid), zap.Error(err))
	}
	return 0
}
