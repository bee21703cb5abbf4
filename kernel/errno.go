//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package kernel

import (
	"errors"
	"fmt"
	"io/fs"

	"golang.org/x/sys/unix"
)

// Errno defines error numbers.
type Errno int32

// Error numbers.
const (
	ENOENT       Errno = 2
	ENOEXEC      Errno = 8
	EBADF        Errno = 9
	ECHILD       Errno = 10
	ENOMEM       Errno = 12
	EFAULT       Errno = 14
	EEXIST       Errno = 17
	EINVAL       Errno = 22
	EMFILE       Errno = 24
	EFBIG        Errno = 27
	ENOSPC       Errno = 28
	EAGAIN       Errno = 35
	ENAMETOOLONG Errno = 63
	ENOSYS       Errno = 78
)

func (err Errno) Error() string {
	return err.String()
}

func (err Errno) String() string {
	name, ok := errnoNames[err]
	if ok {
		desc, ok := errnoDescriptions[err]
		if ok {
			return name + " " + desc
		}
		return name
	}
	return fmt.Sprintf("{Errno %d}", err)
}

// Description returns a short description about the error code.
func (err Errno) Description() string {
	desc, ok := errnoDescriptions[err]
	if ok {
		return desc
	}
	return fmt.Sprintf("{Errno %d}", err)
}

var errnoNames = map[Errno]string{
	ENOENT:       "ENOENT",
	ENOEXEC:      "ENOEXEC",
	EBADF:        "EBADF",
	ECHILD:       "ECHILD",
	ENOMEM:       "ENOMEM",
	EFAULT:       "EFAULT",
	EEXIST:       "EEXIST",
	EINVAL:       "EINVAL",
	EMFILE:       "EMFILE",
	EFBIG:        "EFBIG",
	ENOSPC:       "ENOSPC",
	EAGAIN:       "EAGAIN",
	ENAMETOOLONG: "ENAMETOOLONG",
	ENOSYS:       "ENOSYS",
}

var errnoDescriptions = map[Errno]string{
	ENOENT:       "No such file or directory",
	ENOEXEC:      "Exec format error",
	EBADF:        "Bad file descriptor",
	ECHILD:       "No child processes",
	ENOMEM:       "Cannot allocate memory",
	EFAULT:       "Bad address",
	EEXIST:       "File exists",
	EINVAL:       "Invalid argument",
	EMFILE:       "Too many open files",
	EFBIG:        "File too large",
	ENOSPC:       "No space left on device",
	EAGAIN:       "Resource temporarily unavailable",
	ENAMETOOLONG: "File name too long",
	ENOSYS:       "Function not implemented",
}

var hostErrnos = map[unix.Errno]Errno{
	unix.ENOENT:       ENOENT,
	unix.EEXIST:       EEXIST,
	unix.ENOSPC:       ENOSPC,
	unix.EFBIG:        EFBIG,
	unix.ENAMETOOLONG: ENAMETOOLONG,
	unix.ELOOP:        ENOENT,
	unix.EISDIR:       EINVAL,
	unix.EBADF:        EBADF,
	unix.ENOMEM:       ENOMEM,
}

// mapError classifies err into an error number. Host file system
// errors are mapped through their unix errno values.
func mapError(err error) Errno {
	if err == nil {
		return 0
	}
	var errno Errno
	if errors.As(err, &errno) {
		return errno
	}
	var uerr unix.Errno
	if errors.As(err, &uerr) {
		mapped, ok := hostErrnos[uerr]
		if ok {
			return mapped
		}
	}
	switch {
	case errors.Is(err, ErrExhausted):
		return EMFILE
	case errors.Is(err, ErrNotFound):
		return EBADF
	case errors.Is(err, fs.ErrNotExist):
		return ENOENT
	case errors.Is(err, fs.ErrExist):
		return EEXIST
	}
	return EINVAL
}
