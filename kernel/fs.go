//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package kernel

import (
	"strings"
)

// NameMax is the maximum file name length.
const NameMax = 14

// FileSystem implements the file namespace. The kernel calls Create,
// Remove, and Open holding the file system lock.
type FileSystem interface {
	Create(name string, size uint64) error
	Remove(name string) error
	Open(name string) (File, error)
}

// CheckName verifies that name is a valid file name. File names are
// flat, non-empty, and at most NameMax bytes long.
func CheckName(name string) error {
	if len(name) == 0 {
		return ENOENT
	}
	if len(name) > NameMax {
		return ENAMETOOLONG
	}
	if name == "." || name == ".." || strings.ContainsAny(name, "/\x00") {
		return EINVAL
	}
	return nil
}
