//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package kernel

import (
	"fmt"
	"sort"
	"strings"
)

// Program implements a user program image. The return value is the
// process exit status.
type Program func(u *User) int

// Loader loads program images by name.
type Loader interface {
	Load(name string) (Program, error)
}

var _ Loader = Programs{}

// Programs implements a Loader from a fixed set of program images.
type Programs map[string]Program

// Load implements Loader.Load.
func (progs Programs) Load(name string) (Program, error) {
	prog, ok := progs[name]
	if !ok || prog == nil {
		return nil, fmt.Errorf("program '%s': %w", name, ENOENT)
	}
	return prog, nil
}

// Names returns the sorted program names.
func (progs Programs) Names() []string {
	var result []string
	for name := range progs {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// ParseCommand splits the command line into the program name and the
// argument vector. The first argument is the program name.
func ParseCommand(cmdline string) (string, []string, error) {
	fields := strings.Fields(cmdline)
	if len(fields) == 0 {
		return "", nil, fmt.Errorf("empty command line: %w", ENOEXEC)
	}
	return fields[0], fields, nil
}
