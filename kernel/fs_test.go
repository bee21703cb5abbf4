//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package kernel

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

var pathTests = []struct {
	name   string
	result string
	err    error
}{
	{
		name:   "motd",
		result: "fs/motd",
	},
	{
		name:   "a2345678901234",
		result: "fs/a2345678901234",
	},
	{
		name: "a23456789012345",
		err:  ENAMETOOLONG,
	},
	{
		name: "",
		err:  ENOENT,
	},
	{
		name: "../motd",
		err:  EINVAL,
	},
	{
		name: "..",
		err:  EINVAL,
	},
	{
		name: "/etc/motd",
		err:  EINVAL,
	},
}

func TestPaths(t *testing.T) {
	hfs := &HostFS{
		root: "fs",
	}
	for idx, test := range pathTests {
		path, err := hfs.MakePath(test.name)
		if err != test.err {
			t.Errorf("test%d: got error %v, expected %v\n", idx, err, test.err)
			continue
		}
		if path != test.result {
			t.Errorf("test%d: got %v, expected %v\n", idx, path, test.result)
		}
	}
}

func testFileSystem(t *testing.T, fsys FileSystem) {
	if err := fsys.Create("f", 0); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := fsys.Create("f", 0); mapError(err) != EEXIST {
		t.Errorf("Create existing: got %v, expected %v", err, EEXIST)
	}
	if err := fsys.Create("sized", 100); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := fsys.Create("huge", 1<<40); mapError(err) != EFBIG {
		t.Errorf("Create huge: got %v, expected %v", err, EFBIG)
	}

	f, err := fsys.Open("sized")
	if err != nil {
		t.Fatal(err)
	}
	if f.Length() != 100 {
		t.Errorf("Length: got %v, expected 100", f.Length())
	}
	f.Close()

	f, err = fsys.Open("f")
	if err != nil {
		t.Fatal(err)
	}
	n, err := f.Write([]byte("abc"))
	if err != nil || n != 3 {
		t.Fatalf("Write: %v, %v", n, err)
	}
	if f.Tell() != 3 || f.Length() != 3 {
		t.Errorf("after Write: Tell=%v, Length=%v", f.Tell(), f.Length())
	}

	dup, err := f.Dup()
	if err != nil {
		t.Fatal(err)
	}
	f.Seek(0)
	buf := make([]byte, 10)
	n, err = f.Read(buf)
	if err != nil || !bytes.Equal(buf[:n], []byte("abc")) {
		t.Errorf("Read: got %q, %v", buf[:n], err)
	}
	n, err = f.Read(buf)
	if err != nil || n != 0 {
		t.Errorf("Read at EOF: got %v, %v", n, err)
	}
	if dup.Tell() != 3 {
		t.Errorf("Dup position: got %v, expected 3", dup.Tell())
	}

	// Removed files stay accessible through open handles.
	if err := fsys.Remove("f"); err != nil {
		t.Fatal(err)
	}
	if _, err := fsys.Open("f"); mapError(err) != ENOENT {
		t.Errorf("Open removed: got %v, expected %v", err, ENOENT)
	}
	if err := fsys.Remove("f"); mapError(err) != ENOENT {
		t.Errorf("Remove removed: got %v, expected %v", err, ENOENT)
	}
	dup.Seek(1)
	n, err = dup.Read(buf)
	if err != nil || !bytes.Equal(buf[:n], []byte("bc")) {
		t.Errorf("Read removed: got %q, %v", buf[:n], err)
	}

	if err := f.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if err := f.Close(); err == nil {
		t.Errorf("second Close succeeded")
	}
	if err := dup.Close(); err != nil {
		t.Errorf("Close dup: %v", err)
	}
}

func TestMemFS(t *testing.T) {
	mfs := NewMemFS()
	testFileSystem(t, mfs)

	if names := mfs.Names(); len(names) != 1 || names[0] != "sized" {
		t.Errorf("Names: got %v", names)
	}
}

func TestMemFSLimit(t *testing.T) {
	mfs := NewMemFS()
	mfs.MaxFileSize = 4

	if err := mfs.Create("f", 0); err != nil {
		t.Fatal(err)
	}
	f, _ := mfs.Open("f")
	n, err := f.Write([]byte("abcdef"))
	if err != nil || n != 4 {
		t.Errorf("Write: got %v, %v, expected 4", n, err)
	}
	n, err = f.Write([]byte("g"))
	if err != nil || n != 0 {
		t.Errorf("Write at limit: got %v, %v, expected 0", n, err)
	}
}

func TestHostFS(t *testing.T) {
	dir := t.TempDir()
	hfs, err := NewHostFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	testFileSystem(t, hfs)

	if _, err := os.Stat(filepath.Join(dir, "sized")); err != nil {
		t.Errorf("host file missing: %v", err)
	}

	if err := os.Symlink("/etc/passwd", filepath.Join(dir, "link")); err != nil {
		t.Fatal(err)
	}
	if _, err := hfs.Open("link"); err == nil {
		t.Errorf("Open followed a symlink")
	}
	if err := os.Mkdir(filepath.Join(dir, "dir"), 0o755); err != nil {
		t.Fatal(err)
	}
	if _, err := hfs.Open("dir"); err == nil {
		t.Errorf("Open opened a directory")
	}
	if err := hfs.Remove("dir"); !errors.Is(err, EINVAL) {
		t.Errorf("Remove directory: got %v, expected %v", err, EINVAL)
	}

	if _, err := NewHostFS(filepath.Join(dir, "sized")); err == nil {
		t.Errorf("NewHostFS accepted a regular file")
	}
}
