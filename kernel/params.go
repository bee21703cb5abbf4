//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package kernel

import (
	"io"

	"go.uber.org/zap"
)

// DefaultMaxProcesses is the default limit for live processes.
const DefaultMaxProcesses = 64

// Params define kernel parameters.
type Params struct {
	Trace        bool
	Verbose      bool
	MaxProcesses int
	TraceOut     io.Writer
	Logger       *zap.Logger
	FileSystem   FileSystem
	Console      Console
	Loader       Loader
	PowerOff     func()
}
