//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package kernel

import (
	"go.uber.org/zap"
)

func pidField(pid PID) zap.Field {
	return zap.Int32("pid", int32(pid))
}

func nameField(name string) zap.Field {
	return zap.String("name", name)
}

func addrField(addr uint64) zap.Field {
	return zap.Uint64("addr", addr)
}

func sizeField(size uint64) zap.Field {
	return zap.Uint64("size", size)
}
