package depreg

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

// The package logger discards everything by default so the library is silent
// unless the host application opts in.
var pkgLogger atomic.Pointer[zerolog.Logger]

func init() {
	nop := zerolog.Nop()
	pkgLogger.Store(&nop)
}

// SetLogger directs the library's debug and error events to the given
// logger. Construction, override, and reset are logged at debug level;
// background preload failures at error level.
func SetLogger(l zerolog.Logger) {
	pkgLogger.Store(&l)
}

func log() *zerolog.Logger {
	return pkgLogger.Load()
}
