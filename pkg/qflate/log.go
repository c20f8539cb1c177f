// pkg/qflate/log.go
package qflate

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Log receives hardware-fallback warnings and pool lifecycle messages. It
// discards everything by default so the codec stays silent in library use;
// point it at a real output to see which path served each request.
var Log = logrus.New()

func init() {
	Log.SetOutput(io.Discard)
}
