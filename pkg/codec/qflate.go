// pkg/codec/qflate.go
package codec

import "github.com/qflate/qflate/pkg/qflate"

func init() {
	Register(qflate.MethodByte, qflate.MethodName, func() Codec { return qflate.New() })
}

// The qflate codec supports deferred decompression and holds pool resources.
var (
	_ Deferred = (*qflate.Codec)(nil)
	_ Codec    = (*qflate.Codec)(nil)
)
