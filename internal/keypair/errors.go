package keypair

import "fmt"

// Generation stages reported by GenerationError.
const (
	StageGenerate = "generate"
	StageEncode   = "encode"
)

// GenerationError reports a failed key generation or PEM encoding.
type GenerationError struct {
	Stage string
	Bits  int
	Err   error
}

func (e *GenerationError) Error() string {
	switch e.Stage {
	case StageEncode:
		return fmt.Sprintf("encode %d-bit key pair: %v", e.Bits, e.Err)
	default:
		return fmt.Sprintf("generate %d-bit key: %v", e.Bits, e.Err)
	}
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
