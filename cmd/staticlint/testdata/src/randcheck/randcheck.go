package randcheck

import (
	mrand "math/rand"     // want "math/rand is not a CSPRNG; use crypto/rand"
	randv2 "math/rand/v2" // want "math/rand/v2 is not a CSPRNG; use crypto/rand"
)

func Seed() int64 {
	return mrand.Int63() + int64(randv2.IntN(10))
}
