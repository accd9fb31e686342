package pairing

import "math/rand/v2"

const (
	idAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	idLength   = 32
)

// IDFunc produces identifiers used as HTML id/for values.
type IDFunc func() string

// RandomID returns a 32 character identifier drawn from ASCII letters and
// digits. Collisions are possible but vanishingly unlikely within one render.
func RandomID() string {
	buf := make([]byte, idLength)
	for i := range buf {
		buf[i] = idAlphabet[rand.IntN(len(idAlphabet))]
	}
	return string(buf)
}
