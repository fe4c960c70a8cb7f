package common

// WipeByteArray overwrites the contents of the provided byte slice with
// zeros. Used to drop plain-text passwords from memory as soon as they have
// been hashed or verified.
//
// A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
