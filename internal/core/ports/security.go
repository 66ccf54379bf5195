package ports

// SecurityPort encrypts sensitive fields before they leave the process.
type SecurityPort interface {
	// Encrypt takes a plaintext and returns a secure, encrypted ciphertext.
	Encrypt(plaintext []byte) (ciphertext []byte, err error)

	// Decrypt takes a ciphertext and returns the original plaintext.
	Decrypt(ciphertext []byte) (plaintext []byte, err error)

	// Seal encrypts a string and base64-encodes the result for text columns.
	Seal(plaintext string) (string, error)

	// Open reverses Seal.
	Open(sealed string) (string, error)
}
