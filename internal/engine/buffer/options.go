package buffer

// Option configures a Buffer.
type Option func(*Buffer)

// WithLineEnding sets the line ending written into the buffer.
func WithLineEnding(le LineEnding) Option {
	return func(b *Buffer) {
		b.lineEnding = le
	}
}

// WithPreservedLineEndings disables line ending normalization.
// Text is stored byte-for-byte as given.
func WithPreservedLineEndings() Option {
	return func(b *Buffer) {
		b.preserve = true
	}
}
