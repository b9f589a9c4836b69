package backend

// Blob is an in-memory handle to downloaded binary content (a photo or
// a lab PDF). Callers must Release the handle when the content is no
// longer displayed so the bytes can be reclaimed.
type Blob struct {
	ContentType string
	data        []byte
}

// NewBlob wraps downloaded bytes in a releasable handle.
func NewBlob(contentType string, data []byte) *Blob {
	return &Blob{ContentType: contentType, data: data}
}

// Bytes returns the content, or nil after Release.
func (b *Blob) Bytes() []byte { return b.data }

// Release drops the content reference. Using the blob afterwards
// yields nil bytes, never a panic.
func (b *Blob) Release() {
	b.data = nil
}
