package ports

import "time"

// UploadSignature is the set of parameters a client needs to upload an image
// directly to the blob store.
type UploadSignature struct {
	Timestamp    int64
	Signature    string
	APIKey       string
	CloudName    string
	Folder       string
	UploadPreset string
}

// UploadSigner signs direct-upload requests for a destination folder.
type UploadSigner interface {
	Sign(folder string, at time.Time) (*UploadSignature, error)
}
