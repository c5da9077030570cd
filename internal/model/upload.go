package model

import "io"

// UploadFile is a file received from a user, before it is stored.
type UploadFile struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}
