package storage

import (
	"context"
	"errors"
	"io"
)

// ErrObjectExists is returned by Upload when the target key is already
// present in the bucket.
var ErrObjectExists = errors.New("object already exists")

// ObjectStore persists generated documents and shared artifacts and returns
// a public URL for each stored object.
//
// Upload never replaces an existing object; job sheets carry unique keys and
// a collision means something went wrong upstream. Overwrite is reserved for
// artifacts that are meant to be replaced in place, like the contact card.
type ObjectStore interface {
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
	Overwrite(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
}
