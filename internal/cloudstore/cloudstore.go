// Package cloudstore reads and writes dataset objects in cloud object
// storage. S3 is the only provider wired up today.
package cloudstore

import (
	"context"
	"fmt"
	"strings"
)

type Writer interface {
	Write(data []byte) (int, error)
	Close() error
}

type WriterFactory interface {
	NewWriter(bucket, objectPath string) (Writer, error)
}

// Fetcher retrieves a whole object, used to load datasets from s3:// URIs.
type Fetcher interface {
	Fetch(ctx context.Context, bucket, objectPath string) ([]byte, error)
}

// ParseURI splits an s3://bucket/key URI into bucket and object path.
func ParseURI(uri string) (bucket, objectPath string, err error) {
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		return "", "", fmt.Errorf("not an s3 URI: %q", uri)
	}
	bucket, objectPath, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || objectPath == "" {
		return "", "", fmt.Errorf("s3 URI %q needs the form s3://bucket/key", uri)
	}
	return bucket, objectPath, nil
}
