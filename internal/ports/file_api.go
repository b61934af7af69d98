package ports

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/mfimport/internal/domain"
)

var (
	// ErrHashNotFound matches a claim rejected because the service does not
	// host the hash.
	ErrHashNotFound = errors.New("hash not found")
	// ErrRequestTimeout matches a call that outlived its request timeout.
	ErrRequestTimeout = fmt.Errorf("request timed out: %w", context.DeadlineExceeded)
)

// FileAPI is the subset of the remote API the import pipeline drives.
type FileAPI interface {
	GetFileInfo(ctx context.Context, quickKey string) (domain.FileInfo, error)
	// InstantUpload claims a file already hosted by hash. An empty quick key
	// with a nil error means the account already owns the file.
	InstantUpload(ctx context.Context, filename string, size uint64, sha256 string) (string, error)
	SetPrivate(ctx context.Context, quickKey string) error
}

// UserMessager is implemented by errors that carry the server's own wording.
type UserMessager interface {
	UserMessage() string
}

// ErrorMessage returns the server's message for err when it has one.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var messager UserMessager
	if errors.As(err, &messager) {
		return messager.UserMessage()
	}
	return err.Error()
}
