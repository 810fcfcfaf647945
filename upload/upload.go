// Package upload stores uploaded images and returns the public URL the rest
// of the site records.
package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// ErrUnsupportedType is returned for content that is not an image.
var ErrUnsupportedType = errors.New("unsupported file type")

const sniffLen = 3072

// Object describes a stored upload.
type Object struct {
	Filename    string `json:"filename"`
	URL         string `json:"url"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// Store persists uploaded content.
type Store interface {
	Save(ctx context.Context, r io.Reader) (Object, error)
}

// DiskStore writes uploads to a local directory served under PublicURL.
type DiskStore struct {
	Dir       string
	PublicURL string
}

// NewDiskStore creates dir if needed.
func NewDiskStore(dir, publicURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{Dir: dir, PublicURL: strings.TrimSuffix(publicURL, "/")}, nil
}

// Save sniffs the content type, rejects anything but images and stores the
// content under a random name with the detected extension.
func (d *DiskStore) Save(ctx context.Context, r io.Reader) (Object, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return Object{}, fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]
	if n == 0 {
		return Object{}, fmt.Errorf("%w: empty file", ErrUnsupportedType)
	}

	mtype := mimetype.Detect(head)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return Object{}, fmt.Errorf("%w: %s", ErrUnsupportedType, mtype.String())
	}
	if err := ctx.Err(); err != nil {
		return Object{}, err
	}

	tmp, err := os.CreateTemp(d.Dir, ".upload-*")
	if err != nil {
		return Object{}, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	size, err := io.Copy(tmp, io.MultiReader(bytes.NewReader(head), r))
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return Object{}, fmt.Errorf("write upload: %w", err)
	}

	filename := uuid.NewString() + mtype.Extension()
	if err := os.Rename(tmp.Name(), filepath.Join(d.Dir, filename)); err != nil {
		return Object{}, fmt.Errorf("store upload: %w", err)
	}

	return Object{
		Filename:    filename,
		URL:         d.PublicURL + "/" + filename,
		ContentType: mtype.String(),
		Size:        size,
	}, nil
}
