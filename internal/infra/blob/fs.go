package blob

import (
	"context"
	"encoding/json"
	"io"
	iofs "io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"helios/internal/errors"
)

// fsStore implements Store using the local filesystem. Keys map to relative
// file paths under the root. A metadata sidecar (filename + `.meta`) stores
// content type and user metadata.
type fsStore struct {
	root    string
	baseURL string
}

// NewFilesystem returns a filesystem-backed Store rooted at path, creating it
// if needed.
func NewFilesystem(root, baseURL string) (Store, error) {
	if root == "" {
		root = "./blobdata"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errors.Wrap(err, "create blob root")
	}

	return &fsStore{root: root, baseURL: baseURL}, nil
}

func (s *fsStore) Driver() Driver { return DriverFilesystem }

type fsMeta struct {
	ContentType string            `json:"contentType,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	Size        int64             `json:"size"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// sanitizeKey forbids path traversal and absolute paths.
func sanitizeKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", errors.New("empty key")
	}
	if strings.Contains(key, "..") || strings.HasPrefix(key, "/") {
		return "", errors.Errorf("invalid key %q", key)
	}
	clean := filepath.ToSlash(filepath.Clean(key))
	if strings.HasPrefix(clean, "..") {
		return "", errors.Errorf("invalid key %q", key)
	}

	return clean, nil
}

func (s *fsStore) pathFor(key string) (dataPath, metaPath string, err error) {
	k, err := sanitizeKey(key)
	if err != nil {
		return "", "", err
	}
	dataPath = filepath.Join(s.root, k)
	metaPath = dataPath + ".meta"

	return dataPath, metaPath, nil
}

func (s *fsStore) Put(_ context.Context, key string, r io.Reader, opts PutOptions) (Info, error) {
	dataPath, metaPath, err := s.pathFor(key)
	if err != nil {
		return Info{}, err
	}
	if err := os.MkdirAll(filepath.Dir(dataPath), 0o755); err != nil {
		return Info{}, errors.Wrap(err, "create blob directory")
	}

	// Stream to a temp file, then rename into place so readers never see a
	// partial write.
	tmp, err := os.CreateTemp(filepath.Dir(dataPath), ".tmp-*")
	if err != nil {
		return Info{}, errors.Wrap(err, "create temp file")
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	size, err := io.Copy(tmp, r)
	if err != nil {
		_ = tmp.Close()

		return Info{}, errors.Wrap(err, "write blob content")
	}
	if err := tmp.Close(); err != nil {
		return Info{}, errors.Wrap(err, "close temp file")
	}
	if err := os.Rename(tmp.Name(), dataPath); err != nil {
		return Info{}, errors.Wrap(err, "move blob into place")
	}

	now := time.Now().UTC()
	meta := fsMeta{ContentType: opts.ContentType, Metadata: cloneMetadata(opts.Metadata), Size: size, UpdatedAt: now}
	raw, err := json.Marshal(meta)
	if err != nil {
		return Info{}, errors.Wrap(err, "encode blob metadata")
	}
	if err := os.WriteFile(metaPath, raw, 0o644); err != nil {
		return Info{}, errors.Wrap(err, "write blob metadata")
	}

	return Info{
		Key:          key,
		Size:         size,
		ContentType:  opts.ContentType,
		Metadata:     cloneMetadata(opts.Metadata),
		LastModified: now,
		URL:          s.URL(key),
	}, nil
}

func (s *fsStore) Get(_ context.Context, key string) (Info, io.ReadCloser, error) {
	dataPath, metaPath, err := s.pathFor(key)
	if err != nil {
		return Info{}, nil, err
	}

	file, err := os.Open(dataPath)
	if errors.Is(err, iofs.ErrNotExist) {
		return Info{}, nil, ErrNotFound
	}
	if err != nil {
		return Info{}, nil, errors.Wrap(err, "open blob")
	}

	meta, err := readFSMeta(metaPath)
	if err != nil {
		_ = file.Close()

		return Info{}, nil, err
	}

	info := Info{
		Key:          key,
		Size:         meta.Size,
		ContentType:  meta.ContentType,
		Metadata:     cloneMetadata(meta.Metadata),
		LastModified: meta.UpdatedAt,
		URL:          s.URL(key),
	}

	return info, file, nil
}

func (s *fsStore) Delete(_ context.Context, key string) (bool, error) {
	dataPath, metaPath, err := s.pathFor(key)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(dataPath); errors.Is(err, iofs.ErrNotExist) {
		return false, nil
	}
	if err := os.Remove(dataPath); err != nil {
		return false, errors.Wrap(err, "remove blob")
	}
	_ = os.Remove(metaPath)

	return true, nil
}

func (s *fsStore) URL(key string) string {
	if s.baseURL != "" {
		return strings.TrimSuffix(s.baseURL, "/") + "/" + key
	}

	return (&url.URL{Scheme: "http", Host: "local.blob", Path: "/" + key}).String()
}

func readFSMeta(path string) (fsMeta, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fsMeta{}, errors.Wrap(err, "read blob metadata")
	}
	var meta fsMeta
	if err := json.Unmarshal(raw, &meta); err != nil {
		return fsMeta{}, errors.Wrap(err, "decode blob metadata")
	}

	return meta, nil
}
