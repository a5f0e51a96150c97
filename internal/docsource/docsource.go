// Package docsource lists and opens donor-data documents from a document center.
package docsource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adminizer/giving/core/ingest"
	"github.com/adminizer/giving/internal/contract"
	"github.com/adminizer/giving/schema"
)

// DirSource treats a local folder as the document center. Files in its
// "Donor Data" sub-folder and supported files at the top level are donor data.
type DirSource struct {
	root string
}

var _ contract.DocumentSource = &DirSource{} // Compile-time check

// NewDirSource creates a source rooted at dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{root: dir}
}

// Name implements the DocumentSource interface.
func (s *DirSource) Name() string {
	return "dir:" + s.root
}

// Root returns the folder being read.
func (s *DirSource) Root() string {
	return s.root
}

// ListDocuments implements the DocumentSource interface.
func (s *DirSource) ListDocuments(_ context.Context) ([]schema.Document, error) {
	info, err := os.Stat(s.root)
	if err != nil {
		return nil, fmt.Errorf("document folder %s is not readable: %w", s.root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("document folder %s is not a directory", s.root)
	}

	docs, err := s.listDir(s.root)
	if err != nil {
		return nil, err
	}
	category := filepath.Join(s.root, schema.DonorDataCategory)
	if info, err := os.Stat(category); err == nil && info.IsDir() {
		nested, err := s.listDir(category)
		if err != nil {
			return nil, err
		}
		docs = append(docs, nested...)
	}

	sortDocuments(docs)
	return docs, nil
}

// listDir returns the supported regular files directly inside dir.
func (s *DirSource) listDir(dir string) ([]schema.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	var docs []schema.Document
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		contentType := contentTypeOf(name)
		if !ingest.IsSupported(name, contentType) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", name, err)
		}
		rel, err := filepath.Rel(s.root, filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		docs = append(docs, schema.Document{
			ID:          filepath.ToSlash(rel),
			Name:        name,
			Category:    schema.DonorDataCategory,
			ContentType: contentType,
			CreatedAt:   info.ModTime().UTC(),
		})
	}
	return docs, nil
}

// Open implements the DocumentSource interface.
func (s *DirSource) Open(_ context.Context, doc schema.Document) (io.ReadCloser, error) {
	path := filepath.Join(s.root, filepath.FromSlash(doc.ID))
	rel, err := filepath.Rel(s.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return nil, fmt.Errorf("document %s is outside %s", doc.ID, s.root)
	}
	return os.Open(path)
}

// contentTypeOf guesses the MIME type from the extension.
func contentTypeOf(name string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); ct != "" {
		return ct
	}
	return "text/plain"
}

// sortDocuments orders oldest first, then by ID.
func sortDocuments(docs []schema.Document) {
	sort.SliceStable(docs, func(i, j int) bool {
		if !docs[i].CreatedAt.Equal(docs[j].CreatedAt) {
			return docs[i].CreatedAt.Before(docs[j].CreatedAt)
		}
		return docs[i].ID < docs[j].ID
	})
}

// ErrNoSource is returned when sync is disabled in the configuration.
var ErrNoSource = errors.New("no document source configured")

// FromConfig builds the document source selected by cfg.
func FromConfig(ctx context.Context, cfg *contract.Config) (contract.DocumentSource, error) {
	switch cfg.Source {
	case schema.DirSource, "":
		return NewDirSource(cfg.SourceDir), nil
	case schema.S3Source:
		return NewS3Source(ctx, cfg.S3Bucket, cfg.S3Prefix, cfg.S3Region)
	case schema.NoneSource:
		return nil, ErrNoSource
	default:
		return nil, fmt.Errorf("unsupported document source: %s", cfg.Source)
	}
}
