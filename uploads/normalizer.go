package uploads

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"go.uber.org/zap"
)

// Source is what a form supplied for one media field: an uploaded file, a
// direct URL, or neither.
type Source struct {
	File *multipart.FileHeader
	URL  string
}

func (s Source) empty() bool { return s.File == nil && strings.TrimSpace(s.URL) == "" }

// Normalizer turns form media sources into stored URLs.
type Normalizer struct {
	provider    Provider
	placeholder string
	log         *zap.Logger
}

func NewNormalizer(p Provider, placeholder string, logger *zap.Logger) *Normalizer {
	return &Normalizer{provider: p, placeholder: placeholder, log: logger}
}

// Placeholder is the URL used when a new entity has no media.
func (n *Normalizer) Placeholder() string { return n.placeholder }

// Resolve returns the URL to persist for one media field.
//
// A file is uploaded with exactly one provider call; a provider failure is an
// *UploadError and the caller must not persist. A direct URL is returned as
// is. With neither, previous is kept on update; on create (previous == nil)
// the placeholder is used.
func (n *Normalizer) Resolve(ctx context.Context, folder string, src Source, previous *string) (string, error) {
	if src.File != nil {
		return n.upload(ctx, folder, src.File)
	}
	if u := strings.TrimSpace(src.URL); u != "" {
		return u, nil
	}
	if previous != nil {
		return *previous, nil
	}
	return n.placeholder, nil
}

// ResolveMany handles multi-image fields. Direct URLs followed by new
// uploads replace the stored list; with neither, previous is returned unchanged (nil on create).
// More than max resulting URLs is an error; max <= 0 means unlimited.
func (n *Normalizer) ResolveMany(ctx context.Context, folder string, files []*multipart.FileHeader, urls []string, previous []string, max int) ([]string, error) {
	var direct []string
	for _, u := range urls {
		if u = strings.TrimSpace(u); u != "" {
			direct = append(direct, u)
		}
	}
	if len(files) == 0 && len(direct) == 0 {
		return previous, nil
	}
	if max > 0 && len(files)+len(direct) > max {
		return nil, &LimitError{Max: max, Got: len(files) + len(direct)}
	}

	out := make([]string, 0, len(files)+len(direct))
	out = append(out, direct...)
	for _, fh := range files {
		u, err := n.upload(ctx, folder, fh)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

func (n *Normalizer) upload(ctx context.Context, folder string, fh *multipart.FileHeader) (string, error) {
	file, err := fh.Open()
	if err != nil {
		return "", &UploadError{Folder: folder, Filename: fh.Filename, Err: fmt.Errorf("failed to open file: %w", err)}
	}
	defer file.Close()

	u, err := n.provider.Upload(ctx, file, folder, fh.Filename)
	if err != nil {
		return "", &UploadError{Folder: folder, Filename: fh.Filename, Err: err}
	}
	n.log.Debug("media uploaded", zap.String("folder", folder), zap.String("file", fh.Filename), zap.String("url", u))
	return u, nil
}

// Discard removes provider-hosted media. Foreign URLs and the placeholder are
// skipped. Failures are logged and do not stop the remaining deletes.
func (n *Normalizer) Discard(ctx context.Context, urls ...string) {
	for _, u := range urls {
		if u == "" || u == n.placeholder || !n.provider.Owns(u) {
			continue
		}
		if err := n.provider.Delete(ctx, u); err != nil {
			n.log.Warn("media cleanup failed", zap.String("url", u), zap.Error(err))
		}
	}
}

// LimitError reports too many media items for a field.
type LimitError struct {
	Max int
	Got int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("at most %d images allowed, got %d", e.Max, e.Got)
}
