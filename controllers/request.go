package controllers

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/phillip/charity-admin-go/uploads"
)

// Request is what a schema's Build and Patch functions work from.
type Request struct {
	Ctx context.Context

	c          *gin.Context
	folder     string
	media      *uploads.Normalizer
	categories []string
	strict     bool

	form     *multipart.Form
	uploaded []string
}

// Bind decodes and validates the body into obj and keeps any uploaded files
// for the media helpers.
func (r *Request) Bind(obj any) error {
	if err := bind(r.c, obj); err != nil {
		return err
	}
	form, err := r.c.MultipartForm()
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return &ValidationError{Message: "invalid form data"}
	}
	r.form = form
	return nil
}

// File returns the first upload under key, if any.
func (r *Request) File(key string) *multipart.FileHeader {
	if fs := r.Files(key); len(fs) > 0 {
		return fs[0]
	}
	return nil
}

// Files returns every upload under key.
func (r *Request) Files(key string) []*multipart.FileHeader {
	if r.form == nil {
		return nil
	}
	return r.form.File[key]
}

// textUnder returns plain values sent under a file key, as a multipart
// client does when it sends a stored URL back in the field itself.
func (r *Request) textUnder(key string) []string {
	if r.form == nil {
		return nil
	}
	return r.form.Value[key]
}

// CheckCategory rejects a category outside the resource's list when strict
// categories are on. A blank category always passes.
func (r *Request) CheckCategory(category string) error {
	if !r.strict || len(r.categories) == 0 || category == "" || slices.Contains(r.categories, category) {
		return nil
	}
	return &ValidationError{
		Field:   "category",
		Message: "category must be one of " + strings.Join(r.categories, ", "),
	}
}

// Placeholder is the media reference for entities created without any.
func (r *Request) Placeholder() string { return r.media.Placeholder() }

// RequireMedia fails unless fileKey carries a file or one of direct is set.
func (r *Request) RequireMedia(field, fileKey string, direct ...string) error {
	if r.mediaSent(fileKey, direct) {
		return nil
	}
	return &ValidationError{Field: field, Message: field + " is required (upload a file or provide a URL)"}
}

func (r *Request) mediaSent(fileKey string, direct []string) bool {
	return len(r.Files(fileKey)) > 0 || len(collect(slices.Concat(direct, r.textUnder(fileKey)))) > 0
}

// Image resolves a single media field from an upload under fileKey or the
// direct URL. previous is nil on create.
func (r *Request) Image(fileKey, direct string, previous *string) (string, error) {
	file := r.File(fileKey)
	if direct = strings.TrimSpace(direct); direct == "" {
		if text := collect(r.textUnder(fileKey)); len(text) > 0 {
			direct = text[0]
		}
	}
	u, err := r.media.Resolve(r.Ctx, r.folder, uploads.Source{File: file, URL: direct}, previous)
	if err != nil {
		return "", err
	}
	if file != nil {
		r.uploaded = append(r.uploaded, u)
	}
	return u, nil
}

// Images resolves a multi-image field. direct holds the URLs to keep or
// add, so an update can send the kept images alongside new files.
func (r *Request) Images(fileKey string, direct []string, previous []string, max int) ([]string, error) {
	files := r.Files(fileKey)
	urls := collect(slices.Concat(direct, r.textUnder(fileKey)))
	out, err := r.media.ResolveMany(r.Ctx, r.folder, files, urls, previous, max)
	if err != nil {
		return nil, err
	}
	if len(files) > 0 {
		r.uploaded = append(r.uploaded, out[len(out)-len(files):]...)
	}
	return out, nil
}

// PatchImage adds field to set only when a new file or URL was sent.
func (r *Request) PatchImage(set bson.M, field, fileKey, direct, previous string) error {
	if !r.mediaSent(fileKey, []string{direct}) {
		return nil
	}
	u, err := r.Image(fileKey, direct, &previous)
	if err != nil {
		return err
	}
	set[field] = u
	return nil
}

// PatchImages adds field to set only when new files or URLs were sent.
func (r *Request) PatchImages(set bson.M, field, fileKey string, direct []string, previous []string, max int) error {
	if !r.mediaSent(fileKey, direct) {
		return nil
	}
	imgs, err := r.Images(fileKey, direct, previous, max)
	if err != nil {
		return err
	}
	set[field] = imgs
	return nil
}

// collect returns the non-blank values trimmed, in order.
func collect(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// firstOf returns the first non-blank value.
func firstOf(values ...string) string {
	if c := collect(values); len(c) > 0 {
		return c[0]
	}
	return ""
}

// deref reads an optional update field, "" when it was not sent.
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return def
}

// listOf is collect that never returns nil, so lists encode as [].
func listOf(values []string) []string {
	if out := collect(values); out != nil {
		return out
	}
	return []string{}
}
