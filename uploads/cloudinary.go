package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Cloudinary uploads into "<root>/<folder>" on a Cloudinary account.
type Cloudinary struct {
	cld       *cloudinary.Cloudinary
	cloudName string
	root      string
}

func NewCloudinary(cloudName, apiKey, apiSecret, root string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary config error: %w", err)
	}
	return &Cloudinary{cld: cld, cloudName: cloudName, root: root}, nil
}

func (p *Cloudinary) Upload(ctx context.Context, r io.Reader, folder, filename string) (string, error) {
	resp, err := p.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:       path.Join(p.root, folder),
		ResourceType: "auto",
	})
	if err != nil {
		return "", fmt.Errorf("upload error: %w", err)
	}
	if resp.Error.Message != "" {
		return "", errors.New(resp.Error.Message)
	}
	return resp.SecureURL, nil
}

// Delete destroys the asset behind a secure URL returned by Upload.
func (p *Cloudinary) Delete(ctx context.Context, assetURL string) error {
	resourceType, publicID, err := extractPublicID(assetURL)
	if err != nil {
		return fmt.Errorf("could not extract public ID: %w", err)
	}

	resp, err := p.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: resourceType,
	})
	if err != nil {
		return fmt.Errorf("delete error: %w", err)
	}
	if resp.Error.Message != "" {
		return errors.New(resp.Error.Message)
	}
	return nil
}

// Owns matches delivery URLs of this account only: the first path segment
// is the cloud name.
func (p *Cloudinary) Owns(assetURL string) bool {
	u, err := url.Parse(assetURL)
	if err != nil || u.Host != "res.cloudinary.com" {
		return false
	}
	cloud, _, _ := strings.Cut(strings.TrimPrefix(u.Path, "/"), "/")
	return cloud != "" && cloud == p.cloudName
}

var versionSegment = regexp.MustCompile(`^v\d+$`)

// extractPublicID splits a delivery URL such as
// https://res.cloudinary.com/demo/image/upload/v1234567890/charity/events/abc123.jpg
// into its resource type ("image") and public ID ("charity/events/abc123").
func extractPublicID(assetURL string) (string, string, error) {
	u, err := url.Parse(assetURL)
	if err != nil {
		return "", "", err
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	// <cloud>/<resource_type>/<delivery_type>/[v123/]<public_id...>
	if len(parts) < 4 {
		return "", "", fmt.Errorf("invalid cloudinary URL format")
	}
	resourceType := parts[1]
	rest := parts[3:]
	if len(rest) > 1 && versionSegment.MatchString(rest[0]) {
		rest = rest[1:]
	}

	last := rest[len(rest)-1]
	rest[len(rest)-1] = strings.TrimSuffix(last, path.Ext(last))
	return resourceType, strings.Join(rest, "/"), nil
}
