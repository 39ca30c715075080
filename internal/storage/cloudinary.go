// Package storage forwards binary assets to Cloudinary and hands back
// public URLs. The SDK signs each upload server-side (folder +
// timestamp + secret), so no credentials ever reach the browser.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// AssetKind selects the Cloudinary resource type for an upload.
type AssetKind string

const (
	KindPhoto AssetKind = "photo"
	KindLogo  AssetKind = "logo"
	KindAudio AssetKind = "audio"
)

// Asset is what the rest of the pipeline keeps about an uploaded file.
type Asset struct {
	AssetID string
	URL     string
	Width   int
	Height  int
	Bytes   int
}

type Client struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewClient(cloudName, apiKey, apiSecret, folder string) (*Client, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	return &Client{cld: cld, folder: folder}, nil
}

// Upload stores one asset under <folder>/<kind>s and returns its public
// URL and identifier. Filenames are prefixed with a random id so two
// customers uploading "kitchen.jpg" never collide.
func (c *Client) Upload(ctx context.Context, kind AssetKind, filename string, r io.Reader) (*Asset, error) {
	publicID := fmt.Sprintf("%s-%s", uuid.NewString()[:8], trimExt(filename))

	params := uploader.UploadParams{
		Folder:       path.Join(c.folder, string(kind)+"s"),
		PublicID:     publicID,
		ResourceType: resourceType(kind),
	}

	res, err := c.cld.Upload.Upload(ctx, r, params)
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s %q: %w", kind, filename, err)
	}

	return &Asset{
		AssetID: res.PublicID,
		URL:     res.SecureURL,
		Width:   res.Width,
		Height:  res.Height,
		Bytes:   res.Bytes,
	}, nil
}

func trimExt(filename string) string {
	base := path.Base(filename)
	if ext := path.Ext(base); ext != "" {
		base = base[:len(base)-len(ext)]
	}
	if base == "" || base == "." {
		return "asset"
	}
	return base
}

// Cloudinary files audio under the video resource type.
func resourceType(kind AssetKind) string {
	switch kind {
	case KindAudio:
		return "video"
	default:
		return "image"
	}
}
