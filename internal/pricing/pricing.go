// Package pricing computes the price of a listing-video order from the
// photo count and the selected add-ons. All amounts are minor currency
// units (cents). The tier table here is the single source of truth for
// the product's pricing.
package pricing

import "errors"

var (
	// ErrNoPhotos is returned for a non-positive photo count.
	ErrNoPhotos = errors.New("pricing: photo count must be positive")
	// ErrTooManyPhotos is returned above the largest tier; such orders
	// are quoted manually, never priced automatically.
	ErrTooManyPhotos = errors.New("pricing: photo count exceeds automatic pricing, contact support")
)

// Flat add-on fees, independent of photo count.
const (
	CustomBrandingFee int64 = 2500
	VoiceoverFee      int64 = 2900
	EditedPhotosFee   int64 = 1900
)

// MaxPhotos is the largest photo count priced automatically.
const MaxPhotos = 35

type tier struct {
	maxPhotos int
	pkg       string
	base      int64
}

var tiers = []tier{
	{12, "Essential Listing Video", 5900},
	{25, "Showcase Listing Video", 7900},
	{MaxPhotos, "Premium Listing Video", 9900},
}

// Options are the add-on selections that carry a surcharge. Basic or no
// branding is free; only custom branding is billed.
type Options struct {
	CustomBranding bool
	Voiceover      bool
	EditedPhotos   bool
}

// Quote is the priced breakdown. Total always equals Base plus the
// three fees.
type Quote struct {
	Package         string
	Base            int64
	BrandingFee     int64
	VoiceoverFee    int64
	EditedPhotosFee int64
	Total           int64
}

// Price maps a photo count and add-on selections to a Quote. Pure: no
// I/O, no hidden state.
func Price(photoCount int, opts Options) (Quote, error) {
	if photoCount <= 0 {
		return Quote{}, ErrNoPhotos
	}
	if photoCount > MaxPhotos {
		return Quote{}, ErrTooManyPhotos
	}

	var q Quote
	for _, t := range tiers {
		if photoCount <= t.maxPhotos {
			q.Package = t.pkg
			q.Base = t.base
			break
		}
	}

	if opts.CustomBranding {
		q.BrandingFee = CustomBrandingFee
	}
	if opts.Voiceover {
		q.VoiceoverFee = VoiceoverFee
	}
	if opts.EditedPhotos {
		q.EditedPhotosFee = EditedPhotosFee
	}
	q.Total = q.Base + q.BrandingFee + q.VoiceoverFee + q.EditedPhotosFee

	return q, nil
}
