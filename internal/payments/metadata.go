package payments

import (
	"strconv"
	"strings"

	"github.com/realestate-p2v/real-estate-app-final-sub000/internal/models"
)

// Stripe caps metadata at 50 keys and 500 characters per value. The
// chunk size leaves headroom under the value limit, and the chunk cap
// keeps the photo-URL list from crowding out the fixed keys.
const (
	metadataChunkSize = 450
	maxPhotoURLChunks = 8
)

// sessionMetadata carries the order detail we pin to the checkout
// session for reconciliation. Typed here; flattened to the string map
// Stripe wants only at the serialization boundary.
type sessionMetadata struct {
	OrderID      string
	CustomerName string
	PhotoCount   int
	Music        string
	BrandingType models.BrandingType
	Voiceover    bool
	EditedPhotos bool
	PhotoURLs    []string
}

func newSessionMetadata(order *models.Order) sessionMetadata {
	urls := make([]string, len(order.Photos))
	for i, p := range order.Photos {
		urls[i] = p.URL
	}
	return sessionMetadata{
		OrderID:      order.OrderID,
		CustomerName: order.Customer.Name,
		PhotoCount:   order.PhotoCount,
		Music:        order.Selections.Music,
		BrandingType: order.Selections.Branding.Type,
		Voiceover:    order.Selections.Voiceover.Enabled,
		EditedPhotos: order.Selections.IncludeEditedPhotos,
		PhotoURLs:    urls,
	}
}

// SessionMetadata flattens an order into the string map pinned to its
// checkout session: the fixed reconciliation keys plus at most
// maxPhotoURLChunks photo_urls_N segments. URLs past the cap are
// dropped from the metadata, never from the order.
func SessionMetadata(order *models.Order) map[string]string {
	return newSessionMetadata(order).stringMap()
}

func (m sessionMetadata) stringMap() map[string]string {
	out := map[string]string{
		"order_id":      m.OrderID,
		"customer_name": m.CustomerName,
		"photo_count":   strconv.Itoa(m.PhotoCount),
		"music":         m.Music,
		"branding_type": string(m.BrandingType),
		"voiceover":     strconv.FormatBool(m.Voiceover),
		"edited_photos": strconv.FormatBool(m.EditedPhotos),
	}
	chunks := ChunkString(strings.Join(m.PhotoURLs, ","), metadataChunkSize)
	if len(chunks) > maxPhotoURLChunks {
		// Drop the remainder rather than blow the key budget; the full
		// list lives on the order record anyway.
		chunks = chunks[:maxPhotoURLChunks]
	}
	for i, chunk := range chunks {
		out["photo_urls_"+strconv.Itoa(i)] = chunk
	}
	return out
}

// ChunkString splits s into ceil(len(s)/size) segments of at most size
// bytes each. Concatenating the result in order reproduces s.
func ChunkString(s string, size int) []string {
	if s == "" || size <= 0 {
		return nil
	}
	chunks := make([]string, 0, (len(s)+size-1)/size)
	for len(s) > size {
		chunks = append(chunks, s[:size])
		s = s[size:]
	}
	return append(chunks, s)
}
