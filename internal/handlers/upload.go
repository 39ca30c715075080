package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/realestate-p2v/real-estate-app-final-sub000/internal/models"
	"github.com/realestate-p2v/real-estate-app-final-sub000/internal/storage"
)

type UploadHandler struct {
	uploader Uploader
	log      *zap.Logger
}

func NewUploadHandler(uploader Uploader, log *zap.Logger) *UploadHandler {
	return &UploadHandler{uploader: uploader, log: log}
}

// form field name -> asset kind
var uploadFields = map[string]storage.AssetKind{
	"photos": storage.KindPhoto,
	"logo":   storage.KindLogo,
	"audio":  storage.KindAudio,
}

// Upload forwards multipart files to object storage and returns their
// public URLs. Failures are reported per file so the photos that did
// make it through stay usable on the client.
func (h *UploadHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid multipart form", Message: err.Error()})
		return
	}

	resp := models.UploadResponse{}
	for field, kind := range uploadFields {
		for _, fh := range form.File[field] {
			f, err := fh.Open()
			if err != nil {
				resp.Errors = append(resp.Errors, models.UploadError{Filename: fh.Filename, Error: "failed to read file"})
				continue
			}

			asset, err := h.uploader.Upload(c.Request.Context(), kind, fh.Filename, f)
			f.Close()
			if err != nil {
				h.log.Error("asset upload failed",
					zap.String("filename", fh.Filename),
					zap.String("kind", string(kind)),
					zap.Error(err))
				resp.Errors = append(resp.Errors, models.UploadError{Filename: fh.Filename, Error: "upload failed"})
				continue
			}

			resp.Assets = append(resp.Assets, models.UploadedAsset{
				Filename: fh.Filename,
				AssetID:  asset.AssetID,
				URL:      asset.URL,
				Width:    asset.Width,
				Height:   asset.Height,
				Bytes:    asset.Bytes,
			})
		}
	}

	if len(resp.Assets) == 0 && len(resp.Errors) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "no files provided"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
