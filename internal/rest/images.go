package rest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dfryer1193/qrstore/api"
	"github.com/dfryer1193/qrstore/gallery/application"
	"github.com/dfryer1193/qrstore/gallery/domain"
	"github.com/gin-gonic/gin"
)

const (
	uploadField = "file"
	// room for multipart boundaries and part headers on top of the file itself
	multipartOverhead = 1 << 20
)

type ImageHandler struct {
	service *application.ImageService
}

func NewImageHandler(service *application.ImageService) *ImageHandler {
	return &ImageHandler{service: service}
}

// Upload handles POST /upload with a single multipart part named "file"
func (h *ImageHandler) Upload(c *gin.Context) {
	if limit := h.service.MaxUploadBytes(); limit > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+multipartOverhead)
	}

	header, err := c.FormFile(uploadField)
	if err != nil {
		writeError(c, h.formFileError(c, err))
		return
	}

	file, err := header.Open()
	if err != nil {
		writeError(c, fmt.Errorf("failed to open uploaded file: %w", err))
		return
	}
	defer file.Close()

	img, err := h.service.Upload(c.Request.Context(), application.UploadRequest{
		Filename: header.Filename,
		Size:     header.Size,
		Content:  file,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.UploadResponse{Success: true, Filename: img.Name})
}

// formFileError tells a missing part apart from a part sent without a filename,
// which the multipart reader files under form values instead of files.
func (h *ImageHandler) formFileError(c *gin.Context, err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return domain.ErrFileTooLarge
	}
	if form := c.Request.MultipartForm; form != nil {
		if _, ok := form.Value[uploadField]; ok {
			return domain.ErrEmptyFilename
		}
	}
	return domain.ErrNoFile
}

// List handles GET /qr-images
func (h *ImageHandler) List(c *gin.Context) {
	images, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	names := make(api.ImageList, 0, len(images))
	for _, img := range images {
		names = append(names, img.Name)
	}

	c.JSON(http.StatusOK, names)
}

// Delete handles DELETE /delete-image/:filename
func (h *ImageHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("filename")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.DeleteResponse{Success: true})
}
