package courier

import (
	"errors"

	"github.com/bcexpress/tracking-api/internal/http/response"
	"github.com/bcexpress/tracking-api/internal/service"

	"github.com/gin-gonic/gin"
)

// UploadProofOfDelivery stores a delivery photo and returns its URL.
func (h *Handler) UploadProofOfDelivery(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.upload_file_missing", nil)
		return
	}
	awbNumber := c.PostForm("awb_number")

	url, err := h.UploadService.SaveProofOfDelivery(file, awbNumber)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUploadFileMissing):
			respondError(c, response.CodeBadRequest, "error.upload_file_missing", nil)
		case errors.Is(err, service.ErrUploadInvalid):
			respondError(c, response.CodeBadRequest, "error.upload_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.upload_failed", err)
		}
		return
	}

	response.Success(c, gin.H{
		"url":      url,
		"filename": file.Filename,
		"size":     file.Size,
	})
}
