package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cars-g/reporting-api/internal/core/ports"
)

// UploadHandler hands out signed parameters for direct image uploads.
type UploadHandler struct {
	signer ports.UploadSigner
	now    func() time.Time
}

func NewUploadHandler(signer ports.UploadSigner) *UploadHandler {
	return &UploadHandler{signer: signer, now: time.Now}
}

type uploadSignatureRequest struct {
	Folder string `json:"folder" validate:"required,oneof=reports proof"`
}

type uploadSignatureResponse struct {
	Timestamp    int64  `json:"timestamp"`
	Signature    string `json:"signature"`
	APIKey       string `json:"apiKey"`
	CloudName    string `json:"cloudName"`
	Folder       string `json:"folder"`
	UploadPreset string `json:"uploadPreset,omitempty"`
}

// Sign handles POST /api/uploads/signature.
//
// @Summary      Sign a direct image upload
// @Tags         uploads
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      uploadSignatureRequest  true  "Destination folder"
// @Success      200   {object}  uploadSignatureResponse
// @Failure      400   {object}  map[string]any
// @Router       /api/uploads/signature [post]
func (h *UploadHandler) Sign(c echo.Context) error {
	if _, err := callerOf(c); err != nil {
		return err
	}

	var req uploadSignatureRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	sig, err := h.signer.Sign(req.Folder, h.now())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, uploadSignatureResponse{
		Timestamp:    sig.Timestamp,
		Signature:    sig.Signature,
		APIKey:       sig.APIKey,
		CloudName:    sig.CloudName,
		Folder:       sig.Folder,
		UploadPreset: sig.UploadPreset,
	})
}
