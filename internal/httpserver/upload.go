package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/ecommerce_backend/internal/logging"
	"github.com/Skotchmaster/ecommerce_backend/internal/transport"
	"github.com/Skotchmaster/ecommerce_backend/internal/upload"
)

const uploadField = "product"

type UploadHTTP struct {
	Storage upload.Storage
}

func (h *UploadHTTP) Upload(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "upload")

	fh, err := c.FormFile(uploadField)
	if err != nil {
		l.Warn("upload_failed", "status", 400, "reason", "no file", "error", err)
		return c.JSON(http.StatusBadRequest, transport.UploadResponse{Success: 0, Message: "No file uploaded"})
	}

	f, err := fh.Open()
	if err != nil {
		l.Error("upload_failed", "status", 500, "reason", "open multipart file", "error", err)
		return c.JSON(http.StatusInternalServerError, transport.UploadResponse{Success: 0, Message: "Upload failed"})
	}
	defer f.Close()

	url, err := h.Storage.Save(ctx, fh.Filename, fh.Header.Get(echo.HeaderContentType), f)
	if err != nil {
		l.Error("upload_failed", "status", 500, "reason", "storage", "error", err)
		return c.JSON(http.StatusInternalServerError, transport.UploadResponse{Success: 0, Message: "Upload failed"})
	}

	l.Info("upload_success", "filename", fh.Filename, "size", fh.Size)
	return c.JSON(http.StatusOK, transport.UploadResponse{Success: 1, ImageURL: url})
}
