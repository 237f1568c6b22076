package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"laptop-storefront/internal/logger"
	"laptop-storefront/internal/media"
)

const (
	// maxUploadFileSize es el tamaño máximo de cada archivo antes de comprimir
	maxUploadFileSize = 15 << 20
	maxBatchFiles     = 10
)

// UploadHandler recibe imágenes del admin y las pasa al servicio de media
type UploadHandler struct {
	uploader ImageUploader
	logger   *logrus.Entry
}

func NewUploadHandler(uploader ImageUploader, log logrus.FieldLogger) *UploadHandler {
	return &UploadHandler{
		uploader: uploader,
		logger:   logger.Component(log, "handlers.uploads"),
	}
}

// POST /v1/admin/uploads (multipart, campo "file")
func (h *UploadHandler) Upload(c *gin.Context) {
	if h.uploader == nil {
		h.notConfigured(c)
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "file is required", Code: CodeValidation, Field: "file"})
		return
	}
	if header.Size > maxUploadFileSize {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "file is too large", Code: CodeValidation, Field: "file"})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "could not read file", Code: CodeValidation, Field: "file"})
		return
	}
	defer file.Close()

	result, err := h.uploader.Upload(c.Request.Context(), header.Filename, file)
	if err != nil {
		h.uploadError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// POST /v1/admin/uploads/batch (multipart, campo "files")
// Los archivos se suben en orden; un fallo no detiene al resto.
func (h *UploadHandler) UploadBatch(c *gin.Context) {
	if h.uploader == nil {
		h.notConfigured(c)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "multipart form is required", Code: CodeValidation})
		return
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "files are required", Code: CodeValidation, Field: "files"})
		return
	}
	if len(headers) > maxBatchFiles {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "too many files", Code: CodeValidation, Field: "files"})
		return
	}

	files := make([]media.File, 0, len(headers))
	var rejected []media.FileResult
	for _, fh := range headers {
		f, err := openPart(fh)
		if err != nil {
			rejected = append(rejected, media.FileResult{Name: fh.Filename, Error: err.Error()})
			continue
		}
		defer f.Close()
		files = append(files, media.File{Name: fh.Filename, Reader: f})
	}

	batch := h.uploader.UploadMany(c.Request.Context(), files)
	batch.Requested += len(rejected)
	batch.Failed += len(rejected)
	batch.Files = append(batch.Files, rejected...)

	status := http.StatusOK
	if batch.Failed > 0 {
		status = http.StatusMultiStatus
	}
	c.JSON(status, batch)
}

func openPart(fh *multipart.FileHeader) (multipart.File, error) {
	if fh.Size > maxUploadFileSize {
		return nil, errors.New("file is too large")
	}
	return fh.Open()
}

func (h *UploadHandler) uploadError(c *gin.Context, err error) {
	if errors.Is(err, media.ErrUnsupportedImage) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "file is not a supported image", Code: CodeValidation, Field: "file"})
		return
	}
	respondError(c, h.logger, err)
}

func (h *UploadHandler) notConfigured(c *gin.Context) {
	c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: media.ErrNotConfigured.Error(), Code: CodeRemoteFailure})
}
