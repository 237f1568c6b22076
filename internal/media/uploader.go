package media

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"laptop-storefront/internal/logger"
)

// ErrNotConfigured: faltan cloud name / preset
var ErrNotConfigured = errors.New("media upload is not configured")

// Options configura el endpoint de subida sin firma
type Options struct {
	CloudName    string
	UploadPreset string
	Folder       string
	// Endpoint reemplaza la URL derivada de CloudName
	Endpoint string
	MaxBytes int
}

// Result es lo que devuelve el servicio de media
type Result struct {
	URL      string `json:"secure_url"`
	PublicID string `json:"public_id"`
	Bytes    int64  `json:"bytes"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Format   string `json:"format"`
}

// File es un archivo recibido para subir
type File struct {
	Name   string
	Reader io.Reader
}

type FileResult struct {
	Name   string  `json:"name"`
	Result *Result `json:"result,omitempty"`
	Error  string  `json:"error,omitempty"`
}

// BatchResult reporta cada archivo; los fallos no detienen el resto
type BatchResult struct {
	Requested int          `json:"requested"`
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	Files     []FileResult `json:"files"`
}

// Uploader comprime y sube imágenes al servicio de media
type Uploader struct {
	endpoint   string
	preset     string
	folder     string
	compressor *Compressor
	httpClient *http.Client
	logger     *logrus.Entry
}

func NewUploader(opts Options, log logrus.FieldLogger) (*Uploader, error) {
	endpoint := opts.Endpoint
	if endpoint == "" && opts.CloudName != "" {
		endpoint = fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/upload", opts.CloudName)
	}
	if endpoint == "" || opts.UploadPreset == "" {
		return nil, ErrNotConfigured
	}

	return &Uploader{
		endpoint:   endpoint,
		preset:     opts.UploadPreset,
		folder:     opts.Folder,
		compressor: NewCompressor(opts.MaxBytes),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger.Component(log, "media.uploader"),
	}, nil
}

// Upload comprime la imagen y la sube. No reintenta.
func (u *Uploader) Upload(ctx context.Context, name string, r io.Reader) (*Result, error) {
	img, err := u.compressor.Compress(r)
	if err != nil {
		return nil, err
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, uploadName(name, img.ContentType)))
	header.Set("Content-Type", img.ContentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(img.Data); err != nil {
		return nil, fmt.Errorf("failed to write file data: %w", err)
	}

	_ = writer.WriteField("upload_preset", u.preset)
	if u.folder != "" {
		_ = writer.WriteField("folder", u.folder)
	}
	_ = writer.WriteField("public_id", uuid.NewString())
	writer.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("image upload failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(bodyBytes)))
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if result.URL == "" {
		return nil, fmt.Errorf("upload response has no secure_url")
	}

	u.logger.WithFields(logrus.Fields{
		"file":  name,
		"bytes": result.Bytes,
		"url":   result.URL,
	}).Info("image uploaded")
	return &result, nil
}

// UploadMany sube los archivos uno tras otro y cuenta éxitos y fallos
func (u *Uploader) UploadMany(ctx context.Context, files []File) BatchResult {
	batch := BatchResult{Files: make([]FileResult, 0, len(files))}
	for _, f := range files {
		batch.Requested++
		result, err := u.Upload(ctx, f.Name, f.Reader)
		if err != nil {
			batch.Failed++
			batch.Files = append(batch.Files, FileResult{Name: f.Name, Error: err.Error()})
			u.logger.WithError(err).WithField("file", f.Name).Warn("image upload failed")
			continue
		}
		batch.Succeeded++
		batch.Files = append(batch.Files, FileResult{Name: f.Name, Result: result})
	}
	return batch
}

// uploadName cambia la extensión cuando la imagen se recomprimió a JPEG
func uploadName(name, contentType string) string {
	name = path.Base(strings.ReplaceAll(name, `\`, "/"))
	name = strings.ReplaceAll(name, `"`, "")
	if name == "" || name == "." || name == "/" {
		name = "image"
	}
	if contentType == "image/jpeg" {
		ext := strings.ToLower(path.Ext(name))
		if ext != ".jpg" && ext != ".jpeg" {
			name = strings.TrimSuffix(name, path.Ext(name)) + ".jpg"
		}
	}
	return name
}
