package service

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bcexpress/tracking-api/internal/config"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// UploadService stores proof-of-delivery photos.
type UploadService struct {
	cfg *config.Config
}

// NewUploadService builds an upload service.
func NewUploadService(cfg *config.Config) *UploadService {
	return &UploadService{cfg: cfg}
}

// SaveProofOfDelivery stores a delivery photo and returns its public
// path. The filename embeds the AWB so the branch system can match it.
func (s *UploadService) SaveProofOfDelivery(file *multipart.FileHeader, awbNumber string) (string, error) {
	if file == nil {
		return "", ErrUploadFileMissing
	}
	awbNumber = strings.ToUpper(strings.TrimSpace(awbNumber))
	if awbNumber == "" {
		return "", ErrUploadInvalid
	}

	if file.Size > s.cfg.Upload.MaxSize {
		return "", fmt.Errorf("%w: file exceeds %d MB", ErrUploadInvalid, s.cfg.Upload.MaxSize/1024/1024)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if len(s.cfg.Upload.AllowedExtensions) > 0 {
		if ext == "" || !isAllowedExtension(ext, s.cfg.Upload.AllowedExtensions) {
			return "", fmt.Errorf("%w: extension %s not allowed", ErrUploadInvalid, ext)
		}
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	// Sniff the real content type instead of trusting the extension.
	buffer := make([]byte, 512)
	if _, err = src.Read(buffer); err != nil && err != io.EOF {
		return "", err
	}
	if _, err := src.Seek(0, 0); err != nil {
		return "", err
	}

	contentType := http.DetectContentType(buffer)
	if len(s.cfg.Upload.AllowedTypes) > 0 {
		allowed := false
		for _, t := range s.cfg.Upload.AllowedTypes {
			if strings.EqualFold(contentType, t) {
				allowed = true
				break
			}
		}
		if !allowed {
			return "", fmt.Errorf("%w: content type %s not allowed", ErrUploadInvalid, contentType)
		}
	}

	dir := s.cfg.Upload.Dir
	if dir == "" {
		dir = "uploads"
	}
	filename := fmt.Sprintf("%s-%d%s", sanitizeAWBForFilename(awbNumber), time.Now().UnixMilli(), ext)
	savePath := filepath.Join(dir, "proof-of-delivery", filename)

	if err := os.MkdirAll(filepath.Dir(savePath), 0755); err != nil {
		return "", err
	}

	dst, err := os.Create(savePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		return "", err
	}

	// Relative path; the caller prepends the host when needed.
	return "/uploads/proof-of-delivery/" + filename, nil
}

func sanitizeAWBForFilename(awbNumber string) string {
	var b strings.Builder
	for _, r := range awbNumber {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isAllowedExtension(ext string, allowed []string) bool {
	for _, allowedExt := range allowed {
		normalized := strings.ToLower(strings.TrimSpace(allowedExt))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if strings.EqualFold(ext, normalized) {
			return true
		}
	}
	return false
}
