package utils

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// SaveUpload stores a multipart file under uploadDir/subdir with a
// random name and returns the public URL path. The extension must be
// in allowedExts (lowercase, with dot).
func SaveUpload(c *fiber.Ctx, file *multipart.FileHeader, uploadDir, subdir, prefix, baseURL string, allowedExts []string) (string, error) {
	if file.Size <= 0 {
		return "", fmt.Errorf("empty file")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	ok := false
	for _, a := range allowedExts {
		if ext == a {
			ok = true
			break
		}
	}
	if !ok {
		return "", fmt.Errorf("unsupported file type: %s", ext)
	}

	dir := filepath.Join(uploadDir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%s_%s%s", prefix, uuid.NewString(), ext)
	if err := c.SaveFile(file, filepath.Join(dir, filename)); err != nil {
		return "", err
	}

	publicPath := "/uploads/" + subdir + "/" + filename
	if baseURL != "" {
		return strings.TrimRight(baseURL, "/") + publicPath, nil
	}
	return publicPath, nil
}
