package services

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// StorageService owns the local download directory for fetched CVs.
type StorageService interface {
	EnsureDownloadDir() error
	SaveDownload(mediaID string, data []byte) (string, error)
	DeleteFile(filePath string) error
}

type storageService struct {
	downloadDir string
}

func NewStorageService(downloadDir string) StorageService {
	return &storageService{
		downloadDir: downloadDir,
	}
}

// EnsureDownloadDir implements StorageService.
func (s *storageService) EnsureDownloadDir() error {
	if err := os.MkdirAll(s.downloadDir, 0755); err != nil {
		return fmt.Errorf("failed to create download directory: %w", err)
	}
	return nil
}

// SaveDownload implements StorageService. Filenames are keyed by the media ID
// plus a random suffix, so concurrent downloads can never collide.
func (s *storageService) SaveDownload(mediaID string, data []byte) (string, error) {
	filename := fmt.Sprintf("cv_%s_%s.pdf", mediaID, uuid.New().String())
	filePath := filepath.Join(s.downloadDir, filename)

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to save downloaded file: %w", err)
	}

	return filePath, nil
}

// DeleteFile implements StorageService.
func (s *storageService) DeleteFile(filePath string) error {
	if err := os.Remove(filePath); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
