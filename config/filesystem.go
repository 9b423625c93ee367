package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/file"
)

// FileSystem interface for file operations (useful for testing).
type FileSystem interface {
	Exists(path string) bool
	ReadFile(path string) ([]byte, error)
	LoadEnv(path string) error
}

// RealFileSystem implements FileSystem using actual file operations.
type RealFileSystem struct{}

// Exists reports whether path names an existing non-directory file.
func (rfs *RealFileSystem) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ReadFile returns the raw content of path.
func (rfs *RealFileSystem) ReadFile(path string) ([]byte, error) {
	return file.Provider(path).ReadBytes()
}

// LoadEnv applies a .env file without overwriting variables already set.
func (rfs *RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}
