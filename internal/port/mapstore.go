package port

import "codemap/internal/domain"

// MapStore persists per-file symbol maps keyed by repository-relative path.
type MapStore interface {
	PutFile(entry domain.FileMap) error

	GetFile(relPath string) (domain.FileMap, error)

	DeleteFile(relPath string) error

	ListFiles() ([]domain.FileMap, error)

	GetStats() (domain.Stats, error)

	UpdateStats(stats domain.Stats) error

	Close() error
}
