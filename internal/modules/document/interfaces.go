package document

import (
	"context"
	"io"

	"prodflow/internal/domain"
)

type DocumentRepository interface {
	Create(ctx context.Context, d *domain.Document) error
	GetByID(ctx context.Context, id int64) (*domain.Document, error)
	ListByProject(ctx context.Context, projectID int64) ([]domain.Document, error)
}

type ProjectReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
}

// Store persists uploaded bytes under a named subdirectory. Save returns
// the storage path to record; Open streams a previously saved file back.
type Store interface {
	Save(ctx context.Context, dir, filename string, r io.Reader) (string, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}
