package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	"prodflow/internal/domain"
)

type Service struct {
	documents DocumentRepository
	projects  ProjectReader
	store     Store
}

func NewService(documents DocumentRepository, projects ProjectReader, store Store) *Service {
	return &Service{documents: documents, projects: projects, store: store}
}

type UploadInput struct {
	ProjectID    int64
	Filename     string
	DocumentType string
	UploadedBy   int64
	Content      io.Reader
}

var validTypes = map[string]bool{
	domain.DocMaterialsList: true,
	domain.DocPurchaseOrder: true,
	domain.DocGeneral:       true,
}

// spreadsheet extensions accepted for materials lists.
var spreadsheetExts = map[string]bool{".xls": true, ".xlsx": true}

// Upload stores the file and records its metadata. Materials lists must be
// spreadsheets since downstream roles work with them in Excel.
func (s *Service) Upload(ctx context.Context, in UploadInput) (*domain.Document, error) {
	if !validTypes[in.DocumentType] {
		return nil, ErrInvalidType
	}

	ext := strings.ToLower(filepath.Ext(in.Filename))
	if in.DocumentType == domain.DocMaterialsList && !spreadsheetExts[ext] {
		return nil, fmt.Errorf("%w: materials list must be .xls or .xlsx", ErrInvalidFile)
	}

	p, err := s.projects.GetByID(ctx, in.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectGone
		}
		return nil, err
	}

	path, err := s.store.Save(ctx, fmt.Sprintf("project_%d", in.ProjectID), in.Filename, in.Content)
	if err != nil {
		return nil, fmt.Errorf("store document: %w", err)
	}

	d := &domain.Document{
		ProjectID:    in.ProjectID,
		Filename:     in.Filename,
		FileType:     ext,
		DocumentType: in.DocumentType,
		Stage:        string(p.Status),
		StoragePath:  path,
		UploadedBy:   in.UploadedBy,
	}
	if err := s.documents.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) ListByProject(ctx context.Context, projectID int64) ([]domain.Document, error) {
	return s.documents.ListByProject(ctx, projectID)
}

// Download returns the document metadata plus a reader over its bytes. The
// caller owns closing the reader.
func (s *Service) Download(ctx context.Context, id int64) (*domain.Document, io.ReadCloser, error) {
	d, err := s.documents.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	rc, err := s.store.Open(ctx, d.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open stored document: %w", err)
	}
	return d, rc, nil
}
