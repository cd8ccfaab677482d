package document

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"prodflow/internal/domain"
)

type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) Create(ctx context.Context, d *domain.Document) error {
	args := m.Called(ctx, d)
	if d != nil {
		d.ID = 21
	}
	return args.Error(0)
}

func (m *MockDocumentRepository) GetByID(ctx context.Context, id int64) (*domain.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) ListByProject(ctx context.Context, projectID int64) ([]domain.Document, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

type MockProjectReader struct {
	mock.Mock
}

func (m *MockProjectReader) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Save(ctx context.Context, dir, filename string, r io.Reader) (string, error) {
	args := m.Called(ctx, dir, filename, r)
	return args.String(0), args.Error(1)
}

func (m *MockStore) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func TestService_Upload_MaterialsListMustBeSpreadsheet(t *testing.T) {
	docs := new(MockDocumentRepository)
	store := new(MockStore)
	svc := NewService(docs, new(MockProjectReader), store)

	_, err := svc.Upload(context.Background(), UploadInput{
		ProjectID:    1,
		Filename:     "materials.pdf",
		DocumentType: domain.DocMaterialsList,
		UploadedBy:   2,
		Content:      strings.NewReader("x"),
	})

	assert.ErrorIs(t, err, ErrInvalidFile)
	store.AssertNotCalled(t, "Save")
	docs.AssertNotCalled(t, "Create")
}

func TestService_Upload_RecordsStageAndPath(t *testing.T) {
	docs := new(MockDocumentRepository)
	projects := new(MockProjectReader)
	store := new(MockStore)
	svc := NewService(docs, projects, store)

	projects.On("GetByID", mock.Anything, int64(1)).Return(&domain.Project{ID: 1, Status: domain.ProjectValidation}, nil)
	store.On("Save", mock.Anything, "project_1", "materials.xlsx", mock.Anything).Return("/uploads/project_1/materials.xlsx", nil)
	docs.On("Create", mock.Anything, mock.MatchedBy(func(d *domain.Document) bool {
		return d.DocumentType == domain.DocMaterialsList &&
			d.Stage == "validation" &&
			d.StoragePath == "/uploads/project_1/materials.xlsx" &&
			d.FileType == ".xlsx"
	})).Return(nil)

	d, err := svc.Upload(context.Background(), UploadInput{
		ProjectID:    1,
		Filename:     "materials.xlsx",
		DocumentType: domain.DocMaterialsList,
		UploadedBy:   2,
		Content:      strings.NewReader("x"),
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(21), d.ID)
	docs.AssertExpectations(t)
}

func TestService_Upload_UnknownType(t *testing.T) {
	svc := NewService(new(MockDocumentRepository), new(MockProjectReader), new(MockStore))

	_, err := svc.Upload(context.Background(), UploadInput{
		ProjectID:    1,
		Filename:     "notes.txt",
		DocumentType: "blueprint",
		Content:      strings.NewReader("x"),
	})

	assert.ErrorIs(t, err, ErrInvalidType)
}
