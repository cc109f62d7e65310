package service

import (
	"context"
	"errors"
	"io"

	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"

	"github.com/241luca/soccer-manager/internal/domain/common/errorz"
	"github.com/241luca/soccer-manager/internal/domain/dto"
	"github.com/241luca/soccer-manager/internal/domain/entity"
)

type documentStorage interface {
	Create(ctx context.Context, document *entity.Document) (*entity.Document, error)
	Get(ctx context.Context, organizationID, id string) (*entity.Document, error)
	List(ctx context.Context, organizationID string, filter dto.DocumentFilter) ([]entity.Document, error)
	Update(ctx context.Context, document *entity.Document) (*entity.Document, error)
	Delete(ctx context.Context, id string) error
}

type documentTypeStorage interface {
	Get(ctx context.Context, organizationID, id string) (*entity.DocumentType, error)
	ListByOrganization(ctx context.Context, organizationID string) ([]entity.DocumentType, error)
	Create(ctx context.Context, documentType *entity.DocumentType) (*entity.DocumentType, error)
}

type documentAthleteStorage interface {
	Get(ctx context.Context, organizationID, id string) (*entity.Athlete, error)
}

type documentFileStore interface {
	SaveDocument(organizationID, athleteID, fileName string, file io.Reader) (path string, size int64, mimeType string, err error)
	Remove(path string) error
	Open(path string) (io.ReadCloser, error)
}

type DocumentService struct {
	documents     documentStorage
	documentTypes documentTypeStorage
	athletes      documentAthleteStorage
	files         documentFileStore
	clock         clockwork.Clock
}

func NewDocumentService(
	documents documentStorage,
	documentTypes documentTypeStorage,
	athletes documentAthleteStorage,
	files documentFileStore,
	clock clockwork.Clock,
) *DocumentService {
	return &DocumentService{
		documents:     documents,
		documentTypes: documentTypes,
		athletes:      athletes,
		files:         files,
		clock:         clock,
	}
}

// Upload validates ownership, stores the file under the organization's
// document directory and records the metadata row.
func (s *DocumentService) Upload(ctx context.Context, organizationID string, data dto.UploadDocument, fileName string, file io.Reader) (*entity.Document, error) {
	if _, err := s.athletes.Get(ctx, organizationID, data.AthleteID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorz.NotFound("ATHLETE_NOT_FOUND", "athlete not found")
		}
		return nil, err
	}
	if _, err := s.documentTypes.Get(ctx, organizationID, data.DocumentTypeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorz.NotFound("DOCUMENT_TYPE_NOT_FOUND", "document type not found")
		}
		return nil, err
	}

	path, size, mimeType, err := s.files.SaveDocument(organizationID, data.AthleteID, fileName, file)
	if err != nil {
		return nil, err
	}

	document := &entity.Document{
		AthleteID:      data.AthleteID,
		DocumentTypeID: data.DocumentTypeID,
		FileName:       fileName,
		FilePath:       path,
		MimeType:       mimeType,
		FileSize:       size,
		IssueDate:      data.IssueDate,
		ExpiryDate:     data.ExpiryDate,
	}
	document.Status = document.ComputeStatus(s.clock.Now())

	created, err := s.documents.Create(ctx, document)
	if err != nil {
		// Orphaned file cleanup; the row is the source of truth.
		_ = s.files.Remove(path)
		return nil, err
	}
	return created, nil
}

func (s *DocumentService) Get(ctx context.Context, organizationID, id string) (*entity.Document, error) {
	document, err := s.documents.Get(ctx, organizationID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorz.NotFound("DOCUMENT_NOT_FOUND", "document not found")
		}
		return nil, err
	}
	return document, nil
}

// List returns documents with the status recomputed from the expiry window;
// rows whose stored status drifted are updated in place.
func (s *DocumentService) List(ctx context.Context, organizationID string, filter dto.DocumentFilter) ([]entity.Document, error) {
	documents, err := s.documents.List(ctx, organizationID, filter)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	for i := range documents {
		d := &documents[i]
		if computed := d.ComputeStatus(now); computed != d.Status {
			d.Status = computed
			if _, err = s.documents.Update(ctx, d); err != nil {
				return nil, err
			}
		}
	}
	return documents, nil
}

// Download opens the stored file for streaming to the caller.
func (s *DocumentService) Download(ctx context.Context, organizationID, id string) (*entity.Document, io.ReadCloser, error) {
	document, err := s.Get(ctx, organizationID, id)
	if err != nil {
		return nil, nil, err
	}
	file, err := s.files.Open(document.FilePath)
	if err != nil {
		return nil, nil, errorz.NotFound("FILE_NOT_FOUND", "stored file not found").Wrap(err)
	}
	return document, file, nil
}

// Delete removes the metadata row and the stored file.
func (s *DocumentService) Delete(ctx context.Context, organizationID, id string) error {
	document, err := s.Get(ctx, organizationID, id)
	if err != nil {
		return err
	}
	if err = s.documents.Delete(ctx, id); err != nil {
		return err
	}
	return s.files.Remove(document.FilePath)
}

func (s *DocumentService) ListTypes(ctx context.Context, organizationID string) ([]entity.DocumentType, error) {
	return s.documentTypes.ListByOrganization(ctx, organizationID)
}

func (s *DocumentService) CreateType(ctx context.Context, organizationID string, data dto.CreateDocumentType) (*entity.DocumentType, error) {
	return s.documentTypes.Create(ctx, &entity.DocumentType{
		OrganizationID: organizationID,
		Name:           data.Name,
		Category:       data.Category,
		IsRequired:     data.IsRequired,
		ValidityDays:   data.ValidityDays,
		ReminderDays:   data.ReminderDays,
	})
}
