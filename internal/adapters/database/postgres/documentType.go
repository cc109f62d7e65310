package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/241luca/soccer-manager/internal/domain/entity"
)

type DocumentTypeStorage struct {
	db *gorm.DB
}

func NewDocumentTypeStorage(db *gorm.DB) *DocumentTypeStorage {
	return &DocumentTypeStorage{
		db: db,
	}
}

// Get is a function that gets a document type of an organization by id.
func (s *DocumentTypeStorage) Get(ctx context.Context, organizationID, id string) (*entity.DocumentType, error) {
	var documentType entity.DocumentType
	err := s.db.WithContext(ctx).
		Where("organization_id = ? AND id = ?", organizationID, id).
		First(&documentType).Error
	return &documentType, err
}

// ListByOrganization is a function that gets all document types of an
// organization.
func (s *DocumentTypeStorage) ListByOrganization(ctx context.Context, organizationID string) ([]entity.DocumentType, error) {
	var documentTypes []entity.DocumentType
	err := s.db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Order("name").
		Find(&documentTypes).Error
	return documentTypes, err
}

// Create is a function that creates a new document type in the database.
func (s *DocumentTypeStorage) Create(ctx context.Context, documentType *entity.DocumentType) (*entity.DocumentType, error) {
	err := s.db.WithContext(ctx).Create(&documentType).Error
	return documentType, err
}
