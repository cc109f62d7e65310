package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/241luca/soccer-manager/internal/domain/dto"
	"github.com/241luca/soccer-manager/internal/domain/entity"
)

type DocumentStorage struct {
	db *gorm.DB
}

func NewDocumentStorage(db *gorm.DB) *DocumentStorage {
	return &DocumentStorage{
		db: db,
	}
}

// Documents carry no organization column; tenancy comes from the athlete row.
func (s *DocumentStorage) scoped(ctx context.Context, organizationID string) *gorm.DB {
	return s.db.WithContext(ctx).
		Model(&entity.Document{}).
		Joins("JOIN athletes ON athletes.id = documents.athlete_id").
		Where("athletes.organization_id = ?", organizationID)
}

// Create is a function that creates a new document in the database.
func (s *DocumentStorage) Create(ctx context.Context, document *entity.Document) (*entity.Document, error) {
	err := s.db.WithContext(ctx).Create(&document).Error
	return document, err
}

// Get is a function that gets a document of an organization by id.
func (s *DocumentStorage) Get(ctx context.Context, organizationID, id string) (*entity.Document, error) {
	var document entity.Document
	err := s.scoped(ctx, organizationID).
		Preload("Athlete").
		Preload("DocumentType").
		Where("documents.id = ?", id).
		First(&document).Error
	return &document, err
}

// List returns documents of an organization narrowed by the filter.
func (s *DocumentStorage) List(ctx context.Context, organizationID string, filter dto.DocumentFilter) ([]entity.Document, error) {
	query := s.scoped(ctx, organizationID).
		Preload("Athlete").
		Preload("DocumentType")

	if filter.AthleteID != "" {
		query = query.Where("documents.athlete_id = ?", filter.AthleteID)
	}
	if filter.Status != "" {
		query = query.Where("documents.status = ?", filter.Status)
	}
	if filter.Expiring {
		query = query.Where("documents.status IN ?",
			[]entity.DocumentStatus{entity.DocumentStatusExpiring, entity.DocumentStatusExpired})
	}

	var documents []entity.Document
	err := query.Order("documents.expiry_date").Find(&documents).Error
	return documents, err
}

// ExpiringBefore gets documents of an organization expiring before the given
// time, with the athlete and document type preloaded.
func (s *DocumentStorage) ExpiringBefore(ctx context.Context, organizationID string, before time.Time) ([]entity.Document, error) {
	var documents []entity.Document
	err := s.scoped(ctx, organizationID).
		Preload("Athlete").
		Preload("DocumentType").
		Where("documents.expiry_date < ?", before).
		Find(&documents).Error
	return documents, err
}

// Update is a function that updates a document in the database.
func (s *DocumentStorage) Update(ctx context.Context, document *entity.Document) (*entity.Document, error) {
	err := s.db.WithContext(ctx).Omit("Athlete", "DocumentType").Save(&document).Error
	return document, err
}

// Delete is a function that removes a document from the database.
func (s *DocumentStorage) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&entity.Document{}, "id = ?", id).Error
}
