package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/241luca/soccer-manager/internal/domain/dto"
	"github.com/241luca/soccer-manager/internal/domain/entity"
)

type DashboardStorage struct {
	db *gorm.DB
}

func NewDashboardStorage(db *gorm.DB) *DashboardStorage {
	return &DashboardStorage{
		db: db,
	}
}

// Stats collects the organization overview counters.
func (s *DashboardStorage) Stats(ctx context.Context, organizationID string, now time.Time) (*dto.DashboardStats, error) {
	stats := &dto.DashboardStats{}
	db := s.db.WithContext(ctx)

	err := db.Model(&entity.Athlete{}).
		Where("organization_id = ? AND status = ?", organizationID, entity.AthleteStatusActive).
		Count(&stats.AthleteCount).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&entity.Team{}).
		Where("organization_id = ?", organizationID).
		Count(&stats.TeamCount).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&entity.Match{}).
		Where("organization_id = ? AND status = ? AND date >= ?",
			organizationID, entity.MatchStatusScheduled, now).
		Count(&stats.UpcomingMatches).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&entity.Document{}).
		Joins("JOIN athletes ON athletes.id = documents.athlete_id").
		Where("athletes.organization_id = ? AND documents.expiry_date < ?",
			organizationID, now.AddDate(0, 0, 30)).
		Count(&stats.ExpiringDocuments).Error
	if err != nil {
		return nil, err
	}

	var overdue struct {
		Count int64
		Total float64
	}
	err = db.Model(&entity.Payment{}).
		Joins("JOIN athletes ON athletes.id = payments.athlete_id").
		Where("athletes.organization_id = ? AND payments.status IN ? AND payments.due_date < ?",
			organizationID, []entity.PaymentStatus{entity.PaymentStatusPending, entity.PaymentStatusOverdue}, now).
		Select("COUNT(*) AS count, COALESCE(SUM(payments.amount), 0) AS total").
		Scan(&overdue).Error
	if err != nil {
		return nil, err
	}
	stats.OverduePayments = overdue.Count
	stats.OverdueAmount = overdue.Total

	return stats, nil
}
