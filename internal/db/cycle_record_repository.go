package db

import (
	"time"

	"github.com/cyra-health/cyra/internal/models"
	"gorm.io/gorm"
)

type CycleRecordRepository struct {
	database *gorm.DB
}

func NewCycleRecordRepository(database *gorm.DB) *CycleRecordRepository {
	return &CycleRecordRepository{database: database}
}

// ListByUser returns records ordered by start date descending, newest first.
// A limit of 0 or less means no limit.
func (repo *CycleRecordRepository) ListByUser(userID uint, limit int) ([]models.CycleRecord, error) {
	query := repo.database.Where("user_id = ?", userID).Order("start_date DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	records := make([]models.CycleRecord, 0)
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (repo *CycleRecordRepository) FindByID(userID uint, id uint) (models.CycleRecord, bool, error) {
	record := models.CycleRecord{}
	result := repo.database.
		Where("user_id = ? AND id = ?", userID, id).
		Limit(1).
		Find(&record)
	if result.Error != nil {
		return models.CycleRecord{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.CycleRecord{}, false, nil
	}
	return record, true, nil
}

func (repo *CycleRecordRepository) FindByDate(userID uint, dayStart time.Time, dayEnd time.Time) (models.CycleRecord, bool, error) {
	record := models.CycleRecord{}
	result := repo.database.
		Where("user_id = ? AND start_date >= ? AND start_date < ?", userID, dayStart, dayEnd).
		Order("start_date DESC, id DESC").
		Limit(1).
		Find(&record)
	if result.Error != nil {
		return models.CycleRecord{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.CycleRecord{}, false, nil
	}
	return record, true, nil
}

// FindLatestBefore returns the most recent record strictly before the given day.
func (repo *CycleRecordRepository) FindLatestBefore(userID uint, dayStart time.Time) (models.CycleRecord, bool, error) {
	record := models.CycleRecord{}
	result := repo.database.
		Where("user_id = ? AND start_date < ?", userID, dayStart).
		Order("start_date DESC, id DESC").
		Limit(1).
		Find(&record)
	if result.Error != nil {
		return models.CycleRecord{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.CycleRecord{}, false, nil
	}
	return record, true, nil
}

func (repo *CycleRecordRepository) Create(record *models.CycleRecord) error {
	return repo.database.Create(record).Error
}

func (repo *CycleRecordRepository) Save(record *models.CycleRecord) error {
	return repo.database.Save(record).Error
}

func (repo *CycleRecordRepository) DeleteAllByUser(userID uint) error {
	return repo.database.Where("user_id = ?", userID).Delete(&models.CycleRecord{}).Error
}
