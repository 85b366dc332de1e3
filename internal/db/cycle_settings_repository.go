package db

import (
	"github.com/cyra-health/cyra/internal/models"
	"gorm.io/gorm"
)

type CycleSettingsRepository struct {
	database *gorm.DB
}

func NewCycleSettingsRepository(database *gorm.DB) *CycleSettingsRepository {
	return &CycleSettingsRepository{database: database}
}

func (repo *CycleSettingsRepository) FindByUser(userID uint) (models.CycleSettings, bool, error) {
	settings := models.CycleSettings{}
	result := repo.database.Where("user_id = ?", userID).Limit(1).Find(&settings)
	if result.Error != nil {
		return models.CycleSettings{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.CycleSettings{}, false, nil
	}
	return settings, true, nil
}

func (repo *CycleSettingsRepository) Create(settings *models.CycleSettings) error {
	return repo.database.Create(settings).Error
}

func (repo *CycleSettingsRepository) Save(settings *models.CycleSettings) error {
	return repo.database.Save(settings).Error
}

func (repo *CycleSettingsRepository) DeleteByUser(userID uint) error {
	return repo.database.Where("user_id = ?", userID).Delete(&models.CycleSettings{}).Error
}

// ListUserIDs returns every user id that has a settings row, used by the
// reminder dispatcher to iterate active users.
func (repo *CycleSettingsRepository) ListUserIDs() ([]uint, error) {
	ids := make([]uint, 0)
	if err := repo.database.
		Model(&models.CycleSettings{}).
		Pluck("user_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
