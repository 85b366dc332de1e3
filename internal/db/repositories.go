package db

import "gorm.io/gorm"

type Repositories struct {
	Records  *CycleRecordRepository
	Settings *CycleSettingsRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Records:  NewCycleRecordRepository(database),
		Settings: NewCycleSettingsRepository(database),
	}
}
