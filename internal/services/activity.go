package services

import (
	"time"

	"github.com/pkaczor/serwisapp/internal/models"
	"gorm.io/gorm"
)

// recordActivity appends a log entry. It runs on the caller's transaction so
// the entry lands atomically with the mutation it describes.
func recordActivity(tx *gorm.DB, typ models.ActivityType, action models.ActivityAction, itemID, itemName string) error {
	a := models.Activity{
		Type:      typ,
		Action:    action,
		ItemID:    itemID,
		ItemName:  itemName,
		Timestamp: time.Now(),
	}
	if err := tx.Create(&a).Error; err != nil {
		return StoreErr("activity_create", err)
	}
	return nil
}

type ActivityService struct {
	DB *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService { return &ActivityService{DB: db} }

// Recent returns the newest entries, most recent first.
func (s *ActivityService) Recent(limit int) ([]models.Activity, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var acts []models.Activity
	if err := s.DB.Order("timestamp desc").Limit(limit).Find(&acts).Error; err != nil {
		return nil, StoreErr("activity_list", err)
	}
	return acts, nil
}
