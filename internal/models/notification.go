package models

import "gorm.io/datatypes"

type Notification struct {
	BaseModel
	UserID  string           `gorm:"size:36;not null;index" json:"user_id"`
	Type    NotificationType `gorm:"size:30;not null" json:"type"`
	Title   string           `gorm:"size:1200;not null" json:"title"`
	Message string           `gorm:"size:6000;not null" json:"message"`
	Data    datatypes.JSON   `json:"data"`
	Read    bool             `gorm:"column:is_read;default:false;index" json:"read"`
}
