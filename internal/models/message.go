package models

type Message struct {
	BaseModel
	SenderID   string `gorm:"size:36;not null;index:idx_message_pair" json:"sender_id"`
	ReceiverID string `gorm:"size:36;not null;index:idx_message_pair;index" json:"receiver_id"`
	Content    string `gorm:"size:5000;not null" json:"content"`
	Read       bool   `gorm:"column:is_read;default:false" json:"read"`
}
