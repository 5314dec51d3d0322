package models

import "time"

// Collaboration is an engagement between a requester (ProfileA) and a recipient (ProfileB).
// CompletedAt is set exactly when Status is completed.
type Collaboration struct {
	BaseModel
	ProfileA    string              `gorm:"column:profile_a;size:36;not null;index" json:"profile_a"`
	ProfileB    string              `gorm:"column:profile_b;size:36;not null;index" json:"profile_b"`
	Title       string              `gorm:"size:200;not null" json:"title"`
	Description string              `gorm:"size:2000" json:"description"`
	Status      CollaborationStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	CompletedAt *time.Time          `json:"completed_at"`

	Requester *Profile `gorm:"foreignKey:ProfileA" json:"requester,omitempty"`
	Recipient *Profile `gorm:"foreignKey:ProfileB" json:"recipient,omitempty"`
}

// Partner returns the other party's profile id.
func (c *Collaboration) Partner(profileID string) string {
	if c.ProfileA == profileID {
		return c.ProfileB
	}
	return c.ProfileA
}
