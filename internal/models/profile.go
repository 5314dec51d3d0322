package models

// Profile is the public identity of a user. One per user.
type Profile struct {
	BaseModel
	UserID              string      `gorm:"size:36;uniqueIndex;not null" json:"user_id"`
	DisplayName         string      `gorm:"size:100" json:"display_name"`
	AvatarURL           string      `gorm:"size:1000" json:"avatar_url"`
	BannerURL           string      `gorm:"size:1000" json:"banner_url"`
	Bio                 string      `gorm:"size:2000" json:"bio"`
	Location            string      `gorm:"size:200" json:"location"`
	AccountType         AccountType `gorm:"size:20;not null;default:'influencer';index" json:"account_type"`
	AudienceTier        string      `gorm:"size:50" json:"audience_tier"`
	OnboardingCompleted bool        `gorm:"default:false;index" json:"onboarding_completed"`

	BaseRate          *float64 `json:"base_rate"`
	RateType          RateType `gorm:"size:20" json:"rate_type"`
	Currency          Currency `gorm:"size:3;default:'USD'" json:"currency"`
	OpenToFreeCollabs bool     `gorm:"default:false" json:"open_to_free_collabs"`

	Niches    []ProfileNiche   `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"niches,omitempty"`
	Platforms []SocialPlatform `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"platforms,omitempty"`
	Portfolio []PortfolioItem  `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"portfolio,omitempty"`
}

type ProfileNiche struct {
	BaseModel
	ProfileID string `gorm:"size:36;not null;uniqueIndex:idx_profile_niche" json:"profile_id"`
	Niche     string `gorm:"size:50;not null;uniqueIndex:idx_profile_niche;index" json:"niche"`
}

func (p *Profile) NicheNames() []string {
	names := make([]string, 0, len(p.Niches))
	for _, n := range p.Niches {
		names = append(names, n.Niche)
	}
	return names
}
