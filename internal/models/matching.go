package models

// SwipeAction is append-only.
type SwipeAction struct {
	BaseModel
	SwiperID  string         `gorm:"size:36;not null;uniqueIndex:idx_swipe_pair" json:"swiper_id"`
	SwipedID  string         `gorm:"size:36;not null;uniqueIndex:idx_swipe_pair;index" json:"swiped_id"`
	Direction SwipeDirection `gorm:"size:10;not null" json:"direction"`
}

// Match stores the pair ordered so that ProfileA < ProfileB.
type Match struct {
	BaseModel
	ProfileA string `gorm:"column:profile_a;size:36;not null;uniqueIndex:idx_match_pair" json:"profile_a"`
	ProfileB string `gorm:"column:profile_b;size:36;not null;uniqueIndex:idx_match_pair;index" json:"profile_b"`
}

func OrderedPair(a, b string) (string, string) {
	if a < b {
		return a, b
	}
	return b, a
}

func (m *Match) Partner(profileID string) string {
	if m.ProfileA == profileID {
		return m.ProfileB
	}
	return m.ProfileA
}

type CandidateScore struct {
	ProfileID string   `json:"profile_id"`
	Score     float64  `json:"score"`
	Reasons   []string `json:"reasons"`
}
