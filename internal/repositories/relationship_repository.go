package repositories

import (
	"collabex_backend/internal/models"

	"gorm.io/gorm"
)

// RelationshipRepository answers the existence questions behind the
// notification gate. Every method is a LIMIT 1 existence query.
type RelationshipRepository interface {
	MatchExists(db *gorm.DB, a, b string) (bool, error)
	CollaborationExists(db *gorm.DB, a, b string) (bool, error)
	AppliedToAuthor(db *gorm.DB, applicantID, authorID string) (bool, error)
	HasAuthoredPost(db *gorm.DB, authorID string) (bool, error)
}

type RelationshipRepositoryImpl struct{}

func NewRelationshipRepository() RelationshipRepository {
	return &RelationshipRepositoryImpl{}
}

func exists(query *gorm.DB) (bool, error) {
	var ids []string
	if err := query.Limit(1).Pluck("id", &ids).Error; err != nil {
		return false, err
	}
	return len(ids) > 0, nil
}

func (r *RelationshipRepositoryImpl) MatchExists(db *gorm.DB, a, b string) (bool, error) {
	return exists(db.Model(&models.Match{}).Scopes(pairScope(a, b)))
}

func (r *RelationshipRepositoryImpl) CollaborationExists(db *gorm.DB, a, b string) (bool, error) {
	return exists(db.Model(&models.Collaboration{}).Scopes(pairScope(a, b)))
}

func (r *RelationshipRepositoryImpl) AppliedToAuthor(db *gorm.DB, applicantID, authorID string) (bool, error) {
	return exists(db.Model(&models.CollabApplication{}).
		Where("applicant_id = ?", applicantID).
		Where("post_id IN (?)", db.Model(&models.CollabPost{}).Select("id").Where("author_id = ?", authorID)))
}

func (r *RelationshipRepositoryImpl) HasAuthoredPost(db *gorm.DB, authorID string) (bool, error) {
	return exists(db.Model(&models.CollabPost{}).Where("author_id = ?", authorID))
}
