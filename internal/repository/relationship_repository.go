package repository

import (
	"friendchat/internal/model"

	"gorm.io/gorm"
)

// RelationshipRepository persists friendship state. All pair lookups go
// through the canonical PairKey, so orientation never matters.
type RelationshipRepository struct {
	db *gorm.DB
}

// NewRelationshipRepository creates a RelationshipRepository.
func NewRelationshipRepository(db *gorm.DB) *RelationshipRepository {
	return &RelationshipRepository{db: db}
}

// AreFriends reports whether an ACCEPTED row exists for the unordered pair.
func (r *RelationshipRepository) AreFriends(a, b string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Relationship{}).
		Where("pair_key = ? AND status = ?", model.PairKey(a, b), model.RelationshipAccepted).
		Count(&count).Error
	return count > 0, err
}

// GetByPair returns the row for the unordered pair in any status, or nil
// when no row exists.
func (r *RelationshipRepository) GetByPair(a, b string) (*model.Relationship, error) {
	var rel model.Relationship
	err := r.db.Where("pair_key = ?", model.PairKey(a, b)).First(&rel).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &rel, nil
}

// GetPendingByPair returns the PENDING row for the unordered pair, or nil.
func (r *RelationshipRepository) GetPendingByPair(a, b string) (*model.Relationship, error) {
	var rel model.Relationship
	err := r.db.
		Where("pair_key = ? AND status = ?", model.PairKey(a, b), model.RelationshipPending).
		First(&rel).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &rel, nil
}

// CreatePending inserts a PENDING row oriented requester -> recipient. The
// unique PairKey index rejects a concurrent duplicate with
// gorm.ErrDuplicatedKey.
func (r *RelationshipRepository) CreatePending(requesterID, recipientID string) (*model.Relationship, error) {
	rel := &model.Relationship{
		RequesterID: requesterID,
		RecipientID: recipientID,
		Status:      model.RelationshipPending,
	}
	if err := r.db.Create(rel).Error; err != nil {
		return nil, err
	}
	return rel, nil
}

// AcceptPending transitions a row to ACCEPTED only while it is still
// PENDING, and reports how many rows were affected. Zero means a concurrent
// respond already settled the request.
func (r *RelationshipRepository) AcceptPending(id string) (int64, error) {
	result := r.db.Model(&model.Relationship{}).
		Where("id = ? AND status = ?", id, model.RelationshipPending).
		Update("status", model.RelationshipAccepted)
	return result.RowsAffected, result.Error
}

// DeletePending removes a row only while it is still PENDING, and reports
// how many rows were affected.
func (r *RelationshipRepository) DeletePending(id string) (int64, error) {
	result := r.db.
		Where("id = ? AND status = ?", id, model.RelationshipPending).
		Delete(&model.Relationship{})
	return result.RowsAffected, result.Error
}
