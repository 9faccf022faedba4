package repository

import (
	"errors"
	"mural/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultSuggestionRepository struct {
	db *gorm.DB
}

func NewSuggestionRepository(db *gorm.DB) *DefaultSuggestionRepository {
	return &DefaultSuggestionRepository{db: db}
}

// FindAll returns a point-in-time snapshot. Ordering here is just the
// storage order; the ranking engine imposes the display order.
func (d *DefaultSuggestionRepository) FindAll(includePrivate bool) ([]*entity.Suggestion, error) {
	query := d.db.Order("created_at DESC")
	if !includePrivate {
		query = query.Where("is_public = ?", true)
	}

	var suggestions []*entity.Suggestion
	err := query.Find(&suggestions).Error
	if err != nil {
		return nil, err
	}
	return suggestions, nil
}

func (d *DefaultSuggestionRepository) FindByID(id string) (*entity.Suggestion, error) {
	var suggestion entity.Suggestion
	err := d.db.First(&suggestion, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &suggestion, nil
}

func (d *DefaultSuggestionRepository) Save(suggestion *entity.Suggestion) error {
	return d.db.Save(suggestion).Error
}

// UpdateFields applies a column-scoped update. The staff paths
// (status, pin) go through here instead of Save: a full-row write
// from a read snapshot would clobber the votes/comments_count
// columns owned by the ledger and the comment thread.
//
// Returns gorm.ErrRecordNotFound if the suggestion does not exist.
func (d *DefaultSuggestionRepository) UpdateFields(id string, fields map[string]any) error {
	result := d.db.Model(&entity.Suggestion{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
