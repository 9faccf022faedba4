package repository

import (
	"mural/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultCommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *DefaultCommentRepository {
	return &DefaultCommentRepository{db: db}
}

// Append inserts the comment and bumps the owning suggestion's
// comments_count in the same transaction, keeping the counter equal to
// the thread cardinality at all times.
//
// Returns gorm.ErrRecordNotFound if the suggestion does not exist.
func (d *DefaultCommentRepository) Append(comment *entity.SuggestionComment) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		var suggestion entity.Suggestion
		if err := tx.Select("id").First(&suggestion, "id = ?", comment.SuggestionID).Error; err != nil {
			return err
		}

		if err := tx.Create(comment).Error; err != nil {
			return err
		}

		return tx.Model(&entity.Suggestion{}).
			Where("id = ?", comment.SuggestionID).
			Updates(map[string]any{
				"comments_count": gorm.Expr("comments_count + 1"),
				"updated_at":     comment.CreatedAt,
			}).Error
	})
}

// FindBySuggestion returns the thread oldest-first, the stable display
// order for comments (unrelated to the suggestion ranking order).
func (d *DefaultCommentRepository) FindBySuggestion(suggestionID string) ([]*entity.SuggestionComment, error) {
	var comments []*entity.SuggestionComment
	err := d.db.Where("suggestion_id = ?", suggestionID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (d *DefaultCommentRepository) CountBySuggestion(suggestionID string) (int64, error) {
	var count int64
	err := d.db.Model(&entity.SuggestionComment{}).
		Where("suggestion_id = ?", suggestionID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
