package repository

import (
	"errors"
	"mural/internal/domain/entity"
	"mural/internal/utils"
	"mural/internal/utils/uid"

	"gorm.io/gorm"
)

type DefaultVoteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) *DefaultVoteRepository {
	return &DefaultVoteRepository{db: db}
}

// Toggle flips the (suggestion, voter) ledger pair and moves the
// suggestion counter with it, all inside one transaction: the
// existence check, the row insert/delete and the counter delta must
// never be observed half-applied.
//
// Returns gorm.ErrRecordNotFound if the suggestion does not exist and
// gorm.ErrDuplicatedKey when a double-submit race loses the insert.
func (d *DefaultVoteRepository) Toggle(suggestionID, voterEmail string) (voted bool, newCount int, err error) {
	err = d.db.Transaction(func(tx *gorm.DB) error {
		var suggestion entity.Suggestion
		if ferr := tx.Select("id").First(&suggestion, "id = ?", suggestionID).Error; ferr != nil {
			return ferr
		}

		now := utils.NowUTC()
		var vote entity.SuggestionVote
		ferr := tx.Where("suggestion_id = ? AND user_email = ?", suggestionID, voterEmail).
			First(&vote).Error

		switch {
		case ferr == nil:
			if derr := tx.Delete(&vote).Error; derr != nil {
				return derr
			}
			// Counter floors at 0: the guarded update is a no-op if
			// something already brought it down, but the ledger row
			// is gone either way.
			if uerr := tx.Model(&entity.Suggestion{}).
				Where("id = ? AND votes > 0", suggestionID).
				Updates(map[string]any{
					"votes":      gorm.Expr("votes - 1"),
					"updated_at": now,
				}).Error; uerr != nil {
				return uerr
			}
			voted = false

		case errors.Is(ferr, gorm.ErrRecordNotFound):
			vote = entity.SuggestionVote{
				ID:           uid.Generate(),
				SuggestionID: suggestionID,
				UserEmail:    voterEmail,
				CreatedAt:    now,
			}
			if cerr := tx.Create(&vote).Error; cerr != nil {
				return cerr
			}
			if uerr := tx.Model(&entity.Suggestion{}).
				Where("id = ?", suggestionID).
				Updates(map[string]any{
					"votes":      gorm.Expr("votes + 1"),
					"updated_at": now,
				}).Error; uerr != nil {
				return uerr
			}
			voted = true

		default:
			return ferr
		}

		var updated entity.Suggestion
		if rerr := tx.Select("votes").First(&updated, "id = ?", suggestionID).Error; rerr != nil {
			return rerr
		}
		newCount = updated.Votes
		return nil
	})
	if err != nil {
		return false, 0, err
	}
	return voted, newCount, nil
}

// VotedSuggestionIDs returns the set of suggestions the given voter
// has a ledger row for.
func (d *DefaultVoteRepository) VotedSuggestionIDs(voterEmail string) (map[string]bool, error) {
	var ids []string
	err := d.db.Model(&entity.SuggestionVote{}).
		Where("user_email = ?", voterEmail).
		Pluck("suggestion_id", &ids).Error
	if err != nil {
		return nil, err
	}

	voted := make(map[string]bool, len(ids))
	for _, id := range ids {
		voted[id] = true
	}
	return voted, nil
}

func (d *DefaultVoteRepository) CountBySuggestion(suggestionID string) (int64, error) {
	var count int64
	err := d.db.Model(&entity.SuggestionVote{}).
		Where("suggestion_id = ?", suggestionID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
