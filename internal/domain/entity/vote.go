package entity

// SuggestionVote is a ledger row: its existence is the sole source of
// truth for "has this voter voted". The pair (suggestion, voter) is
// unique, so a double-submit can never produce two rows.
type SuggestionVote struct {
	ID           int64  `gorm:"primaryKey"`
	SuggestionID string `gorm:"not null;uniqueIndex:idx_suggestion_voter"`
	UserEmail    string `gorm:"not null;uniqueIndex:idx_suggestion_voter"`
	CreatedAt    int64  `gorm:"not null"`
}

func (SuggestionVote) TableName() string {
	return "suggestion_votes"
}
