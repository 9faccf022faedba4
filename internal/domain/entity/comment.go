package entity

// SuggestionComment is append-only: there is no update or delete path.
type SuggestionComment struct {
	ID           string `gorm:"primaryKey"`
	SuggestionID string `gorm:"not null;index"`
	AuthorName   string `gorm:"not null"`
	AuthorEmail  string `gorm:"not null"`
	Content      string `gorm:"not null"`
	CreatedAt    int64  `gorm:"not null"`
	UpdatedAt    int64  `gorm:"not null;autoUpdateTime:false"`
}

func (SuggestionComment) TableName() string {
	return "suggestion_comments"
}
