package entity

// Suggestion is the central entity of the board. After creation it is
// mutated only through the narrow paths: status change, pin toggle and
// the counter deltas owned by the vote ledger and the comment thread.
//
// IsPublic and Status carry no column default on purpose: gorm omits
// zero-valued fields that have one, and a forced-private submission
// must stay false.
type Suggestion struct {
	ID            string `gorm:"primaryKey"`
	Title         string `gorm:"not null"`
	Description   string `gorm:"not null"`
	Module        string `gorm:"not null"`
	Email         string `gorm:"not null"`
	YoutubeURL    string
	IsPublic      bool   `gorm:"not null"`
	Status        Status `gorm:"not null"`
	Votes         int    `gorm:"not null;default:0"`
	CommentsCount int    `gorm:"not null;default:0"`
	AdminResponse string
	IsPinned      bool  `gorm:"not null;default:false"`
	CreatedAt     int64 `gorm:"not null"`
	UpdatedAt     int64 `gorm:"not null;autoUpdateTime:false"`
}

// Modules is the fixed category set a suggestion can be filed under.
var Modules = []string{"Bot", "Mapa", "Workspace", "Financeiro", "Fiscal", "SAC", "Agenda", "Outro"}

func IsValidModule(module string) bool {
	for _, m := range Modules {
		if m == module {
			return true
		}
	}
	return false
}
