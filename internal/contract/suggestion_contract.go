package contract

type SuggestionResponse struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Module        string `json:"module"`
	Email         string `json:"email"`
	YoutubeURL    string `json:"youtube_url,omitempty"`
	IsPublic      bool   `json:"is_public"`
	Status        string `json:"status"` // display label, e.g. "Em análise"
	Votes         int    `json:"votes"`
	HasVoted      bool   `json:"has_voted"`
	CommentsCount int    `json:"comments_count"`
	AdminResponse string `json:"admin_response,omitempty"`
	IsPinned      bool   `json:"is_pinned"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

type SuggestionRequest struct {
	Title       string `json:"title" validate:"required,max=120"`
	Description string `json:"description" validate:"required,min=200"`
	Module      string `json:"module" validate:"required,suggestionmodule"`
	Email       string `json:"email" validate:"required,email"`
	// YoutubeURL is opaque metadata, stored as-is. Fetching or
	// validating the video belongs to the media collaborator.
	YoutubeURL string `json:"youtube_url" validate:"omitempty,max=300"`
	IsPublic   *bool  `json:"is_public"`
}

type VoteRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VoteResponse struct {
	SuggestionID string `json:"suggestion_id"`
	Voted        bool   `json:"voted"`
	Votes        int    `json:"votes"`
}

type StatusUpdateRequest struct {
	// Status accepts a display label ("Em análise") or internal key.
	Status        string  `json:"status" validate:"required"`
	AdminResponse *string `json:"admin_response" validate:"omitempty,max=2000"`
}

type PinUpdateRequest struct {
	Pinned *bool `json:"pinned" validate:"required"`
}
