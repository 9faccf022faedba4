package contract

type CommentResponse struct {
	ID           string `json:"id"`
	SuggestionID string `json:"suggestion_id"`
	AuthorName   string `json:"author_name"`
	AuthorEmail  string `json:"author_email"`
	Content      string `json:"content"`
	CreatedAt    string `json:"created_at"`
}

type CommentRequest struct {
	AuthorName  string `json:"author_name" validate:"required,max=80"`
	AuthorEmail string `json:"author_email" validate:"required,email"`
	Content     string `json:"content" validate:"required,max=2000"`
}
