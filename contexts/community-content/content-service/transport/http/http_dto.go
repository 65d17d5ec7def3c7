package httptransport

// Field names follow the public JSON contract of the content API
// (camelCase, "_id" identifiers).

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ImageDTO struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	ID           string   `json:"_id"`
	IsAdmin      bool     `json:"isAdmin"`
	ProfilePhoto ImageDTO `json:"profilePhoto"`
	Token        string   `json:"token"`
}

type UpdateProfileRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	Bio      *string `json:"bio"`
}

type AccountDTO struct {
	ID           string    `json:"_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	ProfilePhoto ImageDTO  `json:"profilePhoto"`
	Bio          string    `json:"bio"`
	IsAdmin      bool      `json:"isAdmin"`
	IsVerified   bool      `json:"isAccountVerified"`
	CreatedAt    string    `json:"createdAt"`
	UpdatedAt    string    `json:"updatedAt"`
	Posts        []PostDTO `json:"posts,omitempty"`
}

type ProfilePhotoResponse struct {
	Message      string   `json:"message"`
	ProfilePhoto ImageDTO `json:"profilePhoto"`
}

type PostDTO struct {
	ID          string       `json:"_id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	User        string       `json:"user"`
	Image       ImageDTO     `json:"image"`
	Likes       []string     `json:"likes"`
	CreatedAt   string       `json:"createdAt"`
	UpdatedAt   string       `json:"updatedAt"`
	Comments    []CommentDTO `json:"comments,omitempty"`
}

type UpdatePostRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
}

type DeletePostResponse struct {
	Message string `json:"message"`
	PostID  string `json:"postId"`
}

type CommentDTO struct {
	ID        string `json:"_id"`
	PostID    string `json:"postId"`
	Text      string `json:"text"`
	User      string `json:"user"`
	Username  string `json:"username"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type CreateCommentRequest struct {
	PostID string `json:"postId"`
	Text   string `json:"text"`
}

type UpdateCommentRequest struct {
	Text string `json:"text"`
}

type CategoryDTO struct {
	ID        string `json:"_id"`
	Title     string `json:"title"`
	User      string `json:"user"`
	CreatedAt string `json:"createdAt"`
}

type CreateCategoryRequest struct {
	Title string `json:"title"`
}

type DeleteCategoryResponse struct {
	Message    string `json:"message"`
	CategoryID string `json:"categoryId"`
}
