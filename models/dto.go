package models

type RegisterRequest struct {
	Username string   `json:"username" validate:"required,min=3,max=50"`
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=6"`
	Role     UserRole `json:"role,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type CreatePostRequest struct {
	Title           string   `json:"title" validate:"required,min=1,max=250"`
	Body            string   `json:"body" validate:"required"`
	Slug            string   `json:"slug,omitempty" validate:"omitempty,max=250"`
	Status          string   `json:"status,omitempty" validate:"omitempty,oneof=draft published"`
	PublicationDate string   `json:"publication_date,omitempty"`
	Tags            []string `json:"tags"`
}

type UpdatePostRequest struct {
	Title  string   `json:"title" validate:"required,min=1,max=250"`
	Body   string   `json:"body" validate:"required"`
	Status string   `json:"status,omitempty" validate:"omitempty,oneof=draft published"`
	Tags   []string `json:"tags"`
}

type CreateCommentRequest struct {
	Name  string `json:"name" validate:"required,max=80"`
	Email string `json:"email" validate:"required,email"`
	Body  string `json:"body" validate:"required"`
}

type SharePostRequest struct {
	Name     string `json:"name" validate:"required,max=25"`
	Email    string `json:"email" validate:"required,email"`
	To       string `json:"to" validate:"required,email"`
	Comments string `json:"comments"`
}

type CreateTagRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type SearchParams struct {
	Query string `form:"query"`
	Mode  string `form:"mode,default=ranked"`
	Page  string `form:"page"`
}

type PostListParams struct {
	Tag  string `form:"tag"`
	Page string `form:"page"`
}
