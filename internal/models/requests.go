package models

// Explicit request/response contracts for every endpoint. Bodies are decoded
// strictly (unknown fields rejected), so these structs are the full wire shape.

// CreatePostRequest is the body of POST /posts.
type CreatePostRequest struct {
	Title    string      `json:"title"`
	Content  PostContent `json:"content"`
	ImageURL string      `json:"imageUrl,omitempty"`
}

// UpdatePostRequest is the body of PUT /posts/:id. It replaces title, content
// and imageUrl; likes and createdAt are never touched by an update.
type UpdatePostRequest struct {
	Title    string      `json:"title"`
	Content  PostContent `json:"content"`
	ImageURL string      `json:"imageUrl,omitempty"`
}

// LoginRequest is the body of POST /admin/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the success/failure envelope of POST /admin/login.
type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
	Message string `json:"message,omitempty"`
}

// DeleteResponse confirms a delete. Deletes are idempotent: removing an id
// that does not exist returns the same confirmation.
type DeleteResponse struct {
	Message string `json:"message"`
}
