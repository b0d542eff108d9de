package dto

type UserResponseDTO struct {
	ID      int    `json:"id"`
	Email   string `json:"email" example:"staff@example.com"`
	IsAdmin bool   `json:"is_admin"`
}

type CreateUserRequestDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	IsAdmin  bool   `json:"is_admin"`
}

// Empty fields keep the stored values.
type UpdateUserRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
