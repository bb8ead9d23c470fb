package models

// FieldErrors is the JSON body of every 4xx response: one message per
// offending field, e.g. {"email": "Email already exists"}.
type FieldErrors map[string]string

func FieldError(field, message string) FieldErrors {
	return FieldErrors{field: message}
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type TokenResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

type CurrentUserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
