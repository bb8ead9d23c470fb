package validation

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func ValidateLogin(in LoginInput) Result {
	errors := map[string]string{}

	if isEmpty(in.Email) {
		errors["email"] = "Email field is required"
	} else if !isEmail(in.Email) {
		errors["email"] = "Email is invalid"
	}

	if isEmpty(in.Password) {
		errors["password"] = "Password field is required"
	}

	return newResult(errors)
}
