package validation

type RegisterInput struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

func ValidateRegister(in RegisterInput) Result {
	errors := map[string]string{}

	if isEmpty(in.Name) {
		errors["name"] = "Name field is required"
	} else if !isLength(in.Name, 2, 30) {
		errors["name"] = "Name must be between 2 and 30 characters"
	}

	if isEmpty(in.Email) {
		errors["email"] = "Email field is required"
	} else if !isEmail(in.Email) {
		errors["email"] = "Email is invalid"
	}

	if isEmpty(in.Password) {
		errors["password"] = "Password field is required"
	} else if !lengthBetween(in.Password, 6, 30) {
		errors["password"] = "Password must be between 6 and 30 characters"
	}

	if isEmpty(in.Password2) {
		errors["password2"] = "Confirm Password field is required"
	} else if in.Password != in.Password2 {
		errors["password2"] = "Passwords must match"
	}

	return newResult(errors)
}
