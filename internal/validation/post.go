package validation

// PostInput is shared by posts and comments.
type PostInput struct {
	Text string `json:"text"`
}

func ValidatePost(in PostInput) Result {
	errors := map[string]string{}

	if isEmpty(in.Text) {
		errors["text"] = "Text field required."
	} else if !isLength(in.Text, 10, 300) {
		errors["text"] = "Post must be between 10-300 characters."
	}

	return newResult(errors)
}
