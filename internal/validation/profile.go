package validation

// ProfileInput is the create/edit profile form. Skills is a comma separated
// list; nil means the field was not sent at all.
type ProfileInput struct {
	Handle         string  `json:"handle"`
	Company        string  `json:"company"`
	Website        string  `json:"website"`
	Location       string  `json:"location"`
	Status         string  `json:"status"`
	Skills         *string `json:"skills"`
	Bio            string  `json:"bio"`
	GithubUsername string  `json:"githubUsername"`
	Youtube        string  `json:"youtube"`
	Twitter        string  `json:"twitter"`
	Facebook       string  `json:"facebook"`
	LinkedIn       string  `json:"linkedIn"`
	Instagram      string  `json:"instagram"`
}

func ValidateProfile(in ProfileInput) Result {
	errors := map[string]string{}

	if isEmpty(in.Handle) {
		errors["handle"] = "Profile handle is required"
	} else if !isLength(in.Handle, 2, 40) {
		errors["handle"] = "Handle needs to be between 2 and 40 characters"
	}

	if isEmpty(in.Status) {
		errors["status"] = "Status field is required"
	}

	urls := []struct {
		field, value string
	}{
		{"website", in.Website},
		{"youtube", in.Youtube},
		{"twitter", in.Twitter},
		{"facebook", in.Facebook},
		{"linkedIn", in.LinkedIn},
		{"instagram", in.Instagram},
	}
	for _, u := range urls {
		if !isEmpty(u.value) && !isURL(u.value) {
			errors[u.field] = "Not a valid URL"
		}
	}

	return newResult(errors)
}
