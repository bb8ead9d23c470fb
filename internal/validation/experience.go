package validation

type ExperienceInput struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

func ValidateExperience(in ExperienceInput) Result {
	errors := map[string]string{}

	if isEmpty(in.Title) {
		errors["title"] = "Job title field is required."
	}
	if isEmpty(in.Company) {
		errors["company"] = "Company field is required."
	}
	checkDates(errors, in.From, in.To)

	return newResult(errors)
}

type EducationInput struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldOfStudy"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

func ValidateEducation(in EducationInput) Result {
	errors := map[string]string{}

	if isEmpty(in.School) {
		errors["school"] = "School field is required."
	}
	if isEmpty(in.Degree) {
		errors["degree"] = "Degree field is required."
	}
	if isEmpty(in.FieldOfStudy) {
		errors["fieldOfStudy"] = "Field of study field required."
	}
	checkDates(errors, in.From, in.To)

	return newResult(errors)
}

func checkDates(errors map[string]string, from, to string) {
	if isEmpty(from) {
		errors["from"] = "From date field required."
	} else if _, err := ParseDate(from); err != nil {
		errors["from"] = "From date is not a valid date."
	}
	if !isEmpty(to) {
		if _, err := ParseDate(to); err != nil {
			errors["to"] = "To date is not a valid date."
		}
	}
}
