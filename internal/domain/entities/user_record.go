package entities

// UserRecord is one fake user profile with its ordered sequence of sensor
// readings. Records are generated once per run and never mutated afterwards.
type UserRecord struct {
	Firstname  string         `json:"firstname"`
	Lastname   string         `json:"lastname"`
	Age        int            `json:"age"`
	Gender     string         `json:"gender"`
	Username   string         `json:"username"`
	Address    string         `json:"address"`
	Email      string         `json:"email"`
	SensorData []SensorRecord `json:"sensor_data"`
}

func (u *UserRecord) Validate() error {
	if u.Firstname == "" {
		return ValidationError{Field: "firstname", Reason: "must not be empty"}
	}
	if u.Lastname == "" {
		return ValidationError{Field: "lastname", Reason: "must not be empty"}
	}
	if u.Age < 18 || u.Age > 80 {
		return ValidationError{Field: "age", Reason: "must be between 18 and 80"}
	}
	if u.Gender != "Male" && u.Gender != "Female" {
		return ValidationError{Field: "gender", Reason: "must be Male or Female"}
	}
	if u.Username == "" {
		return ValidationError{Field: "username", Reason: "must not be empty"}
	}
	if u.Email == "" {
		return ValidationError{Field: "email", Reason: "must not be empty"}
	}
	return nil
}
