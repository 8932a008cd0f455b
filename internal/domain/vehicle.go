package domain

// Vehicle represents a registered vehicle of the fleet.
type Vehicle struct {
	ID               int64  `json:"id"`
	Name             string `json:"name" validate:"notblank,max=150"`
	Brand            string `json:"brand" validate:"notblank,max=100"`
	RegistrationDate Date   `json:"registrationDate"`
}
