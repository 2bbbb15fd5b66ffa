package handler

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	// From is the location the visitor originally asked for, echoed back by
	// the login view so a successful login can return there.
	From string `json:"from,omitempty"`
}

type registerRequest struct {
	Username  string `json:"username"  validate:"required,min=3,max=50"`
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required,min=8"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"  validate:"required"`
}

type ngoRegisterRequest struct {
	Username         string   `json:"username"         validate:"required,min=3,max=50"`
	Email            string   `json:"email"            validate:"required,email"`
	Password         string   `json:"password"         validate:"required,min=8"`
	OrganizationName string   `json:"organizationName" validate:"required"`
	PhoneNumber      string   `json:"phoneNumber"      validate:"omitempty,min=7,max=20"`
	Bio              string   `json:"bio"`
	AddressLine1     string   `json:"addressLine1"     validate:"required"`
	AddressLine2     string   `json:"addressLine2"`
	City             string   `json:"city"             validate:"required"`
	State            string   `json:"state"`
	PostalCode       string   `json:"postalCode"`
	Country          string   `json:"country"          validate:"required"`
	Latitude         *float64 `json:"latitude"         validate:"omitempty,latitude"`
	Longitude        *float64 `json:"longitude"        validate:"omitempty,longitude"`
}

type loginResponse struct {
	User       any    `json:"user"`
	RedirectTo string `json:"redirectTo"`
}

type messageResponse struct {
	Message string `json:"message"`
}
