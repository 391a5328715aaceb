package model

// CreateAccountRequest defines the payload for opening a new account.
// It includes validation tags to ensure data integrity at the entry point.
type CreateAccountRequest struct {
	OwnerName      string `validate:"required,min=2,max=100"`
	Email          string `validate:"required,email"`
	DOB            string `validate:"required,datetime=2006-01-02"`
	Location       string `validate:"required,max=100"`
	InitialBalance string `validate:"required,number"`
}
