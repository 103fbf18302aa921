package handler

const (
	errInternalServer     = "Internal server error"
	errEmailTaken         = "Email is already registered"
	errInvalidCredentials = "Invalid email or password"
	errCarNotFound        = "Car not found"
	errCarForbidden       = "User doesn't have permission to access other user's data"
	errDuplicateCarTitle  = "Car with the same title already exists"
)
