package application

// Outcome messages returned in the response envelope.
const (
	MsgLoginSuccess    = "User logged in successfully."
	MsgRegisterSuccess = "User registered successfully."
	MsgUserUpdated     = "User details have been updated successfully."
	MsgUserDeleted     = "User has been deleted successfully."
	MsgPasswordChanged = "Password has been changed successfully."

	// MsgInvalidCredentials covers both unknown-username and wrong-password
	// login failures so responses cannot be used to enumerate accounts.
	MsgInvalidCredentials = "Invalid username or password."

	MsgUserNotFound         = "User not found."
	MsgAccountAlreadyExists = "An account with the provided credentials already exists."
	MsgCannotEditSuperAdmin = "This user is a Super Admin and cannot be edited."
	MsgCannotDelSuperAdmin  = "This user is a Super Admin and cannot be deleted."
)

// SuperAdminUsername names the seeded bootstrap administrator that edit and
// delete operations must refuse to touch.
const SuperAdminUsername = "admin"
