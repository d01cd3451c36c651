package flows

// Verifier answers the account questions the resolvers need.
type Verifier interface {
	// CheckLogin reports whether username and password identify an account.
	CheckLogin(username, password string) bool
	// KnownEmail reports whether a recovery mail can be sent to email.
	KnownEmail(email string) bool
	// AcceptReset reports whether the new password pair is accepted.
	AcceptReset(password, confirmPassword string) bool
}

// Placeholder credentials. Not real accounts.
const (
	PlaceholderEmail         = "john@smith.com"
	PlaceholderPassword      = "password"
	PlaceholderResetPassword = "admin"
)

// PlaceholderVerifier compares against fixed values until a real account
// backend exists.
type PlaceholderVerifier struct{}

func (PlaceholderVerifier) CheckLogin(username, password string) bool {
	return username == PlaceholderEmail && password == PlaceholderPassword
}

func (PlaceholderVerifier) KnownEmail(email string) bool {
	return email == PlaceholderEmail
}

func (PlaceholderVerifier) AcceptReset(password, confirmPassword string) bool {
	return password == PlaceholderResetPassword && confirmPassword == PlaceholderResetPassword
}
