package flows

import (
	"fmt"

	"github.com/hnrobert/envportal/internal/flow"
)

const (
	Login          flow.Name = "login"
	Signup         flow.Name = "signup"
	ForgotPassword flow.Name = "forgotpassword"
	ResetPassword  flow.Name = "passwordreset"
)

// Field ids.
const (
	FieldUsername        = "username"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldDisplayName     = "displayName"
	FieldEmail           = "email"
)

// Outcome messages.
const (
	MsgLoginOK         = "Login Successful"
	MsgLoginFailed     = "Incorrect username or password"
	MsgSignupOKFormat  = "Signup Successful... Welcome %s!"
	MsgSignupMismatch  = "The passwords do not match."
	MsgRecoverySent    = "An email will be sent to your email address."
	MsgRecoveryInvalid = "Please enter a valid email address."
	MsgResetOK         = "The password has been changed"
	MsgResetMismatch   = "The passwords do not match"
)

// LoginDefinition returns the sign-in flow.
func LoginDefinition(v Verifier) flow.Definition {
	return flow.Definition{
		Name:        Login,
		Title:       "Login",
		SubmitLabel: "Login",
		Fields: []flow.Field{
			{ID: FieldUsername, Label: "Username", Type: flow.InputEmail, Placeholder: "Username"},
			{ID: FieldPassword, Label: "Password", Type: flow.InputPassword, Placeholder: "Password"},
		},
		Required: []string{FieldUsername, FieldPassword},
		Resolver: flow.ResolverFunc(func(vals flow.Values) flow.Decision {
			if v.CheckLogin(vals.Get(FieldUsername), vals.Get(FieldPassword)) {
				return flow.Success(MsgLoginOK)
			}
			return flow.Failure(MsgLoginFailed)
		}),
		Links: []flow.Link{{Name: "Forgot Password?", To: "/" + string(ForgotPassword)}},
	}
}

// SignupDefinition returns the account creation flow. It only checks that the
// two passwords agree.
func SignupDefinition() flow.Definition {
	return flow.Definition{
		Name:        Signup,
		Title:       "Sign up",
		SubmitLabel: "Signup",
		Fields: []flow.Field{
			{ID: FieldDisplayName, Label: "Display Name", Type: flow.InputText, Placeholder: "Display Name"},
			{ID: FieldEmail, Label: "Email", Type: flow.InputEmail, Placeholder: "Email"},
			{ID: FieldPassword, Label: "Password", Type: flow.InputPassword, Placeholder: "Password"},
			{ID: FieldConfirmPassword, Label: "Confirm Password", Type: flow.InputPassword, Placeholder: "Confirm Password"},
		},
		Required: []string{FieldDisplayName, FieldEmail, FieldPassword, FieldConfirmPassword},
		Resolver: flow.ResolverFunc(resolveSignup),
		Links:    []flow.Link{{Name: "Already have an account?", To: "/" + string(Login)}},
	}
}

func resolveSignup(vals flow.Values) flow.Decision {
	if vals.Get(FieldPassword) == vals.Get(FieldConfirmPassword) {
		// displayName is used as typed, surrounding spaces included.
		return flow.Success(fmt.Sprintf(MsgSignupOKFormat, vals.Get(FieldDisplayName)))
	}
	return flow.Failure(MsgSignupMismatch)
}

// ForgotPasswordDefinition returns the password recovery request flow.
func ForgotPasswordDefinition(v Verifier) flow.Definition {
	return flow.Definition{
		Name:        ForgotPassword,
		Title:       "Password Recovery",
		Intro:       "Please enter your email. If your account exists, we will send you a mail with instructions to recover your password",
		SubmitLabel: "Submit",
		Fields: []flow.Field{
			{ID: FieldEmail, Label: "Email", Type: flow.InputEmail, Placeholder: "Email"},
		},
		Required: []string{FieldEmail},
		Resolver: flow.ResolverFunc(func(vals flow.Values) flow.Decision {
			if v.KnownEmail(vals.Get(FieldEmail)) {
				return flow.Success(MsgRecoverySent)
			}
			return flow.Failure(MsgRecoveryInvalid)
		}),
	}
}

// ResetPasswordDefinition returns the flow that sets a new password. Only the
// new password gates submission; a blank confirmation is reported by the
// resolver as a mismatch.
func ResetPasswordDefinition(v Verifier) flow.Definition {
	return flow.Definition{
		Name:        ResetPassword,
		Title:       "Reset Password",
		Intro:       "Enter the new password",
		SubmitLabel: "Submit",
		Fields: []flow.Field{
			{ID: FieldPassword, Label: "New Password", Type: flow.InputPassword, Placeholder: "New Password"},
			{ID: FieldConfirmPassword, Label: "Confirm New Password", Type: flow.InputPassword, Placeholder: "Confirm New Password"},
		},
		Required: []string{FieldPassword},
		Resolver: flow.ResolverFunc(func(vals flow.Values) flow.Decision {
			if v.AcceptReset(vals.Get(FieldPassword), vals.Get(FieldConfirmPassword)) {
				return flow.Success(MsgResetOK)
			}
			return flow.Failure(MsgResetMismatch)
		}),
	}
}
