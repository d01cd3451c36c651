// Package auth signs and parses the tokens that bind an API client to the flow
// instance it mounted. A token names an instance; it is not an end-user
// credential and grants nothing beyond driving that one form.
package auth
