// Package flow implements the form state and submission gating shared by every
// credential flow.
//
// A Controller owns one flow instance: the current text of each declared field,
// the derived "submit disabled" flag, and the last outcome message. Field writes
// re-evaluate readiness immediately. Submission signals (explicit activation or
// an Enter key event) are dropped while the flow is not ready, otherwise the
// flow's Resolver decides the outcome synchronously.
//
// A Controller is a single actor and is not safe for concurrent use.
package flow
