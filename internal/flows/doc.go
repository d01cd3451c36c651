// Package flows defines the four credential flows served by envportal: login,
// signup, forgot-password and reset-password.
//
// Each flow is a flow.Definition: its fields, the subset that gates submission,
// and a resolver. Account checks go through a Verifier so the comparison logic
// can be replaced without touching the gating rules.
package flows
