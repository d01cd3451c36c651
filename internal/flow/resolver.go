package flow

// Decision is the outcome of a submission.
type Decision struct {
	IsError bool   `json:"isError"`
	Message string `json:"message"`
}

// Success returns a non-error decision carrying msg.
func Success(msg string) Decision {
	return Decision{Message: msg}
}

// Failure returns an error decision carrying msg.
func Failure(msg string) Decision {
	return Decision{IsError: true, Message: msg}
}

// Resolver decides the outcome of a submission from the current field values.
// Implementations must be total and must not modify values.
type Resolver interface {
	Resolve(values Values) Decision
}

// ResolverFunc adapts a function to a Resolver.
type ResolverFunc func(values Values) Decision

func (f ResolverFunc) Resolve(values Values) Decision {
	return f(values)
}
