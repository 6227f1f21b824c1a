// Package pkgerror defines the structured error returned by use cases.
//
// An Error carries a message for clients, a Type bucket and a Code that the
// HTTP layer maps to a status. Library packages return plain sentinel errors;
// use cases translate them into Error values at the module boundary.
package pkgerror
