// Package pkgrouter wraps httprouter with the JSON envelope and middleware
// shared by every module.
//
// Handlers return a payload or an error. Payloads are wrapped in
// {"message","data","meta"}; errors are mapped through pkgerror to a status
// code and {"message","error"}. Every route runs behind panic recovery,
// correlation id propagation and access logging.
package pkgrouter
