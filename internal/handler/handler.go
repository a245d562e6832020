// Package handler is the first layer after the router.
//
// It binds and validates requests using the validation package,
// calls the service layer and writes the response. Errors are
// returned to echo and rendered by the global error handler.
package handler
