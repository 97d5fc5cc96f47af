// Package handler is the HTTP layer between the router and the services.
//
// Handlers bind and validate request input through the validation package,
// call the service layer, and translate outcomes into responses or
// errs.HTTPError values for the global error handler.
package handler
