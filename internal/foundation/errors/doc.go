// Package errors provides the classified error primitives used across pagebuilder.
//
// Every failure that can stop a build is classified so the CLI can map it to
// an exit code and the preview server can map it to an HTTP status:
//   - CategoryNotFound: a template resource is missing (ResourceNotFound)
//   - CategoryTemplate: the Handlebars engine rejected a resource (TemplateSyntaxError)
//   - CategoryFileSystem: a read or write failed (IOError)
//   - CategoryConfig / CategoryValidation: bad configuration or arguments
//
// Example usage:
//
//	err := errors.NotFoundError("template resource not found").
//		WithContext("path", layoutPath).
//		WithCause(readErr).
//		Build()
package errors
