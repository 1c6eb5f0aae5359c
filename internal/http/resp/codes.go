// Package resp holds the application codes carried in JSON error bodies.
package resp

const (
	CodeOK            = 0
	CodeBadRequest    = 40000
	CodeValidation    = 40001
	CodeNotFound      = 40400
	CodeInternalError = 50000
)
