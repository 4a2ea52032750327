// File: doc.go
// Title: Error Package Documentation
// Description: Package documentation for structured errors.
// Author: quizc contributors
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial documentation

/*
Package error provides structured errors for quizc.

An *Error carries a Code from a closed set, a Severity derived from that code,
free-form details and the name of the failing operation. Errors wrap their
cause, so the standard errors.Is and errors.As keep working:

	err := qzerror.Wrap(parseErr, "compile quiz").
		WithCode(qzerror.CodeSyntax).
		WithDetail("line", 3)

	var pe *parser.ParseError
	errors.As(err, &pe) // true

The package is imported under the alias qzerror throughout the repository to
avoid shadowing the builtin error type.
*/
package error
