// File: doc.go
// Title: Quiz Abstract Syntax Tree Package Documentation
// Description: Package documentation for the quiz AST.
// Author: quizc contributors
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial AST implementation

/*
Package ast defines the tree the quiz parser produces.

The tree is plain data: a Quiz holds an optional title and description and
an ordered list of Questions. Nodes carry no source positions, so two
sources that differ only in whitespace or comments yield trees that are
equal under reflect.DeepEqual.

String values hold whatever the parser was asked to store: the raw STRING
lexeme with its quotes, or the decoded text. Unquote and Quote convert
between the two forms.
*/
package ast
