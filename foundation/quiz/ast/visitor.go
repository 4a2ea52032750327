// File: visitor.go
// Title: Quiz AST Traversal
// Description: Visitor interface and Walk function for traversing a quiz
//              in source order.
// Author: quizc contributors
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial visitor implementation

package ast

// Visitor receives the nodes of a quiz in source order
type Visitor interface {
	VisitQuiz(q *Quiz) error
	VisitQuestion(index int, q *Question) error
}

// BaseVisitor implements Visitor with no-op methods. Embed it to override
// only the methods you need.
type BaseVisitor struct{}

// VisitQuiz does nothing
func (BaseVisitor) VisitQuiz(*Quiz) error { return nil }

// VisitQuestion does nothing
func (BaseVisitor) VisitQuestion(int, *Question) error { return nil }

// Walk visits q and then each question in order. It stops at the first error.
func Walk(v Visitor, q *Quiz) error {
	if q == nil {
		return nil
	}
	if err := v.VisitQuiz(q); err != nil {
		return err
	}
	for i := range q.Questions {
		if err := v.VisitQuestion(i, &q.Questions[i]); err != nil {
			return err
		}
	}
	return nil
}

// VisitorFunc adapts a per-question function to Visitor
type VisitorFunc func(index int, q *Question) error

// VisitQuiz does nothing
func (f VisitorFunc) VisitQuiz(*Quiz) error { return nil }

// VisitQuestion calls f
func (f VisitorFunc) VisitQuestion(index int, q *Question) error { return f(index, q) }
