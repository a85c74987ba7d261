// Package domain defines the core value types for the CGPA calculator.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - GradeLabel: One of the six letter grades of the fixed scale
//   - SubjectEntry: A (grade, credits) pair for one subject
//   - TermRecord: The subjects taken in the current term
//   - PriorAcademicState: Cumulative average and credits before this term
//   - Averages: The term and cumulative averages produced by the core
//   - FormBounds: Input limits supplied to the driving adapters
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
