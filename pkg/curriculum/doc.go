// Package curriculum defines the subject catalog of an engineering program and
// the prerequisite requirement trees that gate each subject.
//
// # Subjects
//
// A [Subject] is one course, identified by a unique, stable code. Besides the
// display name it carries its credit weight, the nominal semester in which the
// program suggests taking it, the semester(s) in which it is dictated and
// whether it can be cleared by exam alone.
//
// # Requirements
//
// Every subject lists zero or more [Requirement] trees. The list is an implicit
// conjunction: each entry must hold for the subject to be available. A
// requirement is exactly one of:
//
//   - [Simple]: one condition on one subject (course passed and/or exonerated)
//   - [AllOf]: a conjunction of simple conditions
//   - [AnyOf]: a disjunction of options, each a Simple or an AllOf
//   - [Unknown]: a requirement whose kind tag could not be recognized when
//     decoding; it is preserved so evaluators can report it and never satisfy it
//
// Requirement is a closed interface: only the types in this package implement
// it, so a type switch over the four variants is exhaustive.
//
// # Catalog
//
// [NewCatalog] indexes subjects by code and [Validate] reports every
// requirement that references a code missing from the catalog. Validation
// never fails the load; callers decide whether the reported
// [ReferenceError] values are fatal.
package curriculum
