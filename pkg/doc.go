// Package pkg provides the libraries behind the materias CLI, a
// prerequisite engine for the electrical engineering curriculum.
//
// # Overview
//
// A catalog lists subjects and the requirements that gate them. A student's
// progress records, per subject, whether the course was approved or the
// subject exonerated. The engine answers what can be taken now, what is
// missing, and what completing a subject would unlock.
//
//  1. [curriculum] - Subjects, requirement trees and the catalog index
//  2. [io] - Catalog decoding and encoding (JSON and YAML)
//  3. [progress] - Student progress and its file store
//  4. [prereq] - Evaluation, transitive closure, paths and explanations
//  5. [filter] - Subject predicates, sorting and CEL expressions
//  6. [profile] - Degree profiles and emphases (TOML)
//  7. [render/nodelink] - Graphviz diagrams of the prerequisite graph
//  8. [cache] - Rendered diagram cache
//
// # Data Flow
//
//	catalog.json / catalog.yaml
//	         ↓
//	    [io] package (decode, drop malformed entries)
//	         ↓
//	    [prereq] package (index, validate, closure) ← [progress]
//	         ↓
//	    queries, [filter] views, [render/nodelink] diagrams
//
// # Quick Start
//
//	doc, err := io.Import("data/catalog.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	engine, diags := prereq.New(doc.Subjects)
//	for _, d := range diags {
//	    log.Println(d)
//	}
//	engine.SetApprovalState("CDIV", true, false)
//	for _, s := range engine.AvailableSubjects() {
//	    fmt.Println(s.Code, s.Name)
//	}
//
// [curriculum]: https://pkg.go.dev/github.com/manucepeda/materias-electrica/pkg/curriculum
// [io]: https://pkg.go.dev/github.com/manucepeda/materias-electrica/pkg/io
// [progress]: https://pkg.go.dev/github.com/manucepeda/materias-electrica/pkg/progress
// [prereq]: https://pkg.go.dev/github.com/manucepeda/materias-electrica/pkg/prereq
// [filter]: https://pkg.go.dev/github.com/manucepeda/materias-electrica/pkg/filter
// [profile]: https://pkg.go.dev/github.com/manucepeda/materias-electrica/pkg/profile
// [render/nodelink]: https://pkg.go.dev/github.com/manucepeda/materias-electrica/pkg/render/nodelink
// [cache]: https://pkg.go.dev/github.com/manucepeda/materias-electrica/pkg/cache
package pkg
