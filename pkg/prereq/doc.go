// Package prereq decides which curriculum subjects a student can take and
// explains what stands between the student and the rest.
//
// # Evaluation
//
// An [Evaluator] decides whether a [curriculum.Requirement] holds for a
// [progress.View]. For a Simple condition on code C:
//
//   - requiring exoneration (with or without the course): C must be exonerated
//   - otherwise: C must be approved or exonerated
//   - no code at all: always satisfied (descriptive placeholder)
//   - C missing from the catalog: never satisfied
//
// AllOf needs every condition, AnyOf needs one option. A subject is available
// when every entry of its requirement list holds; subjects without
// requirements are always available.
//
// # Transitive Closure
//
// [BuildClosure] computes, for every subject with requirements, the set of all
// subjects that could gate it directly or indirectly, regardless of AND/OR
// position. Expansion is depth first with the current path tracked
// explicitly; an edge back into the path is dropped for that expansion and
// reported as a [CycleError]. A subject is never its own ancestor.
//
// # Engine
//
// [Engine] owns one loaded catalog, its closure and a [progress.State], and
// answers the queries a curriculum explorer needs: availability, missing
// prerequisites, human-readable explanations, recommended paths and what a
// subject would unlock. [Engine.Load] rebuilds everything before swapping it
// in, so no query ever sees a half-built closure.
//
// Engines are not safe for concurrent use.
package prereq
