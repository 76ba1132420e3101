// Package io reads and writes subject catalogs as JSON or YAML.
//
// # Format
//
// A catalog is a list of subject objects. The keys follow the faculty's
// published data:
//
//	[
//	  {
//	    "codigo": "CDIVV",
//	    "nombre": "Cálculo Diferencial e Integral en Varias Variables",
//	    "creditos": 13,
//	    "semestre": 2,
//	    "dictation_semester": "both",
//	    "exam_only": false,
//	    "prerequisites": [
//	      {"tipo": "SIMPLE", "codigo": "CDIV", "requiere_curso": true},
//	      {"tipo": "OR", "opciones": [
//	        {"tipo": "SIMPLE", "codigo": "GAL1", "requiere_exoneracion": true},
//	        {"tipo": "AND", "condiciones": [
//	          {"codigo": "GAL1", "requiere_curso": true},
//	          {"codigo": "MD1", "requiere_curso": true}
//	        ]}
//	      ]}
//	    ]
//	  }
//	]
//
// The list may also be wrapped in an object under "materias" or "subjects".
//
// # Requirements
//
// The "tipo" tag selects the variant: SIMPLE, AND or OR. Any other tag, or a
// missing one at the top of a requirement tree, decodes to
// [curriculum.Unknown] so the engine can report it and treat it as never
// satisfied.
//
// AND conditions are simple conditions. A nested AND is flattened into its
// parent; a nested OR cannot be expressed there and is decoded as a simple
// condition from its own fields, with a warning.
//
// # Defaults
//
// Entries without "codigo" or "nombre" are dropped. Missing numeric fields
// default to 0 credits and semester 1. A missing dictation semester stays
// unspecified so filters can derive it from the semester parity. Every
// dropped or adjusted entry produces one warning in [Document.Warnings].
//
// Values are decoded weakly: "6" and 6 are both accepted as credits.
package io
