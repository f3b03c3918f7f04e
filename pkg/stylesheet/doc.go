// Package stylesheet implements the small cascading style language attached
// to sectors.
//
// A stylesheet is a list of rules. Each rule names one or more selectors and
// a block of declarations:
//
//	border.Im, border.ImDv { color: #ff0000; style: solid; }
//	route { width: 1.5; }
//	/* comments are whitespace */
//
// A selector is an element name with an optional code. Resolving an
// (element, code) pair ranks the matching rules by specificity: a selector
// naming both element and code scores 2, one naming only the element scores
// 1. For each property the highest-scoring declaration wins and ties go to
// the later rule, as in CSS.
//
// Sheets may chain to a parent. Resolution is strictly per sheet: if a sheet
// has any rule matching the pair its result is used as is, and only when it
// has none is the parent consulted. Results are memoized per pair for the
// lifetime of the sheet.
package stylesheet
