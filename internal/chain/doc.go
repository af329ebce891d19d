// Package chain groups member accesses into chains.
//
// A chain is one base expression followed by an ordered list of links:
// dot joins (`.name`), bracket joins (`[expr]`) and call links (`(args)`).
// Chains found inside call arguments, bracket contents or the base
// expression itself are nested chains; they are attached to the link (or
// base) that contains them and are aligned independently.
//
// Chains that contain syntax the alignment rules do not model (optional
// chaining, tagged templates, recovered syntax errors) are dropped, as are
// chains with no dot or bracket join. Nested chains of a dropped chain are
// lifted to the enclosing level so they are still checked.
package chain
