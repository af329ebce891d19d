// Package align checks the column layout of multi-line member-access chains
// and emits whitespace fixes that move misplaced tokens to their canonical
// column.
//
// Rules, applied per chain in link order (columns are 0-based byte columns):
//
//   - A line-leading '.' or '[' aligns with the previous connector of the
//     chain, or with the base column plus the indent unit for the first one.
//   - A line-leading property after a dot aligns with the previous property
//     of the chain, or with the column just past the dot when written inline
//     after the base.
//   - Line-leading bracket content is indented by the bracket indent from
//     the open bracket; a line-leading close bracket aligns with it.
//   - Same-line joins are never reported; they only update the anchors.
//
// Anchors store canonical columns, i.e. where a token ends up once every
// earlier fix of the same chain is applied. Calls are atomic and never move
// anchors. Chains nested in call arguments, bracket contents or the base
// expression have their own anchors and never observe the enclosing chain.
package align
