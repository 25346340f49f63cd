// Package pathfix rewrites obsolete path fragments across markdown documentation.
//
// CommandBuilder wires the fix-paths Cobra command, Service walks a documentation
// root and rewrites affected files, and ReplaceLiteral holds the pure substitution.
package pathfix
