// Package integritycheck provides a small, stable facade over jabref's
// internal checking packages for external integrations. It deliberately
// re-exports a narrow API surface so third-party tools can depend on a
// stable import path without exposing internal implementation packages.
//
// Example:
//
//	src, _ := os.ReadFile("references.bib")
//	msgs, err := integritycheck.CheckSource(src, integritycheck.Options{})
//	if err != nil { /* handle */ }
//	_ = integritycheck.MarshalMessages(os.Stdout, msgs)
package integritycheck
