// Package ragcrawl turns a website into a retrieval-ready text corpus.
// It crawls all pages under a base URL, stores raw captures, extracts
// main content with boilerplate removed, and splits the result into
// sentence-aligned chunks sized for retrieval-augmented generation.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, sqlite/).
package ragcrawl
