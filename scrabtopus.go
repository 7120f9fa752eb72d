// Package scrabtopus crawls a single web domain breadth-first from a seed
// page and extracts structured content from each page's main region: titled
// sections made of paragraphs and lists.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, http/).
package scrabtopus
