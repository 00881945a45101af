// Package sbmb converts the yearly overview pages of the Belgian Official
// Journal (Staatsblad / Moniteur belge) into structured legal document
// records and projects them into ELI linked data and CSV exports.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, ntriples/).
package sbmb
