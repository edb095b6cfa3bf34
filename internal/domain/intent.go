// Package domain defines core entities and value objects for byte-agent.
//
// This file contains the Intent variants produced by the classifier. Each variant
// carries a fully populated payload; a line that only partially matches a verb
// is represented by UnknownIntent instead.
package domain

import (
	"path"
	"strings"
)

// IntentKind names the operation a command line resolves to.
type IntentKind string

const (
	IntentFind         IntentKind = "find"
	IntentMove         IntentKind = "move"
	IntentCopy         IntentKind = "copy"
	IntentAppend       IntentKind = "append"
	IntentReplace      IntentKind = "replace"
	IntentCreateFolder IntentKind = "create_folder"
	IntentCreateFile   IntentKind = "create_file"
	IntentZip          IntentKind = "zip"
	IntentSummarize    IntentKind = "summarize"
	IntentDelete       IntentKind = "delete"
	IntentUnknown      IntentKind = "unknown"
	IntentEmpty        IntentKind = "empty"
	IntentExit         IntentKind = "exit"
)

// Intent is the classified operation of a command line. The set of
// implementations is closed to this package.
type Intent interface {
	Kind() IntentKind
	intent()
}

// ExitIntent ends an interactive session.
type ExitIntent struct{}

// EmptyIntent is a blank line.
type EmptyIntent struct{}

// UnknownIntent carries the message shown when a line cannot be dispatched.
type UnknownIntent struct {
	Message string
}

// FindIntent searches the top level of the workspace.
type FindIntent struct {
	Query string
}

// MoveIntent relocates Source to Destination.
type MoveIntent struct {
	Source      string
	Destination string
}

// CopyIntent duplicates Source to Destination.
type CopyIntent struct {
	Source      string
	Destination string
}

// AppendIntent appends Text as a new line of File.
type AppendIntent struct {
	Text string
	File string
}

// ReplaceIntent replaces every Old with New in File.
type ReplaceIntent struct {
	Old  string
	New  string
	File string
}

// CreateFolderIntent creates a directory.
type CreateFolderIntent struct {
	Name string
}

// CreateFileIntent creates an empty file.
type CreateFileIntent struct {
	Name string
}

// ZipIntent packs Files into Archive.
type ZipIntent struct {
	Files   []string
	Archive string
}

// SummarizeIntent summarizes Source. When Archive is set, Source names an entry
// inside it. When Destination is set the summary is written there, otherwise it
// is printed.
type SummarizeIntent struct {
	Source      string
	Archive     string
	Destination string
}

// DeleteIntent removes a file, or a whole folder when Folder is set.
type DeleteIntent struct {
	Name   string
	Folder bool
}

func (ExitIntent) Kind() IntentKind         { return IntentExit }
func (EmptyIntent) Kind() IntentKind        { return IntentEmpty }
func (UnknownIntent) Kind() IntentKind      { return IntentUnknown }
func (FindIntent) Kind() IntentKind         { return IntentFind }
func (MoveIntent) Kind() IntentKind         { return IntentMove }
func (CopyIntent) Kind() IntentKind         { return IntentCopy }
func (AppendIntent) Kind() IntentKind       { return IntentAppend }
func (ReplaceIntent) Kind() IntentKind      { return IntentReplace }
func (CreateFolderIntent) Kind() IntentKind { return IntentCreateFolder }
func (CreateFileIntent) Kind() IntentKind   { return IntentCreateFile }
func (ZipIntent) Kind() IntentKind          { return IntentZip }
func (SummarizeIntent) Kind() IntentKind    { return IntentSummarize }
func (DeleteIntent) Kind() IntentKind       { return IntentDelete }

func (ExitIntent) intent()         {}
func (EmptyIntent) intent()        {}
func (UnknownIntent) intent()      {}
func (FindIntent) intent()         {}
func (MoveIntent) intent()         {}
func (CopyIntent) intent()         {}
func (AppendIntent) intent()       {}
func (ReplaceIntent) intent()      {}
func (CreateFolderIntent) intent() {}
func (CreateFileIntent) intent()   {}
func (ZipIntent) intent()          {}
func (SummarizeIntent) intent()    {}
func (DeleteIntent) intent()       {}

// KnownExtensions are Find queries treated as a file type rather than a name fragment.
var KnownExtensions = []string{
	"pdf", "txt", "doc", "docx", "csv", "xlsx", "ppt",
	"pptx", "jpg", "jpeg", "png", "zip",
}

// IsKnownExtension reports whether query names a known file type.
func IsKnownExtension(query string) bool {
	query = strings.ToLower(query)
	for _, ext := range KnownExtensions {
		if ext == query {
			return true
		}
	}
	return false
}

// Matches reports whether a workspace entry satisfies the query: a
// case-insensitive suffix match for known extensions, a case-insensitive
// substring match otherwise.
func (f FindIntent) Matches(name string) bool {
	query := strings.ToLower(f.Query)
	candidate := strings.ToLower(strings.TrimSpace(name))
	if IsKnownExtension(query) {
		return strings.HasSuffix(candidate, "."+query)
	}
	return strings.Contains(candidate, query)
}

// ToFile reports whether the summary is written to Destination.
func (s SummarizeIntent) ToFile() bool {
	return s.Destination != ""
}

// FromArchive reports whether Source is an entry of Archive.
func (s SummarizeIntent) FromArchive() bool {
	return s.Archive != ""
}

// ArchiveEntry pairs a workspace file with the name it is stored under.
type ArchiveEntry struct {
	Source     string
	StoredName string
}

// EntriesFor stores each file under its base name.
func EntriesFor(files []string) []ArchiveEntry {
	entries := make([]ArchiveEntry, 0, len(files))
	for _, file := range files {
		entries = append(entries, ArchiveEntry{
			Source:     file,
			StoredName: path.Base(strings.ReplaceAll(file, "\\", "/")),
		})
	}
	return entries
}

// DuplicateStoredNames returns the stored names claimed by more than one
// entry, in first-seen order.
func DuplicateStoredNames(entries []ArchiveEntry) []string {
	seen := make(map[string]int, len(entries))
	var dups []string
	for _, e := range entries {
		seen[e.StoredName]++
		if seen[e.StoredName] == 2 {
			dups = append(dups, e.StoredName)
		}
	}
	return dups
}
