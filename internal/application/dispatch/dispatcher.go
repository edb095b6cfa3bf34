// Package dispatch turns classified intents into collaborator calls and renders
// every outcome, success or failure, as display-ready text.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/doeshing/byte-agent-go/internal/domain"
	"github.com/doeshing/byte-agent-go/internal/ports"
)

const errorPrefix = "[ERROR] "

// Dispatcher executes intents against the workspace collaborators.
type Dispatcher struct {
	FileSystem ports.FileSystem
	Archive    ports.Archive
	Summaries  ports.DocumentSummarizer
	Guard      ports.SecurityService
	Logger     ports.Logger
}

// Dispatch runs intent and returns the text to show the user. It never panics
// and never returns an error: unexpected failures become
// "[ERROR] Exception: <detail>".
func (d *Dispatcher) Dispatch(ctx context.Context, intent domain.Intent) (out string) {
	defer func() {
		if r := recover(); r != nil {
			d.logError("dispatch panic", fmt.Errorf("%v", r), intent)
			out = exception(fmt.Errorf("%v", r))
		}
	}()

	if d.FileSystem == nil || d.Logger == nil {
		return exception(errors.New("dispatch.Dispatcher dependencies not satisfied"))
	}

	switch in := intent.(type) {
	case domain.EmptyIntent:
		return ""
	case domain.ExitIntent:
		return MsgGoodbye
	case domain.UnknownIntent:
		return in.Message
	case domain.FindIntent:
		return d.find(in)
	case domain.MoveIntent:
		return d.move(in)
	case domain.CopyIntent:
		return d.copy(in)
	case domain.AppendIntent:
		return d.appendText(in)
	case domain.ReplaceIntent:
		return d.replace(in)
	case domain.CreateFolderIntent:
		return d.createFolder(in)
	case domain.CreateFileIntent:
		return d.createFile(in)
	case domain.ZipIntent:
		return d.zip(in)
	case domain.DeleteIntent:
		return d.delete(in)
	case domain.SummarizeIntent:
		return d.summarize(ctx, in)
	default:
		return exception(fmt.Errorf("unsupported intent %T", intent))
	}
}

func (d *Dispatcher) find(in domain.FindIntent) string {
	names, err := d.FileSystem.ListTopLevel("")
	if err != nil {
		return errorf("Could not list workspace: %v", err)
	}
	var matches []string
	for _, name := range names {
		if in.Matches(name) {
			matches = append(matches, name)
		}
	}
	if len(matches) == 0 {
		return MsgNoFilesFound
	}
	return fmt.Sprintf("Found %d files:\n%s", len(matches), strings.Join(matches, "\n"))
}

func (d *Dispatcher) move(in domain.MoveIntent) string {
	if denied := d.guard(in.Source, in.Destination); denied != "" {
		return denied
	}
	if !d.FileSystem.Exists(in.Source) {
		return errorf("Source file not found: %s", in.Source)
	}
	if err := d.FileSystem.Move(in.Source, in.Destination); err != nil {
		return exception(err)
	}
	return fmt.Sprintf("Moved %s to %s", in.Source, in.Destination)
}

func (d *Dispatcher) copy(in domain.CopyIntent) string {
	if denied := d.guard(in.Source, in.Destination); denied != "" {
		return denied
	}
	if !d.FileSystem.Exists(in.Source) {
		return errorf("Source file not found: %s", in.Source)
	}
	if err := d.FileSystem.Copy(in.Source, in.Destination); err != nil {
		return exception(err)
	}
	return fmt.Sprintf("Copied %s to %s", in.Source, in.Destination)
}

func (d *Dispatcher) appendText(in domain.AppendIntent) string {
	if denied := d.guard(in.File); denied != "" {
		return denied
	}
	if !d.FileSystem.Exists(in.File) {
		return errorf("File not found: %s", in.File)
	}
	if err := d.FileSystem.AppendLine(in.File, in.Text); err != nil {
		return exception(err)
	}
	return fmt.Sprintf("Appended text to %s", in.File)
}

func (d *Dispatcher) replace(in domain.ReplaceIntent) string {
	if denied := d.guard(in.File); denied != "" {
		return denied
	}
	if !d.FileSystem.Exists(in.File) {
		return errorf("File not found: %s", in.File)
	}
	if err := d.FileSystem.ReplaceAll(in.File, in.Old, in.New); err != nil {
		return exception(err)
	}
	return fmt.Sprintf("Replaced text in %s", in.File)
}

func (d *Dispatcher) createFolder(in domain.CreateFolderIntent) string {
	if denied := d.guard(in.Name); denied != "" {
		return denied
	}
	if d.FileSystem.Exists(in.Name) {
		return errorf("Folder already exists: %s", in.Name)
	}
	if err := d.FileSystem.Mkdir(in.Name); err != nil {
		return exception(err)
	}
	return fmt.Sprintf("Created folder %s", in.Name)
}

func (d *Dispatcher) createFile(in domain.CreateFileIntent) string {
	if denied := d.guard(in.Name); denied != "" {
		return denied
	}
	if d.FileSystem.Exists(in.Name) {
		return errorf("File already exists: %s", in.Name)
	}
	if err := d.FileSystem.WriteText(in.Name, ""); err != nil {
		return exception(err)
	}
	return fmt.Sprintf("Created file %s", in.Name)
}

func (d *Dispatcher) zip(in domain.ZipIntent) string {
	if denied := d.guard(append([]string{in.Archive}, in.Files...)...); denied != "" {
		return denied
	}
	if d.Archive == nil {
		return exception(errors.New("archive support unavailable"))
	}
	entries := domain.EntriesFor(in.Files)
	if dups := domain.DuplicateStoredNames(entries); len(dups) > 0 {
		return errorf("Files would share a name inside %s: %s. Zip files with distinct names.", in.Archive, strings.Join(dups, ", "))
	}
	var missing []string
	for _, name := range in.Files {
		if !d.FileSystem.Exists(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return errorf("These files were not found: %s", strings.Join(missing, ", "))
	}
	if err := d.Archive.CreateZip(in.Archive, entries); err != nil {
		return exception(err)
	}
	return fmt.Sprintf("Created zip archive %s", in.Archive)
}

func (d *Dispatcher) delete(in domain.DeleteIntent) string {
	if denied := d.guard(in.Name); denied != "" {
		return denied
	}
	if in.Folder {
		if !d.FileSystem.IsDir(in.Name) {
			return errorf("Folder '%s' not found in workspace.", in.Name)
		}
		if err := d.FileSystem.RemoveTree(in.Name); err != nil {
			return errorf("Could not delete folder '%s': %v", in.Name, err)
		}
		return fmt.Sprintf("Deleted folder %s", in.Name)
	}

	if !d.FileSystem.Exists(in.Name) || d.FileSystem.IsDir(in.Name) {
		return errorf("File '%s' not found in workspace.", in.Name)
	}
	if err := d.FileSystem.Remove(in.Name); err != nil {
		return errorf("Could not delete file '%s': %v", in.Name, err)
	}
	return fmt.Sprintf("Deleted file '%s'", in.Name)
}

// guard evaluates targets with the security service and returns the refusal
// message for the first denied target, or "" when all are allowed.
func (d *Dispatcher) guard(targets ...string) string {
	if d.Guard == nil {
		return ""
	}
	for _, target := range targets {
		decision, err := d.Guard.Evaluate(target)
		if err != nil {
			return exception(err)
		}
		if !decision.Allowed {
			d.Logger.Warn("guard refused target", map[string]interface{}{
				"target": target,
				"rule":   decision.Rule,
			})
			return errorf("%s: %s", decision.Reason, target)
		}
	}
	return ""
}

func (d *Dispatcher) logError(msg string, err error, intent domain.Intent) {
	if d.Logger == nil {
		return
	}
	kind := domain.IntentUnknown
	if intent != nil {
		kind = intent.Kind()
	}
	d.Logger.Error(msg, err, map[string]interface{}{"intent": kind})
}

func errorf(format string, args ...interface{}) string {
	return errorPrefix + fmt.Sprintf(format, args...)
}

func exception(err error) string {
	return errorf("Exception: %v", err)
}

// IsError reports whether a dispatch result is an error message.
func IsError(out string) bool {
	return strings.HasPrefix(out, errorPrefix)
}
