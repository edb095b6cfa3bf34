package intent

import (
	"regexp"
	"strings"

	"github.com/doeshing/byte-agent-go/internal/domain"
)

var (
	moveRe         = regexp.MustCompile(`^move\s+(.+?)\s+to\s+(.+)`)
	copyRe         = regexp.MustCompile(`^copy\s+(.+?)\s+to\s+(.+)`)
	appendRe       = regexp.MustCompile(`^append\s+"(.+?)"\s+to\s+(.+)`)
	replaceRe      = regexp.MustCompile(`^replace\s+"(.+?)"\s+with\s+"(.+?)"\s+in\s+(.+)`)
	createFolderRe = regexp.MustCompile(`^(?:create|make) folder\s+(.+)`)
	createFileRe   = regexp.MustCompile(`^create file\s+(.+)`)
	zipRe          = regexp.MustCompile(`^zip\s+(.+?)\s+as\s+(.+)`)
	deleteFolderRe = regexp.MustCompile(`^delete (?:the )?(?:folder|floder)\s+(.+)`)
	deleteFileRe   = regexp.MustCompile(`^delete (?:the )?file\s+(.+)`)

	summarizeArchiveRe = regexp.MustCompile(`^summarize(?: the content of)? ([^ ]+) from ([^ ]+) and save to ([^ ]+)`)
	summarizeSaveRe    = regexp.MustCompile(`^summarize(?: the content of)? ([^ ]+?) and save to ([^ ]+)`)
	summarizeOfRe      = regexp.MustCompile(`\bof\s+(.+)$`)
	textFileRe         = regexp.MustCompile(`[\w\-.]+\.(?:txt|md|log|text)\b`)
)

// findFiller are words dropped from a find query.
var findFiller = map[string]bool{
	"find":  true,
	"all":   true,
	"files": true,
	"file":  true,
}

const findPunctuation = `.,;:!?"'`

func parseFind(line string) domain.Intent {
	rest := strings.TrimPrefix(line, "find")
	rest = strings.ReplaceAll(rest, "on my desktop", " ")

	var kept []string
	for _, token := range strings.Fields(rest) {
		token = strings.Trim(token, findPunctuation)
		if token == "" || findFiller[token] {
			continue
		}
		kept = append(kept, token)
	}
	if len(kept) == 0 {
		return domain.UnknownIntent{Message: MsgFindWhat}
	}
	return domain.FindIntent{Query: strings.ToLower(strings.Join(kept, " "))}
}

func parseMove(line string) domain.Intent {
	src, dst, ok := sourceAndDestination(moveRe, line)
	if !ok {
		return domain.UnknownIntent{Message: MsgMoveUsage}
	}
	return domain.MoveIntent{Source: src, Destination: dst}
}

func parseCopy(line string) domain.Intent {
	src, dst, ok := sourceAndDestination(copyRe, line)
	if !ok {
		return domain.UnknownIntent{Message: MsgCopyUsage}
	}
	return domain.CopyIntent{Source: src, Destination: dst}
}

func sourceAndDestination(re *regexp.Regexp, line string) (string, string, bool) {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	src, dst := strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	if src == "" || dst == "" {
		return "", "", false
	}
	return src, dst, true
}

func parseAppend(line string) domain.Intent {
	m := appendRe.FindStringSubmatch(line)
	if m == nil {
		return domain.UnknownIntent{Message: MsgAppendUsage}
	}
	file := strings.TrimSpace(m[2])
	if file == "" {
		return domain.UnknownIntent{Message: MsgAppendUsage}
	}
	return domain.AppendIntent{Text: m[1], File: file}
}

func parseReplace(line string) domain.Intent {
	m := replaceRe.FindStringSubmatch(line)
	if m == nil {
		return domain.UnknownIntent{Message: MsgReplaceUsage}
	}
	file := strings.TrimSpace(m[3])
	if file == "" {
		return domain.UnknownIntent{Message: MsgReplaceUsage}
	}
	return domain.ReplaceIntent{Old: m[1], New: m[2], File: file}
}

func parseCreateFolder(line string) domain.Intent {
	m := createFolderRe.FindStringSubmatch(line)
	if m == nil || strings.TrimSpace(m[1]) == "" {
		return domain.UnknownIntent{Message: MsgCreateFolderUsage}
	}
	return domain.CreateFolderIntent{Name: strings.TrimSpace(m[1])}
}

func parseCreateFile(line string) domain.Intent {
	m := createFileRe.FindStringSubmatch(line)
	if m == nil || strings.TrimSpace(m[1]) == "" {
		return domain.UnknownIntent{Message: MsgCreateFileUsage}
	}
	return domain.CreateFileIntent{Name: strings.TrimSpace(m[1])}
}

func parseZip(line string) domain.Intent {
	m := zipRe.FindStringSubmatch(line)
	if m == nil {
		return domain.UnknownIntent{Message: MsgZipUsage}
	}
	var files []string
	for _, name := range strings.Split(m[1], ",") {
		if name = strings.TrimSpace(name); name != "" {
			files = append(files, name)
		}
	}
	archive := strings.TrimSpace(m[2])
	if len(files) == 0 || archive == "" {
		return domain.UnknownIntent{Message: MsgZipUsage}
	}
	return domain.ZipIntent{Files: files, Archive: archive}
}

// parseSummarize tries the archive form, then the save-to form (with its
// filename scan fallback), then the print form.
func parseSummarize(line string) domain.Intent {
	if m := summarizeArchiveRe.FindStringSubmatch(line); m != nil {
		return domain.SummarizeIntent{Source: m[1], Archive: m[2], Destination: m[3]}
	}

	if strings.Contains(line, "and save to") {
		if m := summarizeSaveRe.FindStringSubmatch(line); m != nil {
			return domain.SummarizeIntent{Source: m[1], Destination: m[2]}
		}
		if names := textFileRe.FindAllString(line, -1); len(names) >= 2 {
			return domain.SummarizeIntent{Source: names[0], Destination: names[1]}
		}
		return domain.UnknownIntent{Message: msgSummarizeParseFail + line}
	}

	if m := summarizeOfRe.FindStringSubmatch(line); m != nil {
		if source := strings.TrimSpace(m[1]); source != "" {
			return domain.SummarizeIntent{Source: source}
		}
	}
	return domain.UnknownIntent{Message: MsgSummarizeUsage}
}

func parseDelete(line string) domain.Intent {
	if m := deleteFolderRe.FindStringSubmatch(line); m != nil {
		if name := stripDesktopPhrase(m[1]); name != "" {
			return domain.DeleteIntent{Name: name, Folder: true}
		}
		return domain.UnknownIntent{Message: MsgDeleteUsage}
	}
	if m := deleteFileRe.FindStringSubmatch(line); m != nil {
		if name := stripDesktopPhrase(m[1]); name != "" {
			return domain.DeleteIntent{Name: name}
		}
	}
	return domain.UnknownIntent{Message: MsgDeleteUsage}
}

func stripDesktopPhrase(name string) string {
	return strings.TrimSpace(strings.ReplaceAll(name, "from my desktop", ""))
}
