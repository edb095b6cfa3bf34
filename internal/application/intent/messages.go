package intent

// Usage hints returned inside UnknownIntent.
const (
	MsgNotUnderstood      = "Sorry, I didn't understand that command."
	MsgFindWhat           = "Please specify what to search for."
	MsgMoveUsage          = "Sorry, I didn't understand that move command. Use: move file.txt to folder"
	MsgCopyUsage          = "Sorry, I didn't understand that copy command. Use: copy file.txt to backup.txt"
	MsgAppendUsage        = "Sorry, I didn't understand that append command. Use: append \"text\" to file.txt"
	MsgReplaceUsage       = "Sorry, I didn't understand that replace command. Use: replace \"old\" with \"new\" in file.txt"
	MsgCreateFolderUsage  = "Sorry, I didn't understand that create folder command. Use: create folder myfolder"
	MsgCreateFileUsage    = "Sorry, I didn't understand that create file command. Use: create file myfile.txt"
	MsgZipUsage           = "Sorry, I didn't understand that zip command. Use: zip file1.txt, file2.txt as archive.zip"
	MsgSummarizeUsage     = "Sorry, I didn't understand that summarize command. Use: summarize the content of notes.txt"
	MsgDeleteUsage        = "[ERROR] Please specify a valid file or folder to delete."
	msgSummarizeParseFail = "[ERROR] Could not parse input/output filenames from command: "
)
