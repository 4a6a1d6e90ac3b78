package enum

type SystemFolder string

const (
	FolderInbox   SystemFolder = "Inbox"
	FolderStarred SystemFolder = "Starred"
	FolderSent    SystemFolder = "Sent"
	FolderDrafts  SystemFolder = "Drafts"
	FolderSpam    SystemFolder = "Spam"
	FolderTrash   SystemFolder = "Trash"
)

func (f SystemFolder) String() string {
	return string(f)
}

// SystemFolders returns every reserved folder name, in display order.
func SystemFolders() []SystemFolder {
	return []SystemFolder{
		FolderInbox,
		FolderStarred,
		FolderSent,
		FolderDrafts,
		FolderSpam,
		FolderTrash,
	}
}
