package preview

// Protocol of the QuickLook preview service for Windows: one line per
// connection, "<message>|<path>", sent to a per-user named pipe.
const (
	quickLookPipePrefix = `\\.\pipe\QuickLook.App.Pipe.`
	quickLookToggle     = "QuickLook.App.PipeMessages.Toggle"
	quickLookSwitch     = "QuickLook.App.PipeMessages.Switch"
)

func quickLookPipeName(userSID string) string {
	return quickLookPipePrefix + userSID
}

// quickLookMessage opens the viewer for the first file and retargets the open
// viewer afterwards, since a second Toggle would close it.
func quickLookMessage(first bool, path string) string {
	verb := quickLookSwitch
	if first {
		verb = quickLookToggle
	}
	return verb + "|" + path
}

// shellExecuteParams is the parameter string passed to ShellExecute.
func shellExecuteParams(fullscreen bool) string {
	if fullscreen {
		return "/f"
	}
	return ""
}
