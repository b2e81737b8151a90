package core

// CommandKind describes what the user wants to do.
type CommandKind int

const (
	// CommandSendText sends Text in the current mode.
	CommandSendText CommandKind = iota
	// CommandSwitchRoom makes Room the visible surface.
	CommandSwitchRoom
	// CommandOpenPrivate enters private mode with Target and opens the
	// derived pair room.
	CommandOpenPrivate
	// CommandOpenGroup enters group mode for Room.
	CommandOpenGroup
	// CommandOpenGlobal returns to global mode.
	CommandOpenGlobal
	// CommandToggleAnonymous flips the local anonymous flag and re-renders
	// the active room.
	CommandToggleAnonymous
	// CommandCreateGroup asks the server to create group Room.
	CommandCreateGroup
	// CommandJoinGroup joins group Room.
	CommandJoinGroup
	// CommandLeaveGroup leaves group Room (or the current one when empty).
	CommandLeaveGroup
	// CommandDeleteGroup asks the server to delete group Room.
	CommandDeleteGroup
	// CommandDeleteMessage asks the server to delete message MessageID.
	CommandDeleteMessage
)

// Command represents one user-initiated action fed to the session.
type Command struct {
	Kind      CommandKind
	Text      string
	Room      string
	Target    string
	MessageID string
}
