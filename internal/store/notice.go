package store

// Level classifies a notification.
type Level int

const (
	LevelSuccess Level = iota + 1
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "Success"
	case LevelError:
		return "Error"
	default:
		return "Notice"
	}
}

// Notification is a user-facing outcome of a store operation.
// Err carries the underlying cause for error notifications; it is meant for
// logs, not for display.
type Notification struct {
	Level   Level
	Message string
	Err     error
}

// Notices is the ordered list of notifications an operation produced.
type Notices []Notification

// Err returns the cause of the first error notification, or nil.
func (n Notices) Err() error {
	for _, note := range n {
		if note.Level == LevelError {
			return note.Err
		}
	}
	return nil
}

// Failed reports whether any notification is an error.
func (n Notices) Failed() bool {
	for _, note := range n {
		if note.Level == LevelError {
			return true
		}
	}
	return false
}

// User-facing messages.
const (
	MsgLoadFailed   = "Failed to load tasks from server"
	MsgSaveFailed   = "Failed to save task"
	MsgStatusFailed = "Failed to update task status"
	MsgDeleteFailed = "Failed to delete task"

	MsgTaskAdded   = "Task added successfully"
	MsgTaskUpdated = "Task updated successfully"
	MsgTaskDeleted = "Task deleted successfully"
)

func success(msg string) Notification {
	return Notification{Level: LevelSuccess, Message: msg}
}

func failure(msg string, err error) Notification {
	return Notification{Level: LevelError, Message: msg, Err: err}
}
