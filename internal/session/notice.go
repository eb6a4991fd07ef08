package session

// NoticeLevel distinguishes short auto-dismissing confirmations from
// dismissible failure notices.
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeError
)

type Notice struct {
	Level   NoticeLevel
	Message string
}

// Notifier receives user-visible notices from the session components. A nil
// Notifier drops them.
type Notifier func(Notice)

func (n Notifier) info(message string) {
	if n != nil {
		n(Notice{Level: NoticeInfo, Message: message})
	}
}

func (n Notifier) error(message string) {
	if n != nil {
		n(Notice{Level: NoticeError, Message: message})
	}
}
