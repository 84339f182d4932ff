package domain

// NoticeKind selects how a notice is styled.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is a one-shot message shown on the next rendered page.
type Notice struct {
	Kind    NoticeKind
	Message string
}

// Empty reports whether there is nothing to show.
func (n Notice) Empty() bool {
	return n.Message == ""
}
