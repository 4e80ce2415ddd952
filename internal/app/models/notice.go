package models

type NoticeKind string

const (
	NoticeLoginRequired  NoticeKind = "login_required"
	NoticeNotImplemented NoticeKind = "not_implemented"
)

// Notice is a blocking informational message shown to the user.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
}
