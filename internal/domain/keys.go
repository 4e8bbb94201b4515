package domain

type CtxKey string

const (
	KeyUserID    CtxKey = "UserID"
	KeyUserEmail CtxKey = "Email"
	KeyIsStaff   CtxKey = "IsStaff"
	KeyRequestID CtxKey = "RequestID"
)

// Actor is the authenticated caller performing an operation.
type Actor struct {
	ID      string
	IsStaff bool
}
