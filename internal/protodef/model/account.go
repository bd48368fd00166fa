package model

// InterviewRole the role a verified identity plays in an interview.
type InterviewRole string

const (
	InterviewRoleInterviewer InterviewRole = "interviewer"
	InterviewRoleCandidate   InterviewRole = "candidate"
)

// Valid reports whether the role is one the interview namespace accepts.
func (r InterviewRole) Valid() bool {
	return r == InterviewRoleInterviewer || r == InterviewRoleCandidate
}

// AccountDo durable user account record.
type AccountDo struct {
	ID       string `json:"id" bson:"_id"`
	Nickname string `json:"nickname" bson:"nickname"`
	Phone    string `json:"phone" bson:"phone"`
	Avatar   string `json:"avatar" bson:"avatar"`
}

// Identity a verified caller identity attached to a socket connection
// for its whole lifetime.
type Identity struct {
	UserID   string        `json:"userId"`
	Nickname string        `json:"nickname"`
	Role     InterviewRole `json:"role"`
}
