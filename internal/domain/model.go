package domain

import "time"

type Challenge struct {
	ID          string
	Name        string
	Description string
	LeaderID    string
	IsPrivate   bool
	CreatedAt   time.Time
	Members     []Member
}

// IsMember reports whether the user is on the loaded roster.
func (c *Challenge) IsMember(userID string) bool {
	for _, m := range c.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

type Member struct {
	ChallengeID string
	UserID      string
	JoinedAt    time.Time
}

type User struct {
	ID   string
	Name string
}

type JoinRequest struct {
	ID          string
	ChallengeID string
	UserID      string
	CreatedAt   time.Time
}

const (
	EntryStatusPending  = "PENDING"
	EntryStatusApproved = "APPROVED"
	EntryStatusRejected = "REJECTED"
)

// CommitApproval is a single day's completion report by one member. The
// Entries slice is populated only when loaded by id, not in listings.
type CommitApproval struct {
	ID          string
	ChallengeID string
	AuthorID    string
	TargetDate  string
	Content     string
	CreatedAt   time.Time
	Entries     []ApprovalEntry
}

type ApprovalEntry struct {
	ID               string
	CommitApprovalID string
	ChallengeID      string
	UserID           string
	Status           string
	ResolvedAt       *time.Time
}
