package api

import (
	"time"

	"challenge-service/internal/domain"
)

type Challenge struct {
	ChallengeID string    `json:"challenge_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	LeaderID    string    `json:"leader_id"`
	IsPrivate   bool      `json:"is_private"`
	CreatedAt   time.Time `json:"created_at"`
	Members     []Member  `json:"members"`
}

type Member struct {
	UserID   string    `json:"user_id"`
	JoinedAt time.Time `json:"joined_at"`
}

type JoinRequest struct {
	JoinRequestID string    `json:"join_request_id"`
	ChallengeID   string    `json:"challenge_id"`
	UserID        string    `json:"user_id"`
	CreatedAt     time.Time `json:"created_at"`
}

type CommitApproval struct {
	CommitApprovalID string          `json:"commit_approval_id"`
	ChallengeID      string          `json:"challenge_id"`
	AuthorID         string          `json:"author_id"`
	TargetDate       string          `json:"target_date"`
	Content          string          `json:"content"`
	CreatedAt        time.Time       `json:"created_at"`
	Entries          []ApprovalEntry `json:"entries,omitempty"`
}

type ApprovalEntry struct {
	ApprovalEntryID  string     `json:"approval_entry_id"`
	CommitApprovalID string     `json:"commit_approval_id"`
	ChallengeID      string     `json:"challenge_id"`
	UserID           string     `json:"user_id"`
	Status           string     `json:"status"`
	ResolvedAt       *time.Time `json:"resolved_at,omitempty"`
}

type Page struct {
	Page  int `json:"page"`
	Size  int `json:"size"`
	Total int `json:"total"`
}

func NewChallenge(challenge *domain.Challenge) Challenge {
	members := make([]Member, len(challenge.Members))
	for i, m := range challenge.Members {
		members[i] = Member{
			UserID:   m.UserID,
			JoinedAt: m.JoinedAt,
		}
	}

	return Challenge{
		ChallengeID: challenge.ID,
		Name:        challenge.Name,
		Description: challenge.Description,
		LeaderID:    challenge.LeaderID,
		IsPrivate:   challenge.IsPrivate,
		CreatedAt:   challenge.CreatedAt,
		Members:     members,
	}
}

func NewJoinRequest(request *domain.JoinRequest) JoinRequest {
	return JoinRequest{
		JoinRequestID: request.ID,
		ChallengeID:   request.ChallengeID,
		UserID:        request.UserID,
		CreatedAt:     request.CreatedAt,
	}
}

func NewCommitApproval(approval *domain.CommitApproval) CommitApproval {
	entries := make([]ApprovalEntry, len(approval.Entries))
	for i, e := range approval.Entries {
		entries[i] = NewApprovalEntry(&e)
	}

	return CommitApproval{
		CommitApprovalID: approval.ID,
		ChallengeID:      approval.ChallengeID,
		AuthorID:         approval.AuthorID,
		TargetDate:       approval.TargetDate,
		Content:          approval.Content,
		CreatedAt:        approval.CreatedAt,
		Entries:          entries,
	}
}

func NewApprovalEntry(entry *domain.ApprovalEntry) ApprovalEntry {
	return ApprovalEntry{
		ApprovalEntryID:  entry.ID,
		CommitApprovalID: entry.CommitApprovalID,
		ChallengeID:      entry.ChallengeID,
		UserID:           entry.UserID,
		Status:           entry.Status,
		ResolvedAt:       entry.ResolvedAt,
	}
}
