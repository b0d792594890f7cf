package repository

import (
	"context"
	"errors"
	"time"

	"challenge-service/internal/domain"
)

var (
	ErrChallengeNotFound      = errors.New("challenge not found")
	ErrUserNotFound           = errors.New("user not found")
	ErrAlreadyMember          = errors.New("user is already a member of the challenge")
	ErrJoinRequestNotFound    = errors.New("join request not found")
	ErrJoinRequestExists      = errors.New("join request already exists")
	ErrCommitApprovalNotFound = errors.New("commit approval not found")
	ErrApprovalEntryNotFound  = errors.New("approval entry not found")
	ErrEntryResolved          = errors.New("approval entry already resolved")
)

// ChallengeFilter narrows SearchChallenges. Empty fields are not applied.
type ChallengeFilter struct {
	Name        string
	Description string
	LeaderID    string
}

type Repository interface {
	// CreateChallenge stores the challenge together with its leader's
	// membership in one transaction.
	CreateChallenge(ctx context.Context, challenge *domain.Challenge) error
	GetChallenge(ctx context.Context, id string) (*domain.Challenge, error)
	UpdateChallenge(ctx context.Context, challenge *domain.Challenge) error
	DeleteChallenge(ctx context.Context, id string) error
	SearchChallenges(ctx context.Context, filter ChallengeFilter, page, size int) ([]domain.Challenge, int, error)

	GetUser(ctx context.Context, userID string) (*domain.User, error)

	AddMember(ctx context.Context, challengeID, userID string) error
	RemoveMember(ctx context.Context, challengeID, userID string) error

	CreateJoinRequest(ctx context.Context, request *domain.JoinRequest) error
	GetJoinRequest(ctx context.Context, id string) (*domain.JoinRequest, error)
	ListJoinRequests(ctx context.Context, challengeID string, page, size int) ([]domain.JoinRequest, int, error)
	// ResolveJoinRequest deletes the request and, when approve is set,
	// creates the membership in the same transaction. A request already
	// consumed by a concurrent call yields ErrJoinRequestNotFound.
	ResolveJoinRequest(ctx context.Context, id string, approve bool) error
	DeleteStaleJoinRequests(ctx context.Context, olderThan time.Time) (int, error)

	// CreateCommitApproval stores the approval and all its entries in one
	// transaction.
	CreateCommitApproval(ctx context.Context, approval *domain.CommitApproval) error
	GetCommitApproval(ctx context.Context, id string) (*domain.CommitApproval, error)
	ListCommitApprovals(ctx context.Context, challengeID string, page, size int) ([]domain.CommitApproval, int, error)
	DeleteCommitApproval(ctx context.Context, id string) error

	GetApprovalEntry(ctx context.Context, id string) (*domain.ApprovalEntry, error)
	// ResolveApprovalEntry moves a pending entry to the given status. An
	// entry that exists but is no longer pending yields ErrEntryResolved.
	ResolveApprovalEntry(ctx context.Context, id, status string) (*domain.ApprovalEntry, error)

	Close()
}
