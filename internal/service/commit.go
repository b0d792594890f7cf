package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"challenge-service/internal/domain"
	"challenge-service/internal/repository"
)

const targetDateLayout = "2006-01-02"

// CommitApproval owns the commit submission fan-out and the per-member
// entry resolution workflow.
type CommitApproval struct {
	repo   repository.Repository
	logger *zap.Logger
}

func NewCommitApproval(repo repository.Repository, logger *zap.Logger) *CommitApproval {
	return &CommitApproval{
		repo:   repo,
		logger: logger,
	}
}

type CreateCommitApprovalInput struct {
	ChallengeID string
	TargetDate  string
	Content     string
}

// Create records the commit and fans out one pending entry per member on
// the roster at submission time. Later membership changes do not touch
// the entries.
func (s *CommitApproval) Create(ctx context.Context, input CreateCommitApprovalInput, actorID string) (*domain.CommitApproval, error) {
	_, err := time.Parse(targetDateLayout, input.TargetDate)
	if err != nil {
		return nil, ErrInvalidTargetDate
	}

	challenge, err := s.repo.GetChallenge(ctx, input.ChallengeID)
	if err != nil {
		return nil, err
	}

	if !challenge.IsMember(actorID) {
		s.logger.Warn("commit rejected: author is not a member",
			zap.String("challenge_id", input.ChallengeID), zap.String("user_id", actorID))
		return nil, ErrForbidden
	}

	approval := &domain.CommitApproval{
		ID:          uuid.NewString(),
		ChallengeID: input.ChallengeID,
		AuthorID:    actorID,
		TargetDate:  input.TargetDate,
		Content:     input.Content,
		CreatedAt:   time.Now().UTC(),
	}

	entries := make([]domain.ApprovalEntry, 0, len(challenge.Members))
	for _, member := range challenge.Members {
		entries = append(entries, domain.ApprovalEntry{
			ID:               uuid.NewString(),
			CommitApprovalID: approval.ID,
			ChallengeID:      challenge.ID,
			UserID:           member.UserID,
			Status:           domain.EntryStatusPending,
		})
	}
	approval.Entries = entries

	err = s.repo.CreateCommitApproval(ctx, approval)
	if err != nil {
		return nil, err
	}

	s.logger.Info("commit approval created",
		zap.String("commit_approval_id", approval.ID),
		zap.String("challenge_id", challenge.ID),
		zap.Int("entries", len(entries)))
	return approval, nil
}

func (s *CommitApproval) Get(ctx context.Context, id string) (*domain.CommitApproval, error) {
	return s.repo.GetCommitApproval(ctx, id)
}

func (s *CommitApproval) Delete(ctx context.Context, id string, actorID string) error {
	approval, err := s.repo.GetCommitApproval(ctx, id)
	if err != nil {
		return err
	}

	if approval.AuthorID != actorID {
		s.logger.Warn("delete rejected: actor is not the author",
			zap.String("commit_approval_id", id), zap.String("user_id", actorID))
		return ErrForbidden
	}

	err = s.repo.DeleteCommitApproval(ctx, id)
	if err != nil {
		return err
	}

	s.logger.Info("commit approval deleted", zap.String("commit_approval_id", id))
	return nil
}

// Resolve moves an entry out of pending. Only the member the entry was
// created for may resolve it, and never on their own commit; a second
// resolution of the same entry fails instead of overwriting.
func (s *CommitApproval) Resolve(ctx context.Context, entryID string, approve bool, actorID string) (*domain.ApprovalEntry, error) {
	entry, err := s.repo.GetApprovalEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}

	approval, err := s.repo.GetCommitApproval(ctx, entry.CommitApprovalID)
	if err != nil {
		return nil, err
	}

	if entry.UserID != actorID || approval.AuthorID == actorID {
		s.logger.Warn("resolve rejected",
			zap.String("approval_entry_id", entryID), zap.String("user_id", actorID))
		return nil, ErrForbidden
	}

	status := domain.EntryStatusApproved
	if !approve {
		status = domain.EntryStatusRejected
	}

	resolved, err := s.repo.ResolveApprovalEntry(ctx, entryID, status)
	if err != nil {
		return nil, err
	}

	s.logger.Info("approval entry resolved",
		zap.String("approval_entry_id", entryID), zap.String("status", status))
	return resolved, nil
}

func (s *CommitApproval) ListForChallenge(ctx context.Context, challengeID string, actorID string, page, size int) ([]domain.CommitApproval, int, error) {
	challenge, err := s.repo.GetChallenge(ctx, challengeID)
	if err != nil {
		return nil, 0, err
	}

	if !challenge.IsMember(actorID) {
		return nil, 0, ErrForbidden
	}

	page, size = normalizePage(page, size)
	return s.repo.ListCommitApprovals(ctx, challengeID, page, size)
}
