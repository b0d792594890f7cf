package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"challenge-service/internal/domain"
	"challenge-service/internal/repository"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Challenge owns the challenge lifecycle and the join/leave state
// machine. All methods are synchronous and keep no state outside the
// repository.
type Challenge struct {
	repo   repository.Repository
	logger *zap.Logger
}

func NewChallenge(repo repository.Repository, logger *zap.Logger) *Challenge {
	return &Challenge{
		repo:   repo,
		logger: logger,
	}
}

type CreateChallengeInput struct {
	Name        string
	Description string
	IsPrivate   bool
}

// UpdateChallengeInput carries replacement values. Empty fields keep the
// current value.
type UpdateChallengeInput struct {
	Name        string
	Description string
	LeaderID    string
}

func (s *Challenge) Create(ctx context.Context, input CreateChallengeInput, actorID string) (*domain.Challenge, error) {
	if input.Name == "" {
		return nil, ErrEmptyName
	}

	now := time.Now().UTC()
	challenge := &domain.Challenge{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Description: input.Description,
		LeaderID:    actorID,
		IsPrivate:   input.IsPrivate,
		CreatedAt:   now,
		Members: []domain.Member{
			{UserID: actorID, JoinedAt: now},
		},
	}

	err := s.repo.CreateChallenge(ctx, challenge)
	if err != nil {
		return nil, err
	}

	s.logger.Info("challenge created",
		zap.String("challenge_id", challenge.ID), zap.String("leader_id", actorID))
	return challenge, nil
}

func (s *Challenge) Get(ctx context.Context, id string) (*domain.Challenge, error) {
	return s.repo.GetChallenge(ctx, id)
}

func (s *Challenge) Update(ctx context.Context, id string, input UpdateChallengeInput, actorID string) (*domain.Challenge, error) {
	challenge, err := s.repo.GetChallenge(ctx, id)
	if err != nil {
		return nil, err
	}

	if challenge.LeaderID != actorID {
		s.logger.Warn("update rejected: actor is not the leader",
			zap.String("challenge_id", id), zap.String("user_id", actorID))
		return nil, ErrNotLeader
	}

	if input.Name != "" {
		challenge.Name = input.Name
	}
	if input.Description != "" {
		challenge.Description = input.Description
	}

	if input.LeaderID != "" && input.LeaderID != challenge.LeaderID {
		_, err = s.repo.GetUser(ctx, input.LeaderID)
		if err != nil {
			return nil, err
		}

		if !challenge.IsMember(input.LeaderID) {
			s.logger.Warn("update rejected: new leader is not a member",
				zap.String("challenge_id", id), zap.String("user_id", input.LeaderID))
			return nil, ErrLeaderNotMember
		}

		challenge.LeaderID = input.LeaderID
	}

	err = s.repo.UpdateChallenge(ctx, challenge)
	if err != nil {
		return nil, err
	}

	s.logger.Info("challenge updated", zap.String("challenge_id", id))
	return challenge, nil
}

func (s *Challenge) Delete(ctx context.Context, id string, actorID string) error {
	challenge, err := s.repo.GetChallenge(ctx, id)
	if err != nil {
		return err
	}

	if challenge.LeaderID != actorID {
		s.logger.Warn("delete rejected: actor is not the leader",
			zap.String("challenge_id", id), zap.String("user_id", actorID))
		return ErrNotLeader
	}

	err = s.repo.DeleteChallenge(ctx, id)
	if err != nil {
		return err
	}

	s.logger.Info("challenge deleted", zap.String("challenge_id", id))
	return nil
}

func (s *Challenge) Search(ctx context.Context, filter repository.ChallengeFilter, page, size int) ([]domain.Challenge, int, error) {
	if filter.Name == "" && filter.Description == "" && filter.LeaderID == "" {
		return nil, 0, ErrEmptySearch
	}

	page, size = normalizePage(page, size)
	return s.repo.SearchChallenges(ctx, filter, page, size)
}

// RequestJoin is the entry point of the membership state machine: a
// public challenge joins immediately, a private one records a pending
// join request for the leader to resolve.
func (s *Challenge) RequestJoin(ctx context.Context, challengeID string, actorID string) (*domain.Challenge, error) {
	challenge, err := s.repo.GetChallenge(ctx, challengeID)
	if err != nil {
		return nil, err
	}

	if challenge.IsMember(actorID) {
		return nil, repository.ErrAlreadyMember
	}

	if challenge.IsPrivate {
		request := &domain.JoinRequest{
			ID:          uuid.NewString(),
			ChallengeID: challengeID,
			UserID:      actorID,
			CreatedAt:   time.Now().UTC(),
		}

		err = s.repo.CreateJoinRequest(ctx, request)
		if err != nil {
			return nil, err
		}

		s.logger.Info("join request created",
			zap.String("challenge_id", challengeID), zap.String("user_id", actorID))
		return challenge, nil
	}

	err = s.repo.AddMember(ctx, challengeID, actorID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user joined challenge",
		zap.String("challenge_id", challengeID), zap.String("user_id", actorID))
	return s.repo.GetChallenge(ctx, challengeID)
}

func (s *Challenge) ApproveJoinRequest(ctx context.Context, requestID string, actorID string) (*domain.Challenge, error) {
	request, err := s.repo.GetJoinRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	challenge, err := s.repo.GetChallenge(ctx, request.ChallengeID)
	if err != nil {
		return nil, err
	}

	if challenge.LeaderID != actorID {
		s.logger.Warn("approve rejected: actor is not the leader",
			zap.String("join_request_id", requestID), zap.String("user_id", actorID))
		return nil, ErrForbidden
	}

	err = s.repo.ResolveJoinRequest(ctx, requestID, true)
	if err != nil {
		return nil, err
	}

	s.logger.Info("join request approved",
		zap.String("join_request_id", requestID), zap.String("challenge_id", challenge.ID))
	return s.repo.GetChallenge(ctx, request.ChallengeID)
}

func (s *Challenge) RejectJoinRequest(ctx context.Context, requestID string, actorID string) error {
	request, err := s.repo.GetJoinRequest(ctx, requestID)
	if err != nil {
		return err
	}

	challenge, err := s.repo.GetChallenge(ctx, request.ChallengeID)
	if err != nil {
		return err
	}

	if challenge.LeaderID != actorID {
		s.logger.Warn("reject rejected: actor is not the leader",
			zap.String("join_request_id", requestID), zap.String("user_id", actorID))
		return ErrForbidden
	}

	err = s.repo.ResolveJoinRequest(ctx, requestID, false)
	if err != nil {
		return err
	}

	s.logger.Info("join request rejected", zap.String("join_request_id", requestID))
	return nil
}

func (s *Challenge) Leave(ctx context.Context, challengeID string, actorID string) error {
	challenge, err := s.repo.GetChallenge(ctx, challengeID)
	if err != nil {
		return err
	}

	if challenge.LeaderID == actorID {
		s.logger.Warn("leave rejected: actor is the leader",
			zap.String("challenge_id", challengeID), zap.String("user_id", actorID))
		return ErrLeaderCannotLeave
	}

	err = s.repo.RemoveMember(ctx, challengeID, actorID)
	if err != nil {
		return err
	}

	s.logger.Info("user left challenge",
		zap.String("challenge_id", challengeID), zap.String("user_id", actorID))
	return nil
}

func (s *Challenge) ListJoinRequests(ctx context.Context, challengeID string, actorID string, page, size int) ([]domain.JoinRequest, int, error) {
	challenge, err := s.repo.GetChallenge(ctx, challengeID)
	if err != nil {
		return nil, 0, err
	}

	if challenge.LeaderID != actorID {
		return nil, 0, ErrForbidden
	}

	page, size = normalizePage(page, size)
	return s.repo.ListJoinRequests(ctx, challengeID, page, size)
}

func normalizePage(page, size int) (int, int) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}
