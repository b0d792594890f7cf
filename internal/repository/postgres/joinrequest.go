package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"challenge-service/internal/domain"
	"challenge-service/internal/repository"
)

func (c *Client) CreateJoinRequest(ctx context.Context, request *domain.JoinRequest) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var isMember bool
	err := c.pool.QueryRow(ctx, queryMemberExists, request.ChallengeID, request.UserID).Scan(&isMember)
	if err != nil {
		c.logger.Error("failed to check membership", zap.Error(err))
		return fmt.Errorf("failed to check membership: %w", err)
	}

	if isMember {
		c.logger.Warn(repository.ErrAlreadyMember.Error(),
			zap.String("challenge_id", request.ChallengeID), zap.String("user_id", request.UserID))
		return repository.ErrAlreadyMember
	}

	_, err = c.pool.Exec(ctx, querySaveJoinRequest,
		request.ID, request.ChallengeID, request.UserID, request.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			c.logger.Warn(repository.ErrJoinRequestExists.Error(),
				zap.String("challenge_id", request.ChallengeID), zap.String("user_id", request.UserID))
			return repository.ErrJoinRequestExists
		}

		c.logger.Error("failed to save join request", zap.Error(err), zap.String("join_request_id", request.ID))
		return fmt.Errorf("failed to save join request: %w", err)
	}

	c.logger.Info("successfully stored join request", zap.String("join_request_id", request.ID))
	return nil
}

func (c *Client) GetJoinRequest(ctx context.Context, id string) (*domain.JoinRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var request domain.JoinRequest
	err := c.pool.QueryRow(ctx, queryGetJoinRequest, id).Scan(
		&request.ID, &request.ChallengeID, &request.UserID, &request.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.logger.Warn(repository.ErrJoinRequestNotFound.Error(), zap.String("join_request_id", id))
			return nil, repository.ErrJoinRequestNotFound
		}

		c.logger.Error("failed to get join request", zap.String("join_request_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get join request: %w", err)
	}

	return &request, nil
}

func (c *Client) ListJoinRequests(ctx context.Context, challengeID string, page, size int) ([]domain.JoinRequest, int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var total int
	err := c.pool.QueryRow(ctx, queryCountJoinRequests, challengeID).Scan(&total)
	if err != nil {
		c.logger.Error("failed to count join requests", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to count join requests: %w", err)
	}

	rows, err := c.pool.Query(ctx, queryListJoinRequests, challengeID, size, page*size)
	if err != nil {
		c.logger.Error("failed to list join requests", zap.String("challenge_id", challengeID), zap.Error(err))
		return nil, 0, fmt.Errorf("failed to list join requests: %w", err)
	}
	defer rows.Close()

	requests := make([]domain.JoinRequest, 0)
	for rows.Next() {
		var request domain.JoinRequest

		err = rows.Scan(&request.ID, &request.ChallengeID, &request.UserID, &request.CreatedAt)
		if err != nil {
			c.logger.Error("failed to scan join request", zap.Error(err))
			return nil, 0, fmt.Errorf("failed to scan join request: %w", err)
		}

		requests = append(requests, request)
	}
	err = rows.Err()
	if err != nil {
		c.logger.Error("rows error", zap.String("challenge_id", challengeID), zap.Error(err))
		return nil, 0, fmt.Errorf("rows error: %w", err)
	}

	return requests, total, nil
}

// ResolveJoinRequest consumes the request and, on approval, creates the
// membership in the same transaction. The delete doubles as the race
// guard: of two concurrent resolutions, the loser sees zero rows and
// gets ErrJoinRequestNotFound.
func (c *Client) ResolveJoinRequest(ctx context.Context, id string, approve bool) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	tx, err := c.pool.Begin(ctx)
	if err != nil {
		c.logger.Error("failed to start transaction", zap.Error(err))
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var challengeID, userID string
	err = tx.QueryRow(ctx, queryDeleteJoinRequest, id).Scan(&challengeID, &userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.logger.Warn(repository.ErrJoinRequestNotFound.Error(), zap.String("join_request_id", id))
			return repository.ErrJoinRequestNotFound
		}

		c.logger.Error("failed to delete join request", zap.String("join_request_id", id), zap.Error(err))
		return fmt.Errorf("failed to delete join request: %w", err)
	}

	if approve {
		_, err = tx.Exec(ctx, querySaveMember, challengeID, userID, timeNow())
		if err != nil {
			if isUniqueViolation(err) {
				c.logger.Warn(repository.ErrAlreadyMember.Error(),
					zap.String("challenge_id", challengeID), zap.String("user_id", userID))
				return repository.ErrAlreadyMember
			}

			c.logger.Error("failed to save member", zap.String("user_id", userID), zap.Error(err))
			return fmt.Errorf("failed to save member: %w", err)
		}
	}

	err = tx.Commit(ctx)
	if err != nil {
		c.logger.Error("failed to commit transaction", zap.Error(err))
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	c.logger.Info("successfully resolved join request",
		zap.String("join_request_id", id), zap.Bool("approved", approve))
	return nil
}

func (c *Client) DeleteStaleJoinRequests(ctx context.Context, olderThan time.Time) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	tag, err := c.pool.Exec(ctx, queryDeleteStaleJoinRequests, olderThan)
	if err != nil {
		c.logger.Error("failed to delete stale join requests", zap.Error(err))
		return 0, fmt.Errorf("failed to delete stale join requests: %w", err)
	}

	return int(tag.RowsAffected()), nil
}
