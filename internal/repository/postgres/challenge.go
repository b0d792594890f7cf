package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"challenge-service/internal/domain"
	"challenge-service/internal/repository"
)

func (c *Client) CreateChallenge(ctx context.Context, challenge *domain.Challenge) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	tx, err := c.pool.Begin(ctx)
	if err != nil {
		c.logger.Error("failed to start transaction", zap.Error(err))
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, querySaveChallenge,
		challenge.ID, challenge.Name, challenge.Description,
		challenge.LeaderID, challenge.IsPrivate, challenge.CreatedAt)
	if err != nil {
		c.logger.Error("failed to save challenge", zap.Error(err), zap.String("challenge_id", challenge.ID))
		return fmt.Errorf("failed to save challenge: %s: %w", challenge.ID, err)
	}

	for _, member := range challenge.Members {
		_, err = tx.Exec(ctx, querySaveMember, challenge.ID, member.UserID, member.JoinedAt)
		if err != nil {
			c.logger.Error("failed to save member", zap.Error(err), zap.String("user_id", member.UserID))
			return fmt.Errorf("failed to save member: %s: %w", member.UserID, err)
		}
	}

	err = tx.Commit(ctx)
	if err != nil {
		c.logger.Error("failed to commit transaction", zap.Error(err))
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	c.logger.Info("successfully stored challenge", zap.String("challenge_id", challenge.ID))
	return nil
}

func (c *Client) GetChallenge(ctx context.Context, id string) (*domain.Challenge, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var challenge domain.Challenge
	err := c.pool.QueryRow(ctx, queryGetChallenge, id).Scan(
		&challenge.ID, &challenge.Name, &challenge.Description,
		&challenge.LeaderID, &challenge.IsPrivate, &challenge.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.logger.Warn(repository.ErrChallengeNotFound.Error(), zap.String("challenge_id", id))
			return nil, repository.ErrChallengeNotFound
		}

		c.logger.Error("failed to get challenge", zap.String("challenge_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get challenge: %w", err)
	}

	challenge.Members, err = c.getMembers(ctx, id)
	if err != nil {
		return nil, err
	}

	return &challenge, nil
}

func (c *Client) UpdateChallenge(ctx context.Context, challenge *domain.Challenge) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	tag, err := c.pool.Exec(ctx, queryUpdateChallenge,
		challenge.ID, challenge.Name, challenge.Description, challenge.LeaderID)
	if err != nil {
		c.logger.Error("failed to update challenge", zap.String("challenge_id", challenge.ID), zap.Error(err))
		return fmt.Errorf("failed to update challenge: %w", err)
	}

	if tag.RowsAffected() == 0 {
		c.logger.Warn(repository.ErrChallengeNotFound.Error(), zap.String("challenge_id", challenge.ID))
		return repository.ErrChallengeNotFound
	}

	c.logger.Info("successfully updated challenge", zap.String("challenge_id", challenge.ID))
	return nil
}

// DeleteChallenge relies on the schema's ON DELETE CASCADE to drop
// memberships, join requests, commit approvals and their entries.
func (c *Client) DeleteChallenge(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	tag, err := c.pool.Exec(ctx, queryDeleteChallenge, id)
	if err != nil {
		c.logger.Error("failed to delete challenge", zap.String("challenge_id", id), zap.Error(err))
		return fmt.Errorf("failed to delete challenge: %w", err)
	}

	if tag.RowsAffected() == 0 {
		c.logger.Warn(repository.ErrChallengeNotFound.Error(), zap.String("challenge_id", id))
		return repository.ErrChallengeNotFound
	}

	c.logger.Info("successfully deleted challenge", zap.String("challenge_id", id))
	return nil
}

func (c *Client) SearchChallenges(ctx context.Context, filter repository.ChallengeFilter, page, size int) ([]domain.Challenge, int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var total int
	err := c.pool.QueryRow(ctx, queryCountChallenges,
		filter.Name, filter.Description, filter.LeaderID).Scan(&total)
	if err != nil {
		c.logger.Error("failed to count challenges", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to count challenges: %w", err)
	}

	rows, err := c.pool.Query(ctx, querySearchChallenges,
		filter.Name, filter.Description, filter.LeaderID, size, page*size)
	if err != nil {
		c.logger.Error("failed to search challenges", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to search challenges: %w", err)
	}
	defer rows.Close()

	challenges := make([]domain.Challenge, 0)
	for rows.Next() {
		var challenge domain.Challenge

		err = rows.Scan(&challenge.ID, &challenge.Name, &challenge.Description,
			&challenge.LeaderID, &challenge.IsPrivate, &challenge.CreatedAt)
		if err != nil {
			c.logger.Error("failed to scan challenge", zap.Error(err))
			return nil, 0, fmt.Errorf("failed to scan challenge: %w", err)
		}

		challenges = append(challenges, challenge)
	}
	err = rows.Err()
	if err != nil {
		c.logger.Error("rows error", zap.Error(err))
		return nil, 0, fmt.Errorf("rows error: %w", err)
	}

	return challenges, total, nil
}

func (c *Client) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var user domain.User
	err := c.pool.QueryRow(ctx, queryGetUser, userID).Scan(&user.ID, &user.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.logger.Warn(repository.ErrUserNotFound.Error(), zap.String("user_id", userID))
			return nil, repository.ErrUserNotFound
		}

		c.logger.Error("failed to get user", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

func (c *Client) AddMember(ctx context.Context, challengeID, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	_, err := c.pool.Exec(ctx, querySaveMember, challengeID, userID, timeNow())
	if err != nil {
		if isUniqueViolation(err) {
			c.logger.Warn(repository.ErrAlreadyMember.Error(),
				zap.String("challenge_id", challengeID), zap.String("user_id", userID))
			return repository.ErrAlreadyMember
		}

		c.logger.Error("failed to save member", zap.String("user_id", userID), zap.Error(err))
		return fmt.Errorf("failed to save member: %w", err)
	}

	c.logger.Info("successfully added member",
		zap.String("challenge_id", challengeID), zap.String("user_id", userID))
	return nil
}

// RemoveMember is a delete-by-key and stays idempotent: removing an
// absent membership is not an error.
func (c *Client) RemoveMember(ctx context.Context, challengeID, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	_, err := c.pool.Exec(ctx, queryDeleteMember, challengeID, userID)
	if err != nil {
		c.logger.Error("failed to remove member", zap.String("user_id", userID), zap.Error(err))
		return fmt.Errorf("failed to remove member: %w", err)
	}

	c.logger.Info("successfully removed member",
		zap.String("challenge_id", challengeID), zap.String("user_id", userID))
	return nil
}

func (c *Client) getMembers(ctx context.Context, challengeID string) ([]domain.Member, error) {
	rows, err := c.pool.Query(ctx, queryGetMembers, challengeID)
	if err != nil {
		c.logger.Error("failed to get members", zap.String("challenge_id", challengeID), zap.Error(err))
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	members := make([]domain.Member, 0)
	for rows.Next() {
		var member domain.Member

		err = rows.Scan(&member.ChallengeID, &member.UserID, &member.JoinedAt)
		if err != nil {
			c.logger.Error("failed to scan member", zap.String("challenge_id", challengeID), zap.Error(err))
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}

		members = append(members, member)
	}
	err = rows.Err()
	if err != nil {
		c.logger.Error("rows error", zap.String("challenge_id", challengeID), zap.Error(err))
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return members, nil
}
