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

const targetDateLayout = "2006-01-02"

func (c *Client) CreateCommitApproval(ctx context.Context, approval *domain.CommitApproval) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	tx, err := c.pool.Begin(ctx)
	if err != nil {
		c.logger.Error("failed to start transaction", zap.Error(err))
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, querySaveCommitApproval,
		approval.ID, approval.ChallengeID, approval.AuthorID,
		approval.TargetDate, approval.Content, approval.CreatedAt)
	if err != nil {
		c.logger.Error("failed to save commit approval", zap.Error(err), zap.String("commit_approval_id", approval.ID))
		return fmt.Errorf("failed to save commit approval: %w", err)
	}

	for _, entry := range approval.Entries {
		_, err = tx.Exec(ctx, querySaveApprovalEntry,
			entry.ID, entry.CommitApprovalID, entry.ChallengeID, entry.UserID, entry.Status)
		if err != nil {
			c.logger.Error("failed to save approval entry", zap.Error(err), zap.String("user_id", entry.UserID))
			return fmt.Errorf("failed to save approval entry: %s: %w", entry.UserID, err)
		}
	}

	err = tx.Commit(ctx)
	if err != nil {
		c.logger.Error("failed to commit transaction", zap.Error(err))
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	c.logger.Info("successfully stored commit approval",
		zap.String("commit_approval_id", approval.ID), zap.Int("entries", len(approval.Entries)))
	return nil
}

func (c *Client) GetCommitApproval(ctx context.Context, id string) (*domain.CommitApproval, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	approval, err := c.scanCommitApproval(c.pool.QueryRow(ctx, queryGetCommitApproval, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.logger.Warn(repository.ErrCommitApprovalNotFound.Error(), zap.String("commit_approval_id", id))
			return nil, repository.ErrCommitApprovalNotFound
		}

		c.logger.Error("failed to get commit approval", zap.String("commit_approval_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get commit approval: %w", err)
	}

	rows, err := c.pool.Query(ctx, queryGetApprovalEntries, id)
	if err != nil {
		c.logger.Error("failed to get approval entries", zap.String("commit_approval_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get approval entries: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.ApprovalEntry, 0)
	for rows.Next() {
		var entry domain.ApprovalEntry

		err = rows.Scan(&entry.ID, &entry.CommitApprovalID, &entry.ChallengeID,
			&entry.UserID, &entry.Status, &entry.ResolvedAt)
		if err != nil {
			c.logger.Error("failed to scan approval entry", zap.Error(err))
			return nil, fmt.Errorf("failed to scan approval entry: %w", err)
		}

		entries = append(entries, entry)
	}
	err = rows.Err()
	if err != nil {
		c.logger.Error("rows error", zap.String("commit_approval_id", id), zap.Error(err))
		return nil, fmt.Errorf("rows error: %w", err)
	}

	approval.Entries = entries
	return approval, nil
}

func (c *Client) ListCommitApprovals(ctx context.Context, challengeID string, page, size int) ([]domain.CommitApproval, int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var total int
	err := c.pool.QueryRow(ctx, queryCountCommitApprovals, challengeID).Scan(&total)
	if err != nil {
		c.logger.Error("failed to count commit approvals", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to count commit approvals: %w", err)
	}

	rows, err := c.pool.Query(ctx, queryListCommitApprovals, challengeID, size, page*size)
	if err != nil {
		c.logger.Error("failed to list commit approvals", zap.String("challenge_id", challengeID), zap.Error(err))
		return nil, 0, fmt.Errorf("failed to list commit approvals: %w", err)
	}
	defer rows.Close()

	approvals := make([]domain.CommitApproval, 0)
	for rows.Next() {
		approval, err := c.scanCommitApproval(rows)
		if err != nil {
			c.logger.Error("failed to scan commit approval", zap.Error(err))
			return nil, 0, fmt.Errorf("failed to scan commit approval: %w", err)
		}

		approvals = append(approvals, *approval)
	}
	err = rows.Err()
	if err != nil {
		c.logger.Error("rows error", zap.String("challenge_id", challengeID), zap.Error(err))
		return nil, 0, fmt.Errorf("rows error: %w", err)
	}

	return approvals, total, nil
}

// DeleteCommitApproval cascades to the approval's entries via the schema.
func (c *Client) DeleteCommitApproval(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	tag, err := c.pool.Exec(ctx, queryDeleteCommitApproval, id)
	if err != nil {
		c.logger.Error("failed to delete commit approval", zap.String("commit_approval_id", id), zap.Error(err))
		return fmt.Errorf("failed to delete commit approval: %w", err)
	}

	if tag.RowsAffected() == 0 {
		c.logger.Warn(repository.ErrCommitApprovalNotFound.Error(), zap.String("commit_approval_id", id))
		return repository.ErrCommitApprovalNotFound
	}

	c.logger.Info("successfully deleted commit approval", zap.String("commit_approval_id", id))
	return nil
}

func (c *Client) GetApprovalEntry(ctx context.Context, id string) (*domain.ApprovalEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var entry domain.ApprovalEntry
	err := c.pool.QueryRow(ctx, queryGetApprovalEntry, id).Scan(
		&entry.ID, &entry.CommitApprovalID, &entry.ChallengeID,
		&entry.UserID, &entry.Status, &entry.ResolvedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.logger.Warn(repository.ErrApprovalEntryNotFound.Error(), zap.String("approval_entry_id", id))
			return nil, repository.ErrApprovalEntryNotFound
		}

		c.logger.Error("failed to get approval entry", zap.String("approval_entry_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get approval entry: %w", err)
	}

	return &entry, nil
}

// ResolveApprovalEntry only touches pending rows, so a second resolution
// of the same entry affects nothing and is reported as ErrEntryResolved.
func (c *Client) ResolveApprovalEntry(ctx context.Context, id, status string) (*domain.ApprovalEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var entry domain.ApprovalEntry
	err := c.pool.QueryRow(ctx, queryResolveApprovalEntry, id, status, timeNow()).Scan(
		&entry.ID, &entry.CommitApprovalID, &entry.ChallengeID,
		&entry.UserID, &entry.Status, &entry.ResolvedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			_, getErr := c.GetApprovalEntry(ctx, id)
			if getErr != nil {
				return nil, getErr
			}

			c.logger.Warn(repository.ErrEntryResolved.Error(), zap.String("approval_entry_id", id))
			return nil, repository.ErrEntryResolved
		}

		c.logger.Error("failed to resolve approval entry", zap.String("approval_entry_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to resolve approval entry: %w", err)
	}

	c.logger.Info("successfully resolved approval entry",
		zap.String("approval_entry_id", id), zap.String("status", status))
	return &entry, nil
}

func (c *Client) scanCommitApproval(row pgx.Row) (*domain.CommitApproval, error) {
	var approval domain.CommitApproval
	var targetDate time.Time

	err := row.Scan(&approval.ID, &approval.ChallengeID, &approval.AuthorID,
		&targetDate, &approval.Content, &approval.CreatedAt)
	if err != nil {
		return nil, err
	}

	approval.TargetDate = targetDate.Format(targetDateLayout)
	return &approval, nil
}
