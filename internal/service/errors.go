package service

import "errors"

var (
	// ErrNotLeader rejects challenge mutation or deletion by anyone but
	// the current leader.
	ErrNotLeader = errors.New("only the challenge leader may modify the challenge")
	// ErrForbidden rejects join-request and commit-approval resolution
	// paths the acting user has no claim on.
	ErrForbidden = errors.New("user is not allowed to perform this action")
	// ErrLeaderNotMember rejects reassigning leadership to a user outside
	// the roster. The leader-is-a-member invariant would not survive it.
	ErrLeaderNotMember = errors.New("new leader must be a member of the challenge")
	// ErrLeaderCannotLeave keeps a challenge from going leaderless. The
	// leader transfers leadership or deletes the challenge instead.
	ErrLeaderCannotLeave = errors.New("leader cannot leave the challenge")
	ErrEmptyName         = errors.New("challenge name is required")
	ErrEmptySearch       = errors.New("at least one search filter is required")
	ErrInvalidTargetDate = errors.New("target date must be formatted as YYYY-MM-DD")
)
