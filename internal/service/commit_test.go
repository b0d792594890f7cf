package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"challenge-service/internal/domain"
	"challenge-service/internal/repository"
)

func newCommitFixture(t *testing.T) (*CommitApproval, *Challenge, *domain.Challenge, *fakeRepo) {
	t.Helper()

	repo := newFakeRepo()
	challenges := NewChallenge(repo, zap.NewNop())
	commits := NewCommitApproval(repo, zap.NewNop())

	challenge := createChallenge(t, challenges, "alice", false)
	for _, userID := range []string{"bob", "carol"} {
		_, err := challenges.RequestJoin(context.Background(), challenge.ID, userID)
		if err != nil {
			t.Fatalf("join %s: %v", userID, err)
		}
	}

	return commits, challenges, challenge, repo
}

func TestCreateCommitApprovalFanOut(t *testing.T) {
	commits, _, challenge, _ := newCommitFixture(t)

	approval, err := commits.Create(context.Background(), CreateCommitApprovalInput{
		ChallengeID: challenge.ID,
		TargetDate:  "2024-01-01",
		Content:     "ran 5k",
	}, "alice")
	if err != nil {
		t.Fatalf("create commit approval: %v", err)
	}

	if len(approval.Entries) != 3 {
		t.Fatalf("expected 3 entries for a 3-member roster, got %d", len(approval.Entries))
	}
	for _, entry := range approval.Entries {
		if entry.Status != domain.EntryStatusPending {
			t.Fatalf("expected pending entry, got %q", entry.Status)
		}
		if entry.CommitApprovalID != approval.ID {
			t.Fatalf("entry references %q, want %q", entry.CommitApprovalID, approval.ID)
		}
	}

	stored, err := commits.Get(context.Background(), approval.ID)
	if err != nil {
		t.Fatalf("get commit approval: %v", err)
	}
	if len(stored.Entries) != 3 {
		t.Fatalf("expected 3 stored entries, got %d", len(stored.Entries))
	}
	if stored.TargetDate != "2024-01-01" {
		t.Fatalf("expected target date kept, got %q", stored.TargetDate)
	}
}

func TestCreateCommitApprovalRosterIsSnapshot(t *testing.T) {
	commits, challenges, challenge, _ := newCommitFixture(t)

	approval, err := commits.Create(context.Background(), CreateCommitApprovalInput{
		ChallengeID: challenge.ID,
		TargetDate:  "2024-01-01",
	}, "alice")
	if err != nil {
		t.Fatalf("create commit approval: %v", err)
	}

	// membership changes after submission must not touch the entries
	_, err = challenges.RequestJoin(context.Background(), challenge.ID, "dave")
	if err != nil {
		t.Fatalf("join: %v", err)
	}

	stored, err := commits.Get(context.Background(), approval.ID)
	if err != nil {
		t.Fatalf("get commit approval: %v", err)
	}
	if len(stored.Entries) != 3 {
		t.Fatalf("expected entry count frozen at 3, got %d", len(stored.Entries))
	}
}

func TestCreateCommitApprovalChallengeNotFound(t *testing.T) {
	commits, _, _, _ := newCommitFixture(t)

	_, err := commits.Create(context.Background(), CreateCommitApprovalInput{
		ChallengeID: "missing",
		TargetDate:  "2024-01-01",
	}, "alice")
	if !errors.Is(err, repository.ErrChallengeNotFound) {
		t.Fatalf("expected ErrChallengeNotFound, got %v", err)
	}
}

func TestCreateCommitApprovalNonMember(t *testing.T) {
	commits, _, challenge, _ := newCommitFixture(t)

	_, err := commits.Create(context.Background(), CreateCommitApprovalInput{
		ChallengeID: challenge.ID,
		TargetDate:  "2024-01-01",
	}, "mallory")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestCreateCommitApprovalInvalidDate(t *testing.T) {
	commits, _, challenge, _ := newCommitFixture(t)

	_, err := commits.Create(context.Background(), CreateCommitApprovalInput{
		ChallengeID: challenge.ID,
		TargetDate:  "01/01/2024",
	}, "alice")
	if !errors.Is(err, ErrInvalidTargetDate) {
		t.Fatalf("expected ErrInvalidTargetDate, got %v", err)
	}
}

func TestDeleteCommitApprovalAuthorOnly(t *testing.T) {
	commits, _, challenge, repo := newCommitFixture(t)

	approval, err := commits.Create(context.Background(), CreateCommitApprovalInput{
		ChallengeID: challenge.ID,
		TargetDate:  "2024-01-01",
	}, "alice")
	if err != nil {
		t.Fatalf("create commit approval: %v", err)
	}

	err = commits.Delete(context.Background(), approval.ID, "carol")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-author, got %v", err)
	}

	err = commits.Delete(context.Background(), approval.ID, "alice")
	if err != nil {
		t.Fatalf("delete commit approval: %v", err)
	}

	_, err = commits.Get(context.Background(), approval.ID)
	if !errors.Is(err, repository.ErrCommitApprovalNotFound) {
		t.Fatalf("expected ErrCommitApprovalNotFound, got %v", err)
	}
	if len(repo.entries) != 0 {
		t.Fatalf("expected entries cascade-deleted, got %d left", len(repo.entries))
	}
}

func TestDeleteCommitApprovalNotFound(t *testing.T) {
	commits, _, _, _ := newCommitFixture(t)

	err := commits.Delete(context.Background(), "missing", "alice")
	if !errors.Is(err, repository.ErrCommitApprovalNotFound) {
		t.Fatalf("expected ErrCommitApprovalNotFound, got %v", err)
	}
}

func entryFor(t *testing.T, approval *domain.CommitApproval, userID string) domain.ApprovalEntry {
	t.Helper()

	for _, entry := range approval.Entries {
		if entry.UserID == userID {
			return entry
		}
	}
	t.Fatalf("no entry for %q", userID)
	return domain.ApprovalEntry{}
}

func TestResolveEntry(t *testing.T) {
	commits, _, challenge, _ := newCommitFixture(t)

	approval, err := commits.Create(context.Background(), CreateCommitApprovalInput{
		ChallengeID: challenge.ID,
		TargetDate:  "2024-01-01",
	}, "alice")
	if err != nil {
		t.Fatalf("create commit approval: %v", err)
	}

	entry := entryFor(t, approval, "bob")

	resolved, err := commits.Resolve(context.Background(), entry.ID, true, "bob")
	if err != nil {
		t.Fatalf("resolve entry: %v", err)
	}
	if resolved.Status != domain.EntryStatusApproved {
		t.Fatalf("expected approved, got %q", resolved.Status)
	}
	if resolved.ResolvedAt == nil {
		t.Fatal("expected resolved_at to be set")
	}

	// a resolved entry cannot be resolved again
	_, err = commits.Resolve(context.Background(), entry.ID, false, "bob")
	if !errors.Is(err, repository.ErrEntryResolved) {
		t.Fatalf("expected ErrEntryResolved, got %v", err)
	}
}

func TestResolveEntryReject(t *testing.T) {
	commits, _, challenge, _ := newCommitFixture(t)

	approval, err := commits.Create(context.Background(), CreateCommitApprovalInput{
		ChallengeID: challenge.ID,
		TargetDate:  "2024-01-01",
	}, "alice")
	if err != nil {
		t.Fatalf("create commit approval: %v", err)
	}

	entry := entryFor(t, approval, "carol")

	resolved, err := commits.Resolve(context.Background(), entry.ID, false, "carol")
	if err != nil {
		t.Fatalf("resolve entry: %v", err)
	}
	if resolved.Status != domain.EntryStatusRejected {
		t.Fatalf("expected rejected, got %q", resolved.Status)
	}
}

func TestResolveEntryWrongUser(t *testing.T) {
	commits, _, challenge, _ := newCommitFixture(t)

	approval, err := commits.Create(context.Background(), CreateCommitApprovalInput{
		ChallengeID: challenge.ID,
		TargetDate:  "2024-01-01",
	}, "alice")
	if err != nil {
		t.Fatalf("create commit approval: %v", err)
	}

	entry := entryFor(t, approval, "bob")

	_, err = commits.Resolve(context.Background(), entry.ID, true, "carol")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestResolveEntryAuthorOwnSlot(t *testing.T) {
	commits, _, challenge, _ := newCommitFixture(t)

	approval, err := commits.Create(context.Background(), CreateCommitApprovalInput{
		ChallengeID: challenge.ID,
		TargetDate:  "2024-01-01",
	}, "alice")
	if err != nil {
		t.Fatalf("create commit approval: %v", err)
	}

	entry := entryFor(t, approval, "alice")

	_, err = commits.Resolve(context.Background(), entry.ID, true, "alice")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for the author's own entry, got %v", err)
	}
}

func TestResolveEntryNotFound(t *testing.T) {
	commits, _, _, _ := newCommitFixture(t)

	_, err := commits.Resolve(context.Background(), "missing", true, "bob")
	if !errors.Is(err, repository.ErrApprovalEntryNotFound) {
		t.Fatalf("expected ErrApprovalEntryNotFound, got %v", err)
	}
}

func TestListForChallengeMemberOnly(t *testing.T) {
	commits, _, challenge, _ := newCommitFixture(t)

	_, err := commits.Create(context.Background(), CreateCommitApprovalInput{
		ChallengeID: challenge.ID,
		TargetDate:  "2024-01-01",
	}, "alice")
	if err != nil {
		t.Fatalf("create commit approval: %v", err)
	}

	approvals, total, err := commits.ListForChallenge(context.Background(), challenge.ID, "bob", 0, 10)
	if err != nil {
		t.Fatalf("list commit approvals: %v", err)
	}
	if total != 1 || len(approvals) != 1 {
		t.Fatalf("expected 1 approval, got total=%d len=%d", total, len(approvals))
	}

	_, _, err = commits.ListForChallenge(context.Background(), challenge.ID, "mallory", 0, 10)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-member, got %v", err)
	}
}
