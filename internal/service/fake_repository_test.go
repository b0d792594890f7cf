package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"challenge-service/internal/domain"
	"challenge-service/internal/repository"
)

// fakeRepo is an in-memory Repository mirroring the sentinel-error
// contract of the postgres client.
type fakeRepo struct {
	mu           sync.Mutex
	challenges   map[string]*domain.Challenge
	users        map[string]*domain.User
	joinRequests map[string]*domain.JoinRequest
	approvals    map[string]*domain.CommitApproval
	entries      map[string]*domain.ApprovalEntry
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		challenges:   make(map[string]*domain.Challenge),
		users:        make(map[string]*domain.User),
		joinRequests: make(map[string]*domain.JoinRequest),
		approvals:    make(map[string]*domain.CommitApproval),
		entries:      make(map[string]*domain.ApprovalEntry),
	}
}

func (f *fakeRepo) addUser(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[id] = &domain.User{ID: id, Name: id}
}

func (f *fakeRepo) CreateChallenge(_ context.Context, challenge *domain.Challenge) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored := *challenge
	stored.Members = append([]domain.Member(nil), challenge.Members...)
	f.challenges[challenge.ID] = &stored
	return nil
}

func (f *fakeRepo) GetChallenge(_ context.Context, id string) (*domain.Challenge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.getChallengeLocked(id)
}

func (f *fakeRepo) getChallengeLocked(id string) (*domain.Challenge, error) {
	stored, ok := f.challenges[id]
	if !ok {
		return nil, repository.ErrChallengeNotFound
	}

	challenge := *stored
	challenge.Members = append([]domain.Member(nil), stored.Members...)
	return &challenge, nil
}

func (f *fakeRepo) UpdateChallenge(_ context.Context, challenge *domain.Challenge) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.challenges[challenge.ID]
	if !ok {
		return repository.ErrChallengeNotFound
	}

	stored.Name = challenge.Name
	stored.Description = challenge.Description
	stored.LeaderID = challenge.LeaderID
	return nil
}

func (f *fakeRepo) DeleteChallenge(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.challenges[id]; !ok {
		return repository.ErrChallengeNotFound
	}

	delete(f.challenges, id)
	for rid, request := range f.joinRequests {
		if request.ChallengeID == id {
			delete(f.joinRequests, rid)
		}
	}
	for aid, approval := range f.approvals {
		if approval.ChallengeID == id {
			delete(f.approvals, aid)
		}
	}
	for eid, entry := range f.entries {
		if entry.ChallengeID == id {
			delete(f.entries, eid)
		}
	}
	return nil
}

func (f *fakeRepo) SearchChallenges(_ context.Context, filter repository.ChallengeFilter, page, size int) ([]domain.Challenge, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	matched := make([]domain.Challenge, 0)
	for _, challenge := range f.challenges {
		if filter.Name != "" && !strings.Contains(strings.ToLower(challenge.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.Description != "" && !strings.Contains(strings.ToLower(challenge.Description), strings.ToLower(filter.Description)) {
			continue
		}
		if filter.LeaderID != "" && challenge.LeaderID != filter.LeaderID {
			continue
		}
		matched = append(matched, *challenge)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := len(matched)
	start := page * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (f *fakeRepo) GetUser(_ context.Context, userID string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[userID]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeRepo) AddMember(_ context.Context, challengeID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.addMemberLocked(challengeID, userID)
}

func (f *fakeRepo) addMemberLocked(challengeID, userID string) error {
	challenge, ok := f.challenges[challengeID]
	if !ok {
		return repository.ErrChallengeNotFound
	}

	for _, member := range challenge.Members {
		if member.UserID == userID {
			return repository.ErrAlreadyMember
		}
	}

	challenge.Members = append(challenge.Members, domain.Member{
		ChallengeID: challengeID,
		UserID:      userID,
		JoinedAt:    time.Now().UTC(),
	})
	return nil
}

func (f *fakeRepo) RemoveMember(_ context.Context, challengeID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	challenge, ok := f.challenges[challengeID]
	if !ok {
		return repository.ErrChallengeNotFound
	}

	members := challenge.Members[:0]
	for _, member := range challenge.Members {
		if member.UserID != userID {
			members = append(members, member)
		}
	}
	challenge.Members = members
	return nil
}

func (f *fakeRepo) CreateJoinRequest(_ context.Context, request *domain.JoinRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	challenge, ok := f.challenges[request.ChallengeID]
	if !ok {
		return repository.ErrChallengeNotFound
	}

	for _, member := range challenge.Members {
		if member.UserID == request.UserID {
			return repository.ErrAlreadyMember
		}
	}

	for _, existing := range f.joinRequests {
		if existing.ChallengeID == request.ChallengeID && existing.UserID == request.UserID {
			return repository.ErrJoinRequestExists
		}
	}

	stored := *request
	f.joinRequests[request.ID] = &stored
	return nil
}

func (f *fakeRepo) GetJoinRequest(_ context.Context, id string) (*domain.JoinRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	request, ok := f.joinRequests[id]
	if !ok {
		return nil, repository.ErrJoinRequestNotFound
	}

	copied := *request
	return &copied, nil
}

func (f *fakeRepo) ListJoinRequests(_ context.Context, challengeID string, page, size int) ([]domain.JoinRequest, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	requests := make([]domain.JoinRequest, 0)
	for _, request := range f.joinRequests {
		if request.ChallengeID == challengeID {
			requests = append(requests, *request)
		}
	}
	sort.Slice(requests, func(i, j int) bool { return requests[i].CreatedAt.Before(requests[j].CreatedAt) })

	total := len(requests)
	start := page * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}
	return requests[start:end], total, nil
}

func (f *fakeRepo) ResolveJoinRequest(_ context.Context, id string, approve bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	request, ok := f.joinRequests[id]
	if !ok {
		return repository.ErrJoinRequestNotFound
	}

	delete(f.joinRequests, id)

	if approve {
		return f.addMemberLocked(request.ChallengeID, request.UserID)
	}
	return nil
}

func (f *fakeRepo) DeleteStaleJoinRequests(_ context.Context, olderThan time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	deleted := 0
	for id, request := range f.joinRequests {
		if request.CreatedAt.Before(olderThan) {
			delete(f.joinRequests, id)
			deleted++
		}
	}
	return deleted, nil
}

func (f *fakeRepo) CreateCommitApproval(_ context.Context, approval *domain.CommitApproval) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored := *approval
	stored.Entries = nil
	f.approvals[approval.ID] = &stored

	for _, entry := range approval.Entries {
		copied := entry
		f.entries[entry.ID] = &copied
	}
	return nil
}

func (f *fakeRepo) GetCommitApproval(_ context.Context, id string) (*domain.CommitApproval, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.approvals[id]
	if !ok {
		return nil, repository.ErrCommitApprovalNotFound
	}

	approval := *stored
	approval.Entries = make([]domain.ApprovalEntry, 0)
	for _, entry := range f.entries {
		if entry.CommitApprovalID == id {
			approval.Entries = append(approval.Entries, *entry)
		}
	}
	sort.Slice(approval.Entries, func(i, j int) bool { return approval.Entries[i].UserID < approval.Entries[j].UserID })
	return &approval, nil
}

func (f *fakeRepo) ListCommitApprovals(_ context.Context, challengeID string, page, size int) ([]domain.CommitApproval, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	approvals := make([]domain.CommitApproval, 0)
	for _, approval := range f.approvals {
		if approval.ChallengeID == challengeID {
			approvals = append(approvals, *approval)
		}
	}
	sort.Slice(approvals, func(i, j int) bool { return approvals[i].CreatedAt.After(approvals[j].CreatedAt) })

	total := len(approvals)
	start := page * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}
	return approvals[start:end], total, nil
}

func (f *fakeRepo) DeleteCommitApproval(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.approvals[id]; !ok {
		return repository.ErrCommitApprovalNotFound
	}

	delete(f.approvals, id)
	for eid, entry := range f.entries {
		if entry.CommitApprovalID == id {
			delete(f.entries, eid)
		}
	}
	return nil
}

func (f *fakeRepo) GetApprovalEntry(_ context.Context, id string) (*domain.ApprovalEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entry, ok := f.entries[id]
	if !ok {
		return nil, repository.ErrApprovalEntryNotFound
	}

	copied := *entry
	return &copied, nil
}

func (f *fakeRepo) ResolveApprovalEntry(_ context.Context, id, status string) (*domain.ApprovalEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entry, ok := f.entries[id]
	if !ok {
		return nil, repository.ErrApprovalEntryNotFound
	}

	if entry.Status != domain.EntryStatusPending {
		return nil, repository.ErrEntryResolved
	}

	now := time.Now().UTC()
	entry.Status = status
	entry.ResolvedAt = &now

	copied := *entry
	return &copied, nil
}

func (f *fakeRepo) Close() {}
