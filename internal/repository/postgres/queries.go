package postgres

const (
	querySaveChallenge = `insert into challenge_service.challenges
    		(challenge_id, name, description, leader_id, is_private, created_at)
    		values ($1, $2, $3, $4, $5, $6)`

	queryGetChallenge = `select challenge_id, name, description, leader_id, is_private, created_at
    		from challenge_service.challenges where challenge_id = $1`

	queryUpdateChallenge = `update challenge_service.challenges
    		set name = $2, description = $3, leader_id = $4 where challenge_id = $1`

	queryDeleteChallenge = `delete from challenge_service.challenges where challenge_id = $1`

	querySearchChallenges = `select challenge_id, name, description, leader_id, is_private, created_at
    		from challenge_service.challenges
    		where ($1 = '' or name ilike '%' || $1 || '%')
    		  and ($2 = '' or description ilike '%' || $2 || '%')
    		  and ($3 = '' or leader_id = $3)
    		order by created_at desc limit $4 offset $5`

	queryCountChallenges = `select count(*) from challenge_service.challenges
    		where ($1 = '' or name ilike '%' || $1 || '%')
    		  and ($2 = '' or description ilike '%' || $2 || '%')
    		  and ($3 = '' or leader_id = $3)`

	queryGetUser = `select user_id, username from challenge_service.users where user_id = $1`

	querySaveMember = `insert into challenge_service.memberships
    		(challenge_id, user_id, joined_at) values ($1, $2, $3)`

	queryGetMembers = `select challenge_id, user_id, joined_at
    		from challenge_service.memberships where challenge_id = $1 order by joined_at`

	queryDeleteMember = `delete from challenge_service.memberships
    		where challenge_id = $1 and user_id = $2`

	querySaveJoinRequest = `insert into challenge_service.join_requests
    		(join_request_id, challenge_id, user_id, created_at) values ($1, $2, $3, $4)`

	queryGetJoinRequest = `select join_request_id, challenge_id, user_id, created_at
    		from challenge_service.join_requests where join_request_id = $1`

	queryListJoinRequests = `select join_request_id, challenge_id, user_id, created_at
    		from challenge_service.join_requests where challenge_id = $1
    		order by created_at limit $2 offset $3`

	queryCountJoinRequests = `select count(*) from challenge_service.join_requests
    		where challenge_id = $1`

	queryDeleteJoinRequest = `delete from challenge_service.join_requests
    		where join_request_id = $1 returning challenge_id, user_id`

	queryDeleteStaleJoinRequests = `delete from challenge_service.join_requests
    		where created_at < $1`

	queryMemberExists = `select exists (select 1 from challenge_service.memberships
    		where challenge_id = $1 and user_id = $2)`

	querySaveCommitApproval = `insert into challenge_service.commit_approvals
    		(commit_approval_id, challenge_id, author_id, target_date, content, created_at)
    		values ($1, $2, $3, $4, $5, $6)`

	queryGetCommitApproval = `select commit_approval_id, challenge_id, author_id, target_date, content, created_at
    		from challenge_service.commit_approvals where commit_approval_id = $1`

	queryListCommitApprovals = `select commit_approval_id, challenge_id, author_id, target_date, content, created_at
    		from challenge_service.commit_approvals where challenge_id = $1
    		order by created_at desc limit $2 offset $3`

	queryCountCommitApprovals = `select count(*) from challenge_service.commit_approvals
    		where challenge_id = $1`

	queryDeleteCommitApproval = `delete from challenge_service.commit_approvals
    		where commit_approval_id = $1`

	querySaveApprovalEntry = `insert into challenge_service.approval_entries
    		(approval_entry_id, commit_approval_id, challenge_id, user_id, status)
    		values ($1, $2, $3, $4, $5)`

	queryGetApprovalEntries = `select approval_entry_id, commit_approval_id, challenge_id, user_id, status, resolved_at
    		from challenge_service.approval_entries where commit_approval_id = $1
    		order by user_id`

	queryGetApprovalEntry = `select approval_entry_id, commit_approval_id, challenge_id, user_id, status, resolved_at
    		from challenge_service.approval_entries where approval_entry_id = $1`

	queryResolveApprovalEntry = `update challenge_service.approval_entries
    		set status = $2, resolved_at = $3
    		where approval_entry_id = $1 and status = 'PENDING'
    		returning approval_entry_id, commit_approval_id, challenge_id, user_id, status, resolved_at`
)
