package approvalRepository

const (
	queryCreateApprovalRecord = `
		INSERT INTO approval_records (
			id,
			request_id,
			call_id,
			decision,
			method,
			transcript,
			notes,
			recipient,
			created_at
		) VALUES (
			:id,
			:request_id,
			:call_id,
			:decision,
			:method,
			:transcript,
			:notes,
			:recipient,
			:created_at
		)
	`

	queryGetApprovalByRequestID = `
		SELECT
			id,
			request_id,
			call_id,
			decision,
			method,
			transcript,
			notes,
			recipient,
			created_at
		FROM approval_records
		WHERE request_id = :request_id
	`

	queryGetRecentApprovals = `
		SELECT
			id,
			request_id,
			call_id,
			decision,
			method,
			transcript,
			notes,
			recipient,
			created_at
		FROM approval_records
		ORDER BY created_at DESC
		LIMIT :limit OFFSET :offset
	`

	queryCountApprovals = `
		SELECT COUNT(*) FROM approval_records
	`
)
