package approvalRepository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"ProjectAdvisor/internal/api/approval"
	"ProjectAdvisor/internal/entity"
	contextPkg "ProjectAdvisor/pkg/context"
)

type approvalsRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type ApprovalRecordDB struct {
	ID         sql.NullString `db:"id"`
	RequestID  sql.NullString `db:"request_id"`
	CallID     sql.NullString `db:"call_id"`
	Decision   sql.NullString `db:"decision"`
	Method     sql.NullString `db:"method"`
	Transcript sql.NullString `db:"transcript"`
	Notes      sql.NullString `db:"notes"`
	Recipient  sql.NullString `db:"recipient"`
	CreatedAt  time.Time      `db:"created_at"`
}

func (d ApprovalRecordDB) toEntity() entity.ApprovalRecord {
	return entity.ApprovalRecord{
		ID:         d.ID.String,
		RequestID:  d.RequestID.String,
		CallID:     d.CallID.String,
		Decision:   d.Decision.String,
		Method:     d.Method.String,
		Transcript: d.Transcript.String,
		Notes:      d.Notes.String,
		Recipient:  d.Recipient.String,
		CreatedAt:  d.CreatedAt,
	}
}

func (r *approvalsRepository) CreateApprovalRecord(ctx context.Context, record entity.ApprovalRecord) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":         record.ID,
		"request_id": record.RequestID,
		"call_id":    record.CallID,
		"decision":   record.Decision,
		"method":     record.Method,
		"transcript": record.Transcript,
		"notes":      record.Notes,
		"recipient":  record.Recipient,
		"created_at": record.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateApprovalRecord, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateApprovalRecord")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating approval record")
		return err
	}

	return nil
}

func (r *approvalsRepository) GetApprovalByRequestID(ctx context.Context, reqID string) (entity.ApprovalRecord, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var record ApprovalRecordDB

	argsKV := map[string]interface{}{
		"request_id": reqID,
	}

	query, args, err := sqlx.Named(queryGetApprovalByRequestID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for GetApprovalByRequestID")
		return entity.ApprovalRecord{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&record); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.ApprovalRecord{}, approval.ErrCallResultNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when getting approval record")
		return entity.ApprovalRecord{}, err
	}

	return record.toEntity(), nil
}

func (r *approvalsRepository) GetRecentApprovals(ctx context.Context, limit, offset int) ([]entity.ApprovalRecord, int, error) {
	requestID := contextPkg.GetRequestID(ctx)

	var total int
	countQuery := r.q.Rebind(queryCountApprovals)
	if err := r.q.QueryRowxContext(ctx, countQuery).Scan(&total); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when counting approval records")
		return nil, 0, err
	}

	argsKV := map[string]interface{}{
		"limit":  limit,
		"offset": offset,
	}

	query, args, err := sqlx.Named(queryGetRecentApprovals, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for GetRecentApprovals")
		return nil, 0, err
	}
	query = r.q.Rebind(query)

	var rows []ApprovalRecordDB
	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when listing approval records")
		return nil, 0, err
	}

	records := make([]entity.ApprovalRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toEntity())
	}

	return records, total, nil
}
