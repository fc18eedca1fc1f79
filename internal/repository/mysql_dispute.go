package repository

import (
	"context"
	"database/sql"
	"errors"

	"marketplace-backend/internal/entity"
)

type MySQLDisputeRepository struct {
	db *sql.DB
}

func NewMySQLDisputeRepository(db *sql.DB) *MySQLDisputeRepository {
	return &MySQLDisputeRepository{db: db}
}

func (r *MySQLDisputeRepository) Create(ctx context.Context, d *entity.Dispute) error {
	query := `INSERT INTO disputes (created_by_id, assigned_to, order_id, dispute_type, title, description, status, resolution, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := conn(ctx, r.db).ExecContext(ctx, query,
		d.CreatedByID, d.AssignedTo, d.OrderID, d.DisputeType, d.Title, d.Description, d.Status, d.Resolution, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	d.ID = int(id)
	return nil
}

func (r *MySQLDisputeRepository) GetByID(ctx context.Context, id int) (*entity.Dispute, error) {
	query := `SELECT id, created_by_id, assigned_to, order_id, dispute_type, title, description, status, resolution, created_at, updated_at
		FROM disputes WHERE id = ?`

	d := &entity.Dispute{}
	err := conn(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&d.ID, &d.CreatedByID, &d.AssignedTo, &d.OrderID, &d.DisputeType, &d.Title, &d.Description, &d.Status, &d.Resolution, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	messages, err := r.listMessages(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	d.Messages = messages
	return d, nil
}

func (r *MySQLDisputeRepository) Update(ctx context.Context, d *entity.Dispute) error {
	query := `UPDATE disputes SET assigned_to = ?, status = ?, resolution = ?, updated_at = ? WHERE id = ?`
	_, err := conn(ctx, r.db).ExecContext(ctx, query, d.AssignedTo, d.Status, d.Resolution, d.UpdatedAt, d.ID)
	return err
}

func (r *MySQLDisputeRepository) List(ctx context.Context, f DisputeFilter) ([]entity.Dispute, error) {
	query := `SELECT id, created_by_id, assigned_to, order_id, dispute_type, title, description, status, resolution, created_at, updated_at
		FROM disputes WHERE 1=1`
	var args []interface{}

	if f.ParticipantID != nil {
		query += ` AND (created_by_id = ? OR assigned_to = ?)`
		args = append(args, *f.ParticipantID, *f.ParticipantID)
	}
	if f.Status != "" {
		query += ` AND status = ?`
		args = append(args, f.Status)
	}
	if f.DisputeType != "" {
		query += ` AND dispute_type = ?`
		args = append(args, f.DisputeType)
	}
	query += ` ORDER BY id DESC`

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var disputes []entity.Dispute
	for rows.Next() {
		var d entity.Dispute
		if err := rows.Scan(&d.ID, &d.CreatedByID, &d.AssignedTo, &d.OrderID, &d.DisputeType, &d.Title, &d.Description, &d.Status, &d.Resolution, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		disputes = append(disputes, d)
	}
	return disputes, rows.Err()
}

func (r *MySQLDisputeRepository) AddMessage(ctx context.Context, m *entity.DisputeMessage) error {
	query := `INSERT INTO dispute_messages (dispute_id, sender_id, message, created_at) VALUES (?, ?, ?, ?)`
	res, err := conn(ctx, r.db).ExecContext(ctx, query, m.DisputeID, m.SenderID, m.Message, m.CreatedAt)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = int(id)
	return nil
}

func (r *MySQLDisputeRepository) listMessages(ctx context.Context, disputeID int) ([]entity.DisputeMessage, error) {
	query := `SELECT id, dispute_id, sender_id, message, created_at
		FROM dispute_messages WHERE dispute_id = ? ORDER BY created_at, id`
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, disputeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []entity.DisputeMessage
	for rows.Next() {
		var m entity.DisputeMessage
		if err := rows.Scan(&m.ID, &m.DisputeID, &m.SenderID, &m.Message, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
