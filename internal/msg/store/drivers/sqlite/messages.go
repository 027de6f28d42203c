package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/courier/internal/msg/domain"
)

type messagesRepo struct {
	db dbtx
}

func (r *messagesRepo) CreateMessage(
	ctx context.Context,
	from, to, body string,
	sentAt time.Time,
) (domain.Message, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO messages (from_username, to_username, body, sent_at)
		VALUES (?, ?, ?, ?)`,
		from, to, body, sentAt,
	)
	if err != nil {
		return domain.Message{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.Message{}, err
	}

	return domain.Message{
		ID:           id,
		FromUsername: from,
		ToUsername:   to,
		Body:         body,
		SentAt:       sentAt,
	}, nil
}

func (r *messagesRepo) GetMessageByID(ctx context.Context, id int64) (domain.MessageDetail, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT m.id, m.body, m.sent_at, m.read_at,
		       f.username, f.first_name, f.last_name, f.phone,
		       t.username, t.first_name, t.last_name, t.phone
		FROM messages AS m
		JOIN users AS f ON m.from_username = f.username
		JOIN users AS t ON m.to_username = t.username
		WHERE m.id = ?`,
		id,
	)

	var d domain.MessageDetail
	var readAt sql.NullTime
	err := row.Scan(
		&d.ID, &d.Body, &d.SentAt, &readAt,
		&d.From.Username, &d.From.FirstName, &d.From.LastName, &d.From.Phone,
		&d.To.Username, &d.To.FirstName, &d.To.LastName, &d.To.Phone,
	)
	if err != nil {
		return domain.MessageDetail{}, mapNotFound(err)
	}
	d.ReadAt = nullTimePtr(readAt)
	return d, nil
}

func (r *messagesRepo) MarkMessageRead(ctx context.Context, id int64, at time.Time) error {
	// The read_at IS NULL guard keeps the timestamp immutable once set.
	res, err := r.db.ExecContext(ctx, `
		UPDATE messages SET read_at = ? WHERE id = ? AND read_at IS NULL`,
		at, id,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	// Zero rows: either the message is already read (fine) or it does not
	// exist at all.
	var exists int
	err = r.db.QueryRowContext(ctx, `SELECT 1 FROM messages WHERE id = ?`, id).Scan(&exists)
	if err != nil {
		return mapNotFound(err)
	}
	return nil
}

func (r *messagesRepo) ListMessagesFrom(ctx context.Context, username string) ([]domain.SentMessage, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT m.id, m.body, m.sent_at, m.read_at,
		       u.username, u.first_name, u.last_name, u.phone
		FROM messages AS m
		JOIN users AS u ON m.to_username = u.username
		WHERE m.from_username = ?
		ORDER BY m.id`,
		username,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.SentMessage
	for rows.Next() {
		var m domain.SentMessage
		var readAt sql.NullTime
		err := rows.Scan(
			&m.ID, &m.Body, &m.SentAt, &readAt,
			&m.To.Username, &m.To.FirstName, &m.To.LastName, &m.To.Phone,
		)
		if err != nil {
			return nil, err
		}
		m.ReadAt = nullTimePtr(readAt)
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *messagesRepo) ListMessagesTo(ctx context.Context, username string) ([]domain.ReceivedMessage, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT m.id, m.body, m.sent_at, m.read_at,
		       u.username, u.first_name, u.last_name, u.phone
		FROM messages AS m
		JOIN users AS u ON m.from_username = u.username
		WHERE m.to_username = ?
		ORDER BY m.id`,
		username,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ReceivedMessage
	for rows.Next() {
		var m domain.ReceivedMessage
		var readAt sql.NullTime
		err := rows.Scan(
			&m.ID, &m.Body, &m.SentAt, &readAt,
			&m.From.Username, &m.From.FirstName, &m.From.LastName, &m.From.Phone,
		)
		if err != nil {
			return nil, err
		}
		m.ReadAt = nullTimePtr(readAt)
		out = append(out, m)
	}
	return out, rows.Err()
}

func nullTimePtr(nt sql.NullTime) *time.Time {
	if nt.Valid {
		val := nt.Time
		return &val
	}
	return nil
}
