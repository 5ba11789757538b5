package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"shorttrack/internal/lifecycle"
	"shorttrack/internal/services"
	"shorttrack/internal/shorts"
)

const itemQuery = `
SELECT s.id, s.title, s.status,
       sc.id, sc.name, sc.content_type,
       tc.id, tc.name, tc.content_type,
       s.assigned_to, s.assigned_by, s.deadline, s.notes, s.admin_feedback,
       s.file_id, s.file_name, s.file_size, s.file_mime,
       s.created_at, s.updated_at, s.assigned_at, s.completed_at, s.uploaded_at, s.published_at
FROM shorts s
JOIN channels sc ON sc.id = s.source_channel_id
LEFT JOIN channels tc ON tc.id = s.target_channel_id`

// CreateRolled records a newly spotted Short in status rolled. The source
// channel must already exist.
func (s *Store) CreateRolled(ctx context.Context, title, sourceChannelID string, notes string) (*shorts.Item, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, services.Wrap(services.ErrValidation, "store", "create", "title must not be empty", nil)
	}
	if _, err := s.GetChannel(ctx, sourceChannelID); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.execWithRetry(ctx, `
INSERT INTO shorts (id, title, status, source_channel_id, notes, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, title, string(shorts.StatusRolled), sourceChannelID, strings.TrimSpace(notes), now, now)
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}
	return s.GetByID(ctx, id)
}

// GetByID loads one item with its channels resolved. Returns ErrNotFound
// when no item carries the id.
func (s *Store) GetByID(ctx context.Context, id string) (*shorts.Item, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx, itemQuery+` WHERE s.id = ?`, id)
	item, err := scanItem(row)
	if isNoRows(err) {
		return nil, services.Wrap(services.ErrNotFound, "store", "get", fmt.Sprintf("item %s not found", id), nil)
	}
	if err != nil {
		return nil, fmt.Errorf("load item: %w", err)
	}
	return item, nil
}

// List returns items ordered oldest first, optionally filtered by status.
func (s *Store) List(ctx context.Context, statuses ...shorts.Status) ([]*shorts.Item, error) {
	ctx = ensureContext(ctx)
	query := itemQuery
	args := make([]any, 0, len(statuses))
	if len(statuses) > 0 {
		query += ` WHERE s.status IN (` + makePlaceholders(len(statuses)) + `)`
		for _, status := range statuses {
			args = append(args, string(status))
		}
	}
	query += ` ORDER BY s.created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	return collectItems(rows)
}

// ItemsByAssignee returns the items currently assigned to an actor,
// excluding terminal ones.
func (s *Store) ItemsByAssignee(ctx context.Context, actorID string) ([]*shorts.Item, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, itemQuery+`
 WHERE s.assigned_to = ? AND s.status != ?
 ORDER BY s.deadline ASC, s.created_at ASC`, actorID, string(shorts.StatusPublished))
	if err != nil {
		return nil, fmt.Errorf("list items by assignee: %w", err)
	}
	defer rows.Close()
	return collectItems(rows)
}

// UpdateFrom persists item if and only if its stored status still equals
// expected. A mismatch yields lifecycle.StaleStateError so the caller can
// re-fetch and recompute instead of clobbering a concurrent transition.
func (s *Store) UpdateFrom(ctx context.Context, item *shorts.Item, expected shorts.Status) error {
	if item == nil {
		return services.Wrap(services.ErrValidation, "store", "update", "item must not be nil", nil)
	}
	item.UpdatedAt = time.Now().UTC()

	var targetID any
	if item.TargetChannel != nil {
		targetID = item.TargetChannel.ID
	}
	var fileID, fileName, fileMIME any
	var fileSize any
	if item.File != nil {
		fileID = item.File.ID
		fileName = item.File.Name
		fileSize = item.File.Size
		fileMIME = item.File.MIMEType
	}

	res, err := s.execWithRetry(ctx, `
UPDATE shorts SET
    title = ?, status = ?, target_channel_id = ?, assigned_to = ?, assigned_by = ?,
    deadline = ?, notes = ?, admin_feedback = ?,
    file_id = ?, file_name = ?, file_size = ?, file_mime = ?,
    updated_at = ?, assigned_at = ?, completed_at = ?, uploaded_at = ?, published_at = ?
WHERE id = ? AND status = ?`,
		item.Title, string(item.Status), targetID,
		nullableString(item.AssignedToID), nullableString(item.AssignedByID),
		nullableTime(item.Deadline), item.Notes, item.AdminFeedback,
		fileID, fileName, fileSize, fileMIME,
		item.UpdatedAt.Format(time.RFC3339Nano),
		nullableTime(item.AssignedAt), nullableTime(item.CompletedAt),
		nullableTime(item.UploadedAt), nullableTime(item.PublishedAt),
		item.ID, string(expected))
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if affected == 0 {
		if _, getErr := s.GetByID(ctx, item.ID); getErr != nil {
			return getErr
		}
		return &lifecycle.StaleStateError{ItemID: item.ID, Expected: expected}
	}
	return nil
}

func collectItems(rows *sql.Rows) ([]*shorts.Item, error) {
	var items []*shorts.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*shorts.Item, error) {
	var (
		item       shorts.Item
		status     string
		sourceType string

		targetID, targetName, targetType       sql.NullString
		assignedTo, assignedBy                 sql.NullString
		deadlineRaw                            sql.NullString
		fileID, fileName, fileMIME             sql.NullString
		fileSize                               sql.NullInt64
		createdRaw, updatedRaw                 string
		assignedRaw, completedRaw, uploadedRaw sql.NullString
		publishedRaw                           sql.NullString
	)

	err := row.Scan(
		&item.ID, &item.Title, &status,
		&item.SourceChannel.ID, &item.SourceChannel.Name, &sourceType,
		&targetID, &targetName, &targetType,
		&assignedTo, &assignedBy, &deadlineRaw, &item.Notes, &item.AdminFeedback,
		&fileID, &fileName, &fileSize, &fileMIME,
		&createdRaw, &updatedRaw, &assignedRaw, &completedRaw, &uploadedRaw, &publishedRaw,
	)
	if err != nil {
		return nil, err
	}

	item.Status = shorts.Status(status)
	item.SourceChannel.ContentType, _ = shorts.ParseContentType(sourceType)
	if targetID.Valid {
		channel := shorts.Channel{ID: targetID.String, Name: targetName.String}
		channel.ContentType, _ = shorts.ParseContentType(targetType.String)
		item.TargetChannel = &channel
	}
	item.AssignedToID = assignedTo.String
	item.AssignedByID = assignedBy.String
	if fileID.Valid {
		item.File = &shorts.FileRef{
			ID:       fileID.String,
			Name:     fileName.String,
			Size:     fileSize.Int64,
			MIMEType: fileMIME.String,
		}
	}

	if created, err := parseTimeString(createdRaw); err == nil {
		item.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw); err == nil {
		item.UpdatedAt = updated
	}
	item.Deadline = scanNullableTime(deadlineRaw)
	item.AssignedAt = scanNullableTime(assignedRaw)
	item.CompletedAt = scanNullableTime(completedRaw)
	item.UploadedAt = scanNullableTime(uploadedRaw)
	item.PublishedAt = scanNullableTime(publishedRaw)
	return &item, nil
}

func scanNullableTime(raw sql.NullString) *time.Time {
	if !raw.Valid {
		return nil
	}
	t, err := parseTimeString(raw.String)
	if err != nil {
		return nil
	}
	return &t
}
