package shorts

import (
	"fmt"
	"strings"
	"time"
)

// Role identifies the permission level of an actor.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleAssistant Role = "assistant"
	RoleVideaste  Role = "videaste"
)

// ParseRole converts a string into a known Role.
func ParseRole(value string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(value))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleAssistant:
		return RoleAssistant, true
	case RoleVideaste:
		return RoleVideaste, true
	default:
		return "", false
	}
}

// Valid reports whether the role is one of the known enum values.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleAssistant, RoleVideaste:
		return true
	default:
		return false
	}
}

// CanCurate reports whether the role may retain or discard rolled items.
func (r Role) CanCurate() bool {
	return r == RoleAdmin || r == RoleAssistant
}

// CanReview reports whether the role may assign, validate, reject after
// review, and publish.
func (r Role) CanReview() bool {
	return r == RoleAdmin
}

// Actor is a user acting on items: an admin, assistant, or videaste.
type Actor struct {
	ID           string
	Name         string
	Role         Role
	NotifyOptOut bool
}

// Channel is a YouTube channel tagged with a content type. Source channels
// feed discovery; publication channels receive assigned items.
type Channel struct {
	ID          string
	Name        string
	ContentType ContentType
}

// FileRef references an uploaded video blob.
type FileRef struct {
	ID       string
	Name     string
	Size     int64
	MIMEType string
}

// Comment is an append-only note on an item. Comments never affect state.
type Comment struct {
	ID         int64
	ItemID     string
	AuthorID   string
	AuthorName string
	Body       string
	CreatedAt  time.Time
}

// Item is the unit of work: one Short moving through the pipeline.
type Item struct {
	ID            string
	Title         string
	Status        Status
	SourceChannel Channel
	TargetChannel *Channel
	AssignedToID  string
	AssignedByID  string
	Deadline      *time.Time
	Notes         string
	AdminFeedback string
	File          *FileRef

	CreatedAt   time.Time
	UpdatedAt   time.Time
	AssignedAt  *time.Time
	CompletedAt *time.Time
	UploadedAt  *time.Time
	PublishedAt *time.Time
}

// Validate checks the structural invariants that must hold after every
// transition. Channel compatibility is enforced separately by the lifecycle
// guard using internal/compat.
func (i *Item) Validate() error {
	if i == nil {
		return fmt.Errorf("item is nil")
	}
	if !i.Status.Valid() {
		return fmt.Errorf("item %s: unknown status %q", i.ID, i.Status)
	}
	if (i.TargetChannel != nil) != (i.Deadline != nil) {
		return fmt.Errorf("item %s: target channel and deadline must be set together", i.ID)
	}
	if i.Status.Assignable() && i.TargetChannel == nil {
		return fmt.Errorf("item %s: status %s requires a target channel", i.ID, i.Status)
	}
	if i.Status.Assignable() && i.AssignedToID == "" {
		return fmt.Errorf("item %s: status %s requires an assignee", i.ID, i.Status)
	}
	if i.File != nil && !i.Status.Delivered() && !(i.Status == StatusRejected && i.CompletedAt != nil) {
		return fmt.Errorf("item %s: status %s cannot carry an uploaded file", i.ID, i.Status)
	}
	if i.Status.Delivered() && i.File == nil {
		return fmt.Errorf("item %s: status %s requires an uploaded file", i.ID, i.Status)
	}
	return nil
}

// CanReupload reports whether a rejected item kept its assignment and may
// return to completed through a re-upload.
func (i *Item) CanReupload() bool {
	return i.Status == StatusRejected && i.CompletedAt != nil && i.AssignedToID != ""
}
