package booking

import (
	"context"
	"errors"
	"sort"
	"time"

	"deskhive/globals"
	"deskhive/models"
	"deskhive/utils"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("booking conflict")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidInterval = errors.New("invalid interval")
)

// Overlaps reports whether the half-open intervals [s1,e1) and [s2,e2)
// overlap. Back-to-back intervals do not.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// Store is the persistence surface the engine runs on.
type Store interface {
	Workspace(ctx context.Context, id string) (*models.Workspace, error)
	HasOverlap(ctx context.Context, workspaceID string, start, end time.Time) (bool, error)
	InsertBooking(ctx context.Context, b *models.Booking) error
	Booking(ctx context.Context, id string) (*models.Booking, error)
	DeleteBooking(ctx context.Context, id string) error
	BookingsByUser(ctx context.Context, userID string) ([]models.Booking, error)
	// RemoveWorkspace deletes the workspace document and every booking on it.
	RemoveWorkspace(ctx context.Context, workspaceID string) error
}

// Engine owns bookings: it enforces the per-workspace no-overlap invariant
// and answers availability queries. Workspace data itself belongs to the
// directory; the engine only reads it.
type Engine struct {
	store Store
	locks *KeyedMutex
}

func NewEngine(store Store) *Engine {
	return &Engine{
		store: store,
		locks: NewKeyedMutex(),
	}
}

// CheckAvailability reports whether [start,end) is free on the workspace.
func (e *Engine) CheckAvailability(ctx context.Context, workspaceID string, start, end time.Time) (bool, error) {
	if !start.Before(end) {
		return false, ErrInvalidInterval
	}
	if _, err := e.store.Workspace(ctx, workspaceID); err != nil {
		return false, err
	}
	taken, err := e.store.HasOverlap(ctx, workspaceID, start, end)
	if err != nil {
		return false, err
	}
	return !taken, nil
}

// CreateBooking reserves [start,end) on a workspace for a user. The overlap
// check and the insert run inside the workspace's exclusive section, so two
// concurrent calls with overlapping intervals cannot both commit.
func (e *Engine) CreateBooking(ctx context.Context, workspaceID, userID string, start, end time.Time) (*models.Booking, error) {
	if !start.Before(end) {
		return nil, ErrInvalidInterval
	}

	unlock := e.locks.Lock(workspaceID)
	defer unlock()

	if _, err := e.store.Workspace(ctx, workspaceID); err != nil {
		return nil, err
	}

	taken, err := e.store.HasOverlap(ctx, workspaceID, start, end)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrConflict
	}

	b := &models.Booking{
		ID:          "b" + utils.GenerateRandomDigitString(16),
		WorkspaceID: workspaceID,
		UserID:      userID,
		StartTime:   start.UTC(),
		EndTime:     end.UTC(),
		CreatedAt:   time.Now().UTC(),
	}
	if err := e.store.InsertBooking(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// UserBookings lists a user's bookings ordered by start time, each enriched
// with its workspace snapshot. The join happens here, at read time.
func (e *Engine) UserBookings(ctx context.Context, userID string) ([]models.BookingDetail, error) {
	bookings, err := e.store.BookingsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].StartTime.Before(bookings[j].StartTime)
	})

	details := make([]models.BookingDetail, 0, len(bookings))
	for _, b := range bookings {
		d := models.BookingDetail{Booking: b}
		if ws, err := e.store.Workspace(ctx, b.WorkspaceID); err == nil {
			d.WorkspaceName = ws.Title
			d.WorkspaceView = ws.View
		}
		details = append(details, d)
	}
	return details, nil
}

// DeleteBooking removes a booking on behalf of its owner or an admin.
func (e *Engine) DeleteBooking(ctx context.Context, id, requesterID, requesterRole string) (*models.Booking, error) {
	b, err := e.store.Booking(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.UserID != requesterID && requesterRole != globals.RoleAdmin {
		return nil, ErrForbidden
	}

	unlock := e.locks.Lock(b.WorkspaceID)
	defer unlock()

	if err := e.store.DeleteBooking(ctx, id); err != nil {
		return nil, err
	}
	return b, nil
}

// Booking fetches a single booking.
func (e *Engine) Booking(ctx context.Context, id string) (*models.Booking, error) {
	return e.store.Booking(ctx, id)
}

// PurgeWorkspace removes a workspace and cascades into its bookings while
// holding the workspace lock, so the cascade cannot interleave with a
// concurrent create and leave orphaned bookings behind.
func (e *Engine) PurgeWorkspace(ctx context.Context, workspaceID string) error {
	unlock := e.locks.Lock(workspaceID)
	defer unlock()

	if _, err := e.store.Workspace(ctx, workspaceID); err != nil {
		return err
	}
	return e.store.RemoveWorkspace(ctx, workspaceID)
}
