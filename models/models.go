package models

import "time"

type User struct {
	UserID       string    `json:"userid" bson:"userid"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         string    `json:"role" bson:"role"` // User or Admin, fixed at registration
	CreatedAt    time.Time `json:"createdAt" bson:"created_at"`
	LastLogin    time.Time `json:"-" bson:"last_login,omitempty"`
}

type Organization struct {
	ID          string    `json:"id" bson:"id"`
	Name        string    `json:"name" bson:"name"`
	Address     string    `json:"address" bson:"address"`
	OwnerUserID string    `json:"ownerUserId" bson:"owner_userid"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
}

type Workspace struct {
	ID             string    `json:"id" bson:"id"`
	OrganizationID string    `json:"organizationId" bson:"organization_id"`
	Title          string    `json:"title" bson:"title"`
	View           string    `json:"view" bson:"view"`
	Capacity       int       `json:"capacity" bson:"capacity"`
	Floor          int       `json:"floor" bson:"floor"`
	HasSocket      bool      `json:"hasSocket" bson:"has_socket"`
	IsQuietZone    bool      `json:"isQuietZone" bson:"is_quiet_zone"`
	Description    string    `json:"description,omitempty" bson:"description,omitempty"`
	Photo          string    `json:"photo,omitempty" bson:"photo,omitempty"`
	CreatedAt      time.Time `json:"createdAt" bson:"created_at"`
}

// Booking holds a half-open interval [StartTime, EndTime) on a workspace.
// Bookings are created and deleted, never rescheduled in place.
type Booking struct {
	ID          string    `json:"id" bson:"id"`
	WorkspaceID string    `json:"workspaceId" bson:"workspace_id"`
	UserID      string    `json:"userId" bson:"userid"`
	StartTime   time.Time `json:"startTime" bson:"start_time"`
	EndTime     time.Time `json:"endTime" bson:"end_time"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
}

// BookingDetail is the read-side join of a booking with its workspace
// snapshot. Composed at query time, never stored.
type BookingDetail struct {
	Booking       `bson:",inline"`
	WorkspaceName string `json:"workspaceName" bson:"-"`
	WorkspaceView string `json:"workspaceView" bson:"-"`
}
