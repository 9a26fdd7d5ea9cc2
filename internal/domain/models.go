package domain

import (
	"fmt"
	"time"
)

type IssueStatus string

const (
	IssueStatusReported   IssueStatus = "REPORTED"
	IssueStatusInProgress IssueStatus = "IN_PROGRESS"
	IssueStatusResolved   IssueStatus = "RESOLVED"
	IssueStatusHidden     IssueStatus = "HIDDEN"
)

func (s IssueStatus) Valid() bool {
	switch s {
	case IssueStatusReported, IssueStatusInProgress, IssueStatusResolved, IssueStatusHidden:
		return true
	}

	return false
}

// UnmarshalText rejects unknown statuses so query and JSON binding fail early.
func (s *IssueStatus) UnmarshalText(text []byte) error {
	v := IssueStatus(text)
	if !v.Valid() {
		return fmt.Errorf("unknown issue status '%s'", text)
	}

	*s = v

	return nil
}

type IssueCategory string

const (
	IssueCategoryRoads       IssueCategory = "ROADS"
	IssueCategoryWater       IssueCategory = "WATER"
	IssueCategoryElectricity IssueCategory = "ELECTRICITY"
	IssueCategoryWaste       IssueCategory = "WASTE"
	IssueCategoryOther       IssueCategory = "OTHER"
)

func (c IssueCategory) Valid() bool {
	switch c {
	case IssueCategoryRoads, IssueCategoryWater, IssueCategoryElectricity, IssueCategoryWaste, IssueCategoryOther:
		return true
	}

	return false
}

func (c *IssueCategory) UnmarshalText(text []byte) error {
	v := IssueCategory(text)
	if !v.Valid() {
		return fmt.Errorf("unknown issue category '%s'", text)
	}

	*c = v

	return nil
}

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type Issue struct {
	ID          int64         `db:"id" json:"id"`
	Title       string        `db:"title" json:"title"`
	Description string        `db:"description" json:"description"`
	Photos      []string      `db:"-" json:"photos"`
	Category    IssueCategory `db:"category" json:"category"`
	Latitude    float64       `db:"latitude" json:"latitude"`
	Longitude   float64       `db:"longitude" json:"longitude"`
	Status      IssueStatus   `db:"status" json:"status"`
	Anonymous   bool          `db:"anonymous" json:"anonymous"`
	UserID      *int64        `db:"user_id" json:"userId"`
	FlagCount   int           `db:"flag_count" json:"flagCount"`
	CreatedAt   time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time     `db:"updated_at" json:"updatedAt"`
}

// Reporter returns the user to notify about the issue, if any.
func (i *Issue) Reporter() (int64, bool) {
	if i.Anonymous || i.UserID == nil {
		return 0, false
	}

	return *i.UserID, true
}

type User struct {
	ID        int64     `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	Role      Role      `db:"role" json:"role"`
	Banned    bool      `db:"banned" json:"banned"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// IssueFilter selects issues for listing. Nil fields are not applied.
type IssueFilter struct {
	Status   *IssueStatus
	Category *IssueCategory
	Lat      *float64
	Lon      *float64
	RadiusKm *float64
}

// HasLocation reports whether the distance criterion applies.
func (f IssueFilter) HasLocation() bool {
	return f.Lat != nil && f.Lon != nil
}
