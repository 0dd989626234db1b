package domain

import "time"

// User is the persisted account record. DeletedAt is a plain nullable
// timestamp rather than gorm.DeletedAt: paginated listing and name search
// must still see soft-deleted rows, so the repository controls the filter
// per query instead of gorm scoping it globally.
type User struct {
	ID           int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string     `gorm:"size:100;not null" json:"name"`
	Email        string     `gorm:"uniqueIndex;size:191;not null" json:"email"`
	PasswordHash string     `gorm:"size:100;not null" json:"-"`
	Role         Role       `gorm:"size:16;not null;default:USER" json:"role"`
	Active       bool       `gorm:"not null;default:true" json:"active"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt    *time.Time `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

func (u *User) Deleted() bool { return u.DeletedAt != nil }

type UserRepository interface {
	Create(u *User) error
	Save(u *User) error

	// FindByID and FindByEmail resolve regardless of deletion state;
	// (nil, nil) means no such record.
	FindByID(id int64) (*User, error)
	FindByEmail(email string) (*User, error)

	// FindActiveByID only resolves rows whose deleted_at is null.
	FindActiveByID(id int64) (*User, error)

	FindAllActive() ([]User, error)
	FindByActive(active bool) ([]User, error)
	FindByRole(role Role) ([]User, error)
	SearchByName(name string) ([]User, error)

	ExistsByEmail(email string) (bool, error)

	// Paginate pages over every row, soft-deleted included.
	Paginate(page, size int, sortBy, direction string) ([]User, int64, error)

	CountActive() (int64, error)
	CountAll() (int64, error)

	// DeleteByID removes the row permanently.
	DeleteByID(id int64) error
}
