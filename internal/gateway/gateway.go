package gateway

import (
	"errors"

	"gorm.io/gorm"
)

// ErrOwnership is returned when a write carries a user id that does not match
// the scope it was issued through.
var ErrOwnership = errors.New("gateway: row owner does not match scope")

// ErrNotFound is returned when a scoped lookup matches no row.
var ErrNotFound = gorm.ErrRecordNotFound

// Ownable is implemented by every persisted entity that belongs to a user.
type Ownable interface {
	GetUserID() uint
}

// Scope binds a DB handle to the owning user. Every read and write issued
// through a Scope carries an explicit user_id equality filter; the gateway
// never widens a query beyond the scope it was given.
type Scope struct {
	db     *gorm.DB
	userID uint
}

func NewScope(db *gorm.DB, userID uint) Scope { return Scope{db: db, userID: userID} }

func (s Scope) UserID() uint { return s.userID }

// Option narrows or decorates a scoped query.
type Option func(*gorm.DB) *gorm.DB

func Order(expr string) Option {
	return func(q *gorm.DB) *gorm.DB { return q.Order(expr) }
}

func Where(cond string, args ...any) Option {
	return func(q *gorm.DB) *gorm.DB { return q.Where(cond, args...) }
}

// Preload loads a single-level association for display (e.g. the related
// client's name on meetings, sales and quotes).
func Preload(assoc string) Option {
	return func(q *gorm.DB) *gorm.DB { return q.Preload(assoc) }
}

// Select restricts the projection to the named columns.
func Select(columns string) Option {
	return func(q *gorm.DB) *gorm.DB { return q.Select(columns) }
}

// List replaces dest wholesale with the rows owned by the scope's user.
func List[T any](s Scope, dest *[]T, opts ...Option) error {
	q := s.db.Where("user_id = ?", s.userID)
	for _, o := range opts {
		q = o(q)
	}
	return q.Find(dest).Error
}

// Count returns the number of rows owned by the scope's user.
func Count[T any](s Scope, opts ...Option) (int64, error) {
	var zero T
	q := s.db.Model(&zero).Where("user_id = ?", s.userID)
	for _, o := range opts {
		q = o(q)
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}

// First loads a single row by id, still scoped to the owning user.
func First[T any](s Scope, id uint, dest *T) error {
	return s.db.Where("user_id = ?", s.userID).First(dest, id).Error
}

// Insert creates a row. The row's user id must already be attached and must
// match the scope.
func (s Scope) Insert(row Ownable) error {
	if row.GetUserID() != s.userID {
		return ErrOwnership
	}
	return s.db.Create(row).Error
}

// Update overwrites the given fields on the row with the matching id. It is a
// full overwrite of the draft, not a field-level merge: zero values in fields
// replace whatever was stored.
func (s Scope) Update(model Ownable, id uint, fields map[string]any) error {
	res := s.db.Model(model).Where("id = ? AND user_id = ?", id, s.userID).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateColumn writes a single column, used by one-field state flips.
func (s Scope) UpdateColumn(model Ownable, id uint, column string, value any) error {
	return s.Update(model, id, map[string]any{column: value})
}

// Delete removes the row with the given id if the scope's user owns it.
func Delete[T any](s Scope, id uint) error {
	var zero T
	res := s.db.Where("id = ? AND user_id = ?", id, s.userID).Delete(&zero)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
