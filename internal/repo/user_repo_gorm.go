package repo

import (
	"errors"
	"strings"
	"unicode"

	"gorm.io/gorm"

	"go-user-account-api/internal/domain"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Create(u *domain.User) error { return r.db.Create(u).Error }

func (r *UserRepo) Save(u *domain.User) error { return r.db.Save(u).Error }

func (r *UserRepo) FindByID(id int64) (*domain.User, error) {
	var u domain.User
	err := r.db.First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) FindByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.db.First(&u, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) FindActiveByID(id int64) (*domain.User, error) {
	var u domain.User
	err := r.db.First(&u, "id = ? AND deleted_at IS NULL", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) FindAllActive() ([]domain.User, error) {
	var users []domain.User
	err := r.db.Where("deleted_at IS NULL").Find(&users).Error
	return users, err
}

func (r *UserRepo) FindByActive(active bool) ([]domain.User, error) {
	var users []domain.User
	err := r.db.Where("active = ?", active).Find(&users).Error
	return users, err
}

func (r *UserRepo) FindByRole(role domain.Role) ([]domain.User, error) {
	var users []domain.User
	err := r.db.Where("role = ?", role).Find(&users).Error
	return users, err
}

// SearchByName matches case-insensitively; LOWER on both sides keeps the
// behavior identical across mysql and postgres collations.
func (r *UserRepo) SearchByName(name string) ([]domain.User, error) {
	var users []domain.User
	like := "%" + strings.ToLower(name) + "%"
	err := r.db.Where("LOWER(name) LIKE ?", like).Find(&users).Error
	return users, err
}

func (r *UserRepo) ExistsByEmail(email string) (bool, error) {
	var n int64
	err := r.db.Model(&domain.User{}).Where("email = ?", email).Count(&n).Error
	return n > 0, err
}

func (r *UserRepo) Paginate(page, size int, sortBy, direction string) ([]domain.User, int64, error) {
	tx := r.db.Model(&domain.User{})
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	order := sortColumn(sortBy) + " " + sortDirection(direction)
	var users []domain.User
	if err := tx.Order(order).Offset(page * size).Limit(size).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserRepo) CountActive() (int64, error) {
	var n int64
	err := r.db.Model(&domain.User{}).Where("active = ? AND deleted_at IS NULL", true).Count(&n).Error
	return n, err
}

func (r *UserRepo) CountAll() (int64, error) {
	var n int64
	err := r.db.Model(&domain.User{}).Count(&n).Error
	return n, err
}

func (r *UserRepo) DeleteByID(id int64) error {
	return r.db.Delete(&domain.User{}, "id = ?", id).Error
}

var sortableColumns = map[string]struct{}{
	"id": {}, "name": {}, "email": {}, "role": {},
	"active": {}, "created_at": {}, "updated_at": {},
}

// sortColumn maps a client-supplied field name (camelCase or snake_case)
// to a whitelisted column; anything else falls back to id.
func sortColumn(field string) string {
	col := toSnake(strings.TrimSpace(field))
	if _, ok := sortableColumns[col]; ok {
		return col
	}
	return "id"
}

func sortDirection(direction string) string {
	if strings.EqualFold(direction, "desc") {
		return "DESC"
	}
	return "ASC"
}

func toSnake(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
