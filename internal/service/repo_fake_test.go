package service

import (
	"sort"
	"strings"

	"go-user-account-api/internal/domain"
)

// memRepo is an in-memory UserRepository for service tests. Paginate only
// sorts by id, which is all the tests ask of it.
type memRepo struct {
	seq   int64
	users map[int64]*domain.User
}

func newMemRepo() *memRepo {
	return &memRepo{users: make(map[int64]*domain.User)}
}

func (r *memRepo) Create(u *domain.User) error {
	r.seq++
	u.ID = r.seq
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memRepo) Save(u *domain.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memRepo) FindByID(id int64) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *memRepo) FindByEmail(email string) (*domain.User, error) {
	for _, u := range r.sorted() {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memRepo) FindActiveByID(id int64) (*domain.User, error) {
	u, _ := r.FindByID(id)
	if u == nil || u.Deleted() {
		return nil, nil
	}
	return u, nil
}

func (r *memRepo) FindAllActive() ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.sorted() {
		if !u.Deleted() {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *memRepo) FindByActive(active bool) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.sorted() {
		if u.Active == active {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *memRepo) FindByRole(role domain.Role) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.sorted() {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *memRepo) SearchByName(name string) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.sorted() {
		if strings.Contains(strings.ToLower(u.Name), strings.ToLower(name)) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *memRepo) ExistsByEmail(email string) (bool, error) {
	u, _ := r.FindByEmail(email)
	return u != nil, nil
}

func (r *memRepo) Paginate(page, size int, _, direction string) ([]domain.User, int64, error) {
	all := r.sorted()
	if strings.EqualFold(direction, "desc") {
		for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
			all[i], all[j] = all[j], all[i]
		}
	}
	total := int64(len(all))
	start := page * size
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *memRepo) CountActive() (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.Active && !u.Deleted() {
			n++
		}
	}
	return n, nil
}

func (r *memRepo) CountAll() (int64, error) { return int64(len(r.users)), nil }

func (r *memRepo) DeleteByID(id int64) error {
	delete(r.users, id)
	return nil
}

func (r *memRepo) sorted() []domain.User {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
