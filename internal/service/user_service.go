package service

import (
	"strings"
	"time"

	"go-user-account-api/internal/domain"
	"go-user-account-api/internal/validator"
)

// PasswordHasher is the one-way hashing capability the services need;
// pkg/utils provides the bcrypt implementation.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, digest string) bool
}

type UserService struct {
	repo   domain.UserRepository
	hasher PasswordHasher
}

func NewUserService(repo domain.UserRepository, hasher PasswordHasher) *UserService {
	return &UserService{repo: repo, hasher: hasher}
}

// PageResult mirrors the paginated envelope fields.
type PageResult struct {
	Content       []domain.UserResponse
	CurrentPage   int
	TotalPages    int
	TotalElements int64
}

func (s *UserService) Create(req *domain.UserRequest) (*domain.UserResponse, error) {
	if errs := validator.ValidateForCreation(req); len(errs) > 0 {
		return nil, domain.E(domain.KindValidation, strings.Join(errs, ", "))
	}

	// Uniqueness holds across soft-deleted rows too; check-then-insert is
	// racy across concurrent creates, the unique index is the backstop.
	exists, err := s.repo.ExistsByEmail(*req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.Ef(domain.KindDuplicateEmail, "Email already exists: %s", *req.Email)
	}

	hash, err := s.hasher.Hash(*req.Password)
	if err != nil {
		return nil, err
	}

	role, _ := domain.ParseRole(*req.Role)
	u := &domain.User{
		Name:         *req.Name,
		Email:        *req.Email,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
	}
	if req.Active != nil {
		u.Active = *req.Active
	}
	if err := s.repo.Create(u); err != nil {
		return nil, err
	}
	return u.Response(), nil
}

func (s *UserService) GetAll() ([]domain.UserResponse, error) {
	users, err := s.repo.FindAllActive()
	if err != nil {
		return nil, err
	}
	return domain.ResponseList(users), nil
}

// GetAllPaginated pages over every record, soft-deleted ones included.
// That asymmetry with GetAll is deliberate and covered by tests.
func (s *UserService) GetAllPaginated(page, size int, sortBy, direction string) (*PageResult, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 10
	}
	users, total, err := s.repo.Paginate(page, size, sortBy, direction)
	if err != nil {
		return nil, err
	}
	totalPages := int((total + int64(size) - 1) / int64(size))
	return &PageResult{
		Content:       domain.ResponseList(users),
		CurrentPage:   page,
		TotalPages:    totalPages,
		TotalElements: total,
	}, nil
}

func (s *UserService) GetByID(id int64) (*domain.UserResponse, error) {
	u, err := s.repo.FindActiveByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.Ef(domain.KindNotFound, "User not found with id: %d", id)
	}
	return u.Response(), nil
}

func (s *UserService) GetByEmail(email string) (*domain.UserResponse, error) {
	u, err := s.repo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.Ef(domain.KindNotFound, "User not found with email: %s", email)
	}
	if u.Deleted() {
		return nil, domain.E(domain.KindAccountDeleted, "User has been deleted")
	}
	return u.Response(), nil
}

func (s *UserService) SearchByName(name string) ([]domain.UserResponse, error) {
	users, err := s.repo.SearchByName(name)
	if err != nil {
		return nil, err
	}
	return domain.ResponseList(users), nil
}

func (s *UserService) GetByRole(roleName string) ([]domain.UserResponse, error) {
	role, ok := domain.ParseRole(roleName)
	if !ok {
		return nil, domain.Ef(domain.KindInvalidRole,
			"Invalid role: %s. Valid roles are: %s", roleName, domain.RoleNames())
	}
	users, err := s.repo.FindByRole(role)
	if err != nil {
		return nil, err
	}
	return domain.ResponseList(users), nil
}

func (s *UserService) GetActive() ([]domain.UserResponse, error) {
	users, err := s.repo.FindByActive(true)
	if err != nil {
		return nil, err
	}
	return domain.ResponseList(users), nil
}

// Update merges only the fields present in the request onto the stored
// record; an absent or empty password keeps the existing digest.
func (s *UserService) Update(id int64, req *domain.UserRequest) (*domain.UserResponse, error) {
	u, err := s.repo.FindActiveByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.Ef(domain.KindNotFound, "User not found with id: %d", id)
	}

	if errs := validator.ValidateForUpdate(req); len(errs) > 0 {
		return nil, domain.E(domain.KindValidation, strings.Join(errs, ", "))
	}

	if req.Email != nil && *req.Email != u.Email {
		exists, err := s.repo.ExistsByEmail(*req.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.Ef(domain.KindDuplicateEmail, "Email already exists: %s", *req.Email)
		}
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.Role != nil {
		role, _ := domain.ParseRole(*req.Role)
		u.Role = role
	}
	if req.Active != nil {
		u.Active = *req.Active
	}
	if req.Password != nil && strings.TrimSpace(*req.Password) != "" {
		hash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}

	if err := s.repo.Save(u); err != nil {
		return nil, err
	}
	return u.Response(), nil
}

func (s *UserService) ToggleStatus(id int64) (*domain.UserResponse, error) {
	u, err := s.repo.FindActiveByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.Ef(domain.KindNotFound, "User not found with id: %d", id)
	}
	u.Active = !u.Active
	if err := s.repo.Save(u); err != nil {
		return nil, err
	}
	return u.Response(), nil
}

// SoftDelete is not idempotent: once the record leaves the active set a
// second call fails with NotFound.
func (s *UserService) SoftDelete(id int64) error {
	u, err := s.repo.FindActiveByID(id)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.Ef(domain.KindNotFound, "User not found with id: %d", id)
	}
	now := time.Now()
	u.DeletedAt = &now
	u.Active = false
	return s.repo.Save(u)
}

func (s *UserService) HardDelete(id int64) error {
	u, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.Ef(domain.KindNotFound, "User not found with id: %d", id)
	}
	return s.repo.DeleteByID(id)
}

func (s *UserService) CountActive() (int64, error) { return s.repo.CountActive() }
func (s *UserService) CountAll() (int64, error)    { return s.repo.CountAll() }
