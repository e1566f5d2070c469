package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/sales-api/internal/domain/entity"
	"github.com/sangkips/sales-api/internal/domain/repository"
)

var errStoreDown = errors.New("store unavailable")

// memSaleRepo is an in-memory SaleRepository with the same version check as the gorm store
type memSaleRepo struct {
	mu     sync.Mutex
	nextID uint
	sales  map[uint]entity.Sale
	fail   error
	// beforeUpdate runs inside Update before the version check, to simulate a concurrent writer
	beforeUpdate func()
}

func newMemSaleRepo() *memSaleRepo {
	return &memSaleRepo{nextID: 1, sales: make(map[uint]entity.Sale)}
}

func (r *memSaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}
	sale.ID = r.nextID
	r.nextID++
	r.sales[sale.ID] = *sale
	return nil
}

func (r *memSaleRepo) GetByID(_ context.Context, id uint) (*entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return nil, r.fail
	}
	sale, ok := r.sales[id]
	if !ok {
		return nil, nil
	}
	return &sale, nil
}

func (r *memSaleRepo) Update(_ context.Context, sale *entity.Sale, expectedVersion int) (bool, error) {
	if r.beforeUpdate != nil {
		r.beforeUpdate()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return false, r.fail
	}
	stored, ok := r.sales[sale.ID]
	if !ok || stored.Version != expectedVersion {
		return false, nil
	}
	sale.Version = expectedVersion + 1
	r.sales[sale.ID] = *sale
	return true, nil
}

func (r *memSaleRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}
	delete(r.sales, id)
	return nil
}

func (r *memSaleRepo) List(ctx context.Context, params *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	all, err := r.ListAll(ctx, params.Window)
	if err != nil {
		return nil, 0, err
	}
	var matched []entity.Sale
	for _, s := range all {
		if params.Username != "" && s.Username != params.Username {
			continue
		}
		matched = append(matched, s)
	}
	total := int64(len(matched))
	if params.Pagination != nil {
		params.Pagination.Validate()
		start := params.Pagination.Offset()
		if start > len(matched) {
			start = len(matched)
		}
		end := start + params.Pagination.PerPage
		if end > len(matched) {
			end = len(matched)
		}
		matched = matched[start:end]
	}
	return matched, total, nil
}

func (r *memSaleRepo) ListAll(_ context.Context, window repository.DateWindow) ([]entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return nil, r.fail
	}
	out := make([]entity.Sale, 0, len(r.sales))
	for _, s := range r.sales {
		if window.From != nil && s.Date.Before(*window.From) {
			continue
		}
		if window.To != nil && !s.Date.Before(*window.To) {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// memUserRepo is an in-memory UserRepository
type memUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]entity.User
}

func newMemUserRepo(usernames ...string) *memUserRepo {
	r := &memUserRepo{users: make(map[uuid.UUID]entity.User)}
	for _, name := range usernames {
		_ = r.Create(context.Background(), &entity.User{Username: name, Email: name + "@example.com"})
	}
	return r
}

func (r *memUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *memUserRepo) find(match func(entity.User) bool) *entity.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			return &u
		}
	}
	return nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Email == email }), nil
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Username == username }), nil
}

func (r *memUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	u, _ := r.GetByUsername(ctx, username)
	return u != nil, nil
}

// memIdempotencyRepo is an in-memory IdempotencyRepository
type memIdempotencyRepo struct {
	mu   sync.Mutex
	keys []entity.IdempotencyKey
}

func (r *memIdempotencyRepo) GetByKey(_ context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, k := range r.keys {
		if k.Key == key && k.UserID == userID {
			return &k, nil
		}
	}
	return nil, nil
}

func (r *memIdempotencyRepo) Create(_ context.Context, ikey *entity.IdempotencyKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys = append(r.keys, *ikey)
	return nil
}

func (r *memIdempotencyRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.keys[:0]
	var removed int64
	for _, k := range r.keys {
		if k.ExpiresAt.Before(now) {
			removed++
			continue
		}
		kept = append(kept, k)
	}
	r.keys = kept
	return removed, nil
}
