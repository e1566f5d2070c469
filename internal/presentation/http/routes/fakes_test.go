package routes

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/sales-api/internal/domain/entity"
	"github.com/sangkips/sales-api/internal/domain/repository"
)

type memSales struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]entity.Sale
}

func newMemSales() *memSales {
	return &memSales{nextID: 1, rows: make(map[uint]entity.Sale)}
}

func (r *memSales) Create(_ context.Context, sale *entity.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	sale.ID = r.nextID
	r.nextID++
	r.rows[sale.ID] = *sale
	return nil
}

func (r *memSales) GetByID(_ context.Context, id uint) (*entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sale, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &sale, nil
}

func (r *memSales) Update(_ context.Context, sale *entity.Sale, expectedVersion int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.rows[sale.ID]
	if !ok || stored.Version != expectedVersion {
		return false, nil
	}
	sale.Version = expectedVersion + 1
	r.rows[sale.ID] = *sale
	return true, nil
}

func (r *memSales) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, id)
	return nil
}

func (r *memSales) List(ctx context.Context, params *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	all, _ := r.ListAll(ctx, params.Window)
	var matched []entity.Sale
	for _, s := range all {
		if params.Username != "" && s.Username != params.Username {
			continue
		}
		if params.Search != "" && !strings.Contains(strings.ToLower(s.ProductName), strings.ToLower(params.Search)) {
			continue
		}
		matched = append(matched, s)
	}
	total := int64(len(matched))
	start := min(params.Pagination.Offset(), len(matched))
	end := min(start+params.Pagination.PerPage, len(matched))
	return matched[start:end], total, nil
}

func (r *memSales) ListAll(_ context.Context, window repository.DateWindow) ([]entity.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Sale, 0, len(r.rows))
	for _, s := range r.rows {
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

type memUsers struct {
	mu    sync.Mutex
	users []entity.User
}

func (r *memUsers) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	r.users = append(r.users, *user)
	return nil
}

func (r *memUsers) find(match func(entity.User) bool) *entity.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			return &u
		}
	}
	return nil
}

func (r *memUsers) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.ID == id }), nil
}

func (r *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Email == email }), nil
}

func (r *memUsers) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Username == username }), nil
}

func (r *memUsers) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	u, _ := r.GetByUsername(ctx, username)
	return u != nil, nil
}

type memKeys struct {
	mu   sync.Mutex
	keys []entity.IdempotencyKey
}

func (r *memKeys) GetByKey(_ context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, k := range r.keys {
		if k.Key == key && k.UserID == userID {
			return &k, nil
		}
	}
	return nil, nil
}

func (r *memKeys) Create(_ context.Context, ikey *entity.IdempotencyKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys = append(r.keys, *ikey)
	return nil
}

func (r *memKeys) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	return 0, nil
}
