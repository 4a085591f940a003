package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"inventory-api/internal/domain"
	"inventory-api/internal/repository"
	"inventory-api/internal/repository/sqldb"
)

func newTestServices(t *testing.T) (UserService, ProductService, repository.UserRepository) {
	t.Helper()
	ctx := context.Background()
	db, err := sqldb.Open(ctx, sqldb.Config{Driver: sqldb.DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqldb.InitSchema(ctx, db))

	users := sqldb.NewUserRepository(db)
	tokens := NewTokenManager("test-secret", time.Hour)
	return NewUserService(users, tokens, bcrypt.MinCost),
		NewProductService(sqldb.NewProductRepository(db), Pagination{}),
		users
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	users, _, repo := newTestServices(t)

	user, err := users.Register(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.Positive(t, user.ID)
	assert.Empty(t, user.PasswordHash)

	stored, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret")))

	token, err := users.Login(ctx, "alice", "secret")
	require.NoError(t, err)
	identity, err := users.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.ID)
}

func TestRegisterValidationAndConflict(t *testing.T) {
	ctx := context.Background()
	users, _, _ := newTestServices(t)

	_, err := users.Register(ctx, "", "pw")
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = users.Register(ctx, "bob", "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = users.Register(ctx, "bob", "first")
	require.NoError(t, err)

	for _, pw := range []string{"first", "second", "third"} {
		_, err = users.Register(ctx, "bob", pw)
		assert.ErrorIs(t, err, domain.ErrConflict)
		msg, _ := domain.Message(err)
		assert.Equal(t, "User already exists", msg)
	}
}

func TestLoginFailuresLookAlike(t *testing.T) {
	ctx := context.Background()
	users, _, _ := newTestServices(t)
	_, err := users.Register(ctx, "carol", "right")
	require.NoError(t, err)

	_, wrongPassword := users.Login(ctx, "carol", "wrong")
	_, unknownUser := users.Login(ctx, "mallory", "right")

	require.Error(t, wrongPassword)
	require.Error(t, unknownUser)
	assert.ErrorIs(t, wrongPassword, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, domain.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())

	_, err = users.Login(ctx, "carol", "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// racingUserRepo simulates a concurrent registration committing between
// the lookup and the insert.
type racingUserRepo struct{}

func (racingUserRepo) Create(context.Context, *domain.User) (int64, error) {
	return 0, domain.Conflict("User already exists")
}

func (racingUserRepo) GetByUsername(context.Context, string) (*domain.User, error) {
	return nil, domain.NotFound("User not found")
}

func TestRegisterConstraintViolationIsConflict(t *testing.T) {
	users := NewUserService(racingUserRepo{}, NewTokenManager("s", time.Hour), bcrypt.MinCost)
	_, err := users.Register(context.Background(), "dave", "pw")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func ptr[T any](v T) *T { return &v }

func TestProductServiceLifecycle(t *testing.T) {
	ctx := context.Background()
	_, products, _ := newTestServices(t)

	_, err := products.Create(ctx, domain.NewProduct{Name: "", Quantity: ptr(int64(1)), Price: ptr(1.0)})
	assert.ErrorIs(t, err, domain.ErrValidation)

	var ids []int64
	for i := 0; i < 15; i++ {
		id, err := products.Create(ctx, domain.NewProduct{
			Name:     "Gaming Mouse",
			Type:     "Electronics",
			SKU:      "GM-1",
			Quantity: ptr(int64(50)),
			Price:    ptr(79.99),
		})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	page, err := products.List(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, page, 10)
	assert.Equal(t, ids[14], page[0].ID)

	second, err := products.List(ctx, 2, 5)
	require.NoError(t, err)
	require.Len(t, second, 5)
	for i, p := range second {
		assert.Equal(t, page[5+i].ID, p.ID)
	}

	huge, err := products.List(ctx, 1, 1_000_000)
	require.NoError(t, err)
	assert.Len(t, huge, 15)

	updated, err := products.UpdateQuantity(ctx, ids[0], 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), updated.Quantity)

	_, err = products.UpdateQuantity(ctx, 999_999, 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = products.UpdateQuantity(ctx, ids[0], -1)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

type recordingProductRepo struct {
	repository.ProductRepository
	limit, offset int
}

func (r *recordingProductRepo) List(_ context.Context, limit, offset int) ([]domain.Product, error) {
	r.limit, r.offset = limit, offset
	return []domain.Product{}, nil
}

func TestProductServicePagination(t *testing.T) {
	tests := []struct {
		page, limit         int
		wantLimit, wantOffs int
	}{
		{0, 0, 10, 0},
		{1, 10, 10, 0},
		{2, 5, 5, 5},
		{3, 20, 20, 40},
		{-4, -1, 10, 0},
		{1, 500, 100, 0},
		{2, 500, 100, 100},
	}
	for _, tt := range tests {
		repo := &recordingProductRepo{}
		svc := NewProductService(repo, Pagination{DefaultLimit: 10, MaxLimit: 100})
		_, err := svc.List(context.Background(), tt.page, tt.limit)
		require.NoError(t, err)
		assert.Equal(t, tt.wantLimit, repo.limit, "page=%d limit=%d", tt.page, tt.limit)
		assert.Equal(t, tt.wantOffs, repo.offset, "page=%d limit=%d", tt.page, tt.limit)
	}
}
