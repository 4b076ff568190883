package service

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	pkgkafka "github.com/bookhaven/storefront/pkg/kafka"

	"github.com/bookhaven/storefront/internal/domain"
	"github.com/bookhaven/storefront/internal/event"
	"github.com/bookhaven/storefront/internal/repository"
	"github.com/bookhaven/storefront/internal/repository/memory"
)

// --- Mock store ---

type mockCartStore struct {
	mock.Mock
}

func (m *mockCartStore) Load(ctx context.Context) ([]domain.CartLine, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CartLine), args.Error(1)
}

func (m *mockCartStore) Save(ctx context.Context, lines []domain.CartLine) error {
	args := m.Called(ctx, lines)
	return args.Error(0)
}

// --- Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestService(store repository.CartStore) *CartService {
	logger := newTestLogger()
	// The Kafka producer fails silently in tests; there is no real broker and
	// publish errors never fail a mutation.
	kafkaProducer := pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig([]string{"localhost:9092"}), logger)
	producer := event.NewProducer(kafkaProducer, "shopping_cart", logger)
	return NewCartService(store, producer, logger)
}

// newMemoryService backs the service with a real repository over an
// in-memory slot, exercising the full read-modify-write cycle.
func newMemoryService() (*CartService, *memory.Slot) {
	slot := memory.NewSlot()
	repo := repository.NewCartRepository(slot, newTestLogger())
	return newTestService(repo), slot
}

func bookA() domain.Product {
	return domain.Product{ID: "book-001", Title: "The Midnight Library", Price: 20, Discount: 0.25, Genre: "Fiction"}
}

func bookB() domain.Product {
	return domain.Product{ID: "book-004", Title: "Vagabonding", Price: 10, Discount: 0, Genre: "Travel"}
}

// --- Tests ---

func TestGetCart_Empty(t *testing.T) {
	svc, _ := newMemoryService()

	cart := svc.GetCart(context.Background())

	assert.Empty(t, cart.Lines)
	assert.Zero(t, cart.ItemCount())
	assert.Zero(t, cart.Total())
}

func TestGetCart_StoreErrorDegradesToEmpty(t *testing.T) {
	store := new(mockCartStore)
	svc := newTestService(store)
	ctx := context.Background()

	store.On("Load", ctx).Return(nil, assert.AnError)

	cart := svc.GetCart(ctx)

	assert.Empty(t, cart.Lines)
	store.AssertExpectations(t)
}

func TestAddItem_MergesByProductID(t *testing.T) {
	svc, _ := newMemoryService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, bookA(), 2)
	require.NoError(t, err)

	cart, err := svc.AddItem(ctx, bookA(), 3)
	require.NoError(t, err)

	require.Len(t, cart.Lines, 1)
	assert.Equal(t, "book-001", cart.Lines[0].Product.ID)
	assert.Equal(t, 5, cart.Lines[0].Quantity)
}

func TestAddItem_AppendsPreservingOrder(t *testing.T) {
	svc, _ := newMemoryService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, bookA(), 1)
	require.NoError(t, err)
	cart, err := svc.AddItem(ctx, bookB(), 1)
	require.NoError(t, err)

	require.Len(t, cart.Lines, 2)
	assert.Equal(t, "book-001", cart.Lines[0].Product.ID)
	assert.Equal(t, "book-004", cart.Lines[1].Product.ID)
}

func TestAddItem_NonPositiveQuantityNotRejected(t *testing.T) {
	// Known gap: the cart contract does not guard against non-positive
	// quantities on add. Callers always pass at least 1 in practice.
	svc, _ := newMemoryService()
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, bookA(), -2)
	require.NoError(t, err)

	require.Len(t, cart.Lines, 1)
	assert.Equal(t, -2, cart.Lines[0].Quantity)
}

func TestAddItem_SaveError(t *testing.T) {
	store := new(mockCartStore)
	svc := newTestService(store)
	ctx := context.Background()

	store.On("Load", ctx).Return([]domain.CartLine{}, nil)
	store.On("Save", ctx, mock.Anything).Return(assert.AnError)

	_, err := svc.AddItem(ctx, bookA(), 1)
	require.Error(t, err)
	store.AssertExpectations(t)
}

func TestRemoveItem_Idempotent(t *testing.T) {
	svc, _ := newMemoryService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, bookA(), 1)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, bookB(), 2)
	require.NoError(t, err)

	first, err := svc.RemoveItem(ctx, "book-001")
	require.NoError(t, err)
	second, err := svc.RemoveItem(ctx, "book-001")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	require.Len(t, second.Lines, 1)
	assert.Equal(t, "book-004", second.Lines[0].Product.ID)
}

func TestRemoveItem_AbsentIsNoOp(t *testing.T) {
	svc, _ := newMemoryService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, bookA(), 1)
	require.NoError(t, err)

	cart, err := svc.RemoveItem(ctx, "missing")
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
}

func TestSetQuantity_Replaces(t *testing.T) {
	svc, _ := newMemoryService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, bookA(), 2)
	require.NoError(t, err)

	cart, err := svc.SetQuantity(ctx, "book-001", 7)
	require.NoError(t, err)

	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 7, cart.Lines[0].Quantity)
}

func TestSetQuantity_FloorRemovesLine(t *testing.T) {
	for _, quantity := range []int{0, -5} {
		svc, _ := newMemoryService()
		ctx := context.Background()

		_, err := svc.AddItem(ctx, bookA(), 2)
		require.NoError(t, err)

		cart, err := svc.SetQuantity(ctx, "book-001", quantity)
		require.NoError(t, err)

		assert.Empty(t, cart.Lines, "quantity %d should remove the line", quantity)
	}
}

func TestSetQuantity_UnknownIDDoesNotPersist(t *testing.T) {
	store := new(mockCartStore)
	svc := newTestService(store)
	ctx := context.Background()

	store.On("Load", ctx).Return([]domain.CartLine{
		{Product: bookA(), Quantity: 1},
	}, nil)

	cart, err := svc.SetQuantity(ctx, "missing", 4)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)

	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestClear(t *testing.T) {
	svc, _ := newMemoryService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, bookA(), 3)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx))

	cart := svc.GetCart(ctx)
	assert.Empty(t, cart.Lines)
}

func TestItemCountAndTotal(t *testing.T) {
	svc, _ := newMemoryService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, bookA(), 2) // 20 * 0.75 * 2 = 30
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, bookB(), 1) // 10 * 1 = 10
	require.NoError(t, err)

	assert.Equal(t, 3, svc.ItemCount(ctx))
	assert.InDelta(t, 40.0, svc.Total(ctx), 1e-9)
}

func TestRoundTrip_FreshLoadSeesPersistedCart(t *testing.T) {
	slot := memory.NewSlot()
	repo := repository.NewCartRepository(slot, newTestLogger())
	ctx := context.Background()

	first := newTestService(repo)
	_, err := first.AddItem(ctx, bookA(), 2)
	require.NoError(t, err)
	_, err = first.AddItem(ctx, bookB(), 1)
	require.NoError(t, err)

	// A fresh service over the same slot simulates a reload.
	second := newTestService(repository.NewCartRepository(slot, newTestLogger()))
	cart := second.GetCart(ctx)

	require.Len(t, cart.Lines, 2)
	assert.Equal(t, "book-001", cart.Lines[0].Product.ID)
	assert.Equal(t, 2, cart.Lines[0].Quantity)
	assert.Equal(t, "book-004", cart.Lines[1].Product.ID)
	assert.Equal(t, 1, cart.Lines[1].Quantity)
}

func TestCheckout_ReturnsSummaryWithoutClearing(t *testing.T) {
	svc, _ := newMemoryService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, bookA(), 2)
	require.NoError(t, err)

	summary := svc.Checkout(ctx)
	assert.Equal(t, 2, summary.ItemCount)
	assert.InDelta(t, 30.0, summary.Total, 1e-9)

	// Checkout is a visual affordance only; the cart survives it.
	assert.Len(t, svc.GetCart(ctx).Lines, 1)
}
