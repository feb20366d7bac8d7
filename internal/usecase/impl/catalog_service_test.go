package impl

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helios/internal/domain/entity"
	domainerrors "helios/internal/domain/errors"
	"helios/internal/errors"
)

// gatedProductRepo blocks List calls until released, so tests can hold a
// fetch open while more callers arrive.
type gatedProductRepo struct {
	mu       sync.Mutex
	calls    int
	started  chan struct{}
	release  chan struct{}
	products []*entity.Product
	err      error
}

func newGatedProductRepo(products []*entity.Product, err error) *gatedProductRepo {
	return &gatedProductRepo{
		started:  make(chan struct{}, 16),
		release:  make(chan struct{}),
		products: products,
		err:      err,
	}
}

func (r *gatedProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()

	r.started <- struct{}{}
	<-r.release

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.products, r.err
}

func (r *gatedProductRepo) UpsertAll(_ context.Context, _ []*entity.Product) error { return nil }

func (r *gatedProductRepo) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.calls
}

func newTestCatalogService(repo *gatedProductRepo) *catalogService {
	return &catalogService{
		productRepo:     repo,
		freshnessWindow: 5 * time.Minute,
		logger:          discardLogger(),
	}
}

func testProducts() []*entity.Product {
	return []*entity.Product{
		{ID: "5kva-inverter-system", Title: "5kVA Inverter System", Price: 5800000, Category: entity.CategorySolar},
		{ID: "cctv-installation", Title: "CCTV Installation", Price: 450000, Category: entity.CategoryCCTV},
	}
}

func TestCatalogService_ConcurrentCallersShareOneFetch(t *testing.T) {
	repo := newGatedProductRepo(testProducts(), nil)
	srv := newTestCatalogService(repo)

	const callers = 8
	results := make(chan int, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			products, err := srv.FetchProducts(context.Background())
			assert.NoError(t, err)
			results <- len(products)
		}()
	}

	// Wait for the single backend read to start, give the remaining callers
	// time to queue behind it, then let it finish.
	<-repo.started
	time.Sleep(50 * time.Millisecond)
	close(repo.release)
	wg.Wait()

	assert.Equal(t, 1, repo.callCount())
	for i := 0; i < callers; i++ {
		assert.Equal(t, 2, <-results)
	}
}

func TestCatalogService_ServesFromCacheWithinFreshnessWindow(t *testing.T) {
	repo := newGatedProductRepo(testProducts(), nil)
	close(repo.release)
	srv := newTestCatalogService(repo)

	for i := 0; i < 3; i++ {
		products, err := srv.FetchProducts(context.Background())
		require.NoError(t, err)
		assert.Len(t, products, 2)
	}

	assert.Equal(t, 1, repo.callCount())
}

func TestCatalogService_InvalidateForcesBackendRead(t *testing.T) {
	repo := newGatedProductRepo(testProducts(), nil)
	close(repo.release)
	srv := newTestCatalogService(repo)

	_, err := srv.FetchProducts(context.Background())
	require.NoError(t, err)

	srv.Invalidate()

	_, err = srv.FetchProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.callCount())
}

func TestCatalogService_ServesStaleSnapshotOnBackendFailure(t *testing.T) {
	repo := newGatedProductRepo(testProducts(), nil)
	close(repo.release)
	srv := newTestCatalogService(repo)

	_, err := srv.FetchProducts(context.Background())
	require.NoError(t, err)

	// Backend starts failing; the cached snapshot must keep being served.
	repo.mu.Lock()
	repo.err = errors.New("connection refused")
	repo.mu.Unlock()
	srv.Invalidate()

	products, err := srv.FetchProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 2)

	state := srv.State()
	assert.NotEmpty(t, state.Error)
	// The raw backend error must not leak into the state.
	assert.NotContains(t, state.Error, "connection refused")
}

func TestCatalogService_FailsWhenNothingCachedAndBackendDown(t *testing.T) {
	repo := newGatedProductRepo(nil, errors.New("connection refused"))
	close(repo.release)
	srv := newTestCatalogService(repo)

	_, err := srv.FetchProducts(context.Background())

	assert.ErrorIs(t, err, domainerrors.ErrNetworkUnavailable)
}

func TestCatalogService_StateReportsLoadingDuringFetch(t *testing.T) {
	repo := newGatedProductRepo(testProducts(), nil)
	srv := newTestCatalogService(repo)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = srv.FetchProducts(context.Background())
	}()

	<-repo.started
	assert.True(t, srv.State().IsLoading)

	close(repo.release)
	<-done
	assert.False(t, srv.State().IsLoading)
}
