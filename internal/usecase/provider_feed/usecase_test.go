package provider_feed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WashRequestService/internal/domain"
	providerRepo "github.com/m04kA/SMC-WashRequestService/internal/infra/storage/provider"
)

type fakeRequestRepo struct {
	pending []*domain.WashRequest
	listErr error

	sweepErr   error
	sweepCalls int
}

func (f *fakeRequestRepo) ListPending(ctx context.Context) ([]*domain.WashRequest, error) {
	return f.pending, f.listErr
}

func (f *fakeRequestRepo) CancelOverdue(ctx context.Context, now time.Time, scope domain.SweepScope) (int64, error) {
	f.sweepCalls++
	return 0, f.sweepErr
}

type fakeDeclineRepo struct {
	own []int64
	any []int64
}

func (f *fakeDeclineRepo) ListRequestIDsByProvider(ctx context.Context, providerID int64) ([]int64, error) {
	return f.own, nil
}

func (f *fakeDeclineRepo) ListDeclinedRequestIDs(ctx context.Context, washRequestIDs []int64) ([]int64, error) {
	return f.any, nil
}

type fakeProviderRepo struct {
	provider *domain.Provider
	err      error
}

func (f *fakeProviderRepo) GetByID(ctx context.Context, id int64) (*domain.Provider, error) {
	return f.provider, f.err
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newFeedUseCase(requests *fakeRequestRepo, declines *fakeDeclineRepo, providers *fakeProviderRepo) *UseCase {
	return NewUseCase(
		requests,
		declines,
		providers,
		fixedTime{t: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)},
		nopLogger{},
	)
}

func TestExecute_FiltersAndFlags(t *testing.T) {
	tomorrow := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)
	requests := &fakeRequestRepo{pending: []*domain.WashRequest{
		makeRequest(1, tomorrow, domain.ServiceExterior),
		makeRequest(2, tomorrow, domain.ServiceExterior), // отклонена самим исполнителем
		makeRequest(3, tomorrow, domain.ServiceInterior), // услуга вне перечня
		makeRequest(4, tomorrow, domain.ServiceExterior), // отклонена другим исполнителем
	}}
	declines := &fakeDeclineRepo{own: []int64{2}, any: []int64{2, 4}}
	providers := &fakeProviderRepo{provider: &domain.Provider{
		ID:       42,
		Services: []domain.ServiceType{domain.ServiceExterior},
	}}

	uc := newFeedUseCase(requests, declines, providers)

	resp, err := uc.Execute(context.Background(), &Request{ProviderID: 42})

	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, int64(2), resp.Total)
	assert.Equal(t, int64(1), resp.Items[0].ID)
	assert.False(t, resp.Items[0].Recycled)
	assert.Equal(t, int64(4), resp.Items[1].ID)
	assert.True(t, resp.Items[1].Recycled)
	assert.Equal(t, 1, requests.sweepCalls)
}

func TestExecute_ProviderNotFound(t *testing.T) {
	uc := newFeedUseCase(
		&fakeRequestRepo{},
		&fakeDeclineRepo{},
		&fakeProviderRepo{err: providerRepo.ErrProviderNotFound},
	)

	_, err := uc.Execute(context.Background(), &Request{ProviderID: 42})

	assert.ErrorIs(t, err, ErrProviderNotFound)
}

func TestExecute_SweepFailureDoesNotBlockFeed(t *testing.T) {
	tomorrow := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)
	requests := &fakeRequestRepo{
		pending:  []*domain.WashRequest{makeRequest(1, tomorrow, domain.ServiceExterior)},
		sweepErr: errors.New("sweep boom"),
	}
	providers := &fakeProviderRepo{provider: &domain.Provider{
		ID:       42,
		Services: []domain.ServiceType{domain.ServiceExterior},
	}}

	uc := newFeedUseCase(requests, &fakeDeclineRepo{}, providers)

	resp, err := uc.Execute(context.Background(), &Request{ProviderID: 42})

	require.NoError(t, err)
	assert.Len(t, resp.Items, 1)
}

func TestExecute_InvalidProviderID(t *testing.T) {
	uc := newFeedUseCase(&fakeRequestRepo{}, &fakeDeclineRepo{}, &fakeProviderRepo{})

	_, err := uc.Execute(context.Background(), &Request{ProviderID: 0})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
