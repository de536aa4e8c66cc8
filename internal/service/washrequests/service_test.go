package washrequests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WashRequestService/internal/domain"
	washrequestRepo "github.com/m04kA/SMC-WashRequestService/internal/infra/storage/washrequest"
	"github.com/m04kA/SMC-WashRequestService/internal/service/washrequests/models"
	"github.com/m04kA/SMC-WashRequestService/pkg/ptr"
)

type fakeRequestRepo struct {
	requests map[int64]*domain.WashRequest

	startErr     error
	completeErr  error
	releaseErr   error
	cancelErr    error
	deleteErr    error
	invoiceErr   error
	listByClient []*domain.WashRequest
	listErr      error

	sweepCount int64
	sweepErr   error
	sweepCalls []domain.SweepScope
	onSweep    func()

	released  []int64
	cancelled []int64
	deleted   []int64
	started   []int64
	completed []int64
	invoices  map[int64]string
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{
		requests: make(map[int64]*domain.WashRequest),
		invoices: make(map[int64]string),
	}
}

func (f *fakeRequestRepo) GetByID(ctx context.Context, id int64) (*domain.WashRequest, error) {
	request, ok := f.requests[id]
	if !ok {
		return nil, washrequestRepo.ErrRequestNotFound
	}
	return request, nil
}

func (f *fakeRequestRepo) ListByClient(ctx context.Context, clientCompanyID int64, status *domain.WashRequestStatus) ([]*domain.WashRequest, error) {
	return f.listByClient, f.listErr
}

func (f *fakeRequestRepo) ListByProvider(ctx context.Context, providerID int64) ([]*domain.WashRequest, error) {
	return f.listByClient, f.listErr
}

func (f *fakeRequestRepo) Start(ctx context.Context, id int64, providerID int64) error {
	if f.startErr != nil {
		return f.startErr
	}
	f.started = append(f.started, id)
	return nil
}

func (f *fakeRequestRepo) Complete(ctx context.Context, id int64, providerID int64) error {
	if f.completeErr != nil {
		return f.completeErr
	}
	f.completed = append(f.completed, id)
	return nil
}

func (f *fakeRequestRepo) Release(ctx context.Context, id int64, providerID int64) error {
	if f.releaseErr != nil {
		return f.releaseErr
	}
	f.released = append(f.released, id)
	return nil
}

func (f *fakeRequestRepo) CancelByClient(ctx context.Context, id int64, clientCompanyID int64) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.cancelled = append(f.cancelled, id)
	return nil
}

func (f *fakeRequestRepo) SetInvoiceURL(ctx context.Context, id int64, providerID int64, invoiceURL string) error {
	if f.invoiceErr != nil {
		return f.invoiceErr
	}
	f.invoices[id] = invoiceURL
	return nil
}

func (f *fakeRequestRepo) Delete(ctx context.Context, id int64, clientCompanyID int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRequestRepo) CancelOverdue(ctx context.Context, now time.Time, scope domain.SweepScope) (int64, error) {
	f.sweepCalls = append(f.sweepCalls, scope)
	if f.onSweep != nil {
		f.onSweep()
	}
	return f.sweepCount, f.sweepErr
}

type fakeDeclineRepo struct {
	declines  map[[2]int64]bool
	createErr error
	created   [][2]int64
}

func newFakeDeclineRepo() *fakeDeclineRepo {
	return &fakeDeclineRepo{declines: make(map[[2]int64]bool)}
}

func (f *fakeDeclineRepo) Create(ctx context.Context, providerID, washRequestID int64) error {
	if f.createErr != nil {
		return f.createErr
	}
	key := [2]int64{providerID, washRequestID}
	f.declines[key] = true
	f.created = append(f.created, key)
	return nil
}

func (f *fakeDeclineRepo) Exists(ctx context.Context, providerID, washRequestID int64) (bool, error) {
	return f.declines[[2]int64{providerID, washRequestID}], nil
}

type fakeNotifier struct {
	providerCancelled []int64
}

func (f *fakeNotifier) ProviderCancelled(request *domain.WashRequest, providerID int64) {
	f.providerCancelled = append(f.providerCancelled, request.ID)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

func newTestService(repo *fakeRequestRepo, declines *fakeDeclineRepo, notifier *fakeNotifier) *Service {
	svc := NewService(repo, declines, notifier, nopLogger{})
	svc.timeProvider = fixedTime{t: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)}
	return svc
}

func storedRequest(id, clientID int64, status domain.WashRequestStatus, providerID *int64) *domain.WashRequest {
	return &domain.WashRequest{
		ID:              id,
		ClientCompanyID: clientID,
		ProviderID:      providerID,
		Address:         "Москва, ул. Ленина, 1",
		DateTime:        time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC),
		Status:          status,
	}
}

func TestGetByID_Access(t *testing.T) {
	repo := newFakeRequestRepo()
	repo.requests[1] = storedRequest(1, 10, domain.StatusAccepted, ptr.Ptr(int64(42)))
	svc := newTestService(repo, newFakeDeclineRepo(), &fakeNotifier{})

	// Владелец видит заявку
	resp, err := svc.GetByID(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)

	// Привязанный исполнитель видит заявку
	_, err = svc.GetByID(context.Background(), 1, 42)
	assert.NoError(t, err)

	// Посторонний не видит
	_, err = svc.GetByID(context.Background(), 1, 99)
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Несуществующая заявка
	_, err = svc.GetByID(context.Background(), 2, 10)
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestGetByID_SweepsOverdueRequest(t *testing.T) {
	// Просроченная pending заявка закрывается sweep-ом и при точечном чтении
	repo := newFakeRequestRepo()
	overdue := storedRequest(1, 10, domain.StatusPending, nil)
	overdue.DateTime = time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	repo.requests[1] = overdue
	repo.onSweep = func() {
		overdue.Status = domain.StatusCancelled
	}
	svc := newTestService(repo, newFakeDeclineRepo(), &fakeNotifier{})

	resp, err := svc.GetByID(context.Background(), 1, 10)

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	require.Len(t, repo.sweepCalls, 1)
	require.NotNil(t, repo.sweepCalls[0].ClientCompanyID)
	assert.Equal(t, int64(10), *repo.sweepCalls[0].ClientCompanyID)
}

func TestGetByID_FreshRequestDoesNotSweep(t *testing.T) {
	repo := newFakeRequestRepo()
	repo.requests[1] = storedRequest(1, 10, domain.StatusPending, nil)
	svc := newTestService(repo, newFakeDeclineRepo(), &fakeNotifier{})

	resp, err := svc.GetByID(context.Background(), 1, 10)

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Empty(t, repo.sweepCalls)
}

func TestListByClient_SweepsClientScope(t *testing.T) {
	repo := newFakeRequestRepo()
	repo.listByClient = []*domain.WashRequest{
		storedRequest(1, 10, domain.StatusPending, nil),
	}
	svc := newTestService(repo, newFakeDeclineRepo(), &fakeNotifier{})

	resp, err := svc.ListByClient(context.Background(), &models.ListClientRequestsRequest{ClientCompanyID: 10})

	require.NoError(t, err)
	assert.Len(t, resp.Requests, 1)
	require.Len(t, repo.sweepCalls, 1)
	require.NotNil(t, repo.sweepCalls[0].ClientCompanyID)
	assert.Equal(t, int64(10), *repo.sweepCalls[0].ClientCompanyID)
	assert.Nil(t, repo.sweepCalls[0].ProviderID)
}

func TestListByClient_SweepFailureDoesNotBlockRead(t *testing.T) {
	repo := newFakeRequestRepo()
	repo.sweepErr = errors.New("sweep boom")
	repo.listByClient = []*domain.WashRequest{
		storedRequest(1, 10, domain.StatusCompleted, ptr.Ptr(int64(42))),
	}
	svc := newTestService(repo, newFakeDeclineRepo(), &fakeNotifier{})

	resp, err := svc.ListByClient(context.Background(), &models.ListClientRequestsRequest{ClientCompanyID: 10})

	require.NoError(t, err)
	assert.Len(t, resp.Requests, 1)
}

func TestListByClient_InvalidStatus(t *testing.T) {
	svc := newTestService(newFakeRequestRepo(), newFakeDeclineRepo(), &fakeNotifier{})

	_, err := svc.ListByClient(context.Background(), &models.ListClientRequestsRequest{
		ClientCompanyID: 10,
		Status:          ptr.Ptr("frozen"),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListByProvider_SweepsProviderScope(t *testing.T) {
	repo := newFakeRequestRepo()
	svc := newTestService(repo, newFakeDeclineRepo(), &fakeNotifier{})

	_, err := svc.ListByProvider(context.Background(), 42)

	require.NoError(t, err)
	require.Len(t, repo.sweepCalls, 1)
	require.NotNil(t, repo.sweepCalls[0].ProviderID)
	assert.Equal(t, int64(42), *repo.sweepCalls[0].ProviderID)
}

func TestStart(t *testing.T) {
	tests := []struct {
		name     string
		request  *domain.WashRequest
		caller   int64
		wantErr  error
		wantCall bool
	}{
		{
			name:     "bound provider starts accepted request",
			request:  storedRequest(1, 10, domain.StatusAccepted, ptr.Ptr(int64(42))),
			caller:   42,
			wantCall: true,
		},
		{
			name:    "unbound provider rejected",
			request: storedRequest(1, 10, domain.StatusAccepted, ptr.Ptr(int64(42))),
			caller:  99,
			wantErr: ErrAccessDenied,
		},
		{
			name:    "pending request cannot be started",
			request: storedRequest(1, 10, domain.StatusPending, nil),
			caller:  42,
			wantErr: ErrAccessDenied,
		},
		{
			name:    "in_progress request cannot be started again",
			request: storedRequest(1, 10, domain.StatusInProgress, ptr.Ptr(int64(42))),
			caller:  42,
			wantErr: ErrInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRequestRepo()
			repo.requests[1] = tt.request
			svc := newTestService(repo, newFakeDeclineRepo(), &fakeNotifier{})

			err := svc.Start(context.Background(), 1, tt.caller)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, repo.started)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []int64{1}, repo.started)
		})
	}
}

func TestComplete(t *testing.T) {
	repo := newFakeRequestRepo()
	repo.requests[1] = storedRequest(1, 10, domain.StatusInProgress, ptr.Ptr(int64(42)))
	svc := newTestService(repo, newFakeDeclineRepo(), &fakeNotifier{})

	require.NoError(t, svc.Complete(context.Background(), 1, 42))
	assert.Equal(t, []int64{1}, repo.completed)

	// Принятую, но не начатую заявку завершить нельзя
	repo.requests[2] = storedRequest(2, 10, domain.StatusAccepted, ptr.Ptr(int64(42)))
	assert.ErrorIs(t, svc.Complete(context.Background(), 2, 42), ErrInvalidTransition)
}

func TestComplete_ConcurrentConflict(t *testing.T) {
	repo := newFakeRequestRepo()
	repo.requests[1] = storedRequest(1, 10, domain.StatusInProgress, ptr.Ptr(int64(42)))
	repo.completeErr = washrequestRepo.ErrStateConflict
	svc := newTestService(repo, newFakeDeclineRepo(), &fakeNotifier{})

	err := svc.Complete(context.Background(), 1, 42)

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancelByProvider(t *testing.T) {
	repo := newFakeRequestRepo()
	repo.requests[1] = storedRequest(1, 10, domain.StatusAccepted, ptr.Ptr(int64(42)))
	declines := newFakeDeclineRepo()
	notifier := &fakeNotifier{}
	svc := newTestService(repo, declines, notifier)

	err := svc.CancelByProvider(context.Background(), 1, 42)

	require.NoError(t, err)
	// Отказ записан до освобождения заявки
	assert.Equal(t, [][2]int64{{42, 1}}, declines.created)
	assert.Equal(t, []int64{1}, repo.released)
	assert.Equal(t, []int64{1}, notifier.providerCancelled)
}

func TestCancelByProvider_RetryAfterPartialFailure(t *testing.T) {
	// Заявка уже вернулась в pending, отказ уже записан: повтор успешен
	repo := newFakeRequestRepo()
	repo.requests[1] = storedRequest(1, 10, domain.StatusPending, nil)
	declines := newFakeDeclineRepo()
	declines.declines[[2]int64{42, 1}] = true
	notifier := &fakeNotifier{}
	svc := newTestService(repo, declines, notifier)

	err := svc.CancelByProvider(context.Background(), 1, 42)

	require.NoError(t, err)
	assert.Empty(t, repo.released)
	assert.Empty(t, notifier.providerCancelled)
}

func TestCancelByProvider_NotBound(t *testing.T) {
	repo := newFakeRequestRepo()
	repo.requests[1] = storedRequest(1, 10, domain.StatusAccepted, ptr.Ptr(int64(42)))
	svc := newTestService(repo, newFakeDeclineRepo(), &fakeNotifier{})

	err := svc.CancelByProvider(context.Background(), 1, 99)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestDecline(t *testing.T) {
	repo := newFakeRequestRepo()
	repo.requests[1] = storedRequest(1, 10, domain.StatusPending, nil)
	declines := newFakeDeclineRepo()
	svc := newTestService(repo, declines, &fakeNotifier{})

	require.NoError(t, svc.Decline(context.Background(), 1, 42))
	assert.True(t, declines.declines[[2]int64{42, 1}])

	// Повторный отказ остается успешным no-op
	require.NoError(t, svc.Decline(context.Background(), 1, 42))

	// От принятой заявки отказаться нельзя
	repo.requests[2] = storedRequest(2, 10, domain.StatusAccepted, ptr.Ptr(int64(7)))
	assert.ErrorIs(t, svc.Decline(context.Background(), 2, 42), ErrInvalidTransition)
}

func TestCancelByClient(t *testing.T) {
	repo := newFakeRequestRepo()
	repo.requests[1] = storedRequest(1, 10, domain.StatusAccepted, ptr.Ptr(int64(42)))
	svc := newTestService(repo, newFakeDeclineRepo(), &fakeNotifier{})

	// Чужая заявка
	assert.ErrorIs(t, svc.CancelByClient(context.Background(), 1, 11), ErrAccessDenied)

	// Владелец отменяет
	require.NoError(t, svc.CancelByClient(context.Background(), 1, 10))
	assert.Equal(t, []int64{1}, repo.cancelled)

	// Завершенную заявку отменить нельзя
	repo.requests[2] = storedRequest(2, 10, domain.StatusCompleted, ptr.Ptr(int64(42)))
	assert.ErrorIs(t, svc.CancelByClient(context.Background(), 2, 10), ErrInvalidTransition)
}

func TestDelete(t *testing.T) {
	repo := newFakeRequestRepo()
	repo.requests[1] = storedRequest(1, 10, domain.StatusPending, nil)
	repo.requests[2] = storedRequest(2, 10, domain.StatusCancelled, nil)
	svc := newTestService(repo, newFakeDeclineRepo(), &fakeNotifier{})

	require.NoError(t, svc.Delete(context.Background(), 1, 10))
	assert.Equal(t, []int64{1}, repo.deleted)

	// Терминальную заявку удалить нельзя
	assert.ErrorIs(t, svc.Delete(context.Background(), 2, 10), ErrInvalidTransition)

	// Чужую заявку удалить нельзя
	repo.requests[3] = storedRequest(3, 11, domain.StatusPending, nil)
	assert.ErrorIs(t, svc.Delete(context.Background(), 3, 10), ErrAccessDenied)
}

func TestAttachInvoice(t *testing.T) {
	repo := newFakeRequestRepo()
	repo.requests[1] = storedRequest(1, 10, domain.StatusCompleted, ptr.Ptr(int64(42)))
	svc := newTestService(repo, newFakeDeclineRepo(), &fakeNotifier{})

	err := svc.AttachInvoice(context.Background(), 1, &models.AttachInvoiceRequest{
		ProviderID: 42,
		InvoiceURL: "  https://billing.example.com/invoices/77  ",
	})

	require.NoError(t, err)
	assert.Equal(t, "https://billing.example.com/invoices/77", repo.invoices[1])
}

func TestAttachInvoice_Rejections(t *testing.T) {
	repo := newFakeRequestRepo()
	repo.requests[1] = storedRequest(1, 10, domain.StatusCompleted, ptr.Ptr(int64(42)))
	repo.requests[2] = storedRequest(2, 10, domain.StatusInProgress, ptr.Ptr(int64(42)))
	svc := newTestService(repo, newFakeDeclineRepo(), &fakeNotifier{})

	// Пустая ссылка
	err := svc.AttachInvoice(context.Background(), 1, &models.AttachInvoiceRequest{ProviderID: 42, InvoiceURL: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Не привязанный исполнитель
	err = svc.AttachInvoice(context.Background(), 1, &models.AttachInvoiceRequest{ProviderID: 99, InvoiceURL: "https://x"})
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Незавершенная заявка
	err = svc.AttachInvoice(context.Background(), 2, &models.AttachInvoiceRequest{ProviderID: 42, InvoiceURL: "https://x"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSweepOverdue(t *testing.T) {
	repo := newFakeRequestRepo()
	repo.sweepCount = 3
	svc := newTestService(repo, newFakeDeclineRepo(), &fakeNotifier{})

	cancelled, err := svc.SweepOverdue(context.Background(), domain.SweepScope{})

	require.NoError(t, err)
	assert.Equal(t, int64(3), cancelled)

	// Повторный sweep без просроченных заявок - тоже успех
	repo.sweepCount = 0
	cancelled, err = svc.SweepOverdue(context.Background(), domain.SweepScope{})
	require.NoError(t, err)
	assert.Zero(t, cancelled)
}
