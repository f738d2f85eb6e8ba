package unit

import (
	"context"

	"behaviorbank-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByName(ctx context.Context, name string) (*domain.User, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockAccountRepo
type MockAccountRepo struct {
	mock.Mock
}

func (m *MockAccountRepo) Create(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}
func (m *MockAccountRepo) GetByID(ctx context.Context, id int32) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountRepo) GetByUserID(ctx context.Context, userID int32) (*domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountRepo) List(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountRepo) AddToDepositAmount(ctx context.Context, accountID int32, delta float64) error {
	args := m.Called(ctx, accountID, delta)
	return args.Error(0)
}
func (m *MockAccountRepo) UpdateStatus(ctx context.Context, accountID int32, status domain.AccountStatus) error {
	args := m.Called(ctx, accountID, status)
	return args.Error(0)
}

// MockDepositRepo
type MockDepositRepo struct {
	mock.Mock
}

func (m *MockDepositRepo) Create(ctx context.Context, deposit *domain.Deposit) error {
	args := m.Called(ctx, deposit)
	return args.Error(0)
}
func (m *MockDepositRepo) GetByID(ctx context.Context, id int32) (*domain.Deposit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deposit), args.Error(1)
}
func (m *MockDepositRepo) ListByAccount(ctx context.Context, accountID int32) ([]domain.Deposit, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).([]domain.Deposit), args.Error(1)
}
func (m *MockDepositRepo) ListByAccountAndStatus(ctx context.Context, accountID int32, status domain.DepositStatus) ([]domain.Deposit, error) {
	args := m.Called(ctx, accountID, status)
	return args.Get(0).([]domain.Deposit), args.Error(1)
}
func (m *MockDepositRepo) ListByStatus(ctx context.Context, status domain.DepositStatus) ([]domain.Deposit, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.Deposit), args.Error(1)
}
func (m *MockDepositRepo) UpdateStatus(ctx context.Context, depositID int32, from, to domain.DepositStatus) error {
	args := m.Called(ctx, depositID, from, to)
	return args.Error(0)
}

// MockLedgerRepo
type MockLedgerRepo struct {
	mock.Mock
}

func (m *MockLedgerRepo) AppendTransaction(ctx context.Context, tx *domain.PointTransaction, prevTxID int64) error {
	args := m.Called(ctx, tx, prevTxID)
	return args.Error(0)
}
func (m *MockLedgerRepo) GetLatest(ctx context.Context, userID int32) (int64, int32, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Get(1).(int32), args.Error(2)
}
func (m *MockLedgerRepo) ListTransactions(ctx context.Context, userID int32, filter domain.TransactionFilter, page, limit int32) ([]domain.PointTransaction, int32, error) {
	args := m.Called(ctx, userID, filter, page, limit)
	return args.Get(0).([]domain.PointTransaction), args.Get(1).(int32), args.Error(2)
}
func (m *MockLedgerRepo) ListRecent(ctx context.Context, userID int32, limit int32) ([]domain.PointTransaction, error) {
	args := m.Called(ctx, userID, limit)
	return args.Get(0).([]domain.PointTransaction), args.Error(1)
}

// MockWithdrawalRepo
type MockWithdrawalRepo struct {
	mock.Mock
}

func (m *MockWithdrawalRepo) Create(ctx context.Context, w *domain.Withdrawal) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}
func (m *MockWithdrawalRepo) GetByID(ctx context.Context, id int32) (*domain.Withdrawal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Withdrawal), args.Error(1)
}
func (m *MockWithdrawalRepo) List(ctx context.Context, status domain.WithdrawalStatus, requestedBy int32) ([]domain.Withdrawal, error) {
	args := m.Called(ctx, status, requestedBy)
	return args.Get(0).([]domain.Withdrawal), args.Error(1)
}
func (m *MockWithdrawalRepo) Process(ctx context.Context, id int32, status domain.WithdrawalStatus, processedBy int32, notes string) error {
	args := m.Called(ctx, id, status, processedBy, notes)
	return args.Error(0)
}
func (m *MockWithdrawalRepo) CountPending(ctx context.Context) (int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(int32), args.Error(1)
}

// MockAuditRepo
type MockAuditRepo struct {
	mock.Mock
}

func (m *MockAuditRepo) Create(ctx context.Context, entry *domain.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockAuditRepo) ListByActor(ctx context.Context, actorID int32, limit int32) ([]domain.AuditEntry, error) {
	args := m.Called(ctx, actorID, limit)
	return args.Get(0).([]domain.AuditEntry), args.Error(1)
}

// MockEmailSvc
type MockEmailSvc struct {
	mock.Mock
}

func (m *MockEmailSvc) SendWithdrawalDecisionNotice(ctx context.Context, childName string, amount float64, status domain.WithdrawalStatus, notes string) error {
	args := m.Called(ctx, childName, amount, status, notes)
	return args.Error(0)
}
func (m *MockEmailSvc) SendPendingWithdrawalReminder(ctx context.Context, pendingCount int32) error {
	args := m.Called(ctx, pendingCount)
	return args.Error(0)
}

// noopAudit satisfies the audit dependency without expectations; the
// audit trail is fire-and-forget and not what these tests assert on.
type noopAudit struct{}

func (noopAudit) Record(ctx context.Context, actorID int32, action string, targetUserID *int32, details map[string]string) {
}
func (noopAudit) ListByActor(ctx context.Context, actorID int32, limit int32) ([]domain.AuditEntry, error) {
	return nil, nil
}
