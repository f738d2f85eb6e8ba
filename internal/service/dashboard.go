package service

import (
	"context"
	"errors"
	"math"
	"time"

	"behaviorbank-backend/internal/domain"
	"behaviorbank-backend/internal/repository"
)

// Valuation is the dashboard's display estimate. It is not the figure
// withdrawals are checked against; the withdrawal engine uses the
// per-deposit vesting schedule instead. The two schedules diverge on
// purpose (optimistic display vs. authoritative gate); do not unify
// them without a product decision.
type Valuation struct {
	EstimatedValue int64 `json:"estimated_value"`
	InterestRate   int32 `json:"interest_rate"`
	IsPenalty      bool  `json:"is_penalty"`
}

// Dashboard is the child-facing overview.
type Dashboard struct {
	User           *domain.User              `json:"user"`
	Account        *domain.Account           `json:"account,omitempty"`
	CurrentPoints  int32                     `json:"current_points"`
	Valuation      Valuation                 `json:"valuation"`
	RecentActivity []domain.PointTransaction `json:"recent_activity"`
}

// recentActivityLimit caps the dashboard feed.
const recentActivityLimit = 10

type dashboardService struct {
	accountRepo repository.AccountRepository
	ledgerRepo  repository.LedgerRepository
	userRepo    repository.UserRepository
	ledgerSvc   LedgerService
	now         func() time.Time
}

func NewDashboardService(accountRepo repository.AccountRepository, ledgerRepo repository.LedgerRepository, userRepo repository.UserRepository, ledgerSvc LedgerService) DashboardService {
	return &dashboardService{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		userRepo:    userRepo,
		ledgerSvc:   ledgerSvc,
		now:         time.Now,
	}
}

// ComputeValuation applies the dashboard's elapsed-time schedule:
// months are counted as ceil over flat 30-day months since the account
// opened, interest starts at 20% after 6 months and grows 10% per
// further 6-month period, and a negative point balance forfeits
// interest and halves the credited principal.
func ComputeValuation(depositAmount float64, currentPoints int32, vestingStart, now time.Time) Valuation {
	elapsed := now.Sub(vestingStart)
	if elapsed < 0 {
		elapsed = -elapsed
	}
	monthsElapsed := int32(math.Ceil(elapsed.Hours() / (24 * 30)))

	var interestRate int32
	if monthsElapsed >= 6 {
		interestRate = 20 + 10*((monthsElapsed-6)/6)
	}

	if currentPoints < 0 {
		return Valuation{
			EstimatedValue: int64(math.Round(depositAmount * 0.5)),
			InterestRate:   0,
			IsPenalty:      true,
		}
	}

	base := depositAmount + float64(currentPoints)
	return Valuation{
		EstimatedValue: int64(math.Round(base * (1 + float64(interestRate)/100))),
		InterestRate:   interestRate,
	}
}

func (s *dashboardService) GetDashboard(ctx context.Context, userID int32) (*Dashboard, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	currentPoints, err := s.ledgerSvc.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}

	recent, err := s.ledgerRepo.ListRecent(ctx, userID, recentActivityLimit)
	if err != nil {
		return nil, err
	}

	dashboard := &Dashboard{
		User:           user,
		CurrentPoints:  currentPoints,
		RecentActivity: recent,
	}

	account, err := s.accountRepo.GetByUserID(ctx, userID)
	if errors.Is(err, domain.ErrAccountNotFound) {
		// No cash account yet; points alone still show.
		return dashboard, nil
	}
	if err != nil {
		return nil, err
	}

	dashboard.Account = account
	dashboard.Valuation = ComputeValuation(account.DepositAmount, currentPoints, account.VestingStart, s.now())
	return dashboard, nil
}
