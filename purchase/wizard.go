package purchase

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dakshininfra/purchase-api/models"
)

// Step is one position in the strictly linear purchase flow. No branching,
// no skipping.
type Step int

const (
	StepPlanSelection Step = iota
	StepUserInfo
	StepKYC
	StepPayment
	StepConfirmation
)

var stepNames = [...]string{"plan-selection", "user-info", "kyc", "payment", "confirmation"}

func (s Step) String() string {
	if s < StepPlanSelection || s > StepConfirmation {
		return fmt.Sprintf("step(%d)", int(s))
	}
	return stepNames[s]
}

const MaxAccounts = 5

var (
	ErrWizardComplete  = errors.New("wizard already completed")
	ErrAwaitingPayment = errors.New("waiting for the payment gateway redirect")
	ErrNoPlanSelected  = errors.New("no plan selected")
	ErrNotAtPayment    = errors.New("wizard is not at the payment step")
	ErrMaxAccounts     = errors.New("a purchase allows at most five account holders")
	ErrPrimaryAccount  = errors.New("the primary account cannot be removed")
	ErrAccountNotFound = errors.New("account not found in this session")
)

// Wizard drives one purchase flow through its five steps. Exactly one wizard
// exists per session; state is in memory for the session's lifetime and is
// not persisted across restarts.
type Wizard struct {
	mu       sync.Mutex
	step     Step
	plan     *PlanSelection
	accounts []*models.Account
}

// NewWizard starts a flow at plan-selection with the primary account already
// created.
func NewWizard(primaryID string) *Wizard {
	return &Wizard{
		step: StepPlanSelection,
		accounts: []*models.Account{
			{ID: primaryID, Type: models.AccountPrimary, Info: models.UserInfo{UserType: models.UserIndividual}},
		},
	}
}

func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

func (w *Wizard) Plan() *PlanSelection {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.plan
}

// SetPlan replaces the current selection. Changing the plan after the flow
// has moved on is allowed only by stepping back first.
func (w *Wizard) SetPlan(p *PlanSelection) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step != StepPlanSelection {
		return fmt.Errorf("plan can only change at %s (currently %s)", StepPlanSelection, w.step)
	}
	w.plan = p
	return nil
}

// Accounts returns the session's account holders, primary first.
func (w *Wizard) Accounts() []*models.Account {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]*models.Account, len(w.accounts))
	copy(out, w.accounts)
	return out
}

func (w *Wizard) Account(id string) (*models.Account, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, acc := range w.accounts {
		if acc.ID == id {
			return acc, true
		}
	}
	return nil, false
}

// AddJoint registers a joint holder. At most four may join the primary.
func (w *Wizard) AddJoint(acc *models.Account) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.accounts) >= MaxAccounts {
		return ErrMaxAccounts
	}
	acc.Type = models.AccountJoint
	w.accounts = append(w.accounts, acc)
	return nil
}

// UpdateAccount applies form edits. The account's type is fixed at creation.
func (w *Wizard) UpdateAccount(id string, info models.UserInfo, termsAccepted bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, acc := range w.accounts {
		if acc.ID == id {
			acc.Info = info
			acc.TermsAccepted = termsAccepted
			return nil
		}
	}
	return ErrAccountNotFound
}

// SetVerified records the verification flags returned by the document
// verification service.
func (w *Wizard) SetVerified(id string, v models.Verification) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, acc := range w.accounts {
		if acc.ID == id {
			acc.Verified = v
			return nil
		}
	}
	return ErrAccountNotFound
}

// RemoveAccount drops a joint holder. The primary stays for the session's
// lifetime.
func (w *Wizard) RemoveAccount(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, acc := range w.accounts {
		if acc.ID != id {
			continue
		}
		if acc.Type == models.AccountPrimary {
			return ErrPrimaryAccount
		}
		w.accounts = append(w.accounts[:i], w.accounts[i+1:]...)
		return nil
	}
	return ErrAccountNotFound
}

// gate returns the rule set outcome for the current step. Rules compose with
// AND semantics; the first failure is reported.
func (w *Wizard) gate() error {
	switch w.step {
	case StepPlanSelection:
		if w.plan == nil {
			return ErrNoPlanSelected
		}
		return ValidatePaymentAmount(w.plan)
	case StepUserInfo:
		return ValidateUserInfo(w.accounts)
	case StepKYC:
		return ValidateKYC(w.accounts)
	case StepPayment:
		// payment -> confirmation is driven by the gateway redirect, never
		// by Next.
		return ErrAwaitingPayment
	case StepConfirmation:
		return ErrWizardComplete
	}
	return nil
}

// CanAdvance reports whether Next would succeed, without moving. The UI uses
// this to disable the forward control rather than surface an error state.
func (w *Wizard) CanAdvance() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.gate()
}

// Next advances one step if the current step's validation rules pass. On
// failure the wizard stays put and the failing rule's error is returned.
func (w *Wizard) Next() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.gate(); err != nil {
		return err
	}
	w.step++
	return nil
}

// Prev moves one step back, preserving all entered data. At the first step it
// is a no-op; the terminal step cannot be left.
func (w *Wizard) Prev() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step == StepConfirmation {
		return ErrWizardComplete
	}
	if w.step > StepPlanSelection {
		w.step--
	}
	return nil
}

// CompletePayment is the external callback path: the gateway redirect landed,
// so the flow moves from payment to its terminal step.
func (w *Wizard) CompletePayment() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step != StepPayment {
		return ErrNotAtPayment
	}
	w.step = StepConfirmation
	return nil
}
