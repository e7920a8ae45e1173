package finance

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// Input is a validated transaction request, as handed over by the boundary
// layer once the caller is authenticated.
type Input struct {
	Amount        Money
	Kind          string // "credit" or "debit"; empty defaults to debit
	Category      string
	Description   string
	PaymentMethod string
	Notes         string
	LoanID        string
	PocketMoney   bool
}

// Summary is the read model of a user's current state.
type Summary struct {
	Balance   Money
	Savings   Money
	Month     Month
	MonthData MonthAggregate
}

// Books is the balance/aggregate engine: the single entry point through which
// ledgers and the fund registry are mutated. Each mutating operation is a
// read-modify-write of on-disk state. Ledger operations serialize per user,
// so different users proceed independently. Fund operations serialize on the
// whole registry: every fund lives in one shared map and one shared file, so
// there is one registry writer at a time.
type Books struct {
	store    *Store
	registry *Registry

	mu         sync.Mutex // guards the user lock map
	userLocks  map[string]*sync.Mutex
	registryMu sync.Mutex // one writer at a time for the shared registry

	// Now is the clock used to stamp transactions. Overridable in tests.
	Now func() time.Time
}

// Open loads the fund registry under the store root and returns ready Books.
func Open(root string) (*Books, error) {
	store := NewStore(root)
	registry, err := LoadRegistry(store.RegistryPath())
	if err != nil {
		return nil, err
	}
	return NewBooks(store, registry), nil
}

// NewBooks assembles an engine from its parts.
func NewBooks(store *Store, registry *Registry) *Books {
	return &Books{
		store:     store,
		registry:  registry,
		userLocks: make(map[string]*sync.Mutex),
		Now:       time.Now,
	}
}

// Store exposes the underlying ledger store for read-only uses.
func (b *Books) Store() *Store { return b.store }

// Registry exposes the fund registry for read-only uses.
func (b *Books) Registry() *Registry { return b.registry }

func (b *Books) userLock(user string) *sync.Mutex {
	b.mu.Lock()
	defer b.mu.Unlock()
	l := b.userLocks[user]
	if l == nil {
		l = &sync.Mutex{}
		b.userLocks[user] = l
	}
	return l
}

func (b *Books) today() Date { return NewDate(b.Now().Date()) }

// Record validates the input, derives the new running balance from the last
// known one, assigns the transaction id, and commits the record together with
// the updated snapshot. It returns the persisted record.
func (b *Books) Record(user string, in Input) (Record, error) {
	lock := b.userLock(user)
	lock.Lock()
	defer lock.Unlock()
	return b.record(user, in, "")
}

// record is the commit path shared by Record and ApplySIP. The caller holds
// the user lock. An empty id means the standard scheme; SIP mirrors pass
// their own.
func (b *Books) record(user string, in Input, id string) (Record, error) {
	if user == "" {
		return Record{}, fmt.Errorf("%w: user", ErrMissingField)
	}
	if !in.Amount.IsPositive() {
		return Record{}, fmt.Errorf("%w: got %s", ErrInvalidAmount, in.Amount)
	}
	kind, err := ParseKind(in.Kind)
	if err != nil {
		return Record{}, err
	}

	day := b.today()
	month := MonthOf(day)

	snap, err := b.store.LoadSnapshot(user)
	if err != nil {
		return Record{}, err
	}
	monthLog, err := b.store.LoadMonthLog(user, month)
	if err != nil {
		return Record{}, err
	}

	// The last record of the current month carries the freshest balance;
	// otherwise the snapshot carries it across months; otherwise first use.
	last := snap.Balance
	if n := len(monthLog); n > 0 {
		last = monthLog[n-1].BalanceAfter
	}
	newBalance := last.Add(kind.Signed(in.Amount))

	if id == "" {
		id = NextID(day, in.Category, len(monthLog))
	}
	rec := Record{
		ID:            id,
		Date:          day,
		Category:      in.Category,
		Description:   in.Description,
		PaymentMethod: in.PaymentMethod,
		Amount:        in.Amount,
		Kind:          kind,
		BalanceAfter:  newBalance,
		Notes:         in.Notes,
		LoanID:        in.LoanID,
		PocketMoney:   in.PocketMoney,
	}

	snap.Apply(rec)
	if err := b.store.AppendAndCommit(user, month, rec, snap); err != nil {
		return Record{}, err
	}
	log.Printf("%v: %s %s %s for %q, balance %s", day, rec.ID, rec.Kind, rec.Amount, user, rec.BalanceAfter)
	return rec, nil
}

// Summary returns the user's balance, savings, and current-month aggregate.
// A user with no data gets a zero-valued summary, never an error.
func (b *Books) Summary(user string) (Summary, error) {
	snap, err := b.store.LoadSnapshot(user)
	if err != nil {
		return Summary{}, err
	}
	month := MonthOf(b.today())
	return Summary{
		Balance:   snap.Balance,
		Savings:   snap.Savings,
		Month:     month,
		MonthData: snap.Aggregate(month),
	}, nil
}

// History returns the user's transactions for a month in append order.
func (b *Books) History(user string, m Month) ([]Record, error) {
	return b.store.LoadMonthLog(user, m)
}

// Contributions returns the user's investment log for a year in append order.
func (b *Books) Contributions(user string, year int) ([]SIPEntry, error) {
	return b.store.LoadSIPLog(user, year)
}

// ApplySIP applies this month's scheduled contribution for a fund at the
// submitted NAV, then mirrors it into the user's ledger as an "Investment"
// debit so the contribution is visible as ordinary cash flow. The registry
// update and the ledger commit are serialized under the registry and user
// locks; if the ledger commit fails the registry mutation is rolled back so
// a retry starts clean.
func (b *Books) ApplySIP(user, schemeCode string, nav Money) (Contribution, error) {
	b.registryMu.Lock()
	defer b.registryMu.Unlock()

	today := b.today()
	prior := b.registry.Get(schemeCode).clone()

	contrib, err := b.registry.Apply(schemeCode, nav, today)
	if err != nil {
		return Contribution{}, err
	}
	if err := b.registry.Save(); err != nil {
		b.registry.restore(schemeCode, prior)
		return Contribution{}, err
	}

	at := b.Now()
	userLock := b.userLock(user)
	userLock.Lock()
	defer userLock.Unlock()

	rec, err := b.record(user, Input{
		Amount:        contrib.AmountApplied,
		Kind:          string(Debit),
		Category:      "Investment",
		Description:   "SIP - " + contrib.FundName,
		PaymentMethod: "Auto",
	}, SIPExpenseID(today, schemeCode, at))
	if err != nil {
		// Undo the registry update so registry and ledger stay consistent.
		b.registry.restore(schemeCode, prior)
		if saveErr := b.registry.Save(); saveErr != nil {
			log.Printf("could not roll back registry after failed sip commit: %v", saveErr)
		}
		return Contribution{}, fmt.Errorf("sip mirror for %q: %w", user, err)
	}

	entry := SIPEntry{
		ID:         SIPEntryID(today, schemeCode, at),
		Date:       today,
		SchemeCode: contrib.SchemeCode,
		FundName:   contrib.FundName,
		Category:   b.registry.Get(schemeCode).Category,
		Amount:     contrib.AmountApplied,
		Units:      contrib.UnitsPurchased,
		TotalUnits: contrib.NewTotalUnits,
		NAV:        contrib.NAV,
		Value:      contrib.NAV.Mul(contrib.NewTotalUnits),
	}
	if err := b.store.AppendSIPEntry(user, today.Year(), entry); err != nil {
		// Ledger and registry agree; only the audit line is missing.
		return contrib, fmt.Errorf("sip entry after record %s: %w", rec.ID, err)
	}
	return contrib, nil
}

// RegisterFund registers a new fund and persists the registry.
func (b *Books) RegisterFund(def FundDefinition) (*Fund, error) {
	b.registryMu.Lock()
	defer b.registryMu.Unlock()

	fund, err := b.registry.Register(def, b.today(), b.Now())
	if err != nil {
		return nil, err
	}
	if err := b.registry.Save(); err != nil {
		b.registry.restore(fund.SchemeCode, nil)
		return nil, err
	}
	return fund, nil
}

// CorrectNAV overwrites the NAV recorded for a month and persists the registry.
func (b *Books) CorrectNAV(schemeCode string, month Month, nav Money) error {
	b.registryMu.Lock()
	defer b.registryMu.Unlock()

	prior := b.registry.Get(schemeCode).clone()
	if err := b.registry.CorrectNAV(schemeCode, month, nav); err != nil {
		return err
	}
	if err := b.registry.Save(); err != nil {
		b.registry.restore(schemeCode, prior)
		return err
	}
	return nil
}
