package leave

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cataratas-rh/cataratasrh-backend-go/internal/domain/contract"
	"github.com/cataratas-rh/cataratasrh-backend-go/internal/domain/leave"
	"github.com/google/uuid"
)

type fakeTx struct{}

func (fakeTx) WithinTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

type fakeRequestRepo struct {
	mu       sync.Mutex
	requests map[string]leave.Request
	queries  []leave.RequestFilter
	failWith error
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: map[string]leave.Request{}}
}

// clone copies the payload so callers cannot mutate stored state.
func clone(r leave.Request) leave.Request {
	if r.Vacation != nil {
		v := *r.Vacation
		r.Vacation = &v
	}
	if r.License != nil {
		l := *r.License
		r.License = &l
	}
	if r.Overtime != nil {
		o := *r.Overtime
		r.Overtime = &o
	}
	if r.Resignation != nil {
		s := *r.Resignation
		r.Resignation = &s
	}
	return r
}

func (f *fakeRequestRepo) add(r leave.Request) leave.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	r.Active = true
	f.requests[r.ID] = clone(r)
	return r
}

func (f *fakeRequestRepo) Create(_ context.Context, r leave.Request) (leave.Request, error) {
	if f.failWith != nil {
		return leave.Request{}, f.failWith
	}
	return f.add(r), nil
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id string) (leave.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[id]
	if !ok {
		return leave.Request{}, leave.ErrRequestNotFound
	}
	return clone(r), nil
}

func (f *fakeRequestRepo) GetByIDForUpdate(ctx context.Context, id string) (leave.Request, error) {
	return f.GetByID(ctx, id)
}

func matches(r leave.Request, filter leave.RequestFilter) bool {
	if !filter.IncludeInactive && !r.Active {
		return false
	}
	if filter.ContractID != "" && r.ContractID != filter.ContractID {
		return false
	}
	if filter.Category != "" && r.Category != filter.Category {
		return false
	}
	if filter.Status != "" && r.Status() != filter.Status {
		return false
	}
	if filter.ExcludeID != "" && r.ID == filter.ExcludeID {
		return false
	}
	if filter.Overlapping != nil {
		switch {
		case r.Vacation != nil:
			return r.Vacation.Period.Overlaps(*filter.Overlapping)
		case r.License != nil:
			return r.License.Period.Overlaps(*filter.Overlapping)
		case r.Overtime != nil:
			return filter.Overlapping.Contains(r.Overtime.Date)
		default:
			return false
		}
	}
	return true
}

func (f *fakeRequestRepo) List(_ context.Context, filter leave.RequestFilter) ([]leave.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []leave.Request
	for _, r := range f.requests {
		if matches(r, filter) {
			out = append(out, clone(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRequestRepo) Exists(_ context.Context, filter leave.RequestFilter) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.queries = append(f.queries, filter)
	if f.failWith != nil {
		return false, f.failWith
	}
	for _, r := range f.requests {
		if matches(r, filter) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRequestRepo) UpdateVacationPeriod(_ context.Context, id string, period leave.DateRange, days int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[id]
	if !ok || r.Vacation == nil {
		return leave.ErrRequestNotFound
	}
	r.Vacation.Period = period
	r.Vacation.Days = days
	f.requests[id] = r
	return nil
}

func (f *fakeRequestRepo) UpdateDecision(_ context.Context, request leave.Request) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.requests[request.ID]; !ok {
		return leave.ErrRequestNotFound
	}
	f.requests[request.ID] = clone(request)
	return nil
}

func (f *fakeRequestRepo) SetActive(_ context.Context, id string, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[id]
	if !ok {
		return leave.ErrRequestNotFound
	}
	r.Active = active
	f.requests[id] = r
	return nil
}

func (f *fakeRequestRepo) FindAcceptedResignationForUpdate(_ context.Context, contractID string) (leave.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.requests {
		if r.Active && r.ContractID == contractID && r.Resignation != nil && r.Resignation.Status == leave.StatusAccepted {
			return clone(r), nil
		}
	}
	return leave.Request{}, leave.ErrRequestNotFound
}

func (f *fakeRequestRepo) UpdateResignationEffectiveDate(_ context.Context, id string, effective time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[id]
	if !ok || r.Resignation == nil {
		return leave.ErrRequestNotFound
	}
	r.Resignation.EffectiveDate = effective
	f.requests[id] = r
	return nil
}

type fakeContractRepo struct {
	mu        sync.Mutex
	contracts map[string]contract.Contract
	locked    []string
}

func newFakeContractRepo(cs ...contract.Contract) *fakeContractRepo {
	f := &fakeContractRepo{contracts: map[string]contract.Contract{}}
	for _, c := range cs {
		f.contracts[c.ID] = c
	}
	return f
}

func (f *fakeContractRepo) Create(_ context.Context, c contract.Contract) (contract.Contract, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.contracts[c.ID] = c
	return c, nil
}

func (f *fakeContractRepo) GetByID(_ context.Context, id string) (contract.Contract, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.contracts[id]
	if !ok {
		return contract.Contract{}, contract.ErrContractNotFound
	}
	return c, nil
}

func (f *fakeContractRepo) List(context.Context, contract.ContractFilter) ([]contract.Contract, error) {
	return nil, nil
}

func (f *fakeContractRepo) UpdateDates(context.Context, string, time.Time, *time.Time, contract.ContractStatus) error {
	return nil
}

func (f *fakeContractRepo) SetActive(_ context.Context, id string, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := f.contracts[id]
	c.Active = active
	f.contracts[id] = c
	return nil
}

func (f *fakeContractRepo) DeactivateMany(context.Context, []string, string) (int64, error) {
	return 0, nil
}

func (f *fakeContractRepo) LockForUpdate(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.contracts[id]; !ok {
		return contract.ErrContractNotFound
	}
	f.locked = append(f.locked, id)
	return nil
}

func (f *fakeContractRepo) SweepStatuses(context.Context, time.Time) (contract.SweepResult, error) {
	return contract.SweepResult{}, nil
}
