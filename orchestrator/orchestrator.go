package orchestrator

import (
	"context"
	"fmt"

	"github.com/byte4ever/employeegw/employee"
	"github.com/byte4ever/employeegw/logger"
	"github.com/byte4ever/employeegw/resilience"
)

// Policy names, one per operation. They key the resilience configuration
// file and appear in readiness reports and logs.
const (
	OpListAll       = "listAll"
	OpSearchByName  = "searchByName"
	OpGetByID       = "getById"
	OpHighestSalary = "highestSalary"
	OpTopTenNames   = "topTenNames"
	OpCreate        = "create"
	OpDeleteByID    = "deleteById"
)

// DeleteFailed is returned by DeleteByID in place of a name when the
// upstream stayed unavailable.
const DeleteFailed = "Error occurred while deleting employee"

// Gateway is the upstream API as seen by the orchestrator. Failures must
// be classified: NotFound permanent, everything else transient.
type Gateway interface {
	FetchAll(ctx context.Context) ([]employee.Record, error)
	FetchByID(ctx context.Context, id string) (employee.Record, error)
	Create(ctx context.Context, fields map[string]any) (employee.Record, error)
	DeleteByID(ctx context.Context, id string) error
}

// Orchestrator runs the employee operations.
type Orchestrator struct {
	gw  Gateway
	log *logger.Logger

	listAll       *resilience.Policy[[]employee.Record]
	searchByName  *resilience.Policy[[]employee.Record]
	getByID       *resilience.Policy[employee.Record]
	highestSalary *resilience.Policy[int]
	topTenNames   *resilience.Policy[[]string]
	create        *resilience.Policy[*employee.Record]
	deleteByID    *resilience.Policy[string]
}

// New builds the seven operation policies from the configured options.
// It fails only when a policy configuration is invalid.
func New(gw Gateway, opts ...Option) (*Orchestrator, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	if o.log == nil {
		o.log = logger.Nop()
	}

	if o.limiter == nil {
		o.limiter = o.cfg.SharedRateLimiter()
	}

	orc := &Orchestrator{gw: gw, log: o.log}

	var err error

	if orc.listAll, err = newPolicy[[]employee.Record](OpListAll, &o); err != nil {
		return nil, err
	}

	if orc.searchByName, err = newPolicy[[]employee.Record](OpSearchByName, &o); err != nil {
		return nil, err
	}

	if orc.getByID, err = newPolicy[employee.Record](OpGetByID, &o); err != nil {
		return nil, err
	}

	if orc.highestSalary, err = newPolicy[int](OpHighestSalary, &o); err != nil {
		return nil, err
	}

	if orc.topTenNames, err = newPolicy[[]string](OpTopTenNames, &o); err != nil {
		return nil, err
	}

	if orc.create, err = newPolicy[*employee.Record](OpCreate, &o); err != nil {
		return nil, err
	}

	if orc.deleteByID, err = newPolicy[string](OpDeleteByID, &o); err != nil {
		return nil, err
	}

	return orc, nil
}

func newPolicy[T any](name string, o *options) (*resilience.Policy[T], error) {
	pc := o.cfg.PolicyFor(name)

	opts, err := resilience.BuildOptions(&pc)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: policy %q: %w", name, err)
	}

	opts = append(opts, resilience.WithHooks(newHooks(o.log, name)))

	if o.clock != nil {
		opts = append(opts, resilience.WithClock(o.clock))
	}

	if o.limiter != nil {
		opts = append(opts, resilience.WithRateLimiter(o.limiter))
	}

	if o.registry != nil {
		opts = append(opts, resilience.WithRegistry(o.registry))
	}

	return resilience.NewPolicy[T](name, opts...), nil
}
