// Package checkout drives the purchase flow as an explicit state machine:
// Idle -> ConfirmPending -> Processing -> InvoiceShown -> Idle. One flow
// exists per cart owner; the enum replaces the tangle of view flags the
// storefront UI would otherwise juggle, so two "modals" can never be open at
// once.
package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/streetcaps511-a11y/gmcaps-backend/internal/auth"
	"github.com/streetcaps511-a11y/gmcaps-backend/internal/cart"
	"github.com/streetcaps511-a11y/gmcaps-backend/internal/pricing"
	pkgerrors "github.com/streetcaps511-a11y/gmcaps-backend/pkg/errors"
	"github.com/streetcaps511-a11y/gmcaps-backend/pkg/logger"
	"github.com/streetcaps511-a11y/gmcaps-backend/pkg/metrics"
)

// State names one position in the checkout flow.
type State string

const (
	StateIdle           State = "idle"
	StateConfirmPending State = "confirm_pending"
	StateProcessing     State = "processing"
	StateInvoiceShown   State = "invoice_shown"
)

// InvoiceItem is the snapshot of one cart line taken at confirmation.
type InvoiceItem struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

// Invoice is the ephemeral record of a completed purchase. It is displayed
// once and discarded with the flow; nothing here is persisted.
type Invoice struct {
	Number        string        `json:"number"`
	Date          string        `json:"date"`
	CustomerEmail string        `json:"customer_email"`
	Items         []InvoiceItem `json:"items"`
	Subtotal      int64         `json:"subtotal"`
	Tax           int64         `json:"tax"`
	Total         int64         `json:"total"`
}

// Status is the flow position plus the invoice once one is showing.
type Status struct {
	State   State    `json:"state"`
	Invoice *Invoice `json:"invoice,omitempty"`
}

type cartStore interface {
	Load(ctx context.Context, owner string) cart.Cart
	Save(ctx context.Context, owner string, c cart.Cart) error
}

type sessionLoader interface {
	Current(ctx context.Context, email string) (*auth.Session, error)
}

type notifier interface {
	Push(owner, message string)
}

// Service runs the checkout flow for each cart owner.
type Service interface {
	Begin(ctx context.Context, owner string) (*Status, error)
	Confirm(ctx context.Context, owner string) (*Status, error)
	Abort(ctx context.Context, owner string) (*Status, error)
	Dismiss(ctx context.Context, owner string) (*Status, error)
	Status(ctx context.Context, owner string) (*Status, error)
}

type flow struct {
	state   State
	invoice *Invoice
	// gen invalidates a scheduled completion when the flow is aborted or
	// re-confirmed before the artificial delay elapses.
	gen       int
	startedAt time.Time
}

type service struct {
	mu    sync.Mutex
	flows map[string]*flow

	carts    cartStore
	sessions sessionLoader
	notify   notifier
	metrics  *metrics.StorefrontMetrics
	logg     *logger.Logger

	delay time.Duration
	now   func() time.Time
}

// NewService wires the checkout flow. The delay is the cosmetic processing
// pause before the invoice appears; zero completes synchronously.
func NewService(
	carts cartStore,
	sessions sessionLoader,
	notify notifier,
	m *metrics.StorefrontMetrics,
	logg *logger.Logger,
	delay time.Duration,
) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session loader required")
	}
	return &service{
		flows:    make(map[string]*flow),
		carts:    carts,
		sessions: sessions,
		notify:   notify,
		metrics:  m,
		logg:     logg,
		delay:    delay,
		now:      time.Now,
	}, nil
}

// Begin moves Idle -> ConfirmPending. It refuses without an authenticated
// session (the caller sends the user to login) and with an empty cart.
func (s *service) Begin(ctx context.Context, owner string) (*Status, error) {
	if _, err := s.sessions.Current(ctx, owner); err != nil {
		return nil, err
	}

	if len(s.carts.Load(ctx, owner)) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f := s.flowFor(owner)
	if f.state != StateIdle {
		return nil, s.wrongState(f, StateIdle)
	}
	f.state = StateConfirmPending
	return statusOf(f), nil
}

// Confirm moves ConfirmPending -> Processing and schedules the completion
// after the artificial delay. The invoice is synthesized exactly once; the
// cart is left intact for the invoice view.
func (s *service) Confirm(ctx context.Context, owner string) (*Status, error) {
	s.mu.Lock()

	f := s.flowFor(owner)
	if f.state != StateConfirmPending {
		defer s.mu.Unlock()
		return nil, s.wrongState(f, StateConfirmPending)
	}
	f.state = StateProcessing
	f.gen++
	f.startedAt = s.now()
	gen := f.gen
	status := statusOf(f)
	s.mu.Unlock()

	if s.delay <= 0 {
		s.complete(context.WithoutCancel(ctx), owner, gen)
		s.mu.Lock()
		status = statusOf(s.flowFor(owner))
		s.mu.Unlock()
		return status, nil
	}

	// Completion runs off the request goroutine so the caller stays
	// responsive during the cosmetic delay.
	go func() {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		<-timer.C
		s.complete(context.Background(), owner, gen)
	}()

	return status, nil
}

// Abort cancels an in-flight confirmation: ConfirmPending -> Idle, or
// Processing -> ConfirmPending with the scheduled completion discarded.
// Neither transition has side effects on the cart.
func (s *service) Abort(ctx context.Context, owner string) (*Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := s.flowFor(owner)
	switch f.state {
	case StateConfirmPending:
		f.state = StateIdle
		s.metrics.IncCheckoutOutcome("cancelled")
	case StateProcessing:
		f.state = StateConfirmPending
		f.gen++
		s.metrics.IncCheckoutOutcome("aborted")
	default:
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot cancel checkout from %s", f.state))
	}
	return statusOf(f), nil
}

// Dismiss closes the invoice: the cart is cleared and persisted empty, a
// success notification is pushed, and the flow returns to Idle.
func (s *service) Dismiss(ctx context.Context, owner string) (*Status, error) {
	s.mu.Lock()
	f := s.flowFor(owner)
	if f.state != StateInvoiceShown {
		defer s.mu.Unlock()
		return nil, s.wrongState(f, StateInvoiceShown)
	}
	s.mu.Unlock()

	if err := s.carts.Save(ctx, owner, cart.Cart{}); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	f = s.flowFor(owner)
	f.state = StateIdle
	f.invoice = nil

	if s.notify != nil {
		s.notify.Push(owner, "¡Compra realizada con éxito!")
	}
	s.metrics.IncCheckoutOutcome("completed")
	if s.logg != nil {
		s.logg.Info(s.logg.WithOwner(ctx, owner), "checkout.completed")
	}
	return statusOf(f), nil
}

// Status reports the flow position for the owner.
func (s *service) Status(_ context.Context, owner string) (*Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return statusOf(s.flowFor(owner)), nil
}

// complete transitions Processing -> InvoiceShown unless the flow moved on
// (abort, re-confirm) since the completion was scheduled.
func (s *service) complete(ctx context.Context, owner string, gen int) {
	session, err := s.sessions.Current(ctx, owner)
	email := owner
	if err == nil {
		email = session.Email
	}

	snapshot := s.carts.Load(ctx, owner)
	totals := pricing.ComputeTotals(snapshot)

	s.mu.Lock()
	defer s.mu.Unlock()

	f := s.flowFor(owner)
	if f.state != StateProcessing || f.gen != gen {
		return
	}

	now := s.now()
	items := make([]InvoiceItem, len(snapshot))
	for i, line := range snapshot {
		items[i] = InvoiceItem{Name: line.Name, Quantity: line.Quantity, UnitPrice: line.UnitPrice}
	}

	f.invoice = &Invoice{
		Number:        fmt.Sprintf("INV-%d", now.UnixMilli()),
		Date:          now.Format("02/01/2006"),
		CustomerEmail: email,
		Items:         items,
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		Total:         totals.Total,
	}
	f.state = StateInvoiceShown
	s.metrics.ObserveCheckoutProcessing(now.Sub(f.startedAt))
}

func (s *service) flowFor(owner string) *flow {
	f, ok := s.flows[owner]
	if !ok {
		f = &flow{state: StateIdle}
		s.flows[owner] = f
	}
	return f
}

func (s *service) wrongState(f *flow, want State) error {
	return pkgerrors.New(pkgerrors.CodeStateConflict,
		fmt.Sprintf("checkout is %s, expected %s", f.state, want))
}

func statusOf(f *flow) *Status {
	st := &Status{State: f.state}
	if f.invoice != nil {
		inv := *f.invoice
		st.Invoice = &inv
	}
	return st
}
