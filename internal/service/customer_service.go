package service

import (
	"context"
	"time"

	"github.com/spec-kit/mechanic-shop/internal/auth"
	"github.com/spec-kit/mechanic-shop/internal/domain"
	"github.com/spec-kit/mechanic-shop/internal/events"
	"github.com/spec-kit/mechanic-shop/internal/repository"
	"github.com/spec-kit/mechanic-shop/pkg/util"
)

// CustomerService coordinates customer accounts, authentication and the
// customer-scoped ticket listing.
type CustomerService struct {
	customers  repository.CustomerRepository
	tickets    repository.TicketRepository
	tokens     *auth.TokenManager
	dispatcher events.Dispatcher
	bcryptCost int
}

// CustomerDependencies bundles collaborators for the customer service.
type CustomerDependencies struct {
	CustomerRepo repository.CustomerRepository
	TicketRepo   repository.TicketRepository
	Tokens       *auth.TokenManager
	Dispatcher   events.Dispatcher
	BcryptCost   int
}

// CustomerCreateInput describes the registration payload.
type CustomerCreateInput struct {
	Name     string
	Phone    string
	Email    string
	Address  string
	Password string
}

// CustomerUpdateInput carries partial updates; nil means leave unchanged.
type CustomerUpdateInput struct {
	Name     *string
	Phone    *string
	Email    *string
	Address  *string
	Password *string
}

// NewCustomerService constructs the service.
func NewCustomerService(deps CustomerDependencies) *CustomerService {
	return &CustomerService{
		customers:  deps.CustomerRepo,
		tickets:    deps.TicketRepo,
		tokens:     deps.Tokens,
		dispatcher: deps.Dispatcher,
		bcryptCost: deps.BcryptCost,
	}
}

// Register creates a customer account with a hashed password. Email
// uniqueness is settled by the database constraint; the pre-check only
// buys a friendlier message.
func (s *CustomerService) Register(ctx context.Context, input CustomerCreateInput) (*domain.Customer, error) {
	existing, err := s.customers.GetByEmail(ctx, input.Email)
	if err != nil && !util.IsNoRows(err) {
		return nil, err
	}
	if existing != nil {
		return nil, util.NewConflict("email already in use", map[string]any{"email": input.Email})
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	customer := &domain.Customer{
		Name:         input.Name,
		Phone:        input.Phone,
		Email:        input.Email,
		Address:      input.Address,
		PasswordHash: hash,
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		if util.IsUniqueViolation(err) {
			return nil, util.NewConflict("email already in use", map[string]any{"email": input.Email})
		}
		return nil, err
	}
	publishEvent(ctx, s.dispatcher, events.Event{
		Type: events.EventCustomerRegistered,
		Payload: events.CustomerRegisteredPayload{
			CustomerID: customer.ID,
			Email:      customer.Email,
		},
	})
	return customer, nil
}

// Login verifies credentials and issues a token. The failure message never
// reveals whether the email exists.
func (s *CustomerService) Login(ctx context.Context, email, password string) (*domain.Customer, string, time.Time, error) {
	customer, err := s.customers.GetByEmail(ctx, email)
	if err != nil {
		if util.IsNoRows(err) {
			return nil, "", time.Time{}, util.NewUnauthorized("invalid email or password")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(customer.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, util.NewUnauthorized("invalid email or password")
	}

	token, expiresAt, err := s.tokens.GenerateToken(customer.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return customer, token, expiresAt, nil
}

// Get fetches a customer by id.
func (s *CustomerService) Get(ctx context.Context, id int64) (*domain.Customer, error) {
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		if util.IsNoRows(err) {
			return nil, util.NewNotFound("customer", id)
		}
		return nil, err
	}
	return customer, nil
}

// List returns one page of customers with the unfiltered total.
func (s *CustomerService) List(ctx context.Context, limit, offset int) ([]domain.Customer, int64, error) {
	customers, err := s.customers.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.customers.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

// Update applies a partial update to the caller's own account. A token for
// a different customer is rejected outright.
func (s *CustomerService) Update(ctx context.Context, authCustomerID, id int64, input CustomerUpdateInput) (*domain.Customer, error) {
	if id != authCustomerID {
		return nil, util.NewForbidden("you can only modify your own account")
	}
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		if util.IsNoRows(err) {
			return nil, util.NewNotFound("customer", id)
		}
		return nil, err
	}

	if input.Email != nil && *input.Email != customer.Email {
		other, err := s.customers.GetByEmail(ctx, *input.Email)
		if err != nil && !util.IsNoRows(err) {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, util.NewConflict("email already in use", map[string]any{"email": *input.Email})
		}
		customer.Email = *input.Email
	}
	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Phone != nil {
		customer.Phone = *input.Phone
	}
	if input.Address != nil {
		customer.Address = *input.Address
	}
	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		customer.PasswordHash = hash
	}

	if err := s.customers.Update(ctx, customer); err != nil {
		if util.IsUniqueViolation(err) {
			return nil, util.NewConflict("email already in use", nil)
		}
		if util.IsNoRows(err) {
			return nil, util.NewNotFound("customer", id)
		}
		return nil, err
	}
	return customer, nil
}

// Delete removes the caller's own account. Vehicles and their tickets
// cascade at the database.
func (s *CustomerService) Delete(ctx context.Context, authCustomerID, id int64) error {
	if id != authCustomerID {
		return util.NewForbidden("you can only modify your own account")
	}
	if err := s.customers.Delete(ctx, id); err != nil {
		if util.IsNoRows(err) {
			return util.NewNotFound("customer", id)
		}
		return err
	}
	return nil
}

// MyTickets lists every ticket on the caller's vehicles, annotated with
// vehicle labels and mechanic names, alongside the customer record.
func (s *CustomerService) MyTickets(ctx context.Context, customerID int64) (*domain.Customer, []domain.CustomerTicket, error) {
	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		if util.IsNoRows(err) {
			return nil, nil, util.NewNotFound("customer", customerID)
		}
		return nil, nil, err
	}
	tickets, err := s.tickets.ListForCustomer(ctx, customerID)
	if err != nil {
		return nil, nil, err
	}
	return customer, tickets, nil
}
