package integration

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/shopsync/backend/internal/domain/commerce"
	"github.com/shopsync/backend/internal/domain/integration"
)

// Field length caps enforced by the ERP customer schema
const (
	maxNameLength    = 50
	maxSurnameLength = 50
	maxEmailLength   = 100
	maxPhoneLength   = 20
)

// defaultCountryID is Spain, the only market the connector ships to
const defaultCountryID = 1

// CustomerResolutionService resolves the ERP customer behind an order.
// Resolution order: existing mapping, NIF lookup in the ERP, creation.
// Once a mapping exists the ERP customer is never re-created.
type CustomerResolutionService struct {
	customers        commerce.CustomerRepository
	customerMappings integration.CustomerMappingRepository
	erp              integration.ERPGateway
	logger           *zap.Logger
}

// NewCustomerResolutionService creates a new CustomerResolutionService
func NewCustomerResolutionService(
	customers commerce.CustomerRepository,
	customerMappings integration.CustomerMappingRepository,
	erp integration.ERPGateway,
	logger *zap.Logger,
) *CustomerResolutionService {
	return &CustomerResolutionService{
		customers:        customers,
		customerMappings: customerMappings,
		erp:              erp,
		logger:           logger,
	}
}

// EnsureCustomer returns the ERP customer ID for the order's customer,
// creating the ERP customer when necessary. The order is associated to
// its customer by email.
func (s *CustomerResolutionService) EnsureCustomer(ctx context.Context, order *commerce.Order) (int64, error) {
	customer, err := s.customers.FindByEmail(ctx, order.Email)
	if err != nil {
		return 0, fmt.Errorf("resolving customer for order %s: %w", order.Name, err)
	}

	mapping, err := s.customerMappings.FindByCustomer(ctx, customer.ID)
	if err == nil {
		return mapping.ERPCustomerID, nil
	}
	if !errors.Is(err, integration.ErrMappingNotFound) {
		return 0, err
	}

	taxID := strings.TrimSpace(customer.TaxID)
	if taxID != "" {
		erpID, lookupErr := s.erp.FindCustomerByTaxID(ctx, taxID)
		if lookupErr == nil {
			if saveErr := s.saveMapping(ctx, customer, erpID); saveErr != nil {
				return 0, saveErr
			}
			s.logger.Info("Matched existing ERP customer by tax ID",
				zap.String("email", customer.Email),
				zap.Int64("erp_customer_id", erpID),
			)
			return erpID, nil
		}
		if !errors.Is(lookupErr, integration.ErrCustomerNotInERP) {
			return 0, lookupErr
		}
	}

	erpID, err := s.erp.CreateCustomer(ctx, buildCustomerProfile(customer))
	if err != nil {
		return 0, err
	}

	if err := s.saveMapping(ctx, customer, erpID); err != nil {
		return 0, err
	}

	s.logger.Info("Created ERP customer",
		zap.String("email", customer.Email),
		zap.Int64("erp_customer_id", erpID),
	)
	return erpID, nil
}

// saveMapping persists the customer mapping; a concurrent duplicate is
// treated as success since both writers resolved the same customer.
func (s *CustomerResolutionService) saveMapping(ctx context.Context, customer *commerce.Customer, erpID int64) error {
	mapping := integration.NewCustomerMapping(customer.ID, erpID, customer.TaxID)
	if err := s.customerMappings.Save(ctx, mapping); err != nil {
		if errors.Is(err, integration.ErrMappingAlreadyExists) {
			return nil
		}
		return err
	}
	return nil
}

// buildCustomerProfile translates a local customer into the ERP creation
// payload. The last name splits at the first space into the two surname
// fields; businesses get Tipo 2.
func buildCustomerProfile(customer *commerce.Customer) *integration.CustomerProfile {
	surname1, surname2 := customer.SplitSurnames()

	customerType := integration.CustomerTypeIndividual
	if customer.IsBusiness() {
		customerType = integration.CustomerTypeBusiness
	}

	return &integration.CustomerProfile{
		Type:      customerType,
		TaxID:     strings.TrimSpace(customer.TaxID),
		FirstName: truncate(customer.FirstName, maxNameLength),
		Surname1:  truncate(surname1, maxSurnameLength),
		Surname2:  truncate(surname2, maxSurnameLength),
		Company:   truncate(customer.Company, maxNameLength),
		Email:     truncate(customer.Email, maxEmailLength),
		Phone:     truncate(customer.Phone, maxPhoneLength),
		CountryID: defaultCountryID,
	}
}

// truncate caps a string at max runes
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
