package entity

// Status represents the lifecycle state shared by all managed entities
type Status string

// Lifecycle states
const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
)

// IsValid reports whether the status is one of the known lifecycle states
func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusInactive || s == StatusSuspended
}

// Role represents a platform user role
type Role string

// Platform roles
const (
	RoleSystemAdmin        Role = "system_admin"
	RoleNGOAdmin           Role = "ngo_admin"
	RoleNGOPartner         Role = "ngo_partner"
	RoleStore              Role = "store"
	RoleHomeless           Role = "homeless"
	RoleAssociationAdmin   Role = "association_admin"
	RoleAssociationPartner Role = "association_partner"
)

// IsValid reports whether the role is one of the known platform roles
func (r Role) IsValid() bool {
	switch r {
	case RoleSystemAdmin, RoleNGOAdmin, RoleNGOPartner, RoleStore,
		RoleHomeless, RoleAssociationAdmin, RoleAssociationPartner:
		return true
	}
	return false
}

// ProductCategory classifies what a store product provides
type ProductCategory string

// Product categories
const (
	CategoryMeals            ProductCategory = "meals"
	CategoryServices         ProductCategory = "services"
	CategoryDailyNecessities ProductCategory = "daily_necessities"
	CategoryMedical          ProductCategory = "medical"
	CategoryOther            ProductCategory = "other"
)

// IsValid reports whether the category is one of the known product categories
func (c ProductCategory) IsValid() bool {
	switch c {
	case CategoryMeals, CategoryServices, CategoryDailyNecessities,
		CategoryMedical, CategoryOther:
		return true
	}
	return false
}

// TransactionStatus defines possible status values for a ledger record
type TransactionStatus string

// TransactionStatus constants
const (
	TxnCompleted TransactionStatus = "completed"
	TxnFailed    TransactionStatus = "failed"
	TxnCancelled TransactionStatus = "cancelled"
)
