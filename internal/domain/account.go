package domain

// Role identifies which collection an account lives in.
type Role string

const (
	RoleUser    Role = "USER"
	RolePartner Role = "PARTNER"
	RoleAdmin   Role = "ADMIN"
)

// AccountStatus represents the admin-controlled approval state of an account.
// Accounts never transition on their own; only admin action mutates this.
type AccountStatus string

const (
	AccountStatusPending   AccountStatus = "PENDING"
	AccountStatusApproved  AccountStatus = "APPROVED"
	AccountStatusSuspended AccountStatus = "SUSPENDED"
)
