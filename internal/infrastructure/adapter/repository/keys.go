package repository

import (
	"time"

	"github.com/google/uuid"
)

// Key layout. Primary records are hashes, secondary unique indexes are
// plain strings holding the ID, listing indexes are sorted sets scored by
// creation time, membership indexes are sets, and day buckets are sets
// keyed by YYYY-MM-DD in the platform zone.
const (
	keyBeneficiaries = "beneficiaries"
	keyStores        = "stores"
	keyUsers         = "users"
	keyAssociations  = "associations"
	keyConfigKeys    = "config:keys"
	keyTransactions  = "txns"
	keyAllocations   = "allocs"
)

func beneficiaryKey(id uuid.UUID) string        { return "beneficiary:" + id.String() }
func beneficiaryQRKey(code string) string       { return "beneficiary:qr:" + code }
func beneficiaryNationalIDKey(n string) string  { return "beneficiary:idnum:" + n }
func beneficiaryLockKey(id uuid.UUID) string    { return "lock:beneficiary:" + id.String() }
func storeKey(id uuid.UUID) string              { return "store:" + id.String() }
func storeQRKey(code string) string             { return "store:qr:" + code }
func storeProductsKey(storeID uuid.UUID) string { return "store:products:" + storeID.String() }
func productKey(id uuid.UUID) string            { return "product:" + id.String() }
func userKey(id uuid.UUID) string               { return "user:" + id.String() }
func usernameKey(username string) string        { return "user:username:" + username }
func roleUsersKey(role string) string           { return "role:users:" + role }
func associationKey(id uuid.UUID) string        { return "association:" + id.String() }
func associationStoresKey(id uuid.UUID) string  { return "association:stores:" + id.String() }
func associationUsersKey(id uuid.UUID) string   { return "association:users:" + id.String() }
func configKey(key string) string               { return "config:" + key }
func transactionKey(id uuid.UUID) string        { return "txn:" + id.String() }
func txnsByBeneficiaryKey(id uuid.UUID) string  { return "txns:beneficiary:" + id.String() }
func txnsByStoreKey(id uuid.UUID) string        { return "txns:store:" + id.String() }
func txnsDayKey(day string) string              { return "txns:day:" + day }
func allocationKey(id uuid.UUID) string         { return "alloc:" + id.String() }
func allocsByBeneficiaryKey(id uuid.UUID) string {
	return "allocs:beneficiary:" + id.String()
}
func allocsDayKey(day string) string { return "allocs:day:" + day }

// DayBucket renders the day-bucket key component for a timestamp
func DayBucket(t time.Time) string {
	return t.Format("2006-01-02")
}
