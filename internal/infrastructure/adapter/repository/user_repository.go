package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/streetcare/pointpay/internal/domain/entity"
	errs "github.com/streetcare/pointpay/internal/domain/error"
	coreport "github.com/streetcare/pointpay/internal/domain/port/core"
	"github.com/streetcare/pointpay/internal/domain/port/persistence"
)

// UserRepository implements the platform-account contract. Users are the one
// entity with hard deletion, which must reconcile every secondary index.
type UserRepository struct {
	rdb          *redis.Client
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(rdb *redis.Client, timeProvider coreport.TimeProvider, logger coreport.Logger) *UserRepository {
	return &UserRepository{rdb: rdb, timeProvider: timeProvider, logger: logger}
}

func marshalUser(u *entity.User) map[string]string {
	optional := func(id uuid.UUID) string {
		if id == uuid.Nil {
			return ""
		}
		return id.String()
	}
	lastLogin := ""
	if !u.LastLoginAt.IsZero() {
		lastLogin = formatTime(u.LastLoginAt)
	}
	return map[string]string{
		"id":             u.ID.String(),
		"username":       u.Username,
		"password_hash":  u.PasswordHash,
		"name":           u.Name,
		"role":           string(u.Role),
		"email":          u.Email,
		"phone":          u.Phone,
		"status":         string(u.Status),
		"store_id":       optional(u.StoreID),
		"beneficiary_id": optional(u.BeneficiaryID),
		"association_id": optional(u.AssociationID),
		"last_login_at":  lastLogin,
		"created_at":     formatTime(u.CreatedAt),
		"updated_at":     formatTime(u.UpdatedAt),
	}
}

func unmarshalUser(data map[string]string) *entity.User {
	return &entity.User{
		ID:            parseUUID(data["id"]),
		Username:      data["username"],
		PasswordHash:  data["password_hash"],
		Name:          data["name"],
		Role:          entity.Role(data["role"]),
		Email:         data["email"],
		Phone:         data["phone"],
		Status:        entity.Status(data["status"]),
		StoreID:       parseUUID(data["store_id"]),
		BeneficiaryID: parseUUID(data["beneficiary_id"]),
		AssociationID: parseUUID(data["association_id"]),
		LastLoginAt:   parseTime(data["last_login_at"]),
		CreatedAt:     parseTime(data["created_at"]),
		UpdatedAt:     parseTime(data["updated_at"]),
	}
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	data, err := r.rdb.HGetAll(ctx, userKey(id)).Result()
	if err != nil {
		return nil, storeErr(err)
	}
	if len(data) == 0 {
		return nil, errs.ErrUserNotFound
	}
	return unmarshalUser(data), nil
}

// GetByUsername resolves a username through the dedicated index
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	idStr, err := getIndex(ctx, r.rdb, usernameKey(username), errs.ErrUserNotFound)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, parseUUID(idStr))
}

// Create writes the primary record and every index in one call. The
// username index doubles as the uniqueness guard.
func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	ok, err := r.rdb.SetNX(ctx, usernameKey(u.Username), u.ID.String(), 0).Result()
	if err != nil {
		return storeErr(err)
	}
	if !ok {
		return errs.ErrDuplicateUsername
	}

	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, userKey(u.ID), marshalUser(u))
		pipe.ZAdd(ctx, keyUsers, redis.Z{Score: score(u.CreatedAt), Member: u.ID.String()})
		pipe.SAdd(ctx, roleUsersKey(string(u.Role)), u.ID.String())
		if u.AssociationID != uuid.Nil {
			pipe.SAdd(ctx, associationUsersKey(u.AssociationID), u.ID.String())
		}
		return nil
	})
	if err != nil {
		return storeErr(err)
	}

	r.logger.Info("User created", map[string]any{
		"user_id":  u.ID.String(),
		"username": u.Username,
		"role":     string(u.Role),
	})
	return nil
}

// Update merges only the supplied fields and bumps updated_at
func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, update persistence.UserUpdate) (*entity.User, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]string{}
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.Email != nil {
		fields["email"] = *update.Email
	}
	if update.Phone != nil {
		fields["phone"] = *update.Phone
	}
	if update.PasswordHash != nil {
		if *update.PasswordHash == "" {
			return nil, errs.ErrInvalidPassword
		}
		fields["password_hash"] = *update.PasswordHash
	}
	if update.Status != nil {
		if !update.Status.IsValid() {
			return nil, errs.ErrInvalidStatus
		}
		fields["status"] = string(*update.Status)
	}
	if update.StoreID != nil {
		fields["store_id"] = update.StoreID.String()
	}
	fields["updated_at"] = formatTime(r.timeProvider.Now())

	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if update.AssociationID != nil && *update.AssociationID != current.AssociationID {
			if current.AssociationID != uuid.Nil {
				pipe.SRem(ctx, associationUsersKey(current.AssociationID), id.String())
			}
			if *update.AssociationID != uuid.Nil {
				pipe.SAdd(ctx, associationUsersKey(*update.AssociationID), id.String())
				pipe.HSet(ctx, userKey(id), "association_id", update.AssociationID.String())
			} else {
				pipe.HSet(ctx, userKey(id), "association_id", "")
			}
		}
		pipe.HSet(ctx, userKey(id), fields)
		return nil
	})
	if err != nil {
		return nil, storeErr(err)
	}
	return r.GetByID(ctx, id)
}

// Delete removes the user permanently together with the username index, the
// role membership entry, the association membership entry and the listing
// index, so no orphaned pointer survives
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, userKey(id))
		pipe.Del(ctx, usernameKey(u.Username))
		pipe.ZRem(ctx, keyUsers, id.String())
		pipe.SRem(ctx, roleUsersKey(string(u.Role)), id.String())
		if u.AssociationID != uuid.Nil {
			pipe.SRem(ctx, associationUsersKey(u.AssociationID), id.String())
		}
		return nil
	})
	if err != nil {
		return storeErr(err)
	}

	r.logger.Info("User deleted", map[string]any{
		"user_id":  id.String(),
		"username": u.Username,
	})
	return nil
}

// TouchLastLogin records a successful login timestamp
func (r *UserRepository) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	exists, err := r.rdb.Exists(ctx, userKey(id)).Result()
	if err != nil {
		return storeErr(err)
	}
	if exists == 0 {
		return errs.ErrUserNotFound
	}
	if err := r.rdb.HSet(ctx, userKey(id), "last_login_at", formatTime(at)).Err(); err != nil {
		return storeErr(err)
	}
	return nil
}

// List returns a page of users sorted newest-created-first
func (r *UserRepository) List(ctx context.Context, page, limit int) ([]*entity.User, int64, error) {
	ids, total, err := zrevPage(ctx, r.rdb, keyUsers, page, limit)
	if err != nil {
		return nil, 0, err
	}
	items, err := r.loadMany(ctx, ids)
	return items, total, err
}

// ListByRole returns every user holding a role via the role membership set
func (r *UserRepository) ListByRole(ctx context.Context, role entity.Role) ([]*entity.User, error) {
	ids, err := r.rdb.SMembers(ctx, roleUsersKey(string(role))).Result()
	if err != nil {
		return nil, storeErr(err)
	}
	return r.loadMany(ctx, ids)
}

func (r *UserRepository) loadMany(ctx context.Context, ids []string) ([]*entity.User, error) {
	items := make([]*entity.User, 0, len(ids))
	for _, idStr := range ids {
		u, err := r.GetByID(ctx, parseUUID(idStr))
		if errors.Is(err, errs.ErrUserNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		items = append(items, u)
	}
	return items, nil
}
