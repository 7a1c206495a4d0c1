package redisprovider

import (
	"context"
	"errors"
	"strconv"

	"github.com/redis/go-redis/v9"

	authority "github.com/ironforge/authority"
)

// ErrNilClient is returned by NewProvider when handed a nil redis client.
var ErrNilClient = errors.New("redisprovider: nil redis client")

// Provider persists group/user snapshots to Redis and satisfies
// authority.StorageProvider. The zero value is not usable; use NewProvider.
type Provider struct {
	client redis.UniversalClient
	prefix string
}

// NewProvider returns a Provider keying everything under prefix (defaults
// to "authority" when empty).
func NewProvider(client redis.UniversalClient, prefix string) (*Provider, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	if prefix == "" {
		prefix = "authority"
	}
	return &Provider{client: client, prefix: prefix}, nil
}

func (p *Provider) userKey(userID uint64) string {
	return p.prefix + ":user:" + strconv.FormatUint(userID, 10)
}

func (p *Provider) groupKey(name string) string {
	return p.prefix + ":group:" + name
}

func (p *Provider) groupSetKey() string {
	return p.prefix + ":groups"
}

// OnUserLoad implements authority.StorageProvider: it reads the persisted
// snapshot for userID and replays it through core.CreateUser. A missing
// key is not an error — it means this user has no persisted state yet.
func (p *Provider) OnUserLoad(core *authority.Core, userID uint64) {
	ctx := context.Background()
	data, err := p.client.Get(ctx, p.userKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) || err != nil {
		return
	}
	snap, err := unmarshalUser(data)
	if err != nil {
		return
	}
	core.CreateUser(userID, snap.Immunity, snap.Groups, snap.Perms)
}

// OnGroupsLoad implements authority.StorageProvider: it reads every group
// name tracked in the group-name set and replays each snapshot through
// core.CreateGroup, root groups before their children so SetParent's
// ParentGroupNotFound never fires for an ordering reason alone.
func (p *Provider) OnGroupsLoad(core *authority.Core) {
	ctx := context.Background()
	names, err := p.client.SMembers(ctx, p.groupSetKey()).Result()
	if err != nil || len(names) == 0 {
		return
	}

	snapshots := make(map[string]groupSnapshot, len(names))
	for _, name := range names {
		data, err := p.client.Get(ctx, p.groupKey(name)).Bytes()
		if err != nil {
			continue
		}
		snap, err := unmarshalGroup(data)
		if err != nil {
			continue
		}
		snapshots[name] = snap
	}

	created := make(map[string]bool, len(snapshots))
	for len(created) < len(snapshots) {
		progressed := false
		for name, snap := range snapshots {
			if created[name] {
				continue
			}
			if snap.Parent != "" && !created[snap.Parent] {
				if _, ok := snapshots[snap.Parent]; ok {
					continue
				}
			}
			core.CreateGroup(name, snap.Perms, snap.Priority, snap.Parent)
			created[name] = true
			progressed = true
		}
		if !progressed {
			break
		}
	}
}

// SaveUser writes a full user snapshot under a WATCH/MULTI transaction,
// overwriting whatever was there. Used for the UserCreate write-back.
func (p *Provider) SaveUser(ctx context.Context, userID uint64, immunity int, groupNames, perms []string) error {
	key := p.userKey(userID)
	snap := userSnapshot{Immunity: immunity, Groups: groupNames, Perms: perms}
	data, err := marshalUser(snap)
	if err != nil {
		return err
	}
	return p.client.Watch(ctx, func(tx *redis.Tx) error {
		_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		return err
	}, key)
}

// DeleteUser removes userID's persisted snapshot.
func (p *Provider) DeleteUser(ctx context.Context, userID uint64) error {
	return p.client.Del(ctx, p.userKey(userID)).Err()
}

// mutateUserPerm applies fn to the persisted Perms list for userID under a
// WATCH/MULTI transaction, creating an empty snapshot first if none exists.
func (p *Provider) mutateUserPerm(ctx context.Context, userID uint64, fn func([]string) []string) error {
	key := p.userKey(userID)
	return p.client.Watch(ctx, func(tx *redis.Tx) error {
		snap, err := p.getUserTx(ctx, tx, key)
		if err != nil {
			return err
		}
		snap.Perms = fn(snap.Perms)
		data, err := marshalUser(snap)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		return err
	}, key)
}

// mutateUserGroup applies fn to the persisted Groups list for userID under
// a WATCH/MULTI transaction, creating an empty snapshot first if none exists.
func (p *Provider) mutateUserGroup(ctx context.Context, userID uint64, fn func([]string) []string) error {
	key := p.userKey(userID)
	return p.client.Watch(ctx, func(tx *redis.Tx) error {
		snap, err := p.getUserTx(ctx, tx, key)
		if err != nil {
			return err
		}
		snap.Groups = fn(snap.Groups)
		data, err := marshalUser(snap)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		return err
	}, key)
}

func (p *Provider) getUserTx(ctx context.Context, tx *redis.Tx, key string) (userSnapshot, error) {
	data, err := tx.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return userSnapshot{}, nil
	}
	if err != nil {
		return userSnapshot{}, err
	}
	return unmarshalUser(data)
}

// SaveGroup writes a full group snapshot and tracks name in the
// group-name set, under a WATCH/MULTI transaction.
func (p *Provider) SaveGroup(ctx context.Context, name string, perms []string, priority int, parentName string) error {
	key := p.groupKey(name)
	data, err := marshalGroup(groupSnapshot{Perms: perms, Priority: priority, Parent: parentName})
	if err != nil {
		return err
	}
	return p.client.Watch(ctx, func(tx *redis.Tx) error {
		_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			pipe.SAdd(ctx, p.groupSetKey(), name)
			return nil
		})
		return err
	}, key)
}

// DeleteGroup removes name's persisted snapshot and its group-set entry.
func (p *Provider) DeleteGroup(ctx context.Context, name string) error {
	_, err := p.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, p.groupKey(name))
		pipe.SRem(ctx, p.groupSetKey(), name)
		return nil
	})
	return err
}

// mutateGroupPerm applies fn to the persisted Perms list for name under a
// WATCH/MULTI transaction.
func (p *Provider) mutateGroupPerm(ctx context.Context, name string, fn func([]string) []string) error {
	key := p.groupKey(name)
	return p.client.Watch(ctx, func(tx *redis.Tx) error {
		snap, err := p.getGroupTx(ctx, tx, key)
		if err != nil {
			return err
		}
		snap.Perms = fn(snap.Perms)
		data, err := marshalGroup(snap)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		return err
	}, key)
}

// setGroupParent rewrites the persisted Parent field for name under a
// WATCH/MULTI transaction.
func (p *Provider) setGroupParent(ctx context.Context, name, parentName string) error {
	key := p.groupKey(name)
	return p.client.Watch(ctx, func(tx *redis.Tx) error {
		snap, err := p.getGroupTx(ctx, tx, key)
		if err != nil {
			return err
		}
		snap.Parent = parentName
		data, err := marshalGroup(snap)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		return err
	}, key)
}

func (p *Provider) getGroupTx(ctx context.Context, tx *redis.Tx, key string) (groupSnapshot, error) {
	data, err := tx.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return groupSnapshot{}, nil
	}
	if err != nil {
		return groupSnapshot{}, err
	}
	return unmarshalGroup(data)
}
