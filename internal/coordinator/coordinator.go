// Package coordinator orchestrates schema mutations across the object and
// association stores with all-or-nothing externally visible effect: the
// cascade-checked delete and the optimistic duplicate with rollback against
// the persistence collaborator. Every mutation passes through a per-object-id
// guard so nothing interleaves with an in-flight operation.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"schemaforge/internal/domain"
	"schemaforge/internal/persist"
	"schemaforge/internal/store"
)

// State is the observable mutation state of an object ID.
type State string

// An ID is pending while a mutation holds it; resolution (commit or
// rollback) returns it to idle before the ID accepts new work.
const (
	StateIdle    State = "idle"
	StatePending State = "pending"
)

// Coordinator serializes mutations per object ID. A mutation touching an ID
// whose previous operation is still pending fails fast with ErrBusy;
// mutations on disjoint IDs proceed freely.
type Coordinator struct {
	store     *store.Store
	persister persist.Persister

	// pending holds only in-flight IDs; entries are evicted on resolution,
	// so the map is bounded by the number of concurrent mutations.
	mu      sync.Mutex
	pending map[string]struct{}
}

// New creates a Coordinator over the given store and persistence
// collaborator.
func New(s *store.Store, p persist.Persister) *Coordinator {
	return &Coordinator{
		store:     s,
		persister: p,
		pending:   make(map[string]struct{}),
	}
}

// ObjectState reports whether an object ID has a mutation in flight.
func (c *Coordinator) ObjectState(id string) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.pending[id]; ok {
		return StatePending
	}
	return StateIdle
}

// begin moves the given IDs to pending, or fails with ErrBusy if any of
// them already is. All-or-nothing: on failure no ID is marked.
func (c *Coordinator) begin(ids ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range ids {
		if _, ok := c.pending[id]; ok {
			return fmt.Errorf("object %s: %w", id, domain.ErrBusy)
		}
	}
	for _, id := range ids {
		c.pending[id] = struct{}{}
	}
	return nil
}

// resolve releases the given IDs.
func (c *Coordinator) resolve(ids ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range ids {
		delete(c.pending, id)
	}
}

// UpdateObject applies a partial patch through the per-id guard, so a label
// or field change cannot interleave with an in-flight duplicate or delete.
func (c *Coordinator) UpdateObject(ctx context.Context, id string, patch domain.ObjectPatch) (*domain.CustomObject, error) {
	if err := c.begin(id); err != nil {
		return nil, err
	}
	defer c.resolve(id)

	return c.store.Objects.Update(ctx, id, patch)
}

// AddAssociation creates an association only when neither endpoint has a
// mutation in flight. An association added onto an in-flight optimistic
// duplicate would block its rollback, leaving the duplicate behind after a
// collaborator failure.
func (c *Coordinator) AddAssociation(ctx context.Context, input domain.CreateAssociationInput) (*domain.Association, error) {
	if err := c.begin(input.SourceObjectID, input.TargetObjectID); err != nil {
		return nil, err
	}
	defer c.resolve(input.SourceObjectID, input.TargetObjectID)

	return c.store.Associations.Add(ctx, input)
}

// RemoveAssociation deletes an association through the endpoint guard, so
// the delete guard's view of blocking associations cannot change under a
// pending operation.
func (c *Coordinator) RemoveAssociation(ctx context.Context, id string) error {
	a, err := c.store.Associations.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := c.begin(a.SourceObjectID, a.TargetObjectID); err != nil {
		return err
	}
	defer c.resolve(a.SourceObjectID, a.TargetObjectID)

	return c.store.Associations.Remove(ctx, id)
}

// DeleteObject deletes an object only when no association references it.
// When associations block the delete, the returned error identifies them and
// no state is mutated.
func (c *Coordinator) DeleteObject(ctx context.Context, id string) error {
	if err := c.begin(id); err != nil {
		return err
	}
	defer c.resolve(id)

	assocs, err := c.store.Associations.ForObject(ctx, id)
	if err != nil {
		return err
	}
	if len(assocs) > 0 {
		blocking := make([]string, len(assocs))
		for i, a := range assocs {
			blocking[i] = a.ID
		}
		return &domain.ReferentialIntegrityError{ObjectID: id, AssociationIDs: blocking}
	}

	return c.store.Objects.Delete(ctx, id)
}

// DuplicateObject performs an optimistic duplicate: the locally-computed
// copy is applied to the store synchronously, then the persistence
// collaborator is invoked. On collaborator failure the local copy is removed
// again, leaving the collection observably identical to its pre-call state.
// On success a server-assigned canonical ID is reconciled into the copy.
//
// The pending operation always resolves even if the caller's context is
// cancelled mid-flight; rollback and reconcile run detached from it.
func (c *Coordinator) DuplicateObject(ctx context.Context, id string) (*domain.CustomObject, error) {
	if err := c.begin(id); err != nil {
		return nil, err
	}

	dup, err := c.store.Objects.Duplicate(ctx, id)
	if err != nil {
		c.resolve(id)
		return nil, err
	}

	// The duplicate is visible to consumers from this point, so it gets the
	// same pending guard as the source.
	if err := c.begin(dup.ID); err != nil {
		// Freshly generated ID colliding with a pending one cannot happen.
		c.resolve(id)
		return nil, err
	}
	defer c.resolve(id, dup.ID)

	canonical, perr := c.persister.DuplicateCustomObject(ctx, dup)
	if perr != nil {
		detached := context.WithoutCancel(ctx)
		if delErr := c.store.Objects.Delete(detached, dup.ID); delErr != nil {
			slog.Error("rollback of optimistic duplicate failed",
				"objectId", id, "duplicateId", dup.ID, "error", delErr)
		}

		var pe *domain.PersistenceError
		if errors.As(perr, &pe) {
			return nil, pe
		}
		return nil, &domain.PersistenceError{Msg: perr.Error()}
	}

	if canonical != nil && canonical.ID != dup.ID {
		detached := context.WithoutCancel(ctx)
		if err := c.store.Objects.Rekey(detached, dup.ID, canonical.ID); err != nil {
			return nil, err
		}
		return c.store.Objects.Get(detached, canonical.ID)
	}

	return dup, nil
}
