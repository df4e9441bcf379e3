package client

import (
	"context"
	"sync"
)

// FavouritesList mirrors the caller's favourites. Mutations go to the backend
// first; the in-memory list changes only after the backend confirms, so a
// failed call leaves the list exactly as it was.
type FavouritesList struct {
	api *API

	mu    sync.Mutex
	items []Favourite
}

func NewFavouritesList(api *API) *FavouritesList {
	return &FavouritesList{api: api}
}

func (l *FavouritesList) Items() []Favourite {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Favourite, len(l.items))
	copy(out, l.items)
	return out
}

// Refresh replaces the list with the backend's current state.
func (l *FavouritesList) Refresh(ctx context.Context) error {
	items, err := l.api.ListFavourites(ctx)
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.items = items
	l.mu.Unlock()
	return nil
}

// Add favourites a biodata. A duplicate is reported as a conflict (see
// IsConflict) and the list is unchanged.
func (l *FavouritesList) Add(ctx context.Context, biodataID string) error {
	fav, err := l.api.AddFavourite(ctx, biodataID)
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.items = append(l.items, *fav)
	l.mu.Unlock()
	return nil
}

// Remove deletes a favourite and drops it from the list only once the backend
// confirms the deletion.
func (l *FavouritesList) Remove(ctx context.Context, id string) error {
	if err := l.api.DeleteFavourite(ctx, id); err != nil {
		return err
	}

	l.mu.Lock()
	kept := l.items[:0]
	for _, item := range l.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	l.items = kept
	l.mu.Unlock()
	return nil
}
