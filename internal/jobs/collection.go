package jobs

import (
	"sort"
	"sync"
)

// Collection holds listings keyed by job id, writing a key twice keeps the last write.
// It is not safe for concurrent writes, see SyncCollection.
type Collection map[string]Listing

func NewCollection() Collection {
	return Collection{}
}

// Put stores the listing under its job id, it returns false if the listing has no job id.
func (c Collection) Put(listing Listing) bool {
	if listing.JobId == nil {
		return false
	}
	c[*listing.JobId] = listing
	return true
}

// Sorted returns the listings ordered by company, listings without a company
// come last and ties are broken by job id.
func (c Collection) Sorted() []Listing {
	out := make([]Listing, 0, len(c))
	for _, listing := range c {
		out = append(out, listing)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if (a.Company == nil) != (b.Company == nil) {
			return a.Company != nil
		}
		if a.Company != nil && *a.Company != *b.Company {
			return *a.Company < *b.Company
		}
		return Deref(a.JobId) < Deref(b.JobId)
	})
	return out
}

// SyncCollection is a Collection guarded by a mutex.
type SyncCollection struct {
	lock  sync.Mutex
	inner Collection
}

func NewSyncCollection(size int) *SyncCollection {
	return &SyncCollection{inner: make(Collection, size)}
}

func (s *SyncCollection) Put(listing Listing) bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.inner.Put(listing)
}

// Collection returns a copy of the current contents.
func (s *SyncCollection) Collection() Collection {
	s.lock.Lock()
	defer s.lock.Unlock()
	out := make(Collection, len(s.inner))
	for k, v := range s.inner {
		out[k] = v
	}
	return out
}
