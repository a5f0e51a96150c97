// Package iocache is for durable donor storage.
package iocache

import (
	"sync"

	"github.com/adminizer/giving/internal/contract"
)

// DonorStoreManager manages the active DonorStore instance.
type DonorStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	donors       contract.DonorStore
}

var _ contract.StoreManager = &DonorStoreManager{} // Compile-time check

// GetDonorStore returns the donor store.
func (mgr *DonorStoreManager) GetDonorStore() contract.DonorStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.donors
}
