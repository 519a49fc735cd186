package ports

import "featurestore/internal/types"

// StoreConfigPort loads store settings from a config source.
type StoreConfigPort interface {
	Load(path string) (types.StoreSettings, error)
}
