package ports

import (
	"skynull/domain/geom"
	"skynull/domain/sphere"
)

// FieldLoader loads a pixelized sky map at the pipeline resolution.
// Higher-resolution sources are downgraded on ingestion; lower-resolution
// sources fail with a resolution error (no upsampling).
type FieldLoader interface {
	LoadField(path string) (sphere.Field, error)
}

// FieldWriter persists a field so drivers can hand maps between stages.
type FieldWriter interface {
	WriteField(path string, f sphere.Field) error
}

// CatalogLoader loads a point catalog filtered to redshift >= zMin. Sources
// whose columns match none of the documented aliases fail with a schema
// error.
type CatalogLoader interface {
	LoadCatalog(path string, zMin float64) (*geom.Catalog, error)
}
