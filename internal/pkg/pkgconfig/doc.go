// Package pkgconfig reads service configuration.
//
// Code depends on the Config interface; Viper is the implementation used by
// the application. Files are read through an afero.Fs so tests can supply an
// in-memory filesystem, and every key can be overridden from the environment
// (GOIDENT_IDENTITY_BATCH_LIMIT overrides identity.batch_limit).
package pkgconfig
