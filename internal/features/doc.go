// Package features provides the site's feature flag system: a closed set of
// flag keys with compiled-in defaults, overridden by environment variables,
// overridden in turn by values persisted in local storage, and toggled at
// runtime through a Context.
package features
