// Package types defines the recipe, shopping item and configuration types
// shared by every layer of recipebox, together with the standard errors.
//
// The package has no dependencies on the rest of the module; the state
// store, the tab workspace, the shopping list engine and the remote client
// all exchange values of these types.
package types
