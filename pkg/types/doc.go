// Package types defines the table and column specifications, metadata
// entities, configuration, and standard errors for the logbook storage
// layer.
package types
