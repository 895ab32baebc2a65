// Package domain defines the core data model for quiver.
//
// It contains the Entry type stored by the engine and the coded
// domain errors shared by the storage, service, and API layers.
package domain
