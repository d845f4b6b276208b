// SPDX-License-Identifier: MPL-2.0

// Package object classifies arbitrary runtime values for the help facility.
//
// The help pipeline needs to know whether a value is a module namespace, a
// type, a func, a property accessor, or plain data, what its intrinsic name
// is, and whether two references denote the same object. Go has no module
// objects or descriptors of its own, so Module and Property model them
// explicitly; everything else is answered through reflect and runtime.
package object
