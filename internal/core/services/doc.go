// Package services implements the driving port interfaces.
//
// The block library, editor, navigation and session services hold the
// site-building rules. They reach storage, the block catalog and the
// configuration only through driven ports, so every adapter can be
// swapped for a fake in tests.
package services
