// Package presets holds the closed animation preset enumerations shared with
// the front end. The identifier lists are part of the wire contract and must
// match the consuming UI exactly; treat any change as a breaking schema change.
package presets
