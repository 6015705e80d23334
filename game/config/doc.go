// Package config loads server settings.
//
// Settings cover the tunable behavior of the room server: how long the AI
// pauses before replying, how long an abandoned room survives before
// eviction, the room-code length, and the recent-matches page cap. Settings
// come from an optional JSON file with every field defaulted, so a missing
// file simply yields the defaults.
package config
