// Package app wires configuration, preferences, the NeoWs client, and
// the terminal UI into a runnable neotrack session.
package app
