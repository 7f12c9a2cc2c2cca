// Package ui implements the tracker's terminal session as a Bubble Tea
// model.
//
// # State machine
//
// A session moves through a small set of phases:
//
//	menu → (feed: start prompt → end prompt | lookup: id prompt)
//	     → fetching → done
//
// The menu phase reads single keystrokes against a static option table
// and re-prompts on anything unknown, one Update pass per key, without
// bound. Input phases collect one line each through bubbles/textinput.
// The fetching phase issues exactly one command against the NeoWs
// fetcher; its success, not-found, or error message drives the final
// transition.
//
// # Output
//
// Everything the session prints accumulates in a transcript rendered
// below the option list, inside a single bordered box. The user-facing
// literals (prompts, retry and result messages) are fixed strings the
// tests assert on verbatim.
//
// # Error semantics
//
// Invalid dates degrade silently to unset bounds. A lookup 404 prints
// its message and ends the flow normally. Any other fetch failure is
// fatal: the model stores the wrapped error, quits, and Run returns it
// after the tea runtime has restored the terminal.
//
// # Pacing
//
// The title types itself out on a tick cadence controlled by the
// typing delay option; zero disables the effect, which is how every
// test runs. The final screen auto-exits after a bounded pause so an
// unattended session never hangs.
package ui
