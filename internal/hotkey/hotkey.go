// Package hotkey registers the global overlay toggle combination and invokes
// a callback on every press. The callback runs on the watcher's own thread;
// callers must marshal any UI mutation onto their UI-owning context.
package hotkey

// Combination is the fixed global shortcut. Not configurable.
const Combination = "Ctrl+Shift+M"
