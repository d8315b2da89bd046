//go:build buddydebug

package buddy

// debugBuild gates the double-free sentinel check in Free (spec.md §7:
// "a hardened implementation MAY add a debug-only sentinel check on
// the header word"). Off by default so the release path never pays
// for it.
const debugBuild = true
