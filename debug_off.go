//go:build !buddydebug

package buddy

const debugBuild = false
