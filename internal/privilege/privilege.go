// Package privilege reports whether the process may write machine-wide state.
//
// Installing a package manager and writing the machine PATH both need administrator rights on
// Windows and root elsewhere; the bootstrap flow asks before it touches the network.
package privilege
