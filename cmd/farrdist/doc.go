// Command farrdist builds, installs, uninstalls, and maintains the
// translations of the Farragone source tree it is pointed at.
package main
