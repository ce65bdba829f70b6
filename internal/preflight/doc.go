// Package preflight provides readiness checks for the directories and the
// encoder movconv depends on.
//
// These checks back the "movconv check" command and are logged at the start
// of a conversion run so a missing encoder or an unwritable output directory
// is reported once instead of once per file. Checks leave nothing behind on the
// filesystem.
package preflight
