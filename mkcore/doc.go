// Package mkcore implements the build graph of rndrmk. A [Project] consists
// of goals ([Goal]) that are reached by running actions ([Action]). For
// rndrmk, goals are the resolved target platform and the files derived from
// it: dependency lock file, Gradle dependency block and Maven POM.
//
// The package uses idiomatic Go error handling. The easy-to-use wrappers
// for project definitions are in the [rndrmk] package.
//
// [rndrmk]: https://pkg.go.dev/git.fractalqb.de/fractalqb/rndrmk
package mkcore
