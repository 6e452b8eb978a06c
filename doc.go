// Package rndrmk derives the platform specific build configuration of an
// OPENRNDR project. It resolves the target platform from the command line,
// the environment, the project file or the building host, and writes the
// project's dependency declaration as lock file, Gradle snippet and Maven
// POM.
//
// The derivation is a small build graph in the manner of gomk: [Configure]
// defines the standard project, [mkcore.Builder] brings it up-to-date. Build
// scripts can extend the graph with [Edit].
//
//	sketch/
//	├── gradle
//	│   └── libs.versions.toml
//	├── rndrmk.hcl
//	└── src
//
// Build with
//
//	sketch$ rndrmk build
package rndrmk
