// Package swatext builds the _pyswat native extension module that wraps the
// libswat analytics client.
//
// The libswat client is maintained separately and compiled with the Go
// toolchain. This package orchestrates everything needed to turn it into a
// loadable CPython extension:
//
//  1. Validate the required toolchains (go, swig)
//  2. Stage an isolated, ephemeral build workspace
//  3. Fetch the libswat source into the workspace
//  4. Generate glue source with swig from the client's interface file
//  5. Compile the client into a statically linkable archive (c-archive)
//  6. Link glue source and archive into the extension module
//
// # Basic Usage
//
// Configure and run a build:
//
//	cfg := swatext.DefaultConfig()
//	cfg.ApplyEnvironment()
//	cfg.DestPath = "build/lib"
//
//	builder := swatext.NewExtensionBuilder(cfg)
//	result, err := builder.Build(ctx)
//
// The build pipeline is strictly sequential; each step's output is a
// precondition for the next. All intermediate state lives in a temporary
// workspace that is removed on every exit path. Only the final extension
// module survives, copied to cfg.DestPath before the workspace is released.
//
// # Platform Support
//
// Linking follows one of two strategies selected by platform
// classification: the standard interpreter-driven link step on macOS and
// unix-like systems, or an explicit manual compiler invocation on Windows,
// where the standard path cannot express the required link arguments.
//
// The runtime side of the package - lazy loading of the compiled extension
// and translation of native error state into Go errors - lives in the
// binding subpackage.
//
// # Requirements
//
// Requires Go 1.25 or later.
package swatext
