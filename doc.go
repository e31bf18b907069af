// Package golden provides golden image assertions for retained-mode UI
// trees.
//
// # Overview
//
// A test renders a tree into a host session, picks the configurations
// (devices, text scales, locales) it wants covered and asks a Matcher to
// compare each rendering with a committed reference PNG. In record mode the
// references are rewritten instead.
//
// # Quick Start
//
//	var goldens = golden.MustConfig(
//		golden.WithBaseDir("testdata/goldens"),
//		golden.WithMode(golden.ModeFromEnv()),
//	)
//
//	func TestHome(t *testing.T) {
//		tester := retained.New(newHomeScreen())
//		golden.Assert(t, goldens, tester, golden.Request{
//			Name:          "home",
//			Configuration: golden.Phone.LooseHeight(),
//			Sizing:        golden.ExpandAuto(),
//		})
//	}
//
// Run with GOLDEN_UPDATE=1 to record references.
//
// # Sizing
//
// Every request resizes the surface before rasterizing:
//   - ShrinkTo: the natural size of one element, clamped to the
//     configuration's constraints
//   - ExpandAuto: the smallest size plus the remaining extent of every
//     finite scrollable
//   - ExpandWith, ExpandScrollables: the same with an explicit set of
//     scrollables; infinite ones collapse to the constraint maximum
//
// See package sizing for the algorithms.
//
// # Failures
//
// Match stops at the first failing request. Precondition violations are
// reported as *ConfigurationError; comparison failures as
// *compare.MissingReferenceError or *compare.MismatchError, all wrapped in a
// *MatchError naming the request.
//
// # Logging
//
// The package is silent by default. Use SetLogger to route debug output
// through log/slog.
package golden
