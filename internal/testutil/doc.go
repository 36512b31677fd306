// SPDX-License-Identifier: MPL-2.0

// Package testutil provides test helpers that fail the test on setup errors
// and restore process state afterwards, plus a controllable clock.
package testutil
