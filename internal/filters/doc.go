// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters selects rows of a result set with --filter expressions.
//
// An expression is key, optional operator and target. Several expressions
// are joined with a comma, or with the value of AWSSSO_FILTER_DELIM when a
// target itself contains commas. A row is kept only when every expression
// matches.
//
// Operators, each negatable with a leading !:
//
//   - = : equal (numeric for numbers)
//   - ~ : equal ignoring case
//   - ^ : prefix
//   - < : less than (numeric for numbers)
//   - > : greater than (numeric for numbers)
//   - @ : substring, or membership for arrays and objects
//   - / : regular expression
//
// A key with no operator keeps rows where the value is present.
//
// Examples:
//
//   - "storage_class=GLACIER"
//   - "key^logs/"
//   - "size>1048576"
//   - "name!@test"
//
// Keys are matched against the OutputKey of the active attrs (see package
// attrs) and otherwise used as gjson paths into the row.
package filters
