// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package extract implements the two row transformations of lineextract.
//
// Split prints the first field of a bounded prefix of the input, where the
// bound is a split count expressed in thousands of rows. Group walks the
// input as runs of consecutive rows sharing a first-field key and prints one
// comma-terminated list of second fields per run.
//
// Group keeps the historical behaviour of never printing the last run unless
// GroupOptions.FlushFinal is set.
package extract
