// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the legacyshield command-line application.
//
// It wires cobra commands, terminal prompts and client services into a
// single process lifecycle. Key material lives only for the duration of one
// command: every owner command logs in first and every portal command
// unlocks first, and all keys are destroyed before the process exits.
package client
