// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/legacy-shield/internal/service"
)

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run executes the command selected by args and blocks until it exits.
	Run(ctx context.Context, args []string) error
}

// Prompter reads secrets from the user without echoing them.
type Prompter interface {
	// Secret prints label and returns the entered line.
	Secret(label string) (string, error)
}

// Connector builds the client services for one command invocation. The
// returned function destroys every key and releases local storage.
type Connector func(ctx context.Context, flags Flags) (*service.ClientServices, func(), error)
