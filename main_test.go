package main

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHelpDoesNotTouchTheCluster(t *testing.T) {
	cmd := newCLI()
	cmd.Writer = io.Discard

	err := cmd.Run(context.Background(), []string{"ingress-migrate", "help"})
	assert.NoError(t, err)
}

func TestUnknownModeFails(t *testing.T) {
	cmd := newCLI()
	cmd.Writer = io.Discard

	err := cmd.Run(context.Background(), []string{"ingress-migrate", "bogus"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "bogus")
}
