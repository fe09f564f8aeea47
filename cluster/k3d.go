// Package cluster wraps the external k3d and kubectl binaries behind
// typed operations. Manifest contents are opaque here: only paths are
// passed through, never parsed.
package cluster

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/mlendvay/ingress-migrate/utils"
)

// K3d manages the lifecycle of a local k3d cluster.
type K3d struct {
	cmd utils.Runner
}

func NewK3d(cmd utils.Runner) *K3d {
	return &K3d{cmd: cmd}
}

// List returns the names of all clusters k3d knows about.
func (k *K3d) List(ctx context.Context) ([]string, error) {
	out, err := k.cmd.Run(ctx, "k3d", "cluster", "list", "-o", "json")
	if err != nil {
		return nil, fmt.Errorf("list clusters: %w", err)
	}

	var clusters []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal([]byte(out), &clusters); err != nil {
		return nil, fmt.Errorf("parse cluster list: %w", err)
	}

	names := make([]string, 0, len(clusters))
	for _, c := range clusters {
		names = append(names, c.Name)
	}
	return names, nil
}

// Exists reports whether a cluster of the given name is present.
func (k *K3d) Exists(ctx context.Context, name string) (bool, error) {
	names, err := k.List(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(names, name), nil
}

// EnsureCluster creates the cluster unless one of the same name already
// exists. Returns true when a cluster was actually created, false when
// the existing one is being reused.
func (k *K3d) EnsureCluster(ctx context.Context, name string, portMappings []string, disableDefaultIngress bool) (bool, error) {
	exists, err := k.Exists(ctx, name)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	args := []string{"cluster", "create", name}
	for _, pm := range portMappings {
		args = append(args, "-p", pm)
	}
	if disableDefaultIngress {
		args = append(args, "--k3s-arg", "--disable=traefik@server:0")
	}

	if _, err := k.cmd.Run(ctx, "k3d", args...); err != nil {
		return false, fmt.Errorf("create cluster %q: %w", name, err)
	}
	return true, nil
}

// Delete removes the cluster. Callers treat failures as best-effort.
func (k *K3d) Delete(ctx context.Context, name string) error {
	if _, err := k.cmd.Run(ctx, "k3d", "cluster", "delete", name); err != nil {
		return fmt.Errorf("delete cluster %q: %w", name, err)
	}
	return nil
}
