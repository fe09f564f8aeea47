package cluster

import (
	"context"
	"fmt"
	"strings"

	"github.com/mlendvay/ingress-migrate/utils"
)

// Kubectl applies and deletes manifest sets by path.
type Kubectl struct {
	cmd utils.Runner
}

func NewKubectl(cmd utils.Runner) *Kubectl {
	return &Kubectl{cmd: cmd}
}

// Apply runs `kubectl apply -f path`. The path may be a single file or
// a directory of manifests.
func (k *Kubectl) Apply(ctx context.Context, path string) (string, error) {
	out, err := k.cmd.Run(ctx, "kubectl", "apply", "-f", path)
	if err != nil {
		return "", fmt.Errorf("apply %s: %w", path, err)
	}
	return strings.TrimSpace(out), nil
}

// Delete runs `kubectl delete -f path --ignore-not-found` so removing
// already-removed resources stays a no-op.
func (k *Kubectl) Delete(ctx context.Context, path string) (string, error) {
	out, err := k.cmd.Run(ctx, "kubectl", "delete", "-f", path, "--ignore-not-found")
	if err != nil {
		return "", fmt.Errorf("delete %s: %w", path, err)
	}
	return strings.TrimSpace(out), nil
}
