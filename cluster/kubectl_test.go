package cluster

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/mlendvay/ingress-migrate/utils"
)

func TestApply(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		m := &utils.MockRunner{Out: "deployment.apps/whoami created\n"}
		k := NewKubectl(m)

		out, err := k.Apply(context.Background(), "manifests/app")
		if err != nil {
			t.Fatalf("Apply() error: %v", err)
		}
		if out != "deployment.apps/whoami created" {
			t.Errorf("unexpected output: %q", out)
		}
		if got := strings.Join(m.Calls[0], " "); got != "kubectl apply -f manifests/app" {
			t.Errorf("unexpected command: %s", got)
		}
	})

	t.Run("error", func(t *testing.T) {
		m := &utils.MockRunner{Err: fmt.Errorf("connection refused")}
		k := NewKubectl(m)

		if _, err := k.Apply(context.Background(), "manifests/app"); err == nil {
			t.Fatal("Apply() should return error")
		}
	})
}

func TestDeleteManifests(t *testing.T) {
	m := &utils.MockRunner{}
	k := NewKubectl(m)

	if _, err := k.Delete(context.Background(), "manifests/nginx"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}

	args := strings.Join(m.Calls[0], " ")
	if !strings.Contains(args, "delete -f manifests/nginx") {
		t.Errorf("unexpected command: %s", args)
	}
	if !strings.Contains(args, "--ignore-not-found") {
		t.Errorf("expected --ignore-not-found, got: %s", args)
	}
}
