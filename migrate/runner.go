// Package migrate sequences the demo phases: provision a cluster,
// serve the backend through ingress-nginx, remove the controller,
// install Traefik's NGINX provider and watch the unmodified Ingress
// resources come back to life. Teardown runs exactly once on every
// exit path.
package migrate

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mlendvay/ingress-migrate/cluster"
	"github.com/mlendvay/ingress-migrate/k8s"
	"github.com/mlendvay/ingress-migrate/model"
	"github.com/mlendvay/ingress-migrate/probe"
	"github.com/mlendvay/ingress-migrate/utils"

	"github.com/rs/zerolog/log"
	"golang.org/x/term"
	"k8s.io/client-go/kubernetes"
)

// Runner drives the migration phases against an externally owned
// cluster. It never assumes exclusive access: pre-existing clusters and
// secrets are reused, and every teardown step is best-effort.
type Runner struct {
	cfg     *model.Config
	k3d     *cluster.K3d
	kubectl *cluster.Kubectl
	prober  *probe.Prober

	// clientFn is resolved lazily: the kubeconfig entry for the demo
	// cluster only exists after k3d created it.
	clientFn func() (kubernetes.Interface, error)
	client   kubernetes.Interface

	in       *bufio.Reader
	teardown sync.Once
}

func New(cfg *model.Config, cmd utils.Runner) *Runner {
	return &Runner{
		cfg:     cfg,
		k3d:     cluster.NewK3d(cmd),
		kubectl: cluster.NewKubectl(cmd),
		prober:  probe.New(cfg.BackendUser, cfg.BackendPass, cfg.ProbeTimeout),
		clientFn: func() (kubernetes.Interface, error) {
			return k8s.NewClient(cfg.Kubeconfig)
		},
		in: bufio.NewReader(os.Stdin),
	}
}

// Demo runs all migration phases in order. Phase failures are logged
// and the run continues; only a canceled context stops it early.
// Teardown is the caller's responsibility (deferred in main), so an
// interrupt mid-phase still cleans up.
func (r *Runner) Demo(ctx context.Context) error {
	phases := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"provision cluster", r.provisionCluster},
		{"set up IngressClass", r.setupIngressClass},
		{"serve via ingress-nginx", r.serveWithNginx},
		{"remove ingress-nginx", r.removeNginx},
		{"serve via Traefik", r.serveWithTraefik},
	}

	for i, phase := range phases {
		if err := ctx.Err(); err != nil {
			return err
		}
		log.Info().Msgf("━━━ phase %d/%d: %s", i+1, len(phases), phase.name)
		if err := phase.fn(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Warn().Err(err).Str("phase", phase.name).Msg("phase failed, continuing")
		}
		r.pause(ctx, "review the cluster state")
	}

	log.Info().Msg("migration demo complete")
	r.pause(ctx, "tear everything down")
	return nil
}

func (r *Runner) provisionCluster(ctx context.Context) error {
	created, err := r.k3d.EnsureCluster(ctx, r.cfg.ClusterName, r.cfg.PortMappings, r.cfg.DisableDefaultIngress)
	if err != nil {
		return err
	}
	if created {
		log.Info().Str("cluster", r.cfg.ClusterName).Msg("cluster created")
	} else {
		log.Warn().Str("cluster", r.cfg.ClusterName).Msg("cluster already exists, reusing it")
	}
	return nil
}

func (r *Runner) setupIngressClass(ctx context.Context) error {
	if _, err := os.Stat(r.cfg.IngressClassDir); os.IsNotExist(err) {
		log.Warn().Str("dir", r.cfg.IngressClassDir).Msg("IngressClass manifests missing, skipping")
		return nil
	}
	out, err := r.kubectl.Apply(ctx, r.cfg.IngressClassDir)
	if err != nil {
		return err
	}
	log.Info().Msg(out)
	return nil
}

func (r *Runner) serveWithNginx(ctx context.Context) error {
	if client, err := r.k8sClient(); err != nil {
		log.Warn().Err(err).Msg("no API client, skipping TLS secret")
	} else {
		created, err := k8s.CreateTLSSecret(ctx, client, r.cfg.Namespace, r.cfg.TLSSecretName, r.cfg.CertFile, r.cfg.KeyFile)
		switch {
		case err != nil:
			log.Warn().Err(err).Msg("TLS secret creation failed")
		case created:
			log.Info().Str("secret", r.cfg.TLSSecretName).Msg("TLS secret created")
		default:
			log.Info().Str("secret", r.cfg.TLSSecretName).Msg("TLS secret already exists, reusing it")
		}
	}

	r.apply(ctx, r.cfg.NginxDir)
	r.apply(ctx, r.cfg.AppDir)
	r.waitReady(ctx, r.cfg.NginxNamespace, r.cfg.NginxDeployment)
	r.settle(ctx)

	r.verifyReachable(ctx, "backend via ingress-nginx")
	return nil
}

func (r *Runner) removeNginx(ctx context.Context) error {
	if out, err := r.kubectl.Delete(ctx, r.cfg.NginxDir); err != nil {
		log.Warn().Err(err).Msg("controller removal failed")
	} else if out != "" {
		log.Info().Msg(out)
	}

	// The Ingress resources themselves are untouched; show them so the
	// user can confirm before the negative probe.
	if client, err := r.k8sClient(); err != nil {
		log.Warn().Err(err).Msg("no API client, skipping ingress listing")
	} else if infos, err := k8s.ListIngresses(ctx, client); err != nil {
		log.Warn().Err(err).Msg("listing ingresses failed")
	} else {
		log.Info().Int("count", len(infos)).Msg("ingress resources still present")
		for _, info := range infos {
			log.Info().
				Str("namespace", info.Namespace).
				Str("class", info.Class).
				Str("hosts", strings.Join(info.Hosts, ",")).
				Msgf("  %s", info.Name)
		}
	}

	r.settle(ctx)
	r.verifyUnreachable(ctx)
	return nil
}

func (r *Runner) serveWithTraefik(ctx context.Context) error {
	r.apply(ctx, r.cfg.TraefikDir)
	r.waitReady(ctx, r.cfg.TraefikNamespace, r.cfg.TraefikDeployment)
	r.settle(ctx)

	r.verifyReachable(ctx, "backend via Traefik (same Ingress resources)")
	if r.cfg.DashboardPort > 0 {
		log.Info().Msgf("Traefik dashboard: http://localhost:%d/dashboard/ (kubectl port-forward -n %s deploy/%s %d:%d)",
			r.cfg.DashboardPort, r.cfg.TraefikNamespace, r.cfg.TraefikDeployment, r.cfg.DashboardPort, r.cfg.DashboardPort)
	}
	return nil
}

// Teardown removes everything the demo created, in reverse order of
// creation. It runs at most once per Runner; every step is best-effort
// so one failure never blocks the rest of the cleanup.
func (r *Runner) Teardown(ctx context.Context) {
	r.teardown.Do(func() {
		log.Info().Msg("━━━ tearing down")

		exists, err := r.k3d.Exists(ctx, r.cfg.ClusterName)
		if err != nil {
			log.Warn().Err(err).Msg("cluster lookup failed")
			return
		}
		if !exists {
			log.Info().Str("cluster", r.cfg.ClusterName).Msg("no cluster to tear down")
			return
		}

		for _, dir := range []string{r.cfg.TraefikDir, r.cfg.AppDir, r.cfg.NginxDir, r.cfg.IngressClassDir} {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				continue
			}
			if _, err := r.kubectl.Delete(ctx, dir); err != nil {
				log.Warn().Err(err).Str("dir", dir).Msg("manifest deletion failed")
			} else {
				log.Info().Str("dir", dir).Msg("manifests deleted")
			}
		}

		if client, err := r.k8sClient(); err != nil {
			log.Warn().Err(err).Msg("no API client, skipping secret deletion")
		} else if err := k8s.DeleteSecret(ctx, client, r.cfg.Namespace, r.cfg.TLSSecretName); err != nil {
			log.Warn().Err(err).Msg("secret deletion failed")
		} else {
			log.Info().Str("secret", r.cfg.TLSSecretName).Msg("TLS secret deleted")
		}

		if err := r.k3d.Delete(ctx, r.cfg.ClusterName); err != nil {
			log.Warn().Err(err).Msg("cluster deletion failed")
		} else {
			log.Info().Str("cluster", r.cfg.ClusterName).Msg("cluster deleted")
		}
	})
}

func (r *Runner) k8sClient() (kubernetes.Interface, error) {
	if r.client != nil {
		return r.client, nil
	}
	client, err := r.clientFn()
	if err != nil {
		return nil, err
	}
	r.client = client
	return client, nil
}

func (r *Runner) apply(ctx context.Context, dir string) {
	out, err := r.kubectl.Apply(ctx, dir)
	if err != nil {
		log.Warn().Err(err).Str("dir", dir).Msg("apply failed")
		return
	}
	log.Info().Msg(out)
}

func (r *Runner) waitReady(ctx context.Context, namespace, name string) {
	client, err := r.k8sClient()
	if err != nil {
		log.Warn().Err(err).Msg("no API client, skipping readiness wait")
		return
	}
	log.Info().Str("deployment", namespace+"/"+name).Msg("waiting for deployment to become available")
	if err := k8s.WaitForDeploymentReady(ctx, client, namespace, name, r.cfg.ReadyTimeout); err != nil {
		log.Warn().Err(err).Str("deployment", namespace+"/"+name).Msg("deployment not ready in time, continuing anyway")
		return
	}
	log.Info().Str("deployment", namespace+"/"+name).Msg("deployment available")
}

// verifyReachable probes once and expects the configured status code.
func (r *Runner) verifyReachable(ctx context.Context, desc string) {
	res := r.prober.Check(ctx, r.cfg.BackendURL)
	switch {
	case res.Matches(r.cfg.ExpectedStatus):
		log.Info().Int("status", res.StatusCode).Msgf("%s: reachable as expected", desc)
	case !res.Reached():
		log.Warn().Err(res.Err).Msgf("%s: backend unreachable", desc)
	default:
		log.Warn().
			Int("status", res.StatusCode).
			Int("expected", r.cfg.ExpectedStatus).
			Str("body", res.Body).
			Msgf("%s: unexpected status", desc)
	}
}

// verifyUnreachable probes once with inverted semantics: after the
// controller is gone, a failing probe confirms nothing is serving the
// Ingress routes anymore. A successful probe here is the surprise.
func (r *Runner) verifyUnreachable(ctx context.Context) {
	res := r.prober.Check(ctx, r.cfg.BackendURL)
	switch {
	case !res.Reached():
		log.Info().Err(res.Err).Msg("confirmed: backend unreachable without a controller")
	case !res.Matches(r.cfg.ExpectedStatus):
		log.Info().Int("status", res.StatusCode).Msg("confirmed: backend no longer serving the expected response")
	default:
		log.Warn().Int("status", res.StatusCode).Msg("unexpected: backend still reachable after controller removal")
	}
}

// settle sleeps briefly so the active controller can pick up routes
// before the probe fires. Interruptible.
func (r *Runner) settle(ctx context.Context) {
	if r.cfg.SettleDelay <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(r.cfg.SettleDelay):
	}
}

// pause waits for Enter between phases so the user can inspect the
// cluster. Skipped when non-interactive or when stdin is not a
// terminal.
func (r *Runner) pause(ctx context.Context, msg string) {
	if r.cfg.NonInteractive || !term.IsTerminal(int(os.Stdin.Fd())) {
		return
	}
	fmt.Fprintf(os.Stderr, "\n  %s, then press Enter to continue...\n", msg)

	done := make(chan struct{})
	go func() {
		_, _ = r.in.ReadString('\n')
		close(done)
	}()
	select {
	case <-ctx.Done():
	case <-done:
	}
}
