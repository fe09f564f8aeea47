package model

import "time"

// IngressClassName is the class both controllers claim in this demo.
// The Ingress manifests reference it and are never modified during the
// migration.
const IngressClassName = "nginx"

// Config holds every knob of a single demo run. All values have working
// defaults for a local k3d setup and can be overridden via environment
// variables.
type Config struct {
	ClusterName string `env:"MIGRATE_CLUSTER_NAME" envDefault:"ingress-migration"`
	Namespace   string `env:"MIGRATE_NAMESPACE" envDefault:"default"`

	// Port mappings passed to k3d so the host can reach the cluster's
	// load balancer directly.
	PortMappings []string `env:"MIGRATE_PORT_MAPPINGS" envSeparator:"," envDefault:"80:80@loadbalancer,443:443@loadbalancer"`
	// k3s ships its own Traefik; it has to stay off so the demo
	// controls which controller serves at any point.
	DisableDefaultIngress bool `env:"MIGRATE_DISABLE_DEFAULT_INGRESS" envDefault:"true"`

	BackendURL     string `env:"MIGRATE_BACKEND_URL" envDefault:"https://whoami.localhost/"`
	BackendUser    string `env:"MIGRATE_BACKEND_USER" envDefault:"admin"`
	BackendPass    string `env:"MIGRATE_BACKEND_PASS" envDefault:"admin"`
	ExpectedStatus int    `env:"MIGRATE_EXPECTED_STATUS" envDefault:"200"`
	DashboardPort  int    `env:"MIGRATE_DASHBOARD_PORT" envDefault:"9000"`

	TLSSecretName string `env:"MIGRATE_TLS_SECRET" envDefault:"whoami-tls"`
	CertFile      string `env:"MIGRATE_TLS_CERT" envDefault:"certs/tls.crt"`
	KeyFile       string `env:"MIGRATE_TLS_KEY" envDefault:"certs/tls.key"`

	IngressClassDir string `env:"MIGRATE_INGRESSCLASS_DIR" envDefault:"manifests/ingressclass"`
	NginxDir        string `env:"MIGRATE_NGINX_DIR" envDefault:"manifests/nginx"`
	AppDir          string `env:"MIGRATE_APP_DIR" envDefault:"manifests/app"`
	TraefikDir      string `env:"MIGRATE_TRAEFIK_DIR" envDefault:"manifests/traefik"`

	NginxDeployment   string `env:"MIGRATE_NGINX_DEPLOYMENT" envDefault:"ingress-nginx-controller"`
	NginxNamespace    string `env:"MIGRATE_NGINX_NAMESPACE" envDefault:"ingress-nginx"`
	TraefikDeployment string `env:"MIGRATE_TRAEFIK_DEPLOYMENT" envDefault:"traefik"`
	TraefikNamespace  string `env:"MIGRATE_TRAEFIK_NAMESPACE" envDefault:"traefik"`

	ReadyTimeout time.Duration `env:"MIGRATE_READY_TIMEOUT" envDefault:"2m"`
	ProbeTimeout time.Duration `env:"MIGRATE_PROBE_TIMEOUT" envDefault:"10s"`
	// Grace period between applying manifests and probing, so the
	// controller has a moment to pick up the routes.
	SettleDelay time.Duration `env:"MIGRATE_SETTLE_DELAY" envDefault:"5s"`

	Kubeconfig     string `env:"KUBECONFIG"`
	NonInteractive bool   `env:"MIGRATE_NON_INTERACTIVE" envDefault:"false"`
}
