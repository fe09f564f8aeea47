// Package k8s holds the typed API-server operations the demo needs:
// the TLS secret, the Ingress listing and the deployment readiness
// wait. Everything else goes through kubectl on purpose — manifests
// stay opaque.
package k8s

import (
	"fmt"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// NewClient builds a clientset from the given kubeconfig path, falling
// back to the default kubeconfig location and finally to in-cluster
// config. k3d merges the new cluster's credentials into the default
// kubeconfig on create, so the fallback is the common path.
func NewClient(kubeconfig string) (kubernetes.Interface, error) {
	path := kubeconfig
	if path == "" {
		path = clientcmd.RecommendedHomeFile
	}

	config, err := clientcmd.BuildConfigFromFlags("", path)
	if err != nil {
		var inClusterErr error
		config, inClusterErr = rest.InClusterConfig()
		if inClusterErr != nil {
			return nil, fmt.Errorf("load kubeconfig %q: %w", path, err)
		}
	}

	return kubernetes.NewForConfig(config)
}
