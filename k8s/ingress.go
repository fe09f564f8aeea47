package k8s

import (
	"context"
	"fmt"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

// legacy class annotation, still common on ingress-nginx setups
const ingressClassAnnotation = "kubernetes.io/ingress.class"

// IngressInfo is the subset of an Ingress shown to the user when
// confirming that resources survived a controller swap.
type IngressInfo struct {
	Namespace string
	Name      string
	Class     string
	Hosts     []string
}

// ListIngresses returns all Ingress objects across every namespace.
// The result is informational only; no phase branches on it.
func ListIngresses(ctx context.Context, client kubernetes.Interface) ([]IngressInfo, error) {
	list, err := client.NetworkingV1().Ingresses(metav1.NamespaceAll).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list ingresses: %w", err)
	}

	infos := make([]IngressInfo, 0, len(list.Items))
	for _, ing := range list.Items {
		info := IngressInfo{
			Namespace: ing.Namespace,
			Name:      ing.Name,
		}
		if ing.Spec.IngressClassName != nil {
			info.Class = *ing.Spec.IngressClassName
		} else if cls, ok := ing.Annotations[ingressClassAnnotation]; ok {
			info.Class = cls
		}
		for _, rule := range ing.Spec.Rules {
			if rule.Host != "" {
				info.Hosts = append(info.Hosts, rule.Host)
			}
		}
		infos = append(infos, info)
	}
	return infos, nil
}
